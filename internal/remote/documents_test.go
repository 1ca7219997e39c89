package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordID_SanitizesUUIDDashes(t *testing.T) {
	assert.Equal(t, "9b1deb4d_3b7d_4bad_9bdd_2b0d7b3dcb6d", recordID("9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"))
	assert.Equal(t, "plain", recordID("plain"))
}

func TestEntryTable_PerUserCollection(t *testing.T) {
	assert.Equal(t, "entries_u_1", entryTable("u-1"))
}
