package feed

import (
	"time"

	"github.com/latted-app/latted/internal/models"
	"github.com/latted-app/latted/internal/social"
)

// DemoEntries is the built-in filler shown when the public collection cannot
// be fetched or is empty, so a fresh install never opens on a blank feed.
// The id prefix routes their comments into the mock side documents.
func DemoEntries() []models.FeedEntry {
	base := time.Now().Add(-48 * time.Hour).UnixMilli()
	return []models.FeedEntry{
		{
			ID:        social.MockIDPrefix + "1",
			CreatedAt: base + 3*3600*1000,
			Params: models.Params{
				MilkType: "whole", PitcherSize: "400ml", SpoutTip: "narrow",
				CupType: "tulip", CupVolumeML: 180, EspressoG: 18, MilkTempF: 140,
				Pattern: "rosetta", AerationSec: 4, IntegrationSec: 18,
			},
			Beans:  &models.Beans{Brand: "Square Mile", Name: "Red Brick"},
			Rating: 4.5,
			Notes:  "Finally got the wiggle symmetrical.",
			User: models.UserSnapshot{
				ID: social.MockIDPrefix + "user-ana", Name: "Ana",
				Location: models.Location{Country: "Portugal", City: "Lisbon"},
			},
			MediaType: models.MediaImage,
		},
		{
			ID:        social.MockIDPrefix + "2",
			CreatedAt: base + 2*3600*1000,
			Params: models.Params{
				MilkType: "oat", PitcherSize: "600ml", SpoutTip: "round",
				CupType: "cappuccino", CupVolumeML: 150, EspressoG: 17, MilkTempF: 135,
				Pattern: "tulip", AerationSec: 5, IntegrationSec: 15,
			},
			Rating: 3.5,
			Notes:  "Oat milk keeps collapsing on the third stack.",
			User: models.UserSnapshot{
				ID: social.MockIDPrefix + "user-kenji", Name: "Kenji",
				Location: models.Location{Country: "Japan", City: "Osaka"},
			},
			MediaType: models.MediaImage,
		},
		{
			ID:        social.MockIDPrefix + "3",
			CreatedAt: base + 3600*1000,
			Params: models.Params{
				MilkType: "whole", PitcherSize: "350ml", SpoutTip: "narrow",
				CupType: "flat white", CupVolumeML: 160, EspressoG: 18.5, MilkTempF: 145,
				Pattern: "heart", AerationSec: 3, IntegrationSec: 20,
			},
			Beans:  &models.Beans{Brand: "La Cabra", Name: "Milky Cake"},
			Rating: 5,
			Notes:  "First clean heart with a proper cut-through.",
			User: models.UserSnapshot{
				ID: social.MockIDPrefix + "user-marta", Name: "Marta",
				Location: models.Location{Country: "Spain", State: "Catalonia", City: "Barcelona"},
			},
			MediaType: models.MediaVideo,
		},
	}
}
