// Package units converts brewing values between metric/Fahrenheit storage
// units and the user's preferred display units, and formats them for display.
//
// The rounding rules are deliberate: each conversion rounds to the precision
// the UI shows, so repeated round-trips are lossy by construction. Round-trip
// error stays within one rounding step; exact idempotence is not a goal.
package units

import (
	"fmt"
	"math"

	"github.com/latted-app/latted/internal/models"
)

// Unit names as stored in Settings.
const (
	Celsius    = "C"
	Fahrenheit = "F"
	Milliliter = "ml"
	Gram       = "g"
	Ounce      = "oz"
)

const (
	mlPerOz = 29.5735
	gPerOz  = 28.3495
)

func round(v float64) float64 { return math.Round(v) }

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// ConvertTemp converts a temperature between "F" and "C", rounding to the
// nearest whole degree. Identity when units match or v is zero.
func ConvertTemp(v float64, from, to string) float64 {
	if v == 0 || from == to {
		return v
	}
	if from == Fahrenheit && to == Celsius {
		return round((v - 32) * 5 / 9)
	}
	if from == Celsius && to == Fahrenheit {
		return round(v*9/5 + 32)
	}
	return v
}

// ConvertVolume converts between "ml" and "oz": ounces keep one decimal,
// milliliters round to whole numbers.
func ConvertVolume(v float64, from, to string) float64 {
	if v == 0 || from == to {
		return v
	}
	if from == Milliliter && to == Ounce {
		return round1(v / mlPerOz)
	}
	if from == Ounce && to == Milliliter {
		return round(v * mlPerOz)
	}
	return v
}

// ConvertWeight converts between "g" and "oz": ounces keep two decimals,
// grams keep one.
func ConvertWeight(v float64, from, to string) float64 {
	if v == 0 || from == to {
		return v
	}
	if from == Gram && to == Ounce {
		return round2(v / gPerOz)
	}
	if from == Ounce && to == Gram {
		return round1(v * gPerOz)
	}
	return v
}

// trim renders a float without trailing zeros ("60", "4.1").
func trim(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

// FormatTemp renders a stored Fahrenheit temperature in the preferred unit,
// "-" for unset values.
func FormatTemp(v float64, s models.Settings) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("%s°%s", trim(ConvertTemp(v, Fahrenheit, s.TempUnit)), s.TempUnit)
}

// FormatVolume renders a stored milliliter volume in the preferred unit.
func FormatVolume(v float64, s models.Settings) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("%s %s", trim(ConvertVolume(v, Milliliter, s.VolumeUnit)), s.VolumeUnit)
}

// FormatWeight renders a stored gram weight in the preferred unit.
func FormatWeight(v float64, s models.Settings) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("%s %s", trim(ConvertWeight(v, Gram, s.WeightUnit)), s.WeightUnit)
}
