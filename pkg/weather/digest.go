package weather

import (
	"fmt"
	"math"
	"strings"
)

// Digest turns a forecast into the textual evidence handed to the proposal
// model: current condition, then one line per day with min/max temperature,
// condition label, precipitation and a frost flag when the minimum is <= 0°C.
// The engine itself never decides watering from this; it only assembles it.
func Digest(f *Forecast) string {
	if f == nil {
		return "Weather data unavailable."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Current weather: %.0f°C, %s.",
		f.Current.Temperature, ConditionLabel(f.Current.WeatherCode))

	d := f.Daily
	if len(d.Time) == 0 {
		return b.String()
	}
	b.WriteString("\n\n7-day forecast:")
	for i := range d.Time {
		minT := math.Round(at(d.TemperatureMin, i))
		maxT := math.Round(at(d.TemperatureMax, i))
		frost := ""
		if minT <= 0 {
			frost = " FROST RISK"
		}
		code := 0
		if i < len(d.WeatherCode) {
			code = d.WeatherCode[i]
		}
		fmt.Fprintf(&b, "\n- %s: %.0f°C / %.0f°C, %s, %.1fmm rain%s",
			d.Time[i], minT, maxT, ConditionLabel(code), at(d.PrecipitationSum, i), frost)
	}
	return b.String()
}

// FrostRisk reports whether any forecast day dips to 0°C or below.
func FrostRisk(f *Forecast) bool {
	if f == nil {
		return false
	}
	for _, t := range f.Daily.TemperatureMin {
		if math.Round(t) <= 0 {
			return true
		}
	}
	return false
}

// DroughtRisk reports a dry week: no meaningful precipitation on any day.
func DroughtRisk(f *Forecast) bool {
	if f == nil || len(f.Daily.Time) == 0 {
		return false
	}
	total := 0.0
	for _, p := range f.Daily.PrecipitationSum {
		total += p
	}
	return total < 1.0
}

func at(xs []float64, i int) float64 {
	if i < len(xs) {
		return xs[i]
	}
	return 0
}
