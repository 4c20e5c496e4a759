package models

import "encoding/json"

// WeatherReport is the payload returned for a successful city lookup.
// Current conditions are passed through from the provider untouched.
type WeatherReport struct {
	City    string          `json:"city" example:"London"`
	Country string          `json:"country" example:"United Kingdom"`
	Current json.RawMessage `json:"current" swaggertype:"object"`
	Hourly  HourlySeries    `json:"hourly"`
}

// Forecast is the provider payload for one coordinate pair: the raw current
// conditions block plus the full-length hourly series.
type Forecast struct {
	Current json.RawMessage
	Hourly  HourlySeries
}

// HourlySeries holds three parallel arrays, one entry per forecast hour.
type HourlySeries struct {
	Time        []string  `json:"time"`
	Temperature []float64 `json:"temperature"`
	WeatherCode []int     `json:"weather_code"`
}

// Truncate cuts each array down to at most n leading entries. Arrays shorter
// than n are returned as-is, without padding.
func (h HourlySeries) Truncate(n int) HourlySeries {
	out := HourlySeries{
		Time:        h.Time,
		Temperature: h.Temperature,
		WeatherCode: h.WeatherCode,
	}
	if len(out.Time) > n {
		out.Time = out.Time[:n]
	}
	if len(out.Temperature) > n {
		out.Temperature = out.Temperature[:n]
	}
	if len(out.WeatherCode) > n {
		out.WeatherCode = out.WeatherCode[:n]
	}
	return out
}
