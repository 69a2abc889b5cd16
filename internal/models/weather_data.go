package models

import "time"

// CurrentConditions is the normalized payload of the current-conditions endpoint.
type CurrentConditions struct {
	City        string   `json:"city"`
	Temperature float64  `json:"temperature"`
	FeelsLike   float64  `json:"feels_like"`
	Condition   Category `json:"condition"`
	Description string   `json:"description"`
	Humidity    int      `json:"humidity"`
	Pressure    int      `json:"pressure"`
	GroundLevel *int     `json:"ground_level,omitempty"`
	WindSpeed   float64  `json:"wind_speed"`
	Visibility  int      `json:"visibility"`
}

// ForecastEntry is one 3-hour step of the forecast.
type ForecastEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	Label       string    `json:"label"`
	Temperature float64   `json:"temperature"`
	Condition   Category  `json:"condition"`
	// Main is the upstream condition label as received, e.g. "Haze".
	Main string `json:"main,omitempty"`
}

type Forecast struct {
	City    string          `json:"city,omitempty"`
	Entries []ForecastEntry `json:"entries"`
}

// Hourly returns at most n leading entries. Upstream does not guarantee the list length.
func (f Forecast) Hourly(n int) []ForecastEntry {
	if n < 0 {
		n = 0
	}
	if len(f.Entries) < n {
		n = len(f.Entries)
	}
	return f.Entries[:n]
}
