package display

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/Nazarious-ucu/weather-display/internal/models"
)

// HourlyCards is how many forecast steps the hourly strip shows at most.
const HourlyCards = 8

const (
	placeholder = "—"
	dtTxtLayout = "2006-01-02 15:04:05"
)

type Hero struct {
	Temperature string `json:"temperature"`
	City        string `json:"city"`
	Description string `json:"description"`
	Icon        Icon   `json:"icon"`
}

type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

type HourCard struct {
	Time        string `json:"time"`
	Temperature string `json:"temperature"`
	Condition   string `json:"condition"`
	Token       Token  `json:"token"`
}

type DayRow struct {
	When        string `json:"when"`
	Temperature string `json:"temperature"`
	Condition   string `json:"condition"`
	Token       Token  `json:"token"`
}

// View is everything the screen needs, derived from one AcquisitionState.
type View struct {
	Status        models.Status `json:"status"`
	Loading       bool          `json:"loading"`
	Error         string        `json:"error,omitempty"`
	Hero          Hero          `json:"hero"`
	AirConditions []Stat        `json:"air_conditions,omitempty"`
	Hourly        []HourCard    `json:"hourly,omitempty"`
	Daily         []DayRow      `json:"daily,omitempty"`
}

func Build(st models.AcquisitionState, now time.Time) View {
	v := View{
		Status:  st.Status,
		Loading: st.Status == models.StatusLoading,
		Hero:    NewHero(st, now),
	}
	if st.Error != nil {
		v.Error = st.Error.Message
	}
	if st.Status != models.StatusReady {
		return v
	}

	v.AirConditions = AirConditions(*st.Conditions)
	for _, e := range st.Forecast.Hourly(HourlyCards) {
		v.Hourly = append(v.Hourly, HourCard{
			Time:        hourLabel(e),
			Temperature: Temperature(e.Temperature),
			Condition:   conditionText(e),
			Token:       CardToken(e.Condition),
		})
	}
	for _, e := range st.Forecast.Entries {
		v.Daily = append(v.Daily, DayRow{
			When:        entryTime(e).Format("Mon, 03:04 PM"),
			Temperature: Temperature(e.Temperature),
			Condition:   conditionText(e),
			Token:       CardToken(e.Condition),
		})
	}
	return v
}

// NewHero builds the summary block, or a placeholder when nothing is ready.
func NewHero(st models.AcquisitionState, now time.Time) Hero {
	if st.Status != models.StatusReady || st.Conditions == nil {
		return Hero{Temperature: placeholder, City: "Weather App", Description: "Loading data...", Icon: IconCloudOff}
	}
	c := st.Conditions
	var at models.Coordinate
	if st.Coordinate != nil {
		at = *st.Coordinate
	}
	return Hero{
		Temperature: Temperature(c.Temperature),
		City:        c.City,
		Description: c.Description,
		Icon:        HeroIcon(c.Condition, at, now),
	}
}

func AirConditions(c models.CurrentConditions) []Stat {
	ground := placeholder
	if c.GroundLevel != nil && *c.GroundLevel != 0 {
		ground = strconv.Itoa(*c.GroundLevel)
	}
	return []Stat{
		{Label: "Feels Like", Value: strconv.Itoa(Round(c.FeelsLike)), Unit: "°C"},
		{Label: "Humidity", Value: strconv.Itoa(c.Humidity), Unit: "%"},
		{Label: "Wind Speed", Value: strconv.FormatFloat(c.WindSpeed, 'f', -1, 64), Unit: "m/s"},
		{Label: "Pressure", Value: strconv.Itoa(c.Pressure), Unit: "hPa"},
		{Label: "Visibility", Value: strconv.FormatFloat(float64(c.Visibility)/1000, 'f', 1, 64), Unit: "km"},
		{Label: "Ground Level", Value: ground, Unit: "hPa"},
	}
}

// Round rounds half up, so -2.5 becomes -2.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func Temperature(v float64) string {
	return fmt.Sprintf("%d°C", Round(v))
}

func entryTime(e models.ForecastEntry) time.Time {
	if t, err := time.Parse(dtTxtLayout, e.Label); err == nil {
		return t
	}
	return e.Timestamp
}

func conditionText(e models.ForecastEntry) string {
	if e.Main != "" {
		return e.Main
	}
	return string(e.Condition)
}

func hourLabel(e models.ForecastEntry) string {
	h := entryTime(e).Hour()
	switch {
	case h == 0:
		return "12 AM"
	case h == 12:
		return "12 PM"
	case h > 12:
		return fmt.Sprintf("%d PM", h-12)
	default:
		return fmt.Sprintf("%d AM", h)
	}
}
