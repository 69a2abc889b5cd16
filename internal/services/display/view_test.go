package display_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/weather-display/internal/models"
	"github.com/Nazarious-ucu/weather-display/internal/services/display"
)

var (
	delhi      = models.Coordinate{Latitude: 28.5, Longitude: 77.2}
	delhiNoon  = time.Date(2024, 1, 1, 6, 30, 0, 0, time.UTC)
	delhiNight = time.Date(2024, 1, 1, 18, 30, 0, 0, time.UTC)
)

func readyState(entries int) models.AcquisitionState {
	ground := 985
	fc := models.Forecast{}
	for i := 0; i < entries; i++ {
		ts := time.Date(2024, 1, 1, 3+3*i, 0, 0, 0, time.UTC)
		fc.Entries = append(fc.Entries, models.ForecastEntry{
			Timestamp:   ts,
			Label:       ts.Format("2006-01-02 15:04:05"),
			Temperature: 22.1,
			Condition:   models.CategoryClouds,
		})
	}
	return models.Ready(1, delhi, models.CurrentConditions{
		City:        "Delhi",
		Temperature: 25.4,
		FeelsLike:   24.5,
		Condition:   models.CategoryClear,
		Description: "clear sky",
		Humidity:    40,
		Pressure:    1009,
		GroundLevel: &ground,
		WindSpeed:   3.6,
		Visibility:  6000,
	}, fc)
}

func TestBuild_Ready(t *testing.T) {
	v := display.Build(readyState(1), delhiNoon)

	assert.Equal(t, models.StatusReady, v.Status)
	assert.False(t, v.Loading)
	assert.Empty(t, v.Error)
	assert.Equal(t, display.Hero{
		Temperature: "25°C",
		City:        "Delhi",
		Description: "clear sky",
		Icon:        display.IconSun,
	}, v.Hero)

	require.Len(t, v.Hourly, 1)
	assert.Equal(t, "22°C", v.Hourly[0].Temperature)
	assert.Equal(t, "Clouds", v.Hourly[0].Condition)
	assert.Equal(t, "3 AM", v.Hourly[0].Time)
	require.Len(t, v.Daily, 1)
	assert.Equal(t, "Mon, 03:00 AM", v.Daily[0].When)
}

func TestBuild_CardsShowUpstreamLabel(t *testing.T) {
	st := readyState(1)
	st.Forecast.Entries[0].Condition = models.CategoryOther
	st.Forecast.Entries[0].Main = "Haze"

	v := display.Build(st, delhiNoon)

	require.Len(t, v.Hourly, 1)
	assert.Equal(t, "Haze", v.Hourly[0].Condition)
	assert.Equal(t, display.CardToken(models.CategoryOther), v.Hourly[0].Token)
	require.Len(t, v.Daily, 1)
	assert.Equal(t, "Haze", v.Daily[0].Condition)
}

func TestBuild_HourlyCapsAtEight(t *testing.T) {
	v := display.Build(readyState(12), delhiNoon)
	assert.Len(t, v.Hourly, display.HourlyCards)
	assert.Len(t, v.Daily, 12)
}

func TestBuild_HourlyToleratesShortForecast(t *testing.T) {
	v := display.Build(readyState(0), delhiNoon)
	assert.Empty(t, v.Hourly)
	assert.Empty(t, v.Daily)
}

func TestBuild_ErrorShowsNoWeather(t *testing.T) {
	st := models.Failed(2, &delhi, "transport", "Network error. Could not connect to service.")
	v := display.Build(st, delhiNoon)

	assert.Equal(t, "Network error. Could not connect to service.", v.Error)
	assert.Equal(t, display.IconCloudOff, v.Hero.Icon)
	assert.Equal(t, "—", v.Hero.Temperature)
	assert.Nil(t, v.AirConditions)
	assert.Nil(t, v.Hourly)
}

func TestBuild_Loading(t *testing.T) {
	v := display.Build(models.Loading(3, delhi), delhiNoon)
	assert.True(t, v.Loading)
	assert.Equal(t, "Weather App", v.Hero.City)
	assert.Equal(t, "Loading data...", v.Hero.Description)
}

func TestHeroIcon_NightVariant(t *testing.T) {
	assert.Equal(t, display.IconSun, display.HeroIcon(models.CategoryClear, delhi, delhiNoon))
	assert.Equal(t, display.IconMoon, display.HeroIcon(models.CategoryClear, delhi, delhiNight))
	assert.Equal(t, display.IconCloudRain, display.HeroIcon(models.CategoryRain, delhi, delhiNight))
	assert.Equal(t, display.IconCloudSun, display.HeroIcon(models.CategoryClouds, delhi, delhiNoon))
	assert.Equal(t, display.IconCloud, display.HeroIcon(models.CategorySnow, delhi, delhiNoon))
}

func TestCardToken_IsTotal(t *testing.T) {
	assert.Equal(t, display.IconSun, display.CardToken(models.CategoryClear).Icon)
	assert.Equal(t, display.IconCloudSnow, display.CardToken(models.CategorySnow).Icon)
	assert.Equal(t, display.IconCloud, display.CardToken(models.CategoryClouds).Icon)
	assert.Equal(t, display.IconCloudRain, display.CardToken(models.CategoryRain).Icon)
	assert.Equal(t, display.IconCloudDrizzle, display.CardToken(models.CategoryDrizzle).Icon)
	assert.Equal(t, "#A0A0A0", display.CardToken(models.CategoryMist).Color)
	assert.Equal(t, display.IconCloudSun, display.CardToken(models.CategoryThunderstorm).Icon)
	assert.Equal(t, display.IconCloudSun, display.CardToken(models.ParseCategory("Tornado")).Icon)
}

func TestAirConditions(t *testing.T) {
	stats := display.AirConditions(*readyState(0).Conditions)

	want := map[string]string{
		"Feels Like":   "25",
		"Humidity":     "40",
		"Wind Speed":   "3.6",
		"Pressure":     "1009",
		"Visibility":   "6.0",
		"Ground Level": "985",
	}
	require.Len(t, stats, len(want))
	for _, s := range stats {
		assert.Equal(t, want[s.Label], s.Value, s.Label)
	}
}

func TestAirConditions_MissingGroundLevel(t *testing.T) {
	stats := display.AirConditions(models.CurrentConditions{})
	assert.Equal(t, "—", stats[len(stats)-1].Value)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 25, display.Round(25.4))
	assert.Equal(t, 26, display.Round(25.5))
	assert.Equal(t, -2, display.Round(-2.5))
	assert.Equal(t, "22°C", display.Temperature(22.1))
}
