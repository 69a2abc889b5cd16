package display

import (
	"time"

	"github.com/sixdouglas/suncalc"

	"github.com/Nazarious-ucu/weather-display/internal/models"
)

type Icon string

const (
	IconSun          Icon = "sun"
	IconMoon         Icon = "moon"
	IconCloud        Icon = "cloud"
	IconCloudSun     Icon = "cloud-sun"
	IconCloudRain    Icon = "cloud-rain"
	IconCloudSnow    Icon = "cloud-snow"
	IconCloudDrizzle Icon = "cloud-drizzle"
	IconCloudOff     Icon = "cloud-off"
)

// Token is an icon plus the tint it is drawn with.
type Token struct {
	Icon  Icon   `json:"icon"`
	Color string `json:"color"`
}

// CardToken is used for forecast cards and rows.
func CardToken(c models.Category) Token {
	switch c {
	case models.CategoryClear:
		return Token{Icon: IconSun, Color: "#FFD700"}
	case models.CategorySnow:
		return Token{Icon: IconCloudSnow, Color: "#B0E0E6"}
	case models.CategoryClouds:
		return Token{Icon: IconCloud, Color: "#90A4AE"}
	case models.CategoryRain:
		return Token{Icon: IconCloudRain, Color: "#4F8EF7"}
	case models.CategoryDrizzle:
		return Token{Icon: IconCloudDrizzle, Color: "#4F8EF7"}
	case models.CategoryMist:
		return Token{Icon: IconCloudDrizzle, Color: "#A0A0A0"}
	default:
		return Token{Icon: IconCloudSun, Color: "#FFD700"}
	}
}

// HeroIcon picks the large summary icon. A clear sky after sunset shows the moon.
func HeroIcon(c models.Category, at models.Coordinate, now time.Time) Icon {
	switch c {
	case models.CategoryClear:
		if !isDaylight(at, now) {
			return IconMoon
		}
		return IconSun
	case models.CategoryRain:
		return IconCloudRain
	case models.CategoryClouds:
		return IconCloudSun
	default:
		return IconCloud
	}
}

func isDaylight(at models.Coordinate, now time.Time) bool {
	pos := suncalc.GetPosition(now, at.Latitude, at.Longitude)
	return pos.Altitude > 0
}
