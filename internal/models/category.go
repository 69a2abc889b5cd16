package models

// Category is the closed set of weather groups the display distinguishes.
type Category string

const (
	CategoryClear        Category = "Clear"
	CategoryClouds       Category = "Clouds"
	CategoryRain         Category = "Rain"
	CategoryDrizzle      Category = "Drizzle"
	CategorySnow         Category = "Snow"
	CategoryMist         Category = "Mist"
	CategoryThunderstorm Category = "Thunderstorm"
	CategoryOther        Category = "Other"
)

// ParseCategory maps an upstream "weather[].main" label onto a Category.
func ParseCategory(label string) Category {
	switch Category(label) {
	case CategoryClear, CategoryClouds, CategoryRain, CategoryDrizzle,
		CategorySnow, CategoryMist, CategoryThunderstorm:
		return Category(label)
	default:
		return CategoryOther
	}
}
