package models

import "fmt"

const (
	// WideRegionDelta is the span shown before any location has been narrowed down.
	WideRegionDelta = 5.0
	// NarrowRegionDelta is the span used around a tapped or fetched point.
	NarrowRegionDelta = 0.5
)

// Coordinate is a latitude/longitude pair. Values are not range-checked here.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Latitude, c.Longitude)
}

// MapRegion is the viewport of the map picker.
type MapRegion struct {
	Center         Coordinate `json:"center"`
	LatitudeDelta  float64    `json:"latitude_delta"`
	LongitudeDelta float64    `json:"longitude_delta"`
}

func NewMapRegion(center Coordinate, delta float64) MapRegion {
	return MapRegion{Center: center, LatitudeDelta: delta, LongitudeDelta: delta}
}
