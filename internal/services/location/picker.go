package location

import (
	"sync"

	"github.com/Nazarious-ucu/weather-display/internal/models"
)

// PickerView is a snapshot of the map picker for rendering.
type PickerView struct {
	Visible   bool               `json:"visible"`
	Region    models.MapRegion   `json:"region"`
	Selection *models.Coordinate `json:"selection,omitempty"`
}

// Picker holds the map viewport and the pending, unconfirmed selection.
type Picker struct {
	mu        sync.Mutex
	visible   bool
	region    models.MapRegion
	selection *models.Coordinate
}

func NewPicker(center models.Coordinate) *Picker {
	return &Picker{region: models.NewMapRegion(center, models.WideRegionDelta)}
}

// Toggle shows or hides the map. Hiding it discards the pending selection.
func (p *Picker) Toggle() PickerView {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.visible = !p.visible
	if !p.visible {
		p.selection = nil
	}
	return p.viewLocked()
}

// Tap records a pending selection and narrows the viewport around it.
func (p *Picker) Tap(c models.Coordinate) PickerView {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.selection = &c
	p.region = models.NewMapRegion(c, models.NarrowRegionDelta)
	return p.viewLocked()
}

// Take removes and returns the pending selection, hiding the map.
func (p *Picker) Take() (models.Coordinate, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.selection == nil {
		return models.Coordinate{}, false
	}
	c := *p.selection
	p.selection = nil
	p.visible = false
	return c, true
}

func (p *Picker) Recenter(c models.Coordinate, delta float64) models.MapRegion {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.region = models.NewMapRegion(c, delta)
	return p.region
}

func (p *Picker) Region() models.MapRegion {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.region
}

func (p *Picker) View() PickerView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewLocked()
}

func (p *Picker) viewLocked() PickerView {
	v := PickerView{Visible: p.visible, Region: p.region}
	if p.selection != nil {
		sel := *p.selection
		v.Selection = &sel
	}
	return v
}
