package models

import "fmt"

// Location is a shared location pin.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitempty"`
	Address   string  `json:"address,omitempty"`
	URL       string  `json:"url,omitempty"`
}

// DecodeLocation hydrates a Location from a gateway payload.
func DecodeLocation(raw map[string]any) (Location, error) {
	var loc Location
	if err := decode(raw, &loc, nil); err != nil {
		return Location{}, fmt.Errorf("decode location: %w", err)
	}
	return loc, nil
}

// GoogleMaps returns a Google Maps link to the location.
func (l Location) GoogleMaps() string {
	return fmt.Sprintf("https://www.google.com/maps?q=%s,%s", coord(l.Latitude), coord(l.Longitude))
}

// AppleMaps returns an Apple Maps link to the location.
func (l Location) AppleMaps() string {
	return fmt.Sprintf("https://maps.apple.com/?ll=%s,%s", coord(l.Latitude), coord(l.Longitude))
}

// Waze returns a Waze navigation link to the location.
func (l Location) Waze() string {
	return fmt.Sprintf("https://www.waze.com/ul?ll=%s,%s&navigate=yes", coord(l.Latitude), coord(l.Longitude))
}

func coord(v float64) string {
	return fmt.Sprintf("%g", v)
}
