package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Earth radius used for great-circle distances, in meters.
const earthRadiusM = 6371000.0

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Return the "lat,lon" form accepted by the directions provider.
func (c Coordinates) Query() string {
	return strconv.FormatFloat(c.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(c.Lon, 'f', 6, 64)
}

// DistanceTo returns the haversine great-circle distance to other, in meters.
func (c Coordinates) DistanceTo(other Coordinates) float64 {
	lat1 := c.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - c.Lat) * math.Pi / 180
	dLon := (other.Lon - c.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	cc := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * cc
}

// ParseCoordinates parses a raw "latitude,longitude" pair.
func ParseCoordinates(s string) (Coordinates, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return Coordinates{}, fmt.Errorf("parse coordinates: %q is not a lat,lon pair", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("parse coordinates: latitude in %q: %w", s, err)
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("parse coordinates: longitude in %q: %w", s, err)
	}

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Coordinates{}, fmt.Errorf("parse coordinates: %q out of range", s)
	}

	return Coordinates{Lat: lat, Lon: lon}, nil
}
