// Package campus holds the static campus geography: named circular zones,
// their fixed shuttle stops, and the building registry. The data is loaded
// once at startup and never mutated.
package campus

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dbal0503/MightyMammoths-sub000/internal/domain"
)

//go:embed campus.yaml
var defaultCampusYAML []byte

// A named circular geofence around one campus, plus its shuttle stop.
type Zone struct {
	Name        string             `yaml:"name"`
	Center      domain.Coordinates `yaml:"center"`
	RadiusM     float64            `yaml:"radius_m"`
	ShuttleStop domain.Coordinates `yaml:"shuttle_stop"`
}

// One entry of the static building registry.
type Building struct {
	Name     string             `yaml:"name"`
	Campus   string             `yaml:"campus"`
	PlaceRef string             `yaml:"place_ref"`
	Location domain.Coordinates `yaml:"location"`
}

// Registry is the immutable campus geography: the two zones and the
// building table keyed by display name.
type Registry struct {
	zones     []Zone
	buildings map[string]Building
}

type registryFile struct {
	Zones     []Zone     `yaml:"zones"`
	Buildings []Building `yaml:"buildings"`
}

// Default returns the registry built from the embedded campus data.
func Default() *Registry {
	r, err := parse(defaultCampusYAML)
	if err != nil {
		// Embedded data is validated by tests; a parse failure here is a
		// build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded campus data: %v", err))
	}
	return r
}

// Load reads a campus registry from a YAML file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load campus registry: %w", err)
	}

	r, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("load campus registry %q: %w", path, err)
	}

	return r, nil
}

func parse(data []byte) (*Registry, error) {
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse campus yaml: %w", err)
	}

	if len(f.Zones) == 0 {
		return nil, fmt.Errorf("campus yaml defines no zones")
	}

	buildings := make(map[string]Building, len(f.Buildings))
	for _, b := range f.Buildings {
		if b.Name == "" {
			return nil, fmt.Errorf("campus yaml: building with empty name")
		}

		found := false
		for _, z := range f.Zones {
			if z.Name == b.Campus {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("campus yaml: building %q references unknown campus %q", b.Name, b.Campus)
		}

		buildings[b.Name] = b
	}

	return &Registry{zones: f.Zones, buildings: buildings}, nil
}

// Classify returns the name of the first zone whose radius contains the
// point, or the empty string when the point is outside every zone. Zones are
// assumed non-overlapping.
func (r *Registry) Classify(lat, lon float64) string {
	p := domain.Coordinates{Lat: lat, Lon: lon}
	for _, z := range r.zones {
		if p.DistanceTo(z.Center) <= z.RadiusM {
			return z.Name
		}
	}
	return ""
}

// Building looks up a registry entry by its display name.
func (r *Registry) Building(name string) (Building, bool) {
	b, ok := r.buildings[name]
	return b, ok
}

// Zone looks up a zone by name.
func (r *Registry) Zone(name string) (Zone, bool) {
	for _, z := range r.zones {
		if z.Name == name {
			return z, true
		}
	}
	return Zone{}, false
}

// OtherZone returns the zone a shuttle departing from name arrives at.
// With exactly two zones this is simply the one that is not name.
func (r *Registry) OtherZone(name string) (Zone, bool) {
	for _, z := range r.zones {
		if z.Name != name {
			return z, true
		}
	}
	return Zone{}, false
}

// ZoneNames returns the zone names in declaration order.
func (r *Registry) ZoneNames() []string {
	names := make([]string, 0, len(r.zones))
	for _, z := range r.zones {
		names = append(names, z.Name)
	}
	return names
}

// BuildingNamesByCampus groups building display names per campus zone,
// the shape the plan-generation collaborator expects.
func (r *Registry) BuildingNamesByCampus() map[string][]string {
	out := make(map[string][]string, len(r.zones))
	for _, b := range r.buildings {
		out[b.Campus] = append(out[b.Campus], b.Name)
	}
	return out
}
