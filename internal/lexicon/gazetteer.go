package lexicon

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Place is a gazetteer location entry
type Place struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"` // COUNTRY, CITY, STATE, REGION
	Country  string `yaml:"country,omitempty"`
	Region   string `yaml:"region,omitempty"`
	FullName string `yaml:"full_name,omitempty"`
}

// ArmedGroup is a gazetteer entry for a known violent actor
type ArmedGroup struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"` // TERRORIST, REBEL
	Country  string `yaml:"country,omitempty"`
	Region   string `yaml:"region,omitempty"`
	FullName string `yaml:"full_name,omitempty"`
}

// Gazetteer provides read-only lookups for African locations and armed
// groups. Loaded once per process and shared across article workers.
type Gazetteer struct {
	places map[string]Place      // keyed by lowercase name
	groups map[string]ArmedGroup // keyed by lowercase name and full name
}

type gazetteerFile struct {
	Places []Place      `yaml:"places"`
	Groups []ArmedGroup `yaml:"groups"`
}

// DefaultGazetteer returns the built-in location and armed-group tables.
func DefaultGazetteer() *Gazetteer {
	g := &Gazetteer{
		places: make(map[string]Place),
		groups: make(map[string]ArmedGroup),
	}

	for _, p := range []Place{
		{Name: "Nigeria", Type: "COUNTRY", Region: "West Africa"},
		{Name: "Somalia", Type: "COUNTRY", Region: "East Africa"},
		{Name: "Mali", Type: "COUNTRY", Region: "West Africa"},
		{Name: "Kenya", Type: "COUNTRY", Region: "East Africa"},
		{Name: "Ethiopia", Type: "COUNTRY", Region: "East Africa"},
		{Name: "Sudan", Type: "COUNTRY", Region: "North Africa"},
		{Name: "South Sudan", Type: "COUNTRY", Region: "East Africa"},
		{Name: "DRC", Type: "COUNTRY", Region: "Central Africa", FullName: "Democratic Republic of Congo"},
		{Name: "Democratic Republic of Congo", Type: "COUNTRY", Region: "Central Africa"},
		{Name: "CAR", Type: "COUNTRY", Region: "Central Africa", FullName: "Central African Republic"},
		{Name: "Senegal", Type: "COUNTRY", Region: "West Africa"},
		{Name: "Mogadishu", Type: "CITY", Country: "Somalia"},
		{Name: "Nairobi", Type: "CITY", Country: "Kenya"},
		{Name: "Lagos", Type: "CITY", Country: "Nigeria"},
		{Name: "Maiduguri", Type: "CITY", Country: "Nigeria"},
		{Name: "Addis Ababa", Type: "CITY", Country: "Ethiopia"},
		{Name: "Gao", Type: "CITY", Country: "Mali"},
		{Name: "Kidal", Type: "CITY", Country: "Mali"},
		{Name: "Bamako", Type: "CITY", Country: "Mali"},
		{Name: "Beni", Type: "CITY", Country: "Democratic Republic of Congo"},
		{Name: "Dakar", Type: "CITY", Country: "Senegal"},
		{Name: "Kainama", Type: "CITY", Country: "Democratic Republic of Congo"},
		{Name: "Westlands", Type: "CITY", Country: "Kenya"},
		{Name: "Borno State", Type: "STATE", Country: "Nigeria"},
		{Name: "Adamawa State", Type: "STATE", Country: "Nigeria"},
		{Name: "Oromia", Type: "REGION", Country: "Ethiopia"},
		{Name: "Tigray", Type: "REGION", Country: "Ethiopia"},
		{Name: "North Kivu", Type: "REGION", Country: "Democratic Republic of Congo"},
		{Name: "Ituri", Type: "REGION", Country: "Democratic Republic of Congo"},
		{Name: "Lower Shabelle", Type: "REGION", Country: "Somalia"},
	} {
		g.addPlace(p)
	}

	for _, grp := range []ArmedGroup{
		{Name: "Boko Haram", Type: "TERRORIST", Region: "West Africa", Country: "Nigeria"},
		{Name: "Al-Shabaab", Type: "TERRORIST", Region: "East Africa", Country: "Somalia"},
		{Name: "AQIM", Type: "TERRORIST", Region: "North Africa", FullName: "Al-Qaeda in the Islamic Maghreb"},
		{Name: "JNIM", Type: "TERRORIST", Region: "West Africa", FullName: "Jama'at Nasr al-Islam wal Muslimin"},
		{Name: "ISIS-WA", Type: "TERRORIST", Region: "West Africa", FullName: "Islamic State West Africa Province"},
		{Name: "M23", Type: "REBEL", Region: "Central Africa", Country: "DRC"},
		{Name: "ADF", Type: "REBEL", Region: "Central Africa", FullName: "Allied Democratic Forces"},
		{Name: "LRA", Type: "REBEL", Region: "Central Africa", FullName: "Lord's Resistance Army"},
		{Name: "FDLR", Type: "REBEL", Region: "Central Africa"},
		{Name: "OLA", Type: "REBEL", Region: "East Africa", FullName: "Oromo Liberation Army"},
	} {
		g.addGroup(grp)
	}

	return g
}

// LoadGazetteer reads a YAML gazetteer file, replacing the built-in tables
// for any section the file provides.
func LoadGazetteer(path string) (*Gazetteer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gazetteer: %w", err)
	}

	var f gazetteerFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse gazetteer: %w", err)
	}

	g := DefaultGazetteer()
	if len(f.Places) > 0 {
		g.places = make(map[string]Place)
		for _, p := range f.Places {
			g.addPlace(p)
		}
	}
	if len(f.Groups) > 0 {
		g.groups = make(map[string]ArmedGroup)
		for _, grp := range f.Groups {
			g.addGroup(grp)
		}
	}
	return g, nil
}

func (g *Gazetteer) addPlace(p Place) {
	g.places[strings.ToLower(p.Name)] = p
	if p.FullName != "" {
		g.places[strings.ToLower(p.FullName)] = p
	}
}

func (g *Gazetteer) addGroup(grp ArmedGroup) {
	g.groups[strings.ToLower(grp.Name)] = grp
	if grp.FullName != "" {
		g.groups[strings.ToLower(grp.FullName)] = grp
	}
}

// LookupPlace resolves a location name to its gazetteer entry.
func (g *Gazetteer) LookupPlace(name string) (Place, bool) {
	p, ok := g.places[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// LookupGroup resolves an actor name to its armed-group entry.
func (g *Gazetteer) LookupGroup(name string) (ArmedGroup, bool) {
	grp, ok := g.groups[strings.ToLower(strings.TrimSpace(name))]
	return grp, ok
}

// FindGroupIn scans free text for any known armed group and returns the
// first match in text order.
func (g *Gazetteer) FindGroupIn(text string) (ArmedGroup, bool) {
	lower := strings.ToLower(text)
	best := -1
	var found ArmedGroup
	for key, grp := range g.groups {
		if idx := strings.Index(lower, key); idx >= 0 {
			if best < 0 || idx < best {
				best = idx
				found = grp
			}
		}
	}
	return found, best >= 0
}

// FindPlaceIn scans free text for any known location and returns the first
// match in text order.
func (g *Gazetteer) FindPlaceIn(text string) (Place, bool) {
	lower := strings.ToLower(text)
	best := -1
	var found Place
	for key, p := range g.places {
		if idx := strings.Index(lower, key); idx >= 0 {
			if best < 0 || idx < best {
				best = idx
				found = p
			}
		}
	}
	return found, best >= 0
}
