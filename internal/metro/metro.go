// Package metro classifies a coordinate/county pair into a named
// metropolitan market. Detection is best-effort enrichment: every input,
// including absent coordinates and unknown states, maps to a defined
// "no match" result rather than an error.
package metro

import (
	"math"
	"strings"

	"github.com/twpayne/go-geom"

	"github.com/deedscope/research-cli/internal/model"
)

const earthRadiusKM = 6371.0

// Definition describes one metropolitan market: its bounding box and the
// counties that belong to it. The table is loaded once at process start
// and read-only afterward.
type Definition struct {
	Name     string
	State    string
	North    float64
	South    float64
	East     float64
	West     float64
	Counties []string

	bounds   *geom.Bounds
	counties map[string]struct{}
}

func (d *Definition) contains(c model.Coordinate) bool {
	return d.bounds.OverlapsPoint(geom.XY, geom.Coord{c.Lng, c.Lat})
}

func (d *Definition) hasCounty(normalized string) bool {
	_, ok := d.counties[normalized]
	return ok
}

// NormalizeCounty canonicalizes a county name for matching: lower-case,
// trailing "county" token stripped, hyphens removed.
func NormalizeCounty(county string) string {
	s := strings.ToLower(strings.TrimSpace(county))
	s = strings.TrimSuffix(s, " county")
	s = strings.ReplaceAll(s, "-", "")
	return strings.TrimSpace(s)
}

// Detect returns the metro name for the given location, or "" when no metro
// is defined for the state or nothing matches.
//
// Candidates are restricted to the property's state and scanned in sorted
// name order. A bounding-box hit whose county list also contains the
// supplied county is accepted immediately. A bounding-box hit that
// disagrees with the supplied county is an ambiguous boundary case: the
// scan continues looking for a candidate where both agree, falling back to
// the first box hit when none exists. With no coordinate match at all,
// exact normalized county matching decides.
func Detect(coords *model.Coordinate, county, state string) string {
	cands := candidates(state)
	if len(cands) == 0 {
		return ""
	}

	normCounty := NormalizeCounty(county)

	var boxHit string
	if coords != nil && coords.Valid() {
		for _, d := range cands {
			if !d.contains(*coords) {
				continue
			}
			if normCounty == "" || d.hasCounty(normCounty) {
				return d.Name
			}
			if boxHit == "" {
				boxHit = d.Name
			}
		}
	}
	if boxHit != "" {
		return boxHit
	}

	if normCounty != "" {
		for _, d := range cands {
			if d.hasCounty(normCounty) {
				return d.Name
			}
		}
	}
	return ""
}

// FindNearest returns the closest metro in the state by great-circle
// distance from the coordinate to each candidate's bounding-box center.
// Informational only; never used for weight resolution.
func FindNearest(coords model.Coordinate, state string) (name string, distanceKM float64, ok bool) {
	if !coords.Valid() {
		return "", 0, false
	}
	best := math.MaxFloat64
	for _, d := range candidates(state) {
		center := model.Coordinate{
			Lat: (d.North + d.South) / 2,
			Lng: (d.East + d.West) / 2,
		}
		km := haversineKM(coords, center)
		if km < best {
			best = km
			name = d.Name
		}
	}
	if name == "" {
		return "", 0, false
	}
	return name, best, true
}

// haversineKM computes great-circle distance between two coordinates.
func haversineKM(a, b model.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lon1 := a.Lng * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	lon2 := b.Lng * math.Pi / 180

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	hSin := math.Sin(dLat / 2)
	hSin *= hSin
	vSin := math.Sin(dLon / 2)
	vSin *= vSin

	h := hSin + math.Cos(lat1)*math.Cos(lat2)*vSin
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
}
