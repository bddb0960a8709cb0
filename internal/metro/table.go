package metro

import (
	"sort"
	"strings"

	"github.com/twpayne/go-geom"
)

// definitions is the static metro boundary table. Bounding boxes are
// deliberately coarse; county membership disambiguates boundary cases.
// Changing this table changes scoring semantics and goes through the same
// review as algorithm changes.
var definitions = []Definition{
	{
		Name: "Miami", State: "FL",
		North: 26.7, South: 25.1, East: -79.9, West: -80.9,
		Counties: []string{"Miami-Dade", "Broward", "Palm Beach"},
	},
	{
		Name: "Orlando", State: "FL",
		North: 29.1, South: 28.0, East: -80.9, West: -81.9,
		Counties: []string{"Orange", "Seminole", "Osceola", "Lake"},
	},
	{
		Name: "Tampa", State: "FL",
		North: 28.6, South: 27.5, East: -82.0, West: -83.0,
		Counties: []string{"Hillsborough", "Pinellas", "Pasco", "Hernando"},
	},
	{
		Name: "Jacksonville", State: "FL",
		North: 30.7, South: 29.9, East: -81.2, West: -82.1,
		Counties: []string{"Duval", "Clay", "St. Johns", "Nassau"},
	},
	{
		Name: "Houston", State: "TX",
		North: 30.4, South: 29.2, East: -94.8, West: -96.1,
		Counties: []string{"Harris", "Fort Bend", "Montgomery", "Galveston", "Brazoria"},
	},
	{
		Name: "Dallas-Fort Worth", State: "TX",
		North: 33.4, South: 32.3, East: -96.2, West: -97.7,
		Counties: []string{"Dallas", "Tarrant", "Collin", "Denton", "Rockwall", "Ellis"},
	},
	{
		Name: "Austin", State: "TX",
		North: 30.9, South: 29.8, East: -97.2, West: -98.3,
		Counties: []string{"Travis", "Williamson", "Hays", "Bastrop"},
	},
	{
		Name: "San Antonio", State: "TX",
		North: 29.9, South: 29.0, East: -98.0, West: -99.0,
		Counties: []string{"Bexar", "Comal", "Guadalupe"},
	},
	{
		Name: "Atlanta", State: "GA",
		North: 34.4, South: 33.2, East: -83.9, West: -85.0,
		Counties: []string{"Fulton", "DeKalb", "Cobb", "Gwinnett", "Clayton"},
	},
	{
		Name: "Phoenix", State: "AZ",
		North: 34.0, South: 32.9, East: -111.3, West: -112.9,
		Counties: []string{"Maricopa", "Pinal"},
	},
	{
		Name: "Philadelphia", State: "PA",
		North: 40.4, South: 39.7, East: -74.8, West: -75.7,
		Counties: []string{"Philadelphia", "Montgomery", "Bucks", "Delaware", "Chester"},
	},
	{
		Name: "Pittsburgh", State: "PA",
		North: 40.8, South: 40.1, East: -79.5, West: -80.5,
		Counties: []string{"Allegheny", "Westmoreland", "Washington", "Butler", "Beaver"},
	},
	{
		Name: "Nashville", State: "TN",
		North: 36.6, South: 35.8, East: -86.2, West: -87.3,
		Counties: []string{"Davidson", "Williamson", "Rutherford", "Sumner", "Wilson"},
	},
	{
		Name: "Memphis", State: "TN",
		North: 35.4, South: 34.9, East: -89.4, West: -90.3,
		Counties: []string{"Shelby", "Tipton", "Fayette"},
	},
	{
		Name: "Birmingham", State: "AL",
		North: 33.9, South: 33.1, East: -86.3, West: -87.3,
		Counties: []string{"Jefferson", "Shelby", "St. Clair"},
	},
	{
		Name: "Las Vegas", State: "NV",
		North: 36.5, South: 35.8, East: -114.7, West: -115.7,
		Counties: []string{"Clark"},
	},
}

// byState indexes definitions per state, sorted by metro name so scan
// order is deterministic rather than incidental.
var byState map[string][]*Definition

func init() {
	byState = make(map[string][]*Definition)
	for i := range definitions {
		d := &definitions[i]
		d.bounds = geom.NewBounds(geom.XY).Set(d.West, d.South, d.East, d.North)
		d.counties = make(map[string]struct{}, len(d.Counties))
		for _, c := range d.Counties {
			d.counties[NormalizeCounty(c)] = struct{}{}
		}
		byState[d.State] = append(byState[d.State], d)
	}
	for _, ds := range byState {
		sort.Slice(ds, func(i, j int) bool { return ds[i].Name < ds[j].Name })
	}
}

// candidates returns the metros defined for a state, sorted by name.
// State codes arrive in whatever case the upstream record used.
func candidates(state string) []*Definition {
	return byState[strings.ToUpper(strings.TrimSpace(state))]
}

// List returns every metro definition, sorted by state then name.
func List() []Definition {
	out := make([]Definition, 0, len(definitions))
	for _, state := range States() {
		for _, d := range byState[state] {
			out = append(out, Definition{
				Name:     d.Name,
				State:    d.State,
				North:    d.North,
				South:    d.South,
				East:     d.East,
				West:     d.West,
				Counties: d.Counties,
			})
		}
	}
	return out
}

// States returns every state that has at least one metro defined.
func States() []string {
	out := make([]string, 0, len(byState))
	for s := range byState {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
