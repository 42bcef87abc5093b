// Package weight defines the numeric constraint edge weights must satisfy
// throughout hexgraph, plus the two concrete weight types the importer and
// tests use.
package weight

// Value is the constraint every edge/path weight type must satisfy: totally
// ordered, additive, and comparable for use as a map/set element. Go has no
// operator overloading, so Add and Less stand in for the Rust original's
// `+` and `Ord`; the zero value (always valid for these types) stands in for
// its `Zero` trait, obtained with `var zero W` rather than a method.
type Value[W any] interface {
	comparable
	Add(other W) W
	Less(other W) bool
}

// Millimeters is a distance-based weight, the same unit the teacher's OSM
// importer already produces (pkg/osm/parser.go's RawEdge.Weight).
type Millimeters uint64

func (m Millimeters) Add(other Millimeters) Millimeters { return m + other }
func (m Millimeters) Less(other Millimeters) bool        { return m < other }

// TravelCost is a composite weight: travel time primary, a secondary
// integer penalty (e.g. turn restrictions, road-class preference) used only
// to break ties between otherwise-equal-time routes. Ordered lexicographically
// on (TimeSeconds, Penalty).
type TravelCost struct {
	TimeSeconds uint32
	Penalty     uint16
}

func (c TravelCost) Add(other TravelCost) TravelCost {
	return TravelCost{
		TimeSeconds: c.TimeSeconds + other.TimeSeconds,
		Penalty:     c.Penalty + other.Penalty,
	}
}

func (c TravelCost) Less(other TravelCost) bool {
	if c.TimeSeconds != other.TimeSeconds {
		return c.TimeSeconds < other.TimeSeconds
	}
	return c.Penalty < other.Penalty
}
