// Package fairscore aggregates per-indicator FAIR evaluation results into
// per-principle and overall scores.
package fairscore

// Principles is the fixed set of FAIR principles, in display order.
var Principles = []string{"findable", "accessible", "interoperable", "reusable"}

// CSS colors for the three score bands.
const (
	ColorGreen  = "#2ECC71"
	ColorYellow = "#F4D03F"
	ColorRed    = "#E74C3C"
)

// ColorFor maps a score to its band color. Both thresholds are inclusive:
// >=75 green, >=50 yellow, else red.
func ColorFor(points float64) string {
	switch {
	case points >= 75:
		return ColorGreen
	case points >= 50:
		return ColorYellow
	default:
		return ColorRed
	}
}

// Indicator is one evaluated sub-criterion within a principle.
type Indicator struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Points     float64  `json:"points"`
	Weight     float64  `json:"weight"`
	MaxPoints  float64  `json:"max_points,omitempty"`
	Color      string   `json:"color"`
	TestStatus string   `json:"test_status"`
	Messages   []string `json:"msg"`
}

// Principle carries the weighted-average result for one FAIR principle and
// the indicators that produced it.
type Principle struct {
	Name       string      `json:"name"`
	Points     float64     `json:"points"`
	Color      string      `json:"color"`
	MaxPoints  float64     `json:"max_points,omitempty"`
	Indicators []Indicator `json:"indicators"`

	weightedSum float64
	weightSum   float64
}

// Summary is the full aggregation output: the four principles plus the
// overall FAIR score.
type Summary struct {
	Principles []Principle `json:"principles"`
	Points     float64     `json:"points"`
	Color      string      `json:"color"`
}

// Principle returns the aggregate for the named principle, or a zero-valued
// red aggregate if the name is unknown.
func (s Summary) Principle(name string) Principle {
	for _, p := range s.Principles {
		if p.Name == name {
			return p
		}
	}
	return Principle{Name: name, Color: ColorRed}
}
