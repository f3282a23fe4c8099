package web

import (
	"strings"

	"github.com/IFCA-Advanced-Computing/fair-eva-web-client/internal/fairscore"
)

// page carries the fields every template needs for the shared chrome.
type page struct {
	Title     string
	LogoURL   string
	LogoImage string
}

type indexView struct {
	page
	Plugins   []pluginOption
	FormError string
}

type pluginOption struct {
	ID    string
	Label string
}

type errorView struct {
	page
	Message string
}

type evalView struct {
	page
	ResourceID   string
	PluginName   string
	EvaluationID string
	GeneratedAt  string
	FAIRPoints   float64
	FAIRColor    string
	Areas        []areaView
}

// areaView is the by-area summary plus the flattened indicator list for one
// FAIR principle.
type areaView struct {
	Name       string
	Score      int
	Max        int
	Points     float64
	Color      string
	Indicators []indicatorView
}

type indicatorView struct {
	ID             string
	Title          string
	Description    string
	Score          float64
	MaxScore       int
	Priority       string
	Logs           []string
	Recommendation string
}

// buildAreas reshapes aggregator output for template consumption. No
// computation happens here beyond field renaming and the max-score
// inference.
func buildAreas(summary fairscore.Summary) []areaView {
	areas := make([]areaView, 0, len(summary.Principles))
	for _, p := range summary.Principles {
		area := areaView{
			Name:   capitalize(p.Name),
			Score:  int(p.Points),
			Max:    maxScore(p),
			Points: p.Points,
			Color:  p.Color,
		}
		for _, ind := range p.Indicators {
			area.Indicators = append(area.Indicators, indicatorView{
				ID:          ind.ID,
				Title:       ind.Name,
				Description: ind.Name,
				Score:       ind.Points,
				MaxScore:    100,
				// TODO: surface real priorities and recommendations once the
				// API exposes them; placeholders until then.
				Priority:       "essential",
				Logs:           ind.Messages,
				Recommendation: "",
			})
		}
		areas = append(areas, area)
	}
	return areas
}

// maxScore infers the maximum attainable points for a principle: an explicit
// group maximum wins, then the sum of per-indicator maxima (1 each when
// absent), then 100.
func maxScore(p fairscore.Principle) int {
	if p.MaxPoints > 0 {
		return int(p.MaxPoints)
	}
	if len(p.Indicators) == 0 {
		return 100
	}
	total := 0
	for _, ind := range p.Indicators {
		if ind.MaxPoints > 0 {
			total += int(ind.MaxPoints)
		} else {
			total++
		}
	}
	if total == 0 {
		return 100
	}
	return total
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
