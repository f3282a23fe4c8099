package fairscore

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// resultKey marks the group-metadata entry of a principle. It carries the
// principle's maximum, not an indicator, and is excluded from the sums.
const resultKey = "result"

// Aggregate computes per-principle weighted averages and the overall FAIR
// score from a decoded evaluation document. It is total over any input:
// missing principles, non-object indicator entries and malformed fields all
// degrade to zero contributions rather than failing, so a single broken
// indicator never aborts rendering of the rest of the evaluation.
func Aggregate(doc map[string]any) Summary {
	var summary Summary
	var totalWeighted, totalWeight float64

	for _, name := range Principles {
		p := aggregatePrinciple(name, doc[name])
		totalWeighted += p.weightedSum
		totalWeight += p.weightSum
		summary.Principles = append(summary.Principles, p)
	}

	if totalWeight > 0 {
		summary.Points = round2(totalWeighted / totalWeight)
	}
	summary.Color = ColorFor(summary.Points)
	return summary
}

func aggregatePrinciple(name string, group any) Principle {
	p := Principle{Name: name}

	items, _ := group.(map[string]any)
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	// Source order is not significant; sort for deterministic output.
	sort.Strings(ids)

	for _, id := range ids {
		entry, ok := items[id].(map[string]any)
		if !ok {
			continue
		}
		if id == resultKey {
			p.MaxPoints = toFloat(entry["max_points"])
			continue
		}

		ind := Indicator{
			ID:         id,
			Name:       stringField(entry, "name", id),
			Points:     toFloat(entry["points"]),
			Weight:     nestedWeight(entry),
			MaxPoints:  maxPoints(entry),
			TestStatus: stringField(entry, "test_status", ""),
			Messages:   normalizeMessages(entry["msg"]),
		}
		if c, ok := entry["color"].(string); ok && c != "" {
			ind.Color = c
		} else {
			ind.Color = ColorFor(ind.Points)
		}

		p.weightedSum += ind.Points * ind.Weight
		p.weightSum += ind.Weight
		p.Indicators = append(p.Indicators, ind)
	}

	if p.weightSum > 0 {
		p.Points = round2(p.weightedSum / p.weightSum)
	}
	p.Color = ColorFor(p.Points)
	return p
}

// nestedWeight extracts score.weight, defaulting to 0.
func nestedWeight(entry map[string]any) float64 {
	score, _ := entry["score"].(map[string]any)
	return toFloat(score["weight"])
}

// maxPoints prefers a top-level max_points, then result.max_points.
func maxPoints(entry map[string]any) float64 {
	if v := toFloat(entry["max_points"]); v > 0 {
		return v
	}
	res, _ := entry["result"].(map[string]any)
	return toFloat(res["max_points"])
}

func stringField(entry map[string]any, key, fallback string) string {
	if s, ok := entry[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

// normalizeMessages flattens the msg field into plain strings. The API emits
// either a list of objects with a "message" field, a raw list of strings, or
// a bare scalar.
func normalizeMessages(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			switch m := item.(type) {
			case map[string]any:
				if s, ok := m["message"].(string); ok {
					out = append(out, s)
				} else {
					out = append(out, "")
				}
			case string:
				out = append(out, m)
			default:
				out = append(out, fmt.Sprint(m))
			}
		}
		return out
	default:
		return []string{fmt.Sprint(v)}
	}
}

// toFloat coerces a decoded JSON value to float64, returning 0 for anything
// missing or non-numeric.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
	}
	return 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
