package services

import (
	"encoding/json"
	"fmt"
	"os"

	"parcelhub/internal/pkg/errs"
)

// RouteGraph is a directed distance lookup between branches, loaded from
// configuration data rather than inline code. Distances are not assumed
// symmetric: B001 -> B003 and B003 -> B001 are independent entries.
//
// The graph is immutable after construction and safe for concurrent reads.
type RouteGraph struct {
	distances map[string]map[string]float64
}

// NewRouteGraph builds a route graph from a from -> to -> km table.
func NewRouteGraph(distances map[string]map[string]float64) *RouteGraph {
	return &RouteGraph{distances: distances}
}

// LoadRouteGraph reads the distance table from a JSON file of the form
//
//	{"B001": {"B002": 42.0, "B003": 115.5}, ...}
func LoadRouteGraph(path string) (*RouteGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read route table: %w", err)
	}

	var distances map[string]map[string]float64
	if err := json.Unmarshal(data, &distances); err != nil {
		return nil, fmt.Errorf("parse route table: %w", err)
	}

	return NewRouteGraph(distances), nil
}

// Distance returns the directed distance in kilometers between two branches.
// A same-branch pair is 0 km; an undefined pair is a RouteNotFoundError, a
// configuration fault that is surfaced and never retried.
func (g *RouteGraph) Distance(fromCode, toCode string) (float64, error) {
	if fromCode == "" || toCode == "" {
		return 0, errs.NewValueIsRequiredError("branch code")
	}
	if fromCode == toCode {
		return 0, nil
	}

	if destinations, ok := g.distances[fromCode]; ok {
		if km, ok := destinations[toCode]; ok {
			return km, nil
		}
	}
	return 0, errs.NewRouteNotFoundError(fromCode, toCode)
}

// HasBranch reports whether any route starts or ends at the branch.
func (g *RouteGraph) HasBranch(code string) bool {
	if _, ok := g.distances[code]; ok {
		return true
	}
	for _, destinations := range g.distances {
		if _, ok := destinations[code]; ok {
			return true
		}
	}
	return false
}
