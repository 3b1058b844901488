// Package scoring computes role fit scores and composite tactical metrics
// from a player's attribute snapshot.
package scoring

import (
	"math"
	"sort"

	"github.com/okian/scout/internal/domain/attributes"
	"github.com/okian/scout/internal/domain/roles"
)

// Scoring constants.
const (
	maxScoreValue = 100
	scoreDecimals = 10 // round to one decimal place
)

// FitResult is one role's score for one player and phase.
type FitResult struct {
	RoleID   string  `json:"role_id"`
	RoleName string  `json:"role_name"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// RoleSource supplies the roles that apply to a possession phase.
// *roles.Catalog satisfies it.
type RoleSource interface {
	Query(phase string) []roles.Definition
}

// FitCalculator scores a snapshot against every role of a phase.
type FitCalculator struct {
	source RoleSource
}

// NewFitCalculator creates a calculator reading roles from source.
func NewFitCalculator(source RoleSource) *FitCalculator {
	return &FitCalculator{source: source}
}

// Calculate returns a fit result per role of phase, best first. A nil
// snapshot yields an empty list.
func (c *FitCalculator) Calculate(s *attributes.Snapshot, phase string) []FitResult {
	if s == nil || c == nil || c.source == nil {
		return []FitResult{}
	}
	defs := c.source.Query(phase)
	results := make([]FitResult, 0, len(defs))
	for _, d := range defs {
		results = append(results, FitResult{
			RoleID:   d.ID,
			RoleName: d.Name,
			Category: d.Category,
			Score:    RoleScore(s, d.Weights),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].RoleName < results[j].RoleName
	})
	return results
}

// RoleScore is the weighted share of the best possible score, 0-100. Every
// weight counts toward the maximum, including weights on attribute names
// the resolver does not know. An empty weight map scores 0.
//
// Weights are summed in attribute-name order: float addition is not
// associative, so map order would let one role score differently across calls.
func RoleScore(s *attributes.Snapshot, weights map[string]float64) float64 {
	names := make([]string, 0, len(weights))
	for name := range weights {
		names = append(names, name)
	}
	sort.Strings(names)

	var total, maxPossible float64
	for _, name := range names {
		w := weights[name]
		total += float64(attributes.Resolve(s, name)) * w
		maxPossible += attributes.MaxValue * w
	}
	if maxPossible <= 0 {
		return 0
	}
	return round1(total / maxPossible * maxScoreValue)
}

// round1 rounds to one decimal, halves to even.
func round1(x float64) float64 {
	return math.RoundToEven(x*scoreDecimals) / scoreDecimals
}

// Only keeps the fits whose role ID is in roleIDs, preserving order. IDs with
// no matching fit are ignored.
func Only(fits []FitResult, roleIDs []string) []FitResult {
	keep := make(map[string]struct{}, len(roleIDs))
	for _, id := range roleIDs {
		keep[id] = struct{}{}
	}
	out := make([]FitResult, 0, len(roleIDs))
	for _, f := range fits {
		if _, ok := keep[f.RoleID]; ok {
			out = append(out, f)
		}
	}
	return out
}
