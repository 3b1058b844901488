// Package matrix lays role fit results out as a category-by-rank grid.
package matrix

import (
	"math"
	"sort"

	"github.com/okian/scout/internal/domain/scoring"
)

// RankFunc orders categories; lower ranks come first.
type RankFunc func(category string) int

// Matrix is a ragged grid: one column per category, row i holding the i-th
// best role of each column or nil when the column is shorter.
type Matrix struct {
	Headers []string               `json:"headers"`
	Rows    [][]*scoring.FitResult `json:"rows"`
}

type group struct {
	category string
	rank     int
	results  []scoring.FitResult
}

// Build groups results by category, orders the columns by rank then name
// and fills rows with each column's results in descending score order.
// A nil rank treats every category alike, leaving name order.
func Build(results []scoring.FitResult, rank RankFunc) Matrix {
	m := Matrix{Headers: []string{}, Rows: [][]*scoring.FitResult{}}
	if len(results) == 0 {
		return m
	}

	index := map[string]*group{}
	var groups []*group
	for _, r := range results {
		g, ok := index[r.Category]
		if !ok {
			g = &group{category: r.Category, rank: math.MaxInt}
			if rank != nil {
				g.rank = rank(r.Category)
			}
			index[r.Category] = g
			groups = append(groups, g)
		}
		g.results = append(g.results, r)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].rank != groups[j].rank {
			return groups[i].rank < groups[j].rank
		}
		return groups[i].category < groups[j].category
	})

	rows := 0
	for _, g := range groups {
		sort.SliceStable(g.results, func(i, j int) bool {
			return g.results[i].Score > g.results[j].Score
		})
		m.Headers = append(m.Headers, g.category)
		if len(g.results) > rows {
			rows = len(g.results)
		}
	}

	for i := 0; i < rows; i++ {
		row := make([]*scoring.FitResult, len(groups))
		for col, g := range groups {
			if i < len(g.results) {
				row[col] = &g.results[i]
			}
		}
		m.Rows = append(m.Rows, row)
	}
	return m
}

// Scores returns every non-empty cell score, row by row.
func (m Matrix) Scores() []float64 {
	var out []float64
	for _, row := range m.Rows {
		for _, cell := range row {
			if cell != nil {
				out = append(out, cell.Score)
			}
		}
	}
	return out
}
