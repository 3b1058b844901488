package scoring

import (
	"strings"
	"time"

	"github.com/okian/scout/internal/domain/attributes"
	"github.com/okian/scout/internal/domain/roles"
)

// Gegenpress group multipliers and the maximum weighted sum:
// (5 attrs * 20 * 2) + (6 attrs * 20 * 3) = 560.
const (
	gegenpressPrimaryWeight   = 2
	gegenpressSecondaryWeight = 3
	gegenpressMax             = 560.0
)

// Analysis is the full tactical profile of one snapshot. It is built fresh
// per request and never mutated afterwards.
type Analysis struct {
	Speed             float64 `json:"speed"`
	DNA               float64 `json:"dna"`
	AggressiveDefense float64 `json:"aggressive_defense"`
	CautiousDefense   float64 `json:"cautious_defense"`
	DirectAttack      float64 `json:"direct_attack"`
	PossessionAttack  float64 `json:"possession_attack"`
	Gegenpress        float64 `json:"gegenpress"`

	InPossessionFits  []FitResult `json:"in_possession_fits"`
	OutPossessionFits []FitResult `json:"out_possession_fits"`
}

// BestInPossession returns the top in-possession fit, or nil.
func (a *Analysis) BestInPossession() *FitResult { return best(a.InPossessionFits) }

// BestOutPossession returns the top out-of-possession fit, or nil.
func (a *Analysis) BestOutPossession() *FitResult { return best(a.OutPossessionFits) }

// Fits returns the fit list for phase (case-insensitive); unknown phases yield nil.
func (a *Analysis) Fits(phase string) []FitResult {
	switch {
	case strings.EqualFold(phase, roles.PhaseInPossession):
		return a.InPossessionFits
	case strings.EqualFold(phase, roles.PhaseOutPossession):
		return a.OutPossessionFits
	default:
		return nil
	}
}

func best(fits []FitResult) *FitResult {
	var top *FitResult
	for i := range fits {
		if top == nil || fits[i].Score > top.Score {
			top = &fits[i]
		}
	}
	return top
}

// Observer is notified after every analysis; used for metrics.
type Observer func(elapsed time.Duration, fits int)

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithObserver sets a callback invoked after each analysis.
func WithObserver(o Observer) Option {
	return func(a *Analyzer) {
		if o != nil {
			a.observe = o
		}
	}
}

// Analyzer computes composite metrics and both phases of role fits.
type Analyzer struct {
	fits    *FitCalculator
	observe Observer
}

// NewAnalyzer creates an analyzer scoring role fits against source.
func NewAnalyzer(source RoleSource, opts ...Option) *Analyzer {
	a := &Analyzer{
		fits:    NewFitCalculator(source),
		observe: func(time.Duration, int) {},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze builds the tactical profile of s. A nil snapshot yields zero
// metrics and empty fit lists.
func (a *Analyzer) Analyze(s *attributes.Snapshot) Analysis {
	start := time.Now()
	if s == nil {
		return Analysis{InPossessionFits: []FitResult{}, OutPossessionFits: []FitResult{}}
	}

	// Absent groups read as all-zero.
	tech := orZero(s.Technical)
	ment := orZero(s.Mental)
	phys := orZero(s.Physical)

	out := Analysis{
		Speed: percentage(phys.Pace, phys.Acceleration),
		DNA: percentage(
			ment.Bravery, ment.Composure, ment.Concentration, ment.Determination, ment.Teamwork,
		),
		AggressiveDefense: percentage(
			tech.Tackling, ment.Aggression, ment.Bravery, ment.WorkRate, phys.Acceleration, phys.Stamina,
		),
		CautiousDefense: percentage(
			ment.Positioning, ment.Concentration, ment.Anticipation, ment.Decisions,
		),
		DirectAttack: percentage(
			tech.Crossing, tech.Heading, ment.Aggression, ment.Bravery, ment.WorkRate,
			phys.Acceleration, phys.Agility, phys.Balance, phys.JumpingReach, phys.Pace,
			phys.Stamina, phys.Strength,
		),
		PossessionAttack: percentage(
			tech.FirstTouch, tech.Passing, tech.Technique, ment.Anticipation, ment.Composure,
			ment.Decisions, ment.Flair, ment.OffTheBall, ment.Teamwork, ment.Vision,
		),
	}

	primary := sum(ment.WorkRate, phys.Stamina, ment.Teamwork, ment.Aggression, ment.Anticipation)
	secondary := sum(phys.Acceleration, phys.Pace, ment.Decisions, ment.Bravery, tech.Tackling, ment.Positioning)
	weighted := float64(primary*gegenpressPrimaryWeight + secondary*gegenpressSecondaryWeight)
	out.Gegenpress = round1(weighted / gegenpressMax * maxScoreValue)

	out.InPossessionFits = a.fits.Calculate(s, roles.PhaseInPossession)
	out.OutPossessionFits = a.fits.Calculate(s, roles.PhaseOutPossession)

	a.observe(time.Since(start), len(out.InPossessionFits)+len(out.OutPossessionFits))
	return out
}

// percentage is the unweighted share of the maximum for a group of attributes.
func percentage(values ...int) float64 {
	if len(values) == 0 {
		return 0
	}
	maxPossible := float64(len(values) * attributes.MaxValue)
	return round1(float64(sum(values...)) / maxPossible * maxScoreValue)
}

func sum(values ...int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func orZero[T any](p *T) *T {
	if p == nil {
		return new(T)
	}
	return p
}
