// Package policies provides pair-selection policies for the
// deepgroebner environments: fixed selection strategies, a tabular
// softmax policy and a policy backed by a learned model.
package policies

import (
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/iliailmer/deepgroebner/rl"
)

// Featured is implemented by observations that expose a feature
// matrix with one row per action
type Featured interface {
	rl.Observation
	Mat() *mat.Dense
}

// FirstPolicy always selects the oldest pair in the queue, the
// classic "first" selection strategy
type FirstPolicy struct{}

var _ rl.Policy = &FirstPolicy{}

func NewFirstPolicy() *FirstPolicy {
	return &FirstPolicy{}
}

func (f *FirstPolicy) SelectAction(obs rl.Observation) (int, error) {
	if obs.NumActions() == 0 {
		return 0, rl.ErrNoActions
	}
	return 0, nil
}

func (f *FirstPolicy) Update(*rl.Trace) {}

func (f *FirstPolicy) Reset() {}

// RandomPolicy selects uniformly among the available actions
type RandomPolicy struct {
	rng *rand.Rand
}

var _ rl.Policy = &RandomPolicy{}

func NewRandomPolicy() *RandomPolicy {
	return &RandomPolicy{
		rng: rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

func NewRandomPolicyWithSeed(seed uint64) *RandomPolicy {
	return &RandomPolicy{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandomPolicy) SelectAction(obs rl.Observation) (int, error) {
	n := obs.NumActions()
	if n == 0 {
		return 0, rl.ErrNoActions
	}
	return r.rng.Intn(n), nil
}

func (r *RandomPolicy) Update(*rl.Trace) {}

func (r *RandomPolicy) Reset() {}

// Degreed observations report a degree ranking key per action row
type Degreed interface {
	rl.Observation
	RowDegree(i int) int
}

// DegreePolicy selects the action with the smallest degree,
// approximating normal selection: the degree of the pair's lcm when
// the observation reports it, otherwise the smallest feature-row
// sum. Ties go to the earliest row.
type DegreePolicy struct{}

var _ rl.Policy = &DegreePolicy{}

func NewDegreePolicy() *DegreePolicy {
	return &DegreePolicy{}
}

func (d *DegreePolicy) SelectAction(obs rl.Observation) (int, error) {
	n := obs.NumActions()
	if n == 0 {
		return 0, rl.ErrNoActions
	}
	if degs, ok := obs.(Degreed); ok {
		best, bestDeg := 0, degs.RowDegree(0)
		for i := 1; i < n; i++ {
			if v := degs.RowDegree(i); v < bestDeg {
				best, bestDeg = i, v
			}
		}
		return best, nil
	}
	feat, ok := obs.(Featured)
	if !ok {
		return 0, nil
	}
	m := feat.Mat()
	_, cols := m.Dims()
	best, bestDeg := 0, 0.0
	for i := 0; i < n; i++ {
		deg := 0.0
		for j := 0; j < cols; j++ {
			deg += m.At(i, j)
		}
		if i == 0 || deg < bestDeg {
			best, bestDeg = i, deg
		}
	}
	return best, nil
}

func (d *DegreePolicy) Update(*rl.Trace) {}

func (d *DegreePolicy) Reset() {}
