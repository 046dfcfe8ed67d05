package policies

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/iliailmer/deepgroebner/rl"
	"github.com/iliailmer/deepgroebner/util"
)

// Model is an opaque policy/value function over variable-row-count
// feature matrices. Predict returns one value per row: a probability
// for policy models, a value estimate for value models.
type Model interface {
	Predict(x *mat.Dense) []float64
	Update(batch []*rl.Trace)
	SaveWeights(path string) error
	LoadWeights(path string) error
}

// LinearSoftmax scores every pair row with a shared linear map and
// normalizes the scores with a softmax, the single-layer analog of a
// per-pair perceptron. Update performs a REINFORCE step on a batch
// of episode traces.
type LinearSoftmax struct {
	weights      *mat.VecDense
	learningRate float64
	gamma        float64
	baseline     Model
}

var _ Model = &LinearSoftmax{}

func NewLinearSoftmax(inputDim int, learningRate, gamma float64) *LinearSoftmax {
	return &LinearSoftmax{
		weights:      mat.NewVecDense(inputDim, nil),
		learningRate: learningRate,
		gamma:        gamma,
	}
}

// WithBaseline subtracts the given value model's estimate from the
// rewards-to-go during updates
func (l *LinearSoftmax) WithBaseline(baseline Model) *LinearSoftmax {
	l.baseline = baseline
	return l
}

func (l *LinearSoftmax) Predict(x *mat.Dense) []float64 {
	rows, _ := x.Dims()
	scores := make([]float64, rows)
	for i := 0; i < rows; i++ {
		scores[i] = mat.Dot(l.weights, x.RowView(i))
	}
	softmaxInPlace(scores)
	return scores
}

func (l *LinearSoftmax) Update(batch []*rl.Trace) {
	dim := l.weights.Len()
	grad := mat.NewVecDense(dim, nil)
	steps := 0
	for _, trace := range batch {
		togo := trace.RewardsToGo(l.gamma)
		for i := 0; i < trace.Len(); i++ {
			tr, _ := trace.Get(i)
			feat, ok := tr.Obs.(Featured)
			if !ok {
				continue
			}
			x := feat.Mat()
			if x == nil {
				continue
			}
			advantage := togo[i]
			if l.baseline != nil {
				vs := l.baseline.Predict(x)
				if len(vs) > 0 {
					advantage -= vs[0]
				}
			}
			probs := l.Predict(x)
			// grad log pi(a|s) = x_a - sum_j p_j x_j
			step := mat.NewVecDense(dim, nil)
			step.CopyVec(x.RowView(tr.Action))
			for j := 0; j < len(probs); j++ {
				step.AddScaledVec(step, -probs[j], x.RowView(j))
			}
			grad.AddScaledVec(grad, advantage, step)
			steps++
		}
	}
	if steps == 0 {
		return
	}
	l.weights.AddScaledVec(l.weights, l.learningRate/float64(steps), grad)
}

type linearWeights struct {
	Weights []float64 `json:"weights"`
}

func (l *LinearSoftmax) SaveWeights(path string) error {
	return util.SaveJSON(path, linearWeights{Weights: l.weights.RawVector().Data})
}

func (l *LinearSoftmax) LoadWeights(path string) error {
	var w linearWeights
	if err := util.LoadJSON(path, &w); err != nil {
		return err
	}
	if len(w.Weights) != l.weights.Len() {
		return fmt.Errorf("policies: weight length %d does not match input dim %d", len(w.Weights), l.weights.Len())
	}
	l.weights = mat.NewVecDense(len(w.Weights), w.Weights)
	return nil
}

// PairsLeftBaseline is a value model that predicts the discounted
// cost of processing every remaining pair exactly once
type PairsLeftBaseline struct {
	gamma float64
}

var _ Model = &PairsLeftBaseline{}

func NewPairsLeftBaseline(gamma float64) *PairsLeftBaseline {
	return &PairsLeftBaseline{gamma: gamma}
}

func (p *PairsLeftBaseline) Predict(x *mat.Dense) []float64 {
	if x == nil {
		return []float64{0}
	}
	pairs, _ := x.Dims()
	var v float64
	if p.gamma == 1 {
		v = -float64(pairs)
	} else {
		v = -(1 - math.Pow(p.gamma, float64(pairs))) / (1 - p.gamma)
	}
	return []float64{v}
}

func (p *PairsLeftBaseline) Update([]*rl.Trace) {}

func (p *PairsLeftBaseline) SaveWeights(string) error { return nil }

func (p *PairsLeftBaseline) LoadWeights(string) error { return nil }

// RolloutValue estimates a state value by playing the episode out on
// an environment copy with a fixed policy
type RolloutValue struct {
	policy  rl.Policy
	gamma   float64
	horizon int
}

func NewRolloutValue(policy rl.Policy, gamma float64, horizon int) *RolloutValue {
	return &RolloutValue{policy: policy, gamma: gamma, horizon: horizon}
}

// Estimate branches env with Copy and returns the discounted return
// of the rollout. The original environment is never stepped.
func (r *RolloutValue) Estimate(env rl.Environment, obs rl.Observation) (float64, error) {
	sim := env.Copy()
	total, discount := 0.0, 1.0
	cur := obs
	for step := 0; step < r.horizon && cur.NumActions() > 0; step++ {
		action, err := r.policy.SelectAction(cur)
		if err != nil {
			return 0, err
		}
		next, reward, done, _, err := sim.Step(action)
		if err != nil {
			return 0, err
		}
		total += reward * discount
		discount *= r.gamma
		cur = next
		if done {
			break
		}
	}
	return total, nil
}

// ModelPolicy samples actions from the distribution predicted by a
// policy model
type ModelPolicy struct {
	model Model
	rng   *rand.Rand
}

var _ rl.Policy = &ModelPolicy{}

func NewModelPolicy(model Model) *ModelPolicy {
	return &ModelPolicy{
		model: model,
		rng:   rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

func (m *ModelPolicy) SelectAction(obs rl.Observation) (int, error) {
	n := obs.NumActions()
	if n == 0 {
		return 0, rl.ErrNoActions
	}
	feat, ok := obs.(Featured)
	if !ok {
		return 0, fmt.Errorf("policies: observation %T has no features", obs)
	}
	probs := m.model.Predict(feat.Mat())
	i, ok := sampleuv.NewWeighted(probs, m.rng).Take()
	if !ok {
		return 0, rl.ErrNoActions
	}
	return i, nil
}

func (m *ModelPolicy) Update(trace *rl.Trace) {
	m.model.Update([]*rl.Trace{trace})
}

func (m *ModelPolicy) Reset() {}

func softmaxInPlace(xs []float64) {
	max := floats.Max(xs)
	sum := 0.0
	for i, x := range xs {
		e := math.Exp(x - max)
		xs[i] = e
		sum += e
	}
	floats.Scale(1/sum, xs)
}
