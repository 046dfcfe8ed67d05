package policies

import (
	"math"
	"strconv"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/iliailmer/deepgroebner/rl"
)

// RowKeyed is implemented by observations whose actions have a
// position-independent identity, letting Q-values generalize across
// queue positions
type RowKeyed interface {
	rl.Observation
	RowKey(i int) string
}

// SoftMaxQPolicy is a tabular Q policy sampling actions from a
// softmax over the Q-values of the available actions
type SoftMaxQPolicy struct {
	QTable map[string]map[string]float64
	alpha  float64
	gamma  float64
	rng    *rand.Rand
}

var _ rl.Policy = &SoftMaxQPolicy{}

func NewSoftMaxQPolicy(alpha, gamma float64) *SoftMaxQPolicy {
	return &SoftMaxQPolicy{
		QTable: make(map[string]map[string]float64),
		alpha:  alpha,
		gamma:  gamma,
		rng:    rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

func (s *SoftMaxQPolicy) Reset() {
	s.QTable = make(map[string]map[string]float64)
}

func (s *SoftMaxQPolicy) SelectAction(obs rl.Observation) (int, error) {
	n := obs.NumActions()
	if n == 0 {
		return 0, rl.ErrNoActions
	}
	stateKey := obs.Hash()
	if _, ok := s.QTable[stateKey]; !ok {
		s.QTable[stateKey] = make(map[string]float64)
	}

	weights := make([]float64, n)
	sum := 0.0
	for i := 0; i < n; i++ {
		exp := math.Exp(s.QTable[stateKey][actionKey(obs, i)])
		weights[i] = exp
		sum += exp
	}
	for i := range weights {
		weights[i] /= sum
	}
	i, ok := sampleuv.NewWeighted(weights, s.rng).Take()
	if !ok {
		return 0, rl.ErrNoActions
	}
	return i, nil
}

// Update runs a one-step TD backup over the episode transitions
func (s *SoftMaxQPolicy) Update(trace *rl.Trace) {
	for i := 0; i < trace.Len(); i++ {
		tr, _ := trace.Get(i)
		stateKey := tr.Obs.Hash()
		if _, ok := s.QTable[stateKey]; !ok {
			s.QTable[stateKey] = make(map[string]float64)
		}
		aKey := actionKey(tr.Obs, tr.Action)

		next := 0.0
		if !tr.Done {
			nextKey := tr.Next.Hash()
			for i2 := 0; i2 < tr.Next.NumActions(); i2++ {
				if v, ok := s.QTable[nextKey][actionKey(tr.Next, i2)]; ok && v > next {
					next = v
				}
			}
		}
		cur := s.QTable[stateKey][aKey]
		s.QTable[stateKey][aKey] = (1-s.alpha)*cur + s.alpha*(tr.Reward+s.gamma*next)
	}
}

func actionKey(obs rl.Observation, i int) string {
	if rk, ok := obs.(RowKeyed); ok {
		return rk.RowKey(i)
	}
	return strconv.Itoa(i)
}
