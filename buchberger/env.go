// Package buchberger frames Buchberger's algorithm as a sequential
// decision process. The environment owns an evolving basis G and a
// queue P of unprocessed critical pairs; each step selects a pair by
// index, reduces its S-polynomial modulo G and updates both. An
// episode ends when the queue is empty, at which point G is a
// Groebner basis of the ideal generated by the initial inputs.
package buchberger

import (
	"errors"
	"fmt"
	"io"

	"github.com/iliailmer/deepgroebner/ideals"
	"github.com/iliailmer/deepgroebner/poly"
	"github.com/iliailmer/deepgroebner/rl"
)

var ErrEmptyGeneratorSet = errors.New("generators reduce to the zero ideal")

// RewardMode selects the reward shaping of the environment
type RewardMode int

const (
	// RewardStep gives -1 per pair processed, making the objective
	// the number of steps to termination
	RewardStep RewardMode = iota
	// RewardAdditions gives -(1 + polynomial additions performed
	// during the reduction), weighting steps by their actual cost
	RewardAdditions
)

func ParseRewardMode(name string) (RewardMode, error) {
	switch name {
	case "step":
		return RewardStep, nil
	case "additions":
		return RewardAdditions, nil
	}
	return 0, fmt.Errorf("unknown reward mode %q", name)
}

type Config struct {
	Ring      *poly.Ring
	Generator ideals.Generator
	// one of "none", "lcm", "gebauermoeller"; empty means "gebauermoeller"
	Elimination string
	// one of "step", "additions"; empty means "step"
	RewardMode string
	// AllowTrivial accepts generator sets that filter down to
	// nothing instead of failing the reset
	AllowTrivial bool
}

// Env is the raw Buchberger environment. It owns G and P for the
// lifetime of an episode; observations are produced by a wrapper.
// Invalid actions are a hard error, never a penalty or a clamp.
type Env struct {
	ring         *poly.Ring
	gen          ideals.Generator
	elim         ElimStrategy
	rewardMode   RewardMode
	allowTrivial bool

	G []*poly.Polynomial
	P []Pair

	zeroReductions int
}

func NewEnv(cfg Config) (*Env, error) {
	if cfg.Ring == nil {
		return nil, fmt.Errorf("buchberger: nil ring")
	}
	if cfg.Generator == nil {
		return nil, fmt.Errorf("buchberger: nil ideal generator")
	}
	elimName := cfg.Elimination
	if elimName == "" {
		elimName = "gebauermoeller"
	}
	elim, err := ParseElimStrategy(elimName)
	if err != nil {
		return nil, err
	}
	rewardName := cfg.RewardMode
	if rewardName == "" {
		rewardName = "step"
	}
	rewardMode, err := ParseRewardMode(rewardName)
	if err != nil {
		return nil, err
	}
	return &Env{
		ring:         cfg.Ring,
		gen:          cfg.Generator,
		elim:         elim,
		rewardMode:   rewardMode,
		allowTrivial: cfg.AllowTrivial,
	}, nil
}

// Reset samples fresh generators and rebuilds G and P. Zero and
// duplicate generators are dropped; an input that filters down to
// nothing is an error unless AllowTrivial is set.
func (e *Env) Reset() error {
	e.G = nil
	e.P = nil
	e.zeroReductions = 0

	seen := make(map[string]bool)
	kept := make([]*poly.Polynomial, 0)
	for _, f := range e.gen.Sample() {
		if f == nil || f.IsZero() {
			continue
		}
		m := f.Monic()
		key := m.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, m)
	}
	if len(kept) == 0 && !e.allowTrivial {
		return ErrEmptyGeneratorSet
	}
	for _, f := range kept {
		e.G, e.P = updatePairs(e.ring, e.G, e.P, f, e.elim)
	}
	return nil
}

// Step processes the pair at the given queue position: it removes
// the pair, reduces its S-polynomial modulo G and, if the remainder
// is non-zero, appends it to the basis and enqueues the surviving
// new pairs. Returns the reward, whether the queue is now empty and
// diagnostic counters.
func (e *Env) Step(action int) (float64, bool, rl.Info, error) {
	if action < 0 || action >= len(e.P) {
		return 0, e.Done(), nil, fmt.Errorf("%w: %d with %d pairs", rl.ErrInvalidAction, action, len(e.P))
	}
	pair := e.P[action]
	rest := make([]Pair, 0, len(e.P)-1)
	rest = append(rest, e.P[:action]...)
	rest = append(rest, e.P[action+1:]...)
	e.P = rest

	s := poly.SPolynomial(e.G[pair.I], e.G[pair.J])
	rem, stats := poly.Reduce(s, e.G)
	if rem.IsZero() {
		e.zeroReductions++
	} else {
		e.G, e.P = updatePairs(e.ring, e.G, e.P, rem.Monic(), e.elim)
	}

	reward := -1.0
	if e.rewardMode == RewardAdditions {
		reward = -float64(1 + stats.Additions)
	}
	info := rl.Info{
		"zero_reductions": e.zeroReductions,
		"additions":       stats.Additions,
		"basis_size":      len(e.G),
		"pairs_left":      len(e.P),
	}
	return reward, e.Done(), info, nil
}

// Done reports whether the pair queue is empty
func (e *Env) Done() bool {
	return len(e.P) == 0
}

func (e *Env) Ring() *poly.Ring {
	return e.ring
}

// Basis returns a copy of the current basis slice. The polynomials
// themselves are immutable and shared.
func (e *Env) Basis() []*poly.Polynomial {
	G := make([]*poly.Polynomial, len(e.G))
	copy(G, e.G)
	return G
}

// Pairs returns a copy of the pair queue in action-index order
func (e *Env) Pairs() []Pair {
	P := make([]Pair, len(e.P))
	copy(P, e.P)
	return P
}

// Copy returns an independent clone. The clone and the original can
// be stepped separately without affecting each other.
func (e *Env) Copy() *Env {
	clone := *e
	clone.G = make([]*poly.Polynomial, len(e.G))
	copy(clone.G, e.G)
	clone.P = make([]Pair, len(e.P))
	copy(clone.P, e.P)
	return &clone
}

// Render writes a human-readable dump of G and P
func (e *Env) Render(w io.Writer) {
	fmt.Fprintf(w, "G (%d):\n", len(e.G))
	for i, g := range e.G {
		fmt.Fprintf(w, "  [%d] %v\n", i, g)
	}
	fmt.Fprintf(w, "P (%d):\n", len(e.P))
	for i, p := range e.P {
		fmt.Fprintf(w, "  [%d] (%d, %d)\n", i, p.I, p.J)
	}
}
