package buchberger

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/iliailmer/deepgroebner/ideals"
	"github.com/iliailmer/deepgroebner/poly"
	"github.com/iliailmer/deepgroebner/rl"
)

func testRing(t *testing.T, modulus uint32) *poly.Ring {
	t.Helper()
	r, err := poly.NewRing([]string{"x", "y"}, modulus, "grevlex")
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}
	return r
}

func newTestEnv(t *testing.T, r *poly.Ring, elim string, exprs ...string) *Env {
	t.Helper()
	polys := make([]*poly.Polynomial, len(exprs))
	for i, e := range exprs {
		polys[i] = r.MustParse(e)
	}
	env, err := NewEnv(Config{
		Ring:        r,
		Generator:   ideals.NewFixedGenerator(polys...),
		Elimination: elim,
	})
	if err != nil {
		t.Fatalf("NewEnv: %v", err)
	}
	return env
}

func TestNewEnvValidation(t *testing.T) {
	r := testRing(t, 2)
	gen := ideals.NewFixedGenerator(r.MustParse("x"))
	if _, err := NewEnv(Config{Ring: r, Generator: gen, Elimination: "sugar"}); err == nil {
		t.Errorf("expected error for unknown elimination strategy")
	}
	if _, err := NewEnv(Config{Ring: r, Generator: gen, RewardMode: "sparse"}); err == nil {
		t.Errorf("expected error for unknown reward mode")
	}
	if _, err := NewEnv(Config{Ring: r, Generator: nil}); err == nil {
		t.Errorf("expected error for nil generator")
	}
}

// the concrete scenario from the design discussion: 2 variables,
// grevlex, characteristic 2, generators {x^2 - y, x*y - 1}
func TestCharTwoScenario(t *testing.T) {
	r := testRing(t, 2)
	env := newTestEnv(t, r, "gebauermoeller", "x^2 - y", "x*y - 1")
	if err := env.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	G := env.Basis()
	if len(G) != 2 || !G[0].Equal(r.MustParse("x^2 + y")) || !G[1].Equal(r.MustParse("x*y + 1")) {
		t.Fatalf("unexpected basis after reset: %v", G)
	}
	P := env.Pairs()
	if len(P) != 1 || P[0] != (Pair{0, 1}) {
		t.Fatalf("unexpected pair queue after reset: %v", P)
	}

	reward, done, info, err := env.Step(0)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if reward != -1 {
		t.Errorf("reward = %v, want -1", reward)
	}
	if done {
		t.Errorf("episode should not be done yet")
	}
	// S(x^2+y, x*y+1) = y^2 + x mod 2, irreducible mod G
	G = env.Basis()
	if len(G) != 3 || !G[2].Equal(r.MustParse("y^2 + x")) {
		t.Fatalf("unexpected basis after first step: %v", G)
	}
	// Gebauer-Moeller drops (0,2) since x^2 and y^2 are coprime
	P = env.Pairs()
	if len(P) != 1 || P[0] != (Pair{1, 2}) {
		t.Fatalf("unexpected pair queue after first step: %v", P)
	}
	if info["zero_reductions"] != 0 {
		t.Errorf("zero_reductions = %d, want 0", info["zero_reductions"])
	}

	reward, done, info, err = env.Step(0)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if reward != -1 || !done {
		t.Fatalf("expected terminal step with reward -1, got %v, done=%v", reward, done)
	}
	if info["zero_reductions"] != 1 {
		t.Errorf("zero_reductions = %d, want 1", info["zero_reductions"])
	}
	if !IsGroebner(env.Basis()) {
		t.Errorf("final basis is not a Groebner basis")
	}
}

func TestResetAlreadyGroebner(t *testing.T) {
	r := testRing(t, 2)
	env := newTestEnv(t, r, "gebauermoeller", "x")
	if err := env.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if !env.Done() {
		t.Errorf("single generator should terminate at reset")
	}
	if len(env.Pairs()) != 0 {
		t.Errorf("pair queue should be empty")
	}
}

func TestResetFiltersZerosAndDuplicates(t *testing.T) {
	r := testRing(t, 2)
	env := newTestEnv(t, r, "none", "x - x", "x^2 - y", "x^2 - y")
	if err := env.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if len(env.Basis()) != 1 {
		t.Errorf("basis = %v, want the single distinct generator", env.Basis())
	}
}

func TestResetEmptyGeneratorSet(t *testing.T) {
	r := testRing(t, 2)
	env := newTestEnv(t, r, "none", "x - x")
	if err := env.Reset(); !errors.Is(err, ErrEmptyGeneratorSet) {
		t.Fatalf("Reset error = %v, want ErrEmptyGeneratorSet", err)
	}

	env2, err := NewEnv(Config{
		Ring:         r,
		Generator:    ideals.NewFixedGenerator(r.MustParse("x - x")),
		AllowTrivial: true,
	})
	if err != nil {
		t.Fatalf("NewEnv: %v", err)
	}
	if err := env2.Reset(); err != nil {
		t.Fatalf("Reset with AllowTrivial: %v", err)
	}
	if !env2.Done() {
		t.Errorf("trivial episode should be done at reset")
	}
}

func TestInvalidAction(t *testing.T) {
	r := testRing(t, 2)
	env := newTestEnv(t, r, "none", "x^2 - y", "x*y - 1")
	if err := env.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	for _, action := range []int{-1, 1, 5} {
		if _, _, _, err := env.Step(action); !errors.Is(err, rl.ErrInvalidAction) {
			t.Errorf("Step(%d) error = %v, want ErrInvalidAction", action, err)
		}
	}
	// a failed step must not mutate state
	if len(env.Basis()) != 2 || len(env.Pairs()) != 1 {
		t.Errorf("state changed by invalid action")
	}
}

func TestZeroReductionLeavesBasisUnchanged(t *testing.T) {
	r := testRing(t, 32003)
	// x and y are coprime, their S-polynomial reduces to zero
	env := newTestEnv(t, r, "none", "x", "y")
	if err := env.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	before := env.Basis()
	_, done, info, err := env.Step(0)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	after := env.Basis()
	if len(before) != len(after) {
		t.Fatalf("basis length changed on zero reduction")
	}
	for i := range before {
		if !before[i].Equal(after[i]) {
			t.Errorf("basis element %d changed", i)
		}
	}
	if !done || info["zero_reductions"] != 1 {
		t.Errorf("done=%v, zero_reductions=%d", done, info["zero_reductions"])
	}
}

// Buchberger's algorithm terminates under any selection order; the
// final basis must be a Groebner basis whichever pairs are picked
func TestTerminationAnySelectionOrder(t *testing.T) {
	for _, elim := range []string{"none", "lcm", "gebauermoeller"} {
		for _, pick := range []string{"first", "last"} {
			r := testRing(t, 32003)
			env := newTestEnv(t, r, elim, "x^3 - 2xy", "x^2y - 2y^2 + x")
			if err := env.Reset(); err != nil {
				t.Fatalf("Reset: %v", err)
			}
			steps := 0
			for !env.Done() {
				action := 0
				if pick == "last" {
					action = len(env.Pairs()) - 1
				}
				if _, _, _, err := env.Step(action); err != nil {
					t.Fatalf("Step: %v", err)
				}
				steps++
				if steps > 1000 {
					t.Fatalf("no termination with elim=%s pick=%s", elim, pick)
				}
			}
			if !IsGroebner(env.Basis()) {
				t.Errorf("final basis not Groebner with elim=%s pick=%s", elim, pick)
			}
		}
	}
}

// all elimination strategies must agree on the ideal: interreduced
// minimal bases are unique, so they must coincide
func TestEliminationStrategiesAgree(t *testing.T) {
	var reference []*poly.Polynomial
	for _, elim := range []string{"none", "lcm", "gebauermoeller"} {
		r := testRing(t, 32003)
		env := newTestEnv(t, r, elim, "x^3 - 2xy", "x^2y - 2y^2 + x")
		if err := env.Reset(); err != nil {
			t.Fatalf("Reset: %v", err)
		}
		for !env.Done() {
			if _, _, _, err := env.Step(0); err != nil {
				t.Fatalf("Step: %v", err)
			}
		}
		reduced := Interreduce(Minimalize(env.Basis()))
		sort.Slice(reduced, func(a, b int) bool {
			return r.Compare(reduced[a].LeadMonomial(), reduced[b].LeadMonomial()) < 0
		})
		if reference == nil {
			reference = reduced
			continue
		}
		if len(reduced) != len(reference) {
			t.Fatalf("elim=%s basis size %d != %d", elim, len(reduced), len(reference))
		}
		for i := range reduced {
			if !reduced[i].Equal(reference[i]) {
				t.Errorf("elim=%s basis element %d differs: %v vs %v", elim, i, reduced[i], reference[i])
			}
		}
	}
}

func TestRewardAccounting(t *testing.T) {
	r := testRing(t, 32003)
	env := newTestEnv(t, r, "gebauermoeller", "x^3 - 2xy", "x^2y - 2y^2 + x")
	if err := env.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	total := 0.0
	steps := 0
	for !env.Done() {
		reward, _, _, err := env.Step(0)
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		total += reward
		steps++
	}
	if total != -float64(steps) {
		t.Errorf("total reward %v != -steps %d", total, steps)
	}
}

func TestRewardAdditionsMode(t *testing.T) {
	r := testRing(t, 32003)
	env, err := NewEnv(Config{
		Ring:       r,
		Generator:  ideals.NewFixedGenerator(r.MustParse("x^3 - 2xy"), r.MustParse("x^2y - 2y^2 + x")),
		RewardMode: "additions",
	})
	if err != nil {
		t.Fatalf("NewEnv: %v", err)
	}
	if err := env.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	reward, _, info, err := env.Step(0)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if want := -float64(1 + info["additions"]); reward != want {
		t.Errorf("reward = %v, want %v", reward, want)
	}
}

func TestCopyIndependence(t *testing.T) {
	r := testRing(t, 32003)
	env := newTestEnv(t, r, "gebauermoeller", "x^3 - 2xy", "x^2y - 2y^2 + x")
	if err := env.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	clone := env.Copy()
	for !clone.Done() {
		if _, _, _, err := clone.Step(0); err != nil {
			t.Fatalf("clone Step: %v", err)
		}
	}
	if env.Done() {
		t.Fatalf("stepping the clone changed the original")
	}
	if len(env.Basis()) == len(clone.Basis()) {
		t.Errorf("clone basis should have grown independently")
	}
	for !env.Done() {
		if _, _, _, err := env.Step(0); err != nil {
			t.Fatalf("original Step: %v", err)
		}
	}
	if !IsGroebner(env.Basis()) || !IsGroebner(clone.Basis()) {
		t.Errorf("both copies should reach a Groebner basis")
	}
}

func TestRender(t *testing.T) {
	r := testRing(t, 2)
	env := newTestEnv(t, r, "none", "x^2 - y", "x*y - 1")
	if err := env.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	var sb strings.Builder
	env.Render(&sb)
	out := sb.String()
	if !strings.Contains(out, "G (2)") || !strings.Contains(out, "(0, 1)") {
		t.Errorf("unexpected render output:\n%s", out)
	}
}

func TestMinimalizeAndInterreduce(t *testing.T) {
	r := testRing(t, 32003)
	env := newTestEnv(t, r, "none", "x^3 - 2xy", "x^2y - 2y^2 + x")
	if err := env.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	for !env.Done() {
		if _, _, _, err := env.Step(0); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	minimal := Minimalize(env.Basis())
	for i, g := range minimal {
		for j, h := range minimal {
			if i != j && h.LeadMonomial().Divides(g.LeadMonomial()) {
				t.Errorf("minimal basis still has redundant element %v", g)
			}
		}
	}
	reduced := Interreduce(minimal)
	if !IsGroebner(reduced) {
		t.Errorf("interreduced basis is not Groebner")
	}
	for _, g := range reduced {
		if g.LeadCoeff() != 1 {
			t.Errorf("interreduced element not monic: %v", g)
		}
	}
}
