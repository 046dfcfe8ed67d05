package buchberger

import (
	"testing"

	"github.com/iliailmer/deepgroebner/poly"
)

func TestParseElimStrategy(t *testing.T) {
	for _, name := range []string{"none", "lcm", "gebauermoeller"} {
		s, err := ParseElimStrategy(name)
		if err != nil {
			t.Fatalf("ParseElimStrategy(%s): %v", name, err)
		}
		if s.String() != name {
			t.Errorf("round trip %s -> %s", name, s.String())
		}
	}
	if _, err := ParseElimStrategy("sugar"); err == nil {
		t.Errorf("expected error for unknown strategy")
	}
}

func TestUpdatePairsNone(t *testing.T) {
	r := testRing(t, 32003)
	G := []*poly.Polynomial{r.MustParse("x^2"), r.MustParse("y^2")}
	P := []Pair{{0, 1}}
	G2, P2 := updatePairs(r, G, P, r.MustParse("x*y"), ElimNone)
	if len(G2) != 3 {
		t.Fatalf("basis size = %d", len(G2))
	}
	want := []Pair{{0, 1}, {0, 2}, {1, 2}}
	if len(P2) != len(want) {
		t.Fatalf("queue = %v, want %v", P2, want)
	}
	for i := range want {
		if P2[i] != want[i] {
			t.Errorf("queue[%d] = %v, want %v", i, P2[i], want[i])
		}
	}
}

func TestUpdatePairsLCMDropsCoprime(t *testing.T) {
	r := testRing(t, 32003)
	G := []*poly.Polynomial{r.MustParse("x^2"), r.MustParse("x*y")}
	_, P2 := updatePairs(r, G, nil, r.MustParse("y^3"), ElimLCM)
	// y^3 is coprime to x^2 but not to x*y
	if len(P2) != 1 || P2[0] != (Pair{1, 2}) {
		t.Errorf("queue = %v, want [(1, 2)]", P2)
	}
}

func TestUpdatePairsGebauerMoellerPrunesOld(t *testing.T) {
	r := testRing(t, 32003)
	// lm(f) = x*y divides lcm(x^2, y^2) = x^2y^2 and both lcms with
	// f differ from it, so the old pair (0, 1) is dropped
	G := []*poly.Polynomial{r.MustParse("x^2"), r.MustParse("y^2")}
	P := []Pair{{0, 1}}
	_, P2 := updatePairs(r, G, P, r.MustParse("x*y"), ElimGebauerMoeller)
	for _, p := range P2 {
		if p == (Pair{0, 1}) {
			t.Errorf("old pair (0, 1) should have been pruned: %v", P2)
		}
	}
	// new pairs (0, 2) and (1, 2) both survive, neither lcm divides
	// the other and neither pair is coprime
	want := []Pair{{0, 2}, {1, 2}}
	if len(P2) != len(want) {
		t.Fatalf("queue = %v, want %v", P2, want)
	}
	for i := range want {
		if P2[i] != want[i] {
			t.Errorf("queue[%d] = %v, want %v", i, P2[i], want[i])
		}
	}
}

func TestUpdatePairsGebauerMoellerMinimalLcms(t *testing.T) {
	r := testRing(t, 32003)
	// lcm(x^3, x) = x^3 is a multiple of lcm(x^2y... use distinct:
	// with f = x, lcm(x^3, x) = x^3 and lcm(x*y^2, x) = x*y^2;
	// neither divides the other so both groups survive, but both
	// pairs share variables with f so neither is coprime-dropped
	G := []*poly.Polynomial{r.MustParse("x^3"), r.MustParse("x*y^2")}
	_, P2 := updatePairs(r, G, nil, r.MustParse("x"), ElimGebauerMoeller)
	if len(P2) != 2 {
		t.Fatalf("queue = %v, want two pairs", P2)
	}

	// with f = x^2, lcm(x^3, x^2) = x^3 divides lcm nothing here;
	// against G' = {x^3, x^4} the lcms are x^3 and x^4 and x^3
	// divides x^4, so only the minimal pair survives
	G2 := []*poly.Polynomial{r.MustParse("x^3"), r.MustParse("x^4")}
	_, P3 := updatePairs(r, G2, nil, r.MustParse("x^2"), ElimGebauerMoeller)
	if len(P3) != 1 || P3[0] != (Pair{0, 2}) {
		t.Errorf("queue = %v, want [(0, 2)]", P3)
	}
}
