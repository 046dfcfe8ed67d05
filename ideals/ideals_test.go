package ideals

import (
	"testing"

	"github.com/iliailmer/deepgroebner/poly"
)

func testRing(t *testing.T) *poly.Ring {
	t.Helper()
	r, err := poly.NewRing([]string{"x", "y", "z"}, 32003, "grevlex")
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}
	return r
}

func TestCountMonomials(t *testing.T) {
	cases := []struct{ n, d, want int }{
		{1, 5, 1},
		{2, 3, 4},
		{3, 2, 6},
		{3, 5, 21},
	}
	for _, c := range cases {
		if got := countMonomials(c.n, c.d); got != c.want {
			t.Errorf("countMonomials(%d, %d) = %d, want %d", c.n, c.d, got, c.want)
		}
	}
}

func TestBinomialGenerator(t *testing.T) {
	r := testRing(t)
	gen, err := NewBinomialGenerator(r, 4, 5, false, 7)
	if err != nil {
		t.Fatalf("NewBinomialGenerator: %v", err)
	}
	polys := gen.Sample()
	if len(polys) != 4 {
		t.Fatalf("got %d generators, want 4", len(polys))
	}
	for _, f := range polys {
		if f.NumTerms() != 2 {
			t.Errorf("binomial has %d terms: %v", f.NumTerms(), f)
		}
		if f.Degree() > 5 {
			t.Errorf("degree %d exceeds max: %v", f.Degree(), f)
		}
		if f.Degree() < 1 {
			t.Errorf("constant generator: %v", f)
		}
	}
}

func TestBinomialGeneratorHomogeneous(t *testing.T) {
	r := testRing(t)
	gen, err := NewBinomialGenerator(r, 10, 4, true, 11)
	if err != nil {
		t.Fatalf("NewBinomialGenerator: %v", err)
	}
	for _, f := range gen.Sample() {
		terms := f.Terms()
		if terms[0].Mon.Degree() != terms[1].Mon.Degree() {
			t.Errorf("inhomogeneous binomial: %v", f)
		}
	}
}

func TestPolynomialGenerator(t *testing.T) {
	r := testRing(t)
	gen, err := NewPolynomialGenerator(r, 5, 4, 6, false, 3)
	if err != nil {
		t.Fatalf("NewPolynomialGenerator: %v", err)
	}
	for _, f := range gen.Sample() {
		if f.IsZero() {
			t.Errorf("zero generator sampled")
		}
		if f.Degree() > 4 {
			t.Errorf("degree %d exceeds max: %v", f.Degree(), f)
		}
		if f.NumTerms() > 6 {
			t.Errorf("too many terms: %v", f)
		}
	}
}

func TestFixedGenerator(t *testing.T) {
	r := testRing(t)
	f := r.MustParse("x^2 - y")
	gen := NewFixedGenerator(f)
	a, b := gen.Sample(), gen.Sample()
	if len(a) != 1 || len(b) != 1 || !a[0].Equal(b[0]) {
		t.Errorf("fixed generator should replay the same list")
	}
}

func TestRandomMonomialDegree(t *testing.T) {
	gen, err := NewBinomialGenerator(testRing(t), 1, 3, true, 1)
	if err != nil {
		t.Fatalf("NewBinomialGenerator: %v", err)
	}
	for i := 0; i < 50; i++ {
		d := gen.degreeDist.sample()
		if d < 1 || d > 3 {
			t.Fatalf("sampled degree %d out of range", d)
		}
		m := randomMonomial(3, d, gen.rng)
		if m.Degree() != d {
			t.Fatalf("randomMonomial degree = %d, want %d", m.Degree(), d)
		}
	}
}

func TestBinomialGeneratorSingleVariable(t *testing.T) {
	r, err := poly.NewRing([]string{"x"}, 2, "grevlex")
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}
	if _, err := NewBinomialGenerator(r, 1, 3, true, 7); err == nil {
		t.Fatal("homogeneous binomials in one variable should be rejected")
	}
	if _, err := NewBinomialGenerator(r, 1, 1, false, 7); err == nil {
		t.Fatal("degree-one binomials in one variable should be rejected")
	}

	// x^a - x^b with a != b is reachable once two degrees exist
	gen, err := NewBinomialGenerator(r, 5, 3, false, 7)
	if err != nil {
		t.Fatalf("NewBinomialGenerator: %v", err)
	}
	for _, f := range gen.Sample() {
		if f.NumTerms() != 2 {
			t.Fatalf("binomial has %d terms: %v", f.NumTerms(), f)
		}
	}
}
