// Package ideals produces random generator sets for polynomial
// ideals, used to seed Buchberger episodes.
package ideals

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/iliailmer/deepgroebner/poly"
)

// Generator samples one list of initial ideal generators per call.
// The environment filters zeros and duplicates itself.
type Generator interface {
	Sample() []*poly.Polynomial
}

// FixedGenerator replays the same generator list every episode
type FixedGenerator struct {
	polys []*poly.Polynomial
}

func NewFixedGenerator(polys ...*poly.Polynomial) *FixedGenerator {
	ps := make([]*poly.Polynomial, len(polys))
	copy(ps, polys)
	return &FixedGenerator{polys: ps}
}

func (f *FixedGenerator) Sample() []*poly.Polynomial {
	ps := make([]*poly.Polynomial, len(f.polys))
	copy(ps, f.polys)
	return ps
}

// BinomialGenerator samples ideals generated by binomials m1 - m2
// with distinct monomials of degree at most MaxDegree. Degrees are
// drawn proportionally to the number of monomials of each degree.
type BinomialGenerator struct {
	ring          *poly.Ring
	numGenerators int
	maxDegree     int
	homogeneous   bool
	rng           *rand.Rand
	degreeDist    *degreeDist
}

func NewBinomialGenerator(ring *poly.Ring, numGenerators, maxDegree int, homogeneous bool, seed uint64) (*BinomialGenerator, error) {
	if numGenerators < 1 || maxDegree < 1 {
		return nil, fmt.Errorf("ideals: need at least one generator of degree at least one")
	}
	// one variable has a single monomial per degree, so a binomial
	// needs two degrees to draw from
	if ring.NumVars() == 1 && (homogeneous || maxDegree < 2) {
		return nil, fmt.Errorf("ideals: no distinct monomial pair exists in one variable with these degree constraints")
	}
	rng := rand.New(rand.NewSource(seed))
	return &BinomialGenerator{
		ring:          ring,
		numGenerators: numGenerators,
		maxDegree:     maxDegree,
		homogeneous:   homogeneous,
		rng:           rng,
		degreeDist:    newDegreeDist(ring.NumVars(), maxDegree, rng),
	}, nil
}

func (b *BinomialGenerator) Sample() []*poly.Polynomial {
	out := make([]*poly.Polynomial, b.numGenerators)
	negOne := b.ring.Modulus() - 1
	for i := range out {
		d1 := b.degreeDist.sample()
		d2 := d1
		if !b.homogeneous {
			d2 = b.degreeDist.sample()
		}
		m1 := randomMonomial(b.ring.NumVars(), d1, b.rng)
		m2 := randomMonomial(b.ring.NumVars(), d2, b.rng)
		for tries := 1; m1.Equal(m2); tries++ {
			// when a degree admits too few monomials the draw can
			// keep colliding, so periodically move the degree too
			if !b.homogeneous && tries%8 == 0 {
				d2 = b.degreeDist.sample()
			}
			m2 = randomMonomial(b.ring.NumVars(), d2, b.rng)
		}
		out[i] = poly.NewPolynomial(b.ring, []poly.Term{
			{Coeff: 1, Mon: m1},
			{Coeff: negOne, Mon: m2},
		})
	}
	return out
}

// PolynomialGenerator samples ideals generated by sparse random
// polynomials with up to MaxTerms terms of degree at most MaxDegree
type PolynomialGenerator struct {
	ring          *poly.Ring
	numGenerators int
	maxDegree     int
	maxTerms      int
	homogeneous   bool
	rng           *rand.Rand
	degreeDist    *degreeDist
}

func NewPolynomialGenerator(ring *poly.Ring, numGenerators, maxDegree, maxTerms int, homogeneous bool, seed uint64) (*PolynomialGenerator, error) {
	if numGenerators < 1 || maxDegree < 1 {
		return nil, fmt.Errorf("ideals: need at least one generator of degree at least one")
	}
	if maxTerms < 2 {
		return nil, fmt.Errorf("ideals: need at least two terms per generator")
	}
	rng := rand.New(rand.NewSource(seed))
	return &PolynomialGenerator{
		ring:          ring,
		numGenerators: numGenerators,
		maxDegree:     maxDegree,
		maxTerms:      maxTerms,
		homogeneous:   homogeneous,
		rng:           rng,
		degreeDist:    newDegreeDist(ring.NumVars(), maxDegree, rng),
	}, nil
}

func (p *PolynomialGenerator) Sample() []*poly.Polynomial {
	out := make([]*poly.Polynomial, p.numGenerators)
	for i := range out {
		numTerms := 2 + p.rng.Intn(p.maxTerms-1)
		terms := make([]poly.Term, 0, numTerms)
		lead := p.degreeDist.sample()
		for j := 0; j < numTerms; j++ {
			d := lead
			if !p.homogeneous && j > 0 {
				d = p.rng.Intn(lead + 1)
			}
			terms = append(terms, poly.Term{
				Coeff: 1 + uint32(p.rng.Intn(int(p.ring.Modulus()-1))),
				Mon:   randomMonomial(p.ring.NumVars(), d, p.rng),
			})
		}
		f := poly.NewPolynomial(p.ring, terms)
		if f.IsZero() {
			// cancellation is possible when monomials collide, retry
			i--
			continue
		}
		out[i] = f
	}
	return out
}

// degreeDist samples degrees in [1, maxDegree] weighted by the
// number of monomials of each degree
type degreeDist struct {
	weights  []float64
	weighted sampleuv.Weighted
}

func newDegreeDist(numVars, maxDegree int, rng *rand.Rand) *degreeDist {
	weights := make([]float64, maxDegree)
	for d := 1; d <= maxDegree; d++ {
		weights[d-1] = float64(countMonomials(numVars, d))
	}
	return &degreeDist{
		weights:  weights,
		weighted: sampleuv.NewWeighted(weights, rng),
	}
}

func (d *degreeDist) sample() int {
	i, ok := d.weighted.Take()
	if !ok {
		panic("ideals: degree distribution exhausted")
	}
	// Take zeroes the sampled weight, reinstate it
	d.weighted.ReweightAll(d.weights)
	return i + 1
}

// countMonomials returns the number of monomials of degree d in n
// variables, the binomial coefficient C(d+n-1, n-1)
func countMonomials(n, d int) int {
	num, den := 1, 1
	for i := 1; i < n; i++ {
		num *= d + i
		den *= i
	}
	return num / den
}

// randomMonomial draws a uniform monomial of degree exactly d by
// stars and bars: n-1 uniform cut points among d+n-1 slots
func randomMonomial(n, d int, rng *rand.Rand) poly.Monomial {
	if n == 1 {
		return poly.NewMonomial(d)
	}
	cuts := rng.Perm(d + n - 1)[: n-1 : n-1]
	sort.Ints(cuts)
	m := make(poly.Monomial, n)
	prev := -1
	for i, c := range cuts {
		m[i] = c - prev - 1
		prev = c
	}
	m[n-1] = d + n - 2 - prev
	return m
}
