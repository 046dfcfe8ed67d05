package poly

import (
	"sort"
	"strconv"
	"strings"
)

// Term is a coefficient together with a monomial
type Term struct {
	Coeff uint32
	Mon   Monomial
}

// Polynomial is an element of a Ring. Terms are kept strictly
// decreasing in the ring order with coefficients in [1, p).
// Polynomials are immutable, every operation returns a new one.
type Polynomial struct {
	ring  *Ring
	terms []Term
}

// NewPolynomial builds a polynomial from arbitrary terms,
// merging duplicates and dropping zero coefficients
func NewPolynomial(r *Ring, terms []Term) *Polynomial {
	merged := make([]Term, 0, len(terms))
	for _, t := range terms {
		c := t.Coeff % r.modulus
		if c == 0 {
			continue
		}
		merged = append(merged, Term{Coeff: c, Mon: t.Mon.Clone()})
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return r.Compare(merged[i].Mon, merged[j].Mon) > 0
	})
	out := merged[:0]
	for _, t := range merged {
		if len(out) > 0 && out[len(out)-1].Mon.Equal(t.Mon) {
			last := &out[len(out)-1]
			last.Coeff = r.addCoeff(last.Coeff, t.Coeff)
			continue
		}
		out = append(out, t)
	}
	final := make([]Term, 0, len(out))
	for _, t := range out {
		if t.Coeff != 0 {
			final = append(final, t)
		}
	}
	return &Polynomial{ring: r, terms: final}
}

// Zero returns the zero polynomial of the ring
func Zero(r *Ring) *Polynomial {
	return &Polynomial{ring: r}
}

func (p *Polynomial) Ring() *Ring {
	return p.ring
}

func (p *Polynomial) IsZero() bool {
	return len(p.terms) == 0
}

func (p *Polynomial) NumTerms() int {
	return len(p.terms)
}

// Terms returns a copy of the term list, decreasing in the ring order
func (p *Polynomial) Terms() []Term {
	ts := make([]Term, len(p.terms))
	for i, t := range p.terms {
		ts[i] = Term{Coeff: t.Coeff, Mon: t.Mon.Clone()}
	}
	return ts
}

// LeadTerm returns the largest term under the ring order.
// It must not be called on the zero polynomial.
func (p *Polynomial) LeadTerm() Term {
	if p.IsZero() {
		panic("poly: lead term of zero polynomial")
	}
	t := p.terms[0]
	return Term{Coeff: t.Coeff, Mon: t.Mon.Clone()}
}

func (p *Polynomial) LeadMonomial() Monomial {
	return p.LeadTerm().Mon
}

func (p *Polynomial) LeadCoeff() uint32 {
	if p.IsZero() {
		panic("poly: lead coefficient of zero polynomial")
	}
	return p.terms[0].Coeff
}

func (p *Polynomial) Degree() int {
	d := 0
	for _, t := range p.terms {
		if td := t.Mon.Degree(); td > d {
			d = td
		}
	}
	return d
}

func (p *Polynomial) Equal(other *Polynomial) bool {
	if len(p.terms) != len(other.terms) {
		return false
	}
	for i := range p.terms {
		if p.terms[i].Coeff != other.terms[i].Coeff || !p.terms[i].Mon.Equal(other.terms[i].Mon) {
			return false
		}
	}
	return true
}

// Add returns p + q, merging the two sorted term lists
func (p *Polynomial) Add(q *Polynomial) *Polynomial {
	r := p.ring
	out := make([]Term, 0, len(p.terms)+len(q.terms))
	i, j := 0, 0
	for i < len(p.terms) && j < len(q.terms) {
		cmp := r.Compare(p.terms[i].Mon, q.terms[j].Mon)
		switch {
		case cmp > 0:
			out = append(out, Term{Coeff: p.terms[i].Coeff, Mon: p.terms[i].Mon.Clone()})
			i++
		case cmp < 0:
			out = append(out, Term{Coeff: q.terms[j].Coeff, Mon: q.terms[j].Mon.Clone()})
			j++
		default:
			c := r.addCoeff(p.terms[i].Coeff, q.terms[j].Coeff)
			if c != 0 {
				out = append(out, Term{Coeff: c, Mon: p.terms[i].Mon.Clone()})
			}
			i++
			j++
		}
	}
	for ; i < len(p.terms); i++ {
		out = append(out, Term{Coeff: p.terms[i].Coeff, Mon: p.terms[i].Mon.Clone()})
	}
	for ; j < len(q.terms); j++ {
		out = append(out, Term{Coeff: q.terms[j].Coeff, Mon: q.terms[j].Mon.Clone()})
	}
	return &Polynomial{ring: r, terms: out}
}

func (p *Polynomial) Sub(q *Polynomial) *Polynomial {
	return p.Add(q.Neg())
}

func (p *Polynomial) Neg() *Polynomial {
	out := make([]Term, len(p.terms))
	for i, t := range p.terms {
		out[i] = Term{Coeff: p.ring.negCoeff(t.Coeff), Mon: t.Mon.Clone()}
	}
	return &Polynomial{ring: p.ring, terms: out}
}

// MulTerm returns p multiplied by a single term. Multiplying by a
// monomial preserves the term order, so no re-sort is needed.
func (p *Polynomial) MulTerm(t Term) *Polynomial {
	c := t.Coeff % p.ring.modulus
	if c == 0 {
		return Zero(p.ring)
	}
	out := make([]Term, 0, len(p.terms))
	for _, pt := range p.terms {
		nc := p.ring.mulCoeff(pt.Coeff, c)
		if nc != 0 {
			out = append(out, Term{Coeff: nc, Mon: pt.Mon.Mul(t.Mon)})
		}
	}
	return &Polynomial{ring: p.ring, terms: out}
}

// Monic returns p scaled so its lead coefficient is 1
func (p *Polynomial) Monic() *Polynomial {
	if p.IsZero() || p.LeadCoeff() == 1 {
		return p
	}
	one := make(Monomial, p.ring.NumVars())
	return p.MulTerm(Term{Coeff: p.ring.invCoeff(p.terms[0].Coeff), Mon: one})
}

// SPolynomial cancels the lead terms of f and g:
// S(f,g) = (lcm/ltf)*f - (lcm/ltg)*g
func SPolynomial(f, g *Polynomial) *Polynomial {
	r := f.ring
	lf, lg := f.LeadTerm(), g.LeadTerm()
	l := lf.Mon.LCM(lg.Mon)
	tf := Term{Coeff: r.invCoeff(lf.Coeff), Mon: lf.Mon.Quo(l)}
	tg := Term{Coeff: r.invCoeff(lg.Coeff), Mon: lg.Mon.Quo(l)}
	return f.MulTerm(tf).Sub(g.MulTerm(tg))
}

// ReduceStats carries counters from a single reduction
type ReduceStats struct {
	// number of polynomial subtractions performed
	Additions int
	// number of lead terms moved to the remainder
	TailTerms int
}

// Reduce computes the remainder of f under multivariate division
// by the polynomials in G, iterating G in index order. The returned
// remainder has no term divisible by any lead monomial in G.
func Reduce(f *Polynomial, G []*Polynomial) (*Polynomial, ReduceStats) {
	r := f.ring
	stats := ReduceStats{}
	rem := make([]Term, 0)
	h := f
	for !h.IsZero() {
		lt := h.LeadTerm()
		divided := false
		for _, g := range G {
			if g.IsZero() {
				continue
			}
			glt := g.terms[0]
			if glt.Mon.Divides(lt.Mon) {
				q := Term{
					Coeff: r.mulCoeff(lt.Coeff, r.invCoeff(glt.Coeff)),
					Mon:   glt.Mon.Quo(lt.Mon),
				}
				h = h.Sub(g.MulTerm(q))
				stats.Additions++
				divided = true
				break
			}
		}
		if !divided {
			rem = append(rem, lt)
			stats.TailTerms++
			h = &Polynomial{ring: r, terms: h.terms[1:]}
		}
	}
	return &Polynomial{ring: r, terms: rem}, stats
}

// String renders the polynomial with variables of its ring,
// e.g. "x^2 + 3*x*y + 1"
func (p *Polynomial) String() string {
	if p.IsZero() {
		return "0"
	}
	parts := make([]string, 0, len(p.terms))
	for _, t := range p.terms {
		parts = append(parts, p.ring.termString(t))
	}
	return strings.Join(parts, " + ")
}

func (r *Ring) termString(t Term) string {
	factors := make([]string, 0, len(t.Mon)+1)
	if t.Coeff != 1 || t.Mon.IsOne() {
		factors = append(factors, strconv.FormatUint(uint64(t.Coeff), 10))
	}
	for i, e := range t.Mon {
		switch {
		case e == 1:
			factors = append(factors, r.vars[i])
		case e > 1:
			factors = append(factors, r.vars[i]+"^"+strconv.Itoa(e))
		}
	}
	return strings.Join(factors, "*")
}
