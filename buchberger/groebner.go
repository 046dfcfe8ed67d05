package buchberger

import "github.com/iliailmer/deepgroebner/poly"

// IsGroebner reports whether every S-polynomial of G reduces to zero
// modulo G, i.e. whether G is a Groebner basis
func IsGroebner(G []*poly.Polynomial) bool {
	for i := 0; i < len(G); i++ {
		for j := i + 1; j < len(G); j++ {
			rem, _ := poly.Reduce(poly.SPolynomial(G[i], G[j]), G)
			if !rem.IsZero() {
				return false
			}
		}
	}
	return true
}

// Minimalize drops redundant generators: elements whose lead
// monomial is divisible by the lead monomial of another kept element
func Minimalize(G []*poly.Polynomial) []*poly.Polynomial {
	kept := make([]*poly.Polynomial, 0, len(G))
	for i, g := range G {
		redundant := false
		for j, h := range G {
			if i == j {
				continue
			}
			if !h.LeadMonomial().Divides(g.LeadMonomial()) {
				continue
			}
			// on equal lead monomials keep the earlier element
			if g.LeadMonomial().Equal(h.LeadMonomial()) && i < j {
				continue
			}
			redundant = true
			break
		}
		if !redundant {
			kept = append(kept, g.Monic())
		}
	}
	return kept
}

// Interreduce fully reduces every element of G by the others,
// producing the unique reduced Groebner basis when G is minimal
func Interreduce(G []*poly.Polynomial) []*poly.Polynomial {
	out := make([]*poly.Polynomial, len(G))
	copy(out, G)
	for i := range out {
		others := make([]*poly.Polynomial, 0, len(out)-1)
		for j, g := range out {
			if j != i {
				others = append(others, g)
			}
		}
		rem, _ := poly.Reduce(out[i], others)
		if !rem.IsZero() {
			out[i] = rem.Monic()
		}
	}
	return out
}
