package buchberger

import (
	"fmt"
	"sort"

	"github.com/iliailmer/deepgroebner/poly"
)

// Pair references two basis elements whose S-polynomial has not been
// processed yet. Always I < J.
type Pair struct {
	I int
	J int
}

// ElimStrategy selects which candidate pairs survive a basis update
type ElimStrategy int

const (
	// ElimNone keeps every candidate pair
	ElimNone ElimStrategy = iota
	// ElimLCM drops pairs whose lead monomials are coprime
	// (Buchberger's first criterion)
	ElimLCM
	// ElimGebauerMoeller applies the full Gebauer-Moeller update
	ElimGebauerMoeller
)

func ParseElimStrategy(name string) (ElimStrategy, error) {
	switch name {
	case "none":
		return ElimNone, nil
	case "lcm":
		return ElimLCM, nil
	case "gebauermoeller":
		return ElimGebauerMoeller, nil
	}
	return 0, fmt.Errorf("unknown elimination strategy %q", name)
}

func (s ElimStrategy) String() string {
	switch s {
	case ElimNone:
		return "none"
	case ElimLCM:
		return "lcm"
	case ElimGebauerMoeller:
		return "gebauermoeller"
	}
	return "unknown"
}

// updatePairs appends f to the basis and returns the new basis and
// pair queue. Surviving old pairs keep their relative order; new
// pairs are appended in increasing first-index order.
func updatePairs(ring *poly.Ring, G []*poly.Polynomial, P []Pair, f *poly.Polynomial, elim ElimStrategy) ([]*poly.Polynomial, []Pair) {
	t := len(G)
	lmf := f.LeadMonomial()
	lms := make([]poly.Monomial, t)
	for i, g := range G {
		lms[i] = g.LeadMonomial()
	}

	var fresh []Pair
	switch elim {
	case ElimNone:
		for i := 0; i < t; i++ {
			fresh = append(fresh, Pair{i, t})
		}
	case ElimLCM:
		for i := 0; i < t; i++ {
			if !lms[i].Coprime(lmf) {
				fresh = append(fresh, Pair{i, t})
			}
		}
	case ElimGebauerMoeller:
		P, fresh = gebauerMoeller(ring, lms, P, lmf)
	}

	return append(G, f), append(P, fresh...)
}

// gebauerMoeller prunes the existing queue against the new lead
// monomial and selects the minimal new pairs
func gebauerMoeller(ring *poly.Ring, lms []poly.Monomial, P []Pair, lmf poly.Monomial) ([]Pair, []Pair) {
	t := len(lms)

	// an old pair (i, j) survives unless lmf strictly refines its
	// lcm: lmf divides lcm(i, j) while both lcm(i, f) and lcm(j, f)
	// differ from lcm(i, j)
	kept := make([]Pair, 0, len(P))
	for _, p := range P {
		l := lms[p.I].LCM(lms[p.J])
		if !lmf.Divides(l) || lms[p.I].LCM(lmf).Equal(l) || lms[p.J].LCM(lmf).Equal(l) {
			kept = append(kept, p)
		}
	}

	// group candidate pairs (i, t) by their lcm with f
	groups := make(map[string][]int)
	mons := make(map[string]poly.Monomial)
	keys := make([]string, 0, t)
	for i := 0; i < t; i++ {
		l := lms[i].LCM(lmf)
		k := monKey(l)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
			mons[k] = l
		}
		groups[k] = append(groups[k], i)
	}

	// scan lcms in increasing ring order so divisors come first;
	// keep only minimal lcms, and of each surviving group keep the
	// lowest index unless some member is coprime to f
	sort.Slice(keys, func(a, b int) bool {
		return ring.Compare(mons[keys[a]], mons[keys[b]]) < 0
	})
	minimal := make([]poly.Monomial, 0)
	fresh := make([]Pair, 0)
	for _, k := range keys {
		l := mons[k]
		divisible := false
		for _, m := range minimal {
			if m.Divides(l) {
				divisible = true
				break
			}
		}
		if divisible {
			continue
		}
		minimal = append(minimal, l)
		coprime := false
		for _, i := range groups[k] {
			if lms[i].Coprime(lmf) {
				coprime = true
				break
			}
		}
		if !coprime {
			fresh = append(fresh, Pair{groups[k][0], t})
		}
	}
	sort.Slice(fresh, func(a, b int) bool { return fresh[a].I < fresh[b].I })
	return kept, fresh
}

func monKey(m poly.Monomial) string {
	bs := make([]byte, 0, len(m)*3)
	for _, e := range m {
		bs = append(bs, byte(e), byte(e>>8), ',')
	}
	return string(bs)
}
