package poly

import (
	"fmt"
	"strconv"
	"unicode"
)

// Parse reads a polynomial expression such as "x^2 - y" or
// "3*x*y^2 + 2". Variables must belong to the ring; adjacent
// single-letter variables may be written without "*", e.g. "xy".
func (r *Ring) Parse(expr string) (*Polynomial, error) {
	toks, err := tokenize(expr)
	if err != nil {
		return nil, err
	}
	terms := make([]Term, 0)
	i := 0
	sign := int64(1)
	for i < len(toks) {
		switch toks[i] {
		case "+":
			sign = 1
			i++
			continue
		case "-":
			sign = -1
			i++
			continue
		}
		t, next, err := r.parseTerm(toks, i)
		if err != nil {
			return nil, err
		}
		t.Coeff = r.mulCoeff(t.Coeff, r.normCoeff(sign))
		terms = append(terms, t)
		sign = 1
		i = next
	}
	return NewPolynomial(r, terms), nil
}

// MustParse is Parse that panics on error, for tests and fixed setups
func (r *Ring) MustParse(expr string) *Polynomial {
	p, err := r.Parse(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// parseTerm consumes factors until the next +/- or the end
func (r *Ring) parseTerm(toks []string, i int) (Term, int, error) {
	coeff := int64(1)
	mon := make(Monomial, r.NumVars())
	sawFactor := false
	for i < len(toks) && toks[i] != "+" && toks[i] != "-" {
		tok := toks[i]
		if tok == "*" {
			i++
			continue
		}
		if c, err := strconv.ParseInt(tok, 10, 64); err == nil {
			coeff *= c
			sawFactor = true
			i++
			continue
		}
		vars, err := r.splitVars(tok)
		if err != nil {
			return Term{}, 0, err
		}
		// an exponent applies to the last variable of the identifier
		exp := 1
		if i+1 < len(toks) && toks[i+1] == "^" {
			if i+2 >= len(toks) {
				return Term{}, 0, fmt.Errorf("poly: missing exponent after %q", tok)
			}
			e, err := strconv.Atoi(toks[i+2])
			if err != nil || e < 0 {
				return Term{}, 0, fmt.Errorf("poly: bad exponent %q", toks[i+2])
			}
			exp = e
			i += 2
		}
		for k, v := range vars {
			if k == len(vars)-1 {
				mon[r.varIndex(v)] += exp
			} else {
				mon[r.varIndex(v)]++
			}
		}
		sawFactor = true
		i++
	}
	if !sawFactor {
		return Term{}, 0, fmt.Errorf("poly: empty term")
	}
	return Term{Coeff: r.normCoeff(coeff), Mon: mon}, i, nil
}

// splitVars resolves an identifier either as a single ring variable
// or as a run of single-letter variables written without "*"
func (r *Ring) splitVars(ident string) ([]string, error) {
	if r.varIndex(ident) >= 0 {
		return []string{ident}, nil
	}
	vars := make([]string, 0, len(ident))
	for _, c := range ident {
		v := string(c)
		if r.varIndex(v) < 0 {
			return nil, fmt.Errorf("poly: unknown variable %q", ident)
		}
		vars = append(vars, v)
	}
	return vars, nil
}

func (r *Ring) varIndex(name string) int {
	for i, v := range r.vars {
		if v == name {
			return i
		}
	}
	return -1
}

func tokenize(expr string) ([]string, error) {
	toks := make([]string, 0)
	rs := []rune(expr)
	i := 0
	for i < len(rs) {
		c := rs[i]
		switch {
		case unicode.IsSpace(c):
			i++
		case c == '+' || c == '-' || c == '*' || c == '^':
			toks = append(toks, string(c))
			i++
		case unicode.IsDigit(c):
			j := i
			for j < len(rs) && unicode.IsDigit(rs[j]) {
				j++
			}
			toks = append(toks, string(rs[i:j]))
			i = j
		case unicode.IsLetter(c):
			j := i
			for j < len(rs) && (unicode.IsLetter(rs[j]) || unicode.IsDigit(rs[j])) {
				j++
			}
			toks = append(toks, string(rs[i:j]))
			i = j
		default:
			return nil, fmt.Errorf("poly: unexpected character %q in %q", c, expr)
		}
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("poly: empty expression")
	}
	return toks, nil
}
