package poly

// Monomial is an exponent vector, one entry per ring variable
type Monomial []int

func NewMonomial(exps ...int) Monomial {
	m := make(Monomial, len(exps))
	copy(m, exps)
	return m
}

func (m Monomial) Degree() int {
	d := 0
	for _, e := range m {
		d += e
	}
	return d
}

func (m Monomial) Clone() Monomial {
	c := make(Monomial, len(m))
	copy(c, m)
	return c
}

func (m Monomial) Equal(other Monomial) bool {
	if len(m) != len(other) {
		return false
	}
	for i := range m {
		if m[i] != other[i] {
			return false
		}
	}
	return true
}

// Mul returns the product, i.e. the component-wise sum of exponents
func (m Monomial) Mul(other Monomial) Monomial {
	p := make(Monomial, len(m))
	for i := range m {
		p[i] = m[i] + other[i]
	}
	return p
}

// LCM returns the component-wise maximum of exponents
func (m Monomial) LCM(other Monomial) Monomial {
	l := make(Monomial, len(m))
	for i := range m {
		if m[i] >= other[i] {
			l[i] = m[i]
		} else {
			l[i] = other[i]
		}
	}
	return l
}

func (m Monomial) Divides(other Monomial) bool {
	for i := range m {
		if m[i] > other[i] {
			return false
		}
	}
	return true
}

// Quo returns other with m divided out, valid only when m divides other
func (m Monomial) Quo(other Monomial) Monomial {
	q := make(Monomial, len(m))
	for i := range m {
		q[i] = other[i] - m[i]
	}
	return q
}

// Coprime reports whether the two monomials share no variable
func (m Monomial) Coprime(other Monomial) bool {
	for i := range m {
		if m[i] > 0 && other[i] > 0 {
			return false
		}
	}
	return true
}

func (m Monomial) IsOne() bool {
	for _, e := range m {
		if e != 0 {
			return false
		}
	}
	return true
}
