package poly

import (
	"errors"
	"fmt"
)

var ErrDegenerateRing = errors.New("degenerate ring")

// Ring is a polynomial ring over the prime field F_p
// with a fixed monomial order
type Ring struct {
	vars    []string
	modulus uint32
	order   Order
}

// NewRing constructs a ring. The order name must be one of
// "lex", "grlex" or "grevlex" and the modulus must be prime.
func NewRing(vars []string, modulus uint32, orderName string) (*Ring, error) {
	if len(vars) == 0 {
		return nil, fmt.Errorf("%w: no variables", ErrDegenerateRing)
	}
	seen := make(map[string]bool)
	for _, v := range vars {
		if v == "" || seen[v] {
			return nil, fmt.Errorf("%w: bad variable name %q", ErrDegenerateRing, v)
		}
		seen[v] = true
	}
	if !isPrime(modulus) {
		return nil, fmt.Errorf("%w: modulus %d is not prime", ErrDegenerateRing, modulus)
	}
	order, err := ParseOrder(orderName)
	if err != nil {
		return nil, err
	}
	vs := make([]string, len(vars))
	copy(vs, vars)
	return &Ring{vars: vs, modulus: modulus, order: order}, nil
}

// DefaultVars returns conventional variable names for n variables,
// x,y,z for up to three and x1..xn otherwise
func DefaultVars(n int) []string {
	if n <= 3 {
		return []string{"x", "y", "z"}[:n]
	}
	vars := make([]string, n)
	for i := range vars {
		vars[i] = fmt.Sprintf("x%d", i+1)
	}
	return vars
}

func (r *Ring) NumVars() int {
	return len(r.vars)
}

func (r *Ring) Vars() []string {
	vs := make([]string, len(r.vars))
	copy(vs, r.vars)
	return vs
}

func (r *Ring) Modulus() uint32 {
	return r.modulus
}

func (r *Ring) Order() Order {
	return r.order
}

func (r *Ring) Compare(a, b Monomial) int {
	return r.order.Compare(a, b)
}

func (r *Ring) String() string {
	return fmt.Sprintf("F%d%v over %s", r.modulus, r.vars, r.order)
}

// coefficient arithmetic in F_p

func (r *Ring) addCoeff(a, b uint32) uint32 {
	return uint32((uint64(a) + uint64(b)) % uint64(r.modulus))
}

func (r *Ring) subCoeff(a, b uint32) uint32 {
	return uint32((uint64(a) + uint64(r.modulus) - uint64(b)) % uint64(r.modulus))
}

func (r *Ring) mulCoeff(a, b uint32) uint32 {
	return uint32(uint64(a) * uint64(b) % uint64(r.modulus))
}

func (r *Ring) negCoeff(a uint32) uint32 {
	if a == 0 {
		return 0
	}
	return r.modulus - a
}

// invCoeff computes the inverse by Fermat, a^(p-2) mod p
func (r *Ring) invCoeff(a uint32) uint32 {
	return r.powCoeff(a, uint64(r.modulus)-2)
}

func (r *Ring) powCoeff(a uint32, e uint64) uint32 {
	result := uint64(1)
	base := uint64(a) % uint64(r.modulus)
	for e > 0 {
		if e&1 == 1 {
			result = result * base % uint64(r.modulus)
		}
		base = base * base % uint64(r.modulus)
		e >>= 1
	}
	return uint32(result)
}

// normCoeff maps an arbitrary signed integer into [0, p)
func (r *Ring) normCoeff(c int64) uint32 {
	p := int64(r.modulus)
	c %= p
	if c < 0 {
		c += p
	}
	return uint32(c)
}

func isPrime(n uint32) bool {
	if n < 2 {
		return false
	}
	for d := uint64(2); d*d <= uint64(n); d++ {
		if uint64(n)%d == 0 {
			return false
		}
	}
	return true
}
