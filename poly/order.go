package poly

import (
	"errors"
	"fmt"
)

// Order is a monomial order on exponent vectors
type Order int

const (
	Lex Order = iota
	GrLex
	GrevLex
)

var ErrUnsupportedOrder = errors.New("unsupported monomial order")

// ParseOrder maps an order name to an Order
func ParseOrder(name string) (Order, error) {
	switch name {
	case "lex":
		return Lex, nil
	case "grlex":
		return GrLex, nil
	case "grevlex":
		return GrevLex, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedOrder, name)
}

func (o Order) String() string {
	switch o {
	case Lex:
		return "lex"
	case GrLex:
		return "grlex"
	case GrevLex:
		return "grevlex"
	}
	return "unknown"
}

// Compare returns a positive value if a > b under the order,
// a negative value if a < b and 0 if they are equal
func (o Order) Compare(a, b Monomial) int {
	switch o {
	case Lex:
		return lexCompare(a, b)
	case GrLex:
		if d := a.Degree() - b.Degree(); d != 0 {
			return d
		}
		return lexCompare(a, b)
	case GrevLex:
		if d := a.Degree() - b.Degree(); d != 0 {
			return d
		}
		// ties broken on the last differing exponent,
		// smaller exponent wins
		for i := len(a) - 1; i >= 0; i-- {
			if a[i] != b[i] {
				return b[i] - a[i]
			}
		}
		return 0
	}
	return 0
}

func lexCompare(a, b Monomial) int {
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			return a[i] - b[i]
		}
	}
	return 0
}
