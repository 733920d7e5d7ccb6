// Package identity compares user identifiers that may arrive in different
// numeric representations. A user ID surfaces as an int64 from the database,
// as a float64 or string from decoded JWT claims and JSON bodies, and as a
// path segment string from the router; comparing those with == silently
// reports "different user" for equal values. All ownership checks go through
// Same instead.
package identity

import (
	"encoding/json"
	"math"
	"math/big"
	"strings"
)

type kind int

const (
	kindNone kind = iota
	kindInt
	kindText
	kindWide
)

// Ref is one identifier value in whatever representation it arrived in.
// Construct via None, Int64, Text, Wide or FromAny.
type Ref struct {
	kind kind
	num  int64
	text string
	wide *big.Int
}

// None is the absent identifier (unauthenticated viewer).
func None() Ref { return Ref{} }

// Int64 wraps a native integer identifier.
func Int64(v int64) Ref { return Ref{kind: kindInt, num: v} }

// Text wraps a decimal-string identifier, e.g. a URL path segment.
func Text(s string) Ref { return Ref{kind: kindText, text: s} }

// Wide wraps an arbitrary-precision identifier. A nil value is absent.
func Wide(b *big.Int) Ref {
	if b == nil {
		return Ref{}
	}
	return Ref{kind: kindWide, wide: b}
}

// FromAny converts a dynamically typed value into a Ref. Values that cannot
// denote an integer identifier (nil, fractional floats, non-numeric types)
// come back absent and therefore never compare equal.
func FromAny(v any) Ref {
	switch t := v.(type) {
	case nil:
		return None()
	case int:
		return Int64(int64(t))
	case int32:
		return Int64(int64(t))
	case int64:
		return Int64(t)
	case uint:
		return Wide(new(big.Int).SetUint64(uint64(t)))
	case uint64:
		return Wide(new(big.Int).SetUint64(t))
	case float64:
		// JSON numbers decode as float64; accept only integral values.
		if math.IsNaN(t) || math.IsInf(t, 0) || t != math.Trunc(t) {
			return None()
		}
		return Int64(int64(t))
	case json.Number:
		return Text(string(t))
	case string:
		return Text(t)
	case *big.Int:
		return Wide(t)
	case *int64:
		if t == nil {
			return None()
		}
		return Int64(*t)
	default:
		return None()
	}
}

// normalize coerces the value to an integer. Returns false for absent values
// and for text that is not a plain decimal integer.
func (r Ref) normalize() (*big.Int, bool) {
	switch r.kind {
	case kindInt:
		return big.NewInt(r.num), true
	case kindWide:
		return r.wide, true
	case kindText:
		s := strings.TrimSpace(r.text)
		if s == "" {
			return nil, false
		}
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, false
		}
		return n, true
	default:
		return nil, false
	}
}

// Same reports whether a and b denote the same entity, comparing by numeric
// value rather than representation. Either side absent or not coercible to an
// integer yields false; it never panics. Zero is an ordinary identifier and
// compares equal to itself.
func Same(a, b Ref) bool {
	na, ok := a.normalize()
	if !ok {
		return false
	}
	nb, ok := b.normalize()
	if !ok {
		return false
	}
	return na.Cmp(nb) == 0
}
