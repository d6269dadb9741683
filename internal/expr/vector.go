package expr

import "fmt"

// Vector is a dense gradient, one entry per declared leaf in declaration order.
type Vector []float64

// Zeros returns a zero gradient of length n.
func Zeros(n int) Vector {
	return make(Vector, n)
}

// OneHot returns a gradient of length n with a single 1 at index.
// A new vector is allocated on every call.
func OneHot(index, n int) Vector {
	if index < 0 || index >= n {
		panic(fmt.Sprintf("one-hot index %d out of range for %d leaves", index, n))
	}
	v := make(Vector, n)
	v[index] = 1
	return v
}

// Len returns the number of entries.
func (v Vector) Len() int {
	return len(v)
}

// Clone returns a copy of the vector.
func (v Vector) Clone() Vector {
	clone := make(Vector, len(v))
	copy(clone, v)
	return clone
}

// Pad returns v extended with zeros to length n.
// Missing trailing entries are leaves declared after v was produced.
func (v Vector) Pad(n int) Vector {
	if len(v) >= n {
		return v
	}
	out := make(Vector, n)
	copy(out, v)
	return out
}

// Add returns the element-wise sum. The shorter operand is treated as
// zero-extended, which only happens when a leaf is declared mid-call.
func (v Vector) Add(other Vector) Vector {
	n := max(len(v), len(other))
	out := make(Vector, n)
	copy(out, v)
	for i, x := range other {
		out[i] += x
	}
	return out
}

// Scale returns v multiplied by s.
func (v Vector) Scale(s float64) Vector {
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = x * s
	}
	return out
}

// Equal reports whether both vectors have the same length and entries.
func (v Vector) Equal(other Vector) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if v[i] != other[i] {
			return false
		}
	}
	return true
}
