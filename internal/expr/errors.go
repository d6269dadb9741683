package expr

import "errors"

var (
	// ErrMissingBinding is returned when an environment has no value for a leaf name.
	ErrMissingBinding = errors.New("missing binding")

	// ErrDomain is returned when an operator is evaluated outside its domain,
	// such as the logarithm of a non-positive value.
	ErrDomain = errors.New("domain error")

	// ErrUnsupportedOperand is returned when a dynamic value is neither a number nor a node.
	ErrUnsupportedOperand = errors.New("unsupported operand type")
)
