package finder

import "errors"

var (
	// ErrUnsupported reports a construct the resolver has no insertion rule for,
	// such as a qualified name leading a throws clause.
	ErrUnsupported = errors.New("unsupported construct")
	// ErrStructure reports a tree shape that well-formed input never produces.
	ErrStructure = errors.New("structural inconsistency")
	// ErrSource reports a failure to read the raw source text.
	ErrSource = errors.New("source unavailable")
)
