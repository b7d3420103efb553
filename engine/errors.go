package engine

import (
	"fmt"
)

// PreconditionError reports that a node did not have the shape a policy requires.
type PreconditionError struct {
	Expected string
	Actual   string
	Context  string
}

func (e *PreconditionError) Error() string {
	if e.Actual == "" {
		return fmt.Sprintf("%s: expected %s", e.Context, e.Expected)
	}
	return fmt.Sprintf("%s: expected %s, got %s", e.Context, e.Expected, e.Actual)
}

// InsertionReason tells why no insertion point was found.
type InsertionReason int

const (
	NoBlock InsertionReason = iota + 1
	NoPivot
	PivotOutsideBlock
)

func (r InsertionReason) String() string {
	switch r {
	case NoBlock:
		return "no enclosing block"
	case NoPivot:
		return "no enclosing expression, return or throw statement"
	case PivotOutsideBlock:
		return "statement is not directly inside the enclosing block"
	}
	return "unknown"
}

// InsertionError reports a structural mismatch at an insertion anchor.
type InsertionError struct {
	Reason InsertionReason
	Anchor string
	Line   int
}

func (e *InsertionError) Error() string {
	return fmt.Sprintf("cannot insert before %s at line %d: %v", e.Anchor, e.Line, e.Reason)
}

// CollisionError reports a reference to a binding declared outside the
// scope a new binding would be introduced in.
type CollisionError struct {
	Name string
	Line int
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("%s at line %d refers to an outer binding and would be shadowed", e.Name, e.Line)
}
