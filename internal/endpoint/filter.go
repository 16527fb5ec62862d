package endpoint

import (
	"fmt"

	"github.com/iudanet/possync/internal/validation"
)

// Operator is a comparison supported by every TableStore
type Operator string

const (
	// OpEq matches rows where column = value
	OpEq Operator = "eq"
	// OpGt matches rows where column > value
	OpGt Operator = "gt"
)

// Filter is a single-column predicate
type Filter struct {
	Value  any
	Column string
	Op     Operator
}

// Eq builds a column = value filter
func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

// Gt builds a column > value filter
func Gt(column string, value any) Filter {
	return Filter{Column: column, Op: OpGt, Value: value}
}

// Validate checks that the filter can be rendered safely
func (f Filter) Validate() error {
	if err := validation.ValidateColumnName(f.Column); err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}
	switch f.Op {
	case OpEq, OpGt:
		return nil
	default:
		return fmt.Errorf("invalid filter: unsupported operator %q", f.Op)
	}
}

// SQL returns the SQL comparison operator
func (o Operator) SQL() string {
	if o == OpGt {
		return ">"
	}
	return "="
}

// String implements fmt.Stringer
func (f Filter) String() string {
	return fmt.Sprintf("%s %s %v", f.Column, f.Op, f.Value)
}
