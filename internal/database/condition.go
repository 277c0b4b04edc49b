package database

type Operator int

const (
	OpLt Operator = iota
	OpGt
	OpEq
	OpAnd
	OpOr
	OpIsNull
	OpIsTrue
	OpLike
)

func (o Operator) String() string {
	switch o {
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpEq:
		return "="
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	case OpIsNull:
		return "IS NULL"
	case OpIsTrue:
		return "IS TRUE"
	case OpLike:
		return "LIKE"
	default:
		return "?"
	}
}

// Condition is a WHERE predicate tree. It is either a *Comparison or a
// *Logical; each node owns its children.
type Condition interface {
	condition()
}

// Comparison tests one column against an optional literal.
type Comparison struct {
	Column string
	Op     Operator
	Value  *string
}

// Logical combines two conditions with AND or OR.
type Logical struct {
	Left  Condition
	Op    Operator
	Right Condition
}

func (*Comparison) condition() {}
func (*Logical) condition()    {}

type ConditionEvaluator struct {
	table *Table
}

func NewConditionEvaluator(table *Table) *ConditionEvaluator {
	return &ConditionEvaluator{table: table}
}

func (e *ConditionEvaluator) Evaluate(row Row, cond Condition) (bool, error) {
	switch c := cond.(type) {
	case *Comparison:
		return e.compare(row, c)
	case *Logical:
		// no short-circuit: evaluation has no side effects and errors in
		// either branch must surface
		left, err := e.Evaluate(row, c.Left)
		if err != nil {
			return false, err
		}
		right, err := e.Evaluate(row, c.Right)
		if err != nil {
			return false, err
		}
		switch c.Op {
		case OpAnd:
			return left && right, nil
		case OpOr:
			return left || right, nil
		}
		return false, newError(ErrUnsupportedOperator, "%s cannot join two conditions", c.Op)
	default:
		return false, newError(ErrUnsupportedOperator, "unsupported condition %T", cond)
	}
}

func (e *ConditionEvaluator) compare(row Row, c *Comparison) (bool, error) {
	col, err := e.table.Column(c.Column)
	if err != nil {
		return false, err
	}
	stored := row[col.Name]

	switch c.Op {
	case OpIsNull:
		return stored == NullValue, nil
	case OpLike:
		if c.Value == nil {
			return false, newError(ErrTypeMismatch, "LIKE on %s needs a pattern", col.Name)
		}
		if stored == NullValue {
			return false, nil
		}
		return matchLike(stored, *c.Value), nil
	case OpLt, OpGt, OpEq:
	default:
		return false, newError(ErrUnsupportedOperator, "%s is not a comparison", c.Op)
	}

	if c.Value == nil {
		return false, newError(ErrTypeMismatch, "%s on %s needs a value", c.Op, col.Name)
	}
	if col.DataType == TypeInvalid {
		return false, newError(ErrUnsupportedDataType, "column %s has no usable type", col.Name)
	}
	if _, err := parseCell(col.DataType, *c.Value); err != nil {
		return false, err
	}
	if stored == NullValue {
		return false, nil
	}

	order, err := compareValues(col.DataType, stored, *c.Value)
	if err != nil {
		return false, err
	}
	switch c.Op {
	case OpLt:
		return order < 0, nil
	case OpGt:
		return order > 0, nil
	default:
		return order == 0, nil
	}
}

// matchLike implements SQL LIKE: % matches any run of characters, _ exactly
// one. Matching is case-sensitive.
func matchLike(value, pattern string) bool {
	v := []rune(value)
	p := []rune(pattern)

	vi, pi := 0, 0
	star, mark := -1, 0
	for vi < len(v) {
		switch {
		case pi < len(p) && p[pi] == '%':
			star = pi
			mark = vi
			pi++
		case pi < len(p) && (p[pi] == '_' || p[pi] == v[vi]):
			vi++
			pi++
		case star >= 0:
			pi = star + 1
			mark++
			vi = mark
		default:
			return false
		}
	}
	for pi < len(p) && p[pi] == '%' {
		pi++
	}
	return pi == len(p)
}
