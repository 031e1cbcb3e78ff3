package mdcver

import "fmt"

// Op is a comparison operator for Compare. It is a closed enumeration: the
// set of operators is fixed and known at every call site, so an out of range
// value is a programming error, not a runtime condition.
type Op int

const (
	Eq Op = iota // ==
	NE           // !=
	GT           // >
	GE           // >=
	LT           // <
	LE           // <=
)

var opNames = map[Op]string{
	Eq: "==",
	NE: "!=",
	GT: ">",
	GE: ">=",
	LT: "<",
	LE: "<=",
}

func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// Compare reports whether "a op b" holds under the lexicographic component
// order. It panics on an Op outside the closed set, since no caller can
// meaningfully recover from a malformed closed-set argument.
func Compare(a Version, op Op, b Version) bool {
	res := a.Cmp(b)
	switch op {
	case Eq:
		return res == 0
	case NE:
		return res != 0
	case GT:
		return res > 0
	case GE:
		return res >= 0
	case LT:
		return res < 0
	case LE:
		return res <= 0
	}
	panic(fmt.Sprintf("mdcver: invalid comparison operator %s", op))
}

// CompareValues is a convenience form of Compare that builds the right hand
// operand from scalar components, for ad hoc checks like "is this pool's
// version >= 1.2.0.0". It carries no logic of its own.
func CompareValues(a Version, op Op, major, minor, patch, dev uint16) bool {
	return Compare(a, op, Version{Major: major, Minor: minor, Patch: patch, Dev: dev})
}
