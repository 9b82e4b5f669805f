package domain

// ConditionKind is the variant of a Condition.
type ConditionKind uint8

const (
	ConditionNever ConditionKind = iota
	ConditionAlways
	ConditionWhen
)

// Condition is a static or state-derived predicate, such as whether a button
// is disabled. The zero Condition is Never.
type Condition struct {
	kind ConditionKind
	pred func(*State) bool
}

var (
	Never  = Condition{kind: ConditionNever}
	Always = Condition{kind: ConditionAlways}
)

// When derives the condition from the state. A nil predicate is Never.
func When(pred func(*State) bool) Condition {
	if pred == nil {
		return Never
	}
	return Condition{kind: ConditionWhen, pred: pred}
}

// Static maps a constant to Always or Never.
func Static(b bool) Condition {
	if b {
		return Always
	}
	return Never
}

func (c Condition) Kind() ConditionKind { return c.kind }

// Eval evaluates the condition against s.
func (c Condition) Eval(s *State) bool {
	switch c.kind {
	case ConditionAlways:
		return true
	case ConditionWhen:
		return c.pred(s)
	default:
		return false
	}
}
