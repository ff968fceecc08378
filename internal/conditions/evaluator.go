package conditions

// OperatorHandler evaluates one condition operator against a field value
// and the rule's target value.
type OperatorHandler interface {
	Check(fieldValue, ruleValue Value) bool
}

var operatorHandlers = map[Operator]OperatorHandler{
	OpEquals:      equalsHandler{},
	OpNotEquals:   notEqualsHandler{},
	OpContains:    containsHandler{},
	OpGreaterThan: numericCompareHandler{cmp: func(a, b float64) bool { return a > b }},
	OpLessThan:    numericCompareHandler{cmp: func(a, b float64) bool { return a < b }},
	OpIsEmpty:     isEmptyHandler{},
	OpIsNotEmpty:  isNotEmptyHandler{},
}

type equalsHandler struct{}

func (equalsHandler) Check(fieldValue, ruleValue Value) bool {
	return fieldValue.Equal(ruleValue)
}

type notEqualsHandler struct{}

func (notEqualsHandler) Check(fieldValue, ruleValue Value) bool {
	return !fieldValue.Equal(ruleValue)
}

type containsHandler struct{}

func (containsHandler) Check(fieldValue, ruleValue Value) bool {
	return fieldValue.Contains(ruleValue)
}

type numericCompareHandler struct {
	cmp func(a, b float64) bool
}

// Check coerces both sides to float64. NaN comparisons are always false, so
// non-numeric operands fail closed without special-casing.
func (h numericCompareHandler) Check(fieldValue, ruleValue Value) bool {
	return h.cmp(fieldValue.AsNumber(), ruleValue.AsNumber())
}

type isEmptyHandler struct{}

func (isEmptyHandler) Check(fieldValue, _ Value) bool {
	return fieldValue.IsEmpty()
}

type isNotEmptyHandler struct{}

func (isNotEmptyHandler) Check(fieldValue, _ Value) bool {
	return !fieldValue.IsEmpty()
}

// Engine evaluates declarative field conditions against current form values.
// It is stateless and safe for concurrent use; construct one and pass it
// explicitly to every consumer that needs it.
type Engine struct{}

// NewEngine returns a condition evaluation engine.
func NewEngine() *Engine {
	return &Engine{}
}

// EvaluateRules reports whether the rule list passes for the given values.
// An empty or nil list passes vacuously.
//
// The combination policy is intentionally asymmetric and is preserved for
// compatibility with the form templates already persisted by this system:
//
//  1. A single leaf rule returns its own result directly.
//  2. Otherwise all top-level leaf results are computed first.
//  3. Groups are then processed in list order. An "and" group that is false
//     short-circuits the whole evaluation to false; an "or" group that is
//     true short-circuits to true. The first short-circuiting group wins.
//  4. If no group short-circuits, the result is the conjunction of the leaf
//     results only. Non-short-circuiting group outcomes are computed and
//     then discarded; they never feed the final conjunction.
func (e *Engine) EvaluateRules(rules []Rule, values FormValues) bool {
	if len(rules) == 0 {
		return true
	}
	if len(rules) == 1 && !rules[0].IsGroup() {
		return e.evaluateLeaf(rules[0], values)
	}

	leafResults := make([]bool, 0, len(rules))
	for _, rule := range rules {
		if !rule.IsGroup() {
			leafResults = append(leafResults, e.evaluateLeaf(rule, values))
		}
	}

	for _, rule := range rules {
		if !rule.IsGroup() {
			continue
		}
		logic := rule.Logic
		if logic == "" {
			logic = LogicAnd
		}
		nested := e.evaluateGroup(rule.Rules, logic, values)
		if logic == LogicAnd && !nested {
			return false
		}
		if logic == LogicOr && nested {
			return true
		}
	}

	for _, ok := range leafResults {
		if !ok {
			return false
		}
	}
	return true
}

// evaluateGroup combines a group's nested rules with the group's own logic:
// "and" requires every member, "or" requires at least one. Nested groups
// recurse with their own logic.
func (e *Engine) evaluateGroup(rules []Rule, logic Logic, values FormValues) bool {
	if len(rules) == 0 {
		return true
	}
	for _, rule := range rules {
		var res bool
		if rule.IsGroup() {
			nestedLogic := rule.Logic
			if nestedLogic == "" {
				nestedLogic = LogicAnd
			}
			res = e.evaluateGroup(rule.Rules, nestedLogic, values)
		} else {
			res = e.evaluateLeaf(rule, values)
		}
		if logic == LogicOr && res {
			return true
		}
		if logic != LogicOr && !res {
			return false
		}
	}
	return logic != LogicOr
}

// evaluateLeaf evaluates a single leaf rule. Unknown operators fail closed.
func (e *Engine) evaluateLeaf(rule Rule, values FormValues) bool {
	handler, ok := operatorHandlers[rule.Operator]
	if !ok {
		return false
	}
	return handler.Check(ValueOf(values[rule.Field]), ValueOf(rule.Value))
}

// EvaluateCondition evaluates a condition's rules and maps the result
// through its action: show/enable/require pass the result through,
// hide/disable/optional negate it. Unknown actions fail closed.
func (e *Engine) EvaluateCondition(condition Condition, values FormValues) bool {
	result := e.EvaluateRules(condition.Rules, values)
	switch condition.Action {
	case ActionShow, ActionEnable, ActionRequire:
		return result
	case ActionHide, ActionDisable, ActionOptional:
		return !result
	default:
		return false
	}
}
