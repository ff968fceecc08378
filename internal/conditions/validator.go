package conditions

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by ValidateCondition.
var (
	ErrInvalidAction   = errors.New("invalid action")
	ErrInvalidOperator = errors.New("invalid operator")
	ErrInvalidLogic    = errors.New("invalid logic")
	ErrInvalidRule     = errors.New("invalid rule")
)

var validActions = map[Action]struct{}{
	ActionShow:     {},
	ActionHide:     {},
	ActionEnable:   {},
	ActionDisable:  {},
	ActionRequire:  {},
	ActionOptional: {},
}

// ValidateCondition performs strict shape validation of a Condition. The
// evaluator itself never rejects malformed input (it fails closed); this is
// for callers that want to surface configuration mistakes at registration
// time instead. It is a pure function: it never mutates c.
func ValidateCondition(c Condition) error {
	if c.FieldID == "" {
		return fmt.Errorf("%w: condition target id must not be empty", ErrInvalidRule)
	}
	if _, ok := validActions[c.Action]; !ok {
		return fmt.Errorf("%w: action %q is not supported", ErrInvalidAction, c.Action)
	}
	if len(c.Rules) == 0 {
		return fmt.Errorf("%w: condition must have at least one rule", ErrInvalidRule)
	}
	for i, r := range c.Rules {
		if err := validateRule(i, r); err != nil {
			return err
		}
	}
	return nil
}

func validateRule(i int, r Rule) error {
	if r.IsGroup() {
		if r.Logic != "" && r.Logic != LogicAnd && r.Logic != LogicOr {
			return fmt.Errorf("%w: rule[%d] logic %q is not supported", ErrInvalidLogic, i, r.Logic)
		}
		for j, nested := range r.Rules {
			if err := validateRule(j, nested); err != nil {
				return fmt.Errorf("rule[%d]: %w", i, err)
			}
		}
		return nil
	}

	if r.Field == "" {
		return fmt.Errorf("%w: rule[%d] field must not be empty", ErrInvalidRule, i)
	}
	if _, ok := operatorHandlers[r.Operator]; !ok {
		return fmt.Errorf("%w: rule[%d] operator %q is not supported", ErrInvalidOperator, i, r.Operator)
	}
	return validateRuleValue(i, r.Operator, r.Value)
}

// validateRuleValue checks that the rule value has a type compatible with
// the operator. It uses explicit type assertions, no reflection.
func validateRuleValue(i int, op Operator, v any) error {
	switch op {
	case OpIsEmpty, OpIsNotEmpty:
		// Unary operators ignore the value entirely.
		return nil
	case OpGreaterThan, OpLessThan:
		switch v.(type) {
		case int, int32, int64, float32, float64, string:
			return nil
		}
		return fmt.Errorf("%w: rule[%d] operator %q requires a numeric or numeric-string value", ErrInvalidRule, i, op)
	default:
		if v == nil {
			return fmt.Errorf("%w: rule[%d] operator %q requires a value", ErrInvalidRule, i, op)
		}
		return nil
	}
}
