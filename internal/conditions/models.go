package conditions

// Operator represents a comparison operator used in field conditions.
type Operator string

// Supported condition operators (string values for clean JSON serialization).
const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not_equals"
	OpContains    Operator = "contains"
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
	OpIsEmpty     Operator = "is_empty"
	OpIsNotEmpty  Operator = "is_not_empty"
)

// Logic is the combinator applied to a rule group's nested rules.
type Logic string

const (
	LogicAnd Logic = "and"
	LogicOr  Logic = "or"
)

// Action is the side effect a condition applies to its target field
// when its rules evaluate true.
type Action string

const (
	ActionShow     Action = "show"
	ActionHide     Action = "hide"
	ActionEnable   Action = "enable"
	ActionDisable  Action = "disable"
	ActionRequire  Action = "require"
	ActionOptional Action = "optional"
)

// Rule is either a leaf predicate (Field + Operator, no nested Rules) or a
// group (nested Rules combined with Logic). A group's own Field/Operator are
// ignored during evaluation.
type Rule struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value,omitempty"`
	Logic    Logic    `json:"logic,omitempty"`
	Rules    []Rule   `json:"rules,omitempty"`
}

// IsGroup reports whether the rule carries nested rules.
func (r Rule) IsGroup() bool {
	return len(r.Rules) > 0
}

// Condition binds a boolean predicate (Rules) to one Action on one target
// field. FieldID is the name of the field the action applies to.
type Condition struct {
	FieldID string `json:"id"`
	Rules   []Rule `json:"rules"`
	Action  Action `json:"action"`
}

// FormValues maps field names to their current values. Values are expected
// to arrive already deserialized from JSON (string, bool, float64, []any,
// or absent).
type FormValues map[string]any

// FieldState is the resolved render state of a single field.
type FieldState struct {
	Visible  bool `json:"visible"`
	Enabled  bool `json:"enabled"`
	Required bool `json:"required"`
}
