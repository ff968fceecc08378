package conditions

import "testing"

func TestOperatorHandlers(t *testing.T) {
	tests := []struct {
		name       string
		op         Operator
		fieldValue any
		ruleValue  any
		want       bool
	}{
		{name: "equals string true", op: OpEquals, fieldValue: "import", ruleValue: "import", want: true},
		{name: "equals string false", op: OpEquals, fieldValue: "import", ruleValue: "export", want: false},
		{name: "equals number int vs float", op: OpEquals, fieldValue: 10, ruleValue: 10.0, want: true},
		{name: "equals cross-kind false", op: OpEquals, fieldValue: "10", ruleValue: 10, want: false},
		{name: "equals bool", op: OpEquals, fieldValue: true, ruleValue: true, want: true},
		{name: "equals absent vs value", op: OpEquals, fieldValue: nil, ruleValue: "x", want: false},
		{name: "not_equals true", op: OpNotEquals, fieldValue: "US", ruleValue: "CA", want: true},
		{name: "not_equals false", op: OpNotEquals, fieldValue: "US", ruleValue: "US", want: false},
		{name: "contains text case-insensitive", op: OpContains, fieldValue: "Hello World", ruleValue: "hello", want: true},
		{name: "contains text miss", op: OpContains, fieldValue: "Hello World", ruleValue: "mars", want: false},
		{name: "contains text number form", op: OpContains, fieldValue: "room 42b", ruleValue: 42, want: true},
		{name: "contains sequence member", op: OpContains, fieldValue: []any{"pump", "valve"}, ruleValue: "valve", want: true},
		{name: "contains sequence miss", op: OpContains, fieldValue: []any{"pump", "valve"}, ruleValue: "Valve", want: false},
		{name: "contains on number false", op: OpContains, fieldValue: 42, ruleValue: "4", want: false},
		{name: "greater_than numbers", op: OpGreaterThan, fieldValue: 21, ruleValue: 18, want: true},
		{name: "greater_than numeric string", op: OpGreaterThan, fieldValue: "10", ruleValue: 5, want: true},
		{name: "greater_than non-numeric string", op: OpGreaterThan, fieldValue: "abc", ruleValue: 5, want: false},
		{name: "greater_than absent", op: OpGreaterThan, fieldValue: nil, ruleValue: 5, want: false},
		{name: "less_than true", op: OpLessThan, fieldValue: 15, ruleValue: 18, want: true},
		{name: "less_than equal false", op: OpLessThan, fieldValue: 18, ruleValue: 18, want: false},
		{name: "is_empty absent", op: OpIsEmpty, fieldValue: nil, ruleValue: nil, want: true},
		{name: "is_empty empty string", op: OpIsEmpty, fieldValue: "", ruleValue: nil, want: true},
		{name: "is_empty empty sequence", op: OpIsEmpty, fieldValue: []any{}, ruleValue: nil, want: true},
		{name: "is_empty zero is not empty", op: OpIsEmpty, fieldValue: 0, ruleValue: nil, want: false},
		{name: "is_not_empty string", op: OpIsNotEmpty, fieldValue: "x", ruleValue: nil, want: true},
		{name: "is_not_empty absent", op: OpIsNotEmpty, fieldValue: nil, ruleValue: nil, want: false},
	}

	e := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := Rule{Field: "f", Operator: tt.op, Value: tt.ruleValue}
			got := e.EvaluateRules([]Rule{rule}, FormValues{"f": tt.fieldValue})
			if got != tt.want {
				t.Fatalf("EvaluateRules() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsEmptyComplement(t *testing.T) {
	// is_empty and is_not_empty must be exact complements for every value.
	values := []any{nil, "", []any{}, []any{1}, 0, "x", false, 3.14}

	e := NewEngine()
	for _, v := range values {
		empty := e.EvaluateRules([]Rule{{Field: "f", Operator: OpIsEmpty}}, FormValues{"f": v})
		notEmpty := e.EvaluateRules([]Rule{{Field: "f", Operator: OpIsNotEmpty}}, FormValues{"f": v})
		if empty == notEmpty {
			t.Fatalf("value %#v: is_empty=%v and is_not_empty=%v are not complements", v, empty, notEmpty)
		}
	}
}

func TestEvaluateRules_EmptyListPasses(t *testing.T) {
	e := NewEngine()
	if !e.EvaluateRules(nil, FormValues{"anything": 1}) {
		t.Fatal("nil rule list should pass vacuously")
	}
	if !e.EvaluateRules([]Rule{}, nil) {
		t.Fatal("empty rule list should pass vacuously")
	}
}

func TestEvaluateRules_UnknownOperatorFailsClosed(t *testing.T) {
	e := NewEngine()
	got := e.EvaluateRules([]Rule{{Field: "f", Operator: Operator("matches"), Value: "x"}}, FormValues{"f": "x"})
	if got {
		t.Fatal("unknown operator must evaluate false")
	}
}

func TestEvaluateRules_LeafConjunction(t *testing.T) {
	rules := []Rule{
		{Field: "type", Operator: OpEquals, Value: "import"},
		{Field: "country", Operator: OpNotEquals, Value: "US"},
	}

	tests := []struct {
		name   string
		values FormValues
		want   bool
	}{
		{name: "both pass", values: FormValues{"type": "import", "country": "DE"}, want: true},
		{name: "first fails", values: FormValues{"type": "export", "country": "DE"}, want: false},
		{name: "second fails", values: FormValues{"type": "import", "country": "US"}, want: false},
		{name: "both fail", values: FormValues{"type": "export", "country": "US"}, want: false},
	}

	e := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.EvaluateRules(rules, tt.values); got != tt.want {
				t.Fatalf("EvaluateRules() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateRules_GroupShortCircuit(t *testing.T) {
	passingLeaf := Rule{Field: "type", Operator: OpEquals, Value: "import"}
	values := FormValues{"type": "import", "qty": 3, "country": "US"}

	e := NewEngine()

	t.Run("and group false short-circuits to false", func(t *testing.T) {
		rules := []Rule{
			passingLeaf,
			{Logic: LogicAnd, Rules: []Rule{
				{Field: "qty", Operator: OpGreaterThan, Value: 10},
			}},
		}
		if e.EvaluateRules(rules, values) {
			t.Fatal("failing and-group must short-circuit to false despite passing leaf")
		}
	})

	t.Run("or group true short-circuits to true", func(t *testing.T) {
		rules := []Rule{
			{Field: "type", Operator: OpEquals, Value: "export"}, // failing leaf
			{Logic: LogicOr, Rules: []Rule{
				{Field: "qty", Operator: OpGreaterThan, Value: 1},
				{Field: "country", Operator: OpEquals, Value: "FR"},
			}},
		}
		if !e.EvaluateRules(rules, values) {
			t.Fatal("passing or-group must short-circuit to true despite failing leaf")
		}
	})

	t.Run("first short-circuiting group wins", func(t *testing.T) {
		rules := []Rule{
			{Logic: LogicOr, Rules: []Rule{
				{Field: "qty", Operator: OpGreaterThan, Value: 1},
			}},
			{Logic: LogicAnd, Rules: []Rule{
				{Field: "qty", Operator: OpGreaterThan, Value: 100},
			}},
		}
		if !e.EvaluateRules(rules, values) {
			t.Fatal("earlier or-group should win before the later and-group is reached")
		}
	})

	t.Run("default logic is and", func(t *testing.T) {
		rules := []Rule{
			passingLeaf,
			{Rules: []Rule{
				{Field: "qty", Operator: OpGreaterThan, Value: 10},
			}},
		}
		if e.EvaluateRules(rules, values) {
			t.Fatal("group without explicit logic must combine with and semantics")
		}
	})
}

// Non-short-circuiting group outcomes are discarded: an or-group that
// evaluates false does not force the overall result to false as long as all
// leaves pass. This asymmetry is intentional, see EvaluateRules.
func TestEvaluateRules_NonShortCircuitingGroupIsDiscarded(t *testing.T) {
	rules := []Rule{
		{Field: "type", Operator: OpEquals, Value: "import"}, // passing leaf
		{Logic: LogicOr, Rules: []Rule{
			{Field: "qty", Operator: OpGreaterThan, Value: 100}, // false, no short-circuit
		}},
	}

	e := NewEngine()
	got := e.EvaluateRules(rules, FormValues{"type": "import", "qty": 3})
	if !got {
		t.Fatal("false or-group must be discarded; leaves alone decide the result")
	}
}

func TestEvaluateRules_Determinism(t *testing.T) {
	rules := []Rule{
		{Field: "age", Operator: OpGreaterThan, Value: 18},
		{Logic: LogicOr, Rules: []Rule{
			{Field: "country", Operator: OpEquals, Value: "US"},
			{Field: "plan", Operator: OpContains, Value: "pro"},
		}},
	}
	values := FormValues{"age": 21, "country": "DE", "plan": "Pro Plus"}

	e := NewEngine()
	first := e.EvaluateRules(rules, values)
	for i := 0; i < 100; i++ {
		if got := e.EvaluateRules(rules, values); got != first {
			t.Fatalf("evaluation changed across calls: first=%v got=%v", first, got)
		}
	}
}

func TestEvaluateRules_AgeScenario(t *testing.T) {
	rules := []Rule{{Field: "age", Operator: OpGreaterThan, Value: 18}}

	e := NewEngine()
	if !e.EvaluateRules(rules, FormValues{"age": 21}) {
		t.Fatal("age 21 > 18 should pass")
	}
	if e.EvaluateRules(rules, FormValues{"age": 15}) {
		t.Fatal("age 15 > 18 should fail")
	}
}

func TestEvaluateCondition_ActionMapping(t *testing.T) {
	rules := []Rule{{Field: "age", Operator: OpLessThan, Value: 18}}

	tests := []struct {
		name   string
		action Action
		values FormValues
		want   bool
	}{
		{name: "show passes through true", action: ActionShow, values: FormValues{"age": 15}, want: true},
		{name: "show passes through false", action: ActionShow, values: FormValues{"age": 25}, want: false},
		{name: "hide negates true", action: ActionHide, values: FormValues{"age": 15}, want: false},
		{name: "hide negates false", action: ActionHide, values: FormValues{"age": 25}, want: true},
		{name: "enable passes through", action: ActionEnable, values: FormValues{"age": 15}, want: true},
		{name: "disable negates", action: ActionDisable, values: FormValues{"age": 15}, want: false},
		{name: "require passes through", action: ActionRequire, values: FormValues{"age": 15}, want: true},
		{name: "optional negates", action: ActionOptional, values: FormValues{"age": 15}, want: false},
		{name: "unknown action fails closed", action: Action("toggle"), values: FormValues{"age": 15}, want: false},
	}

	e := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Condition{FieldID: "guardian", Rules: rules, Action: tt.action}
			if got := e.EvaluateCondition(c, tt.values); got != tt.want {
				t.Fatalf("EvaluateCondition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateCondition_HideIsShowNegation(t *testing.T) {
	rules := []Rule{{Field: "status", Operator: OpEquals, Value: "open"}}
	values := []FormValues{
		{"status": "open"},
		{"status": "closed"},
		{},
	}

	e := NewEngine()
	for _, v := range values {
		show := e.EvaluateCondition(Condition{FieldID: "f", Rules: rules, Action: ActionShow}, v)
		hide := e.EvaluateCondition(Condition{FieldID: "f", Rules: rules, Action: ActionHide}, v)
		if show == hide {
			t.Fatalf("values %#v: show=%v hide=%v, want complements", v, show, hide)
		}
	}
}
