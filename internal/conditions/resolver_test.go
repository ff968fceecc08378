package conditions

import "testing"

func TestFieldVisible_GuardianScenario(t *testing.T) {
	conds := []Condition{{
		FieldID: "guardian",
		Rules:   []Rule{{Field: "age", Operator: OpLessThan, Value: 18}},
		Action:  ActionShow,
	}}

	e := NewEngine()
	if !e.FieldVisible("guardian", FormValues{"age": 15}, conds) {
		t.Fatal("guardian should be visible for age 15")
	}
	if e.FieldVisible("guardian", FormValues{"age": 25}, conds) {
		t.Fatal("guardian should be hidden for age 25")
	}
}

func TestFieldVisible_HidePrecedence(t *testing.T) {
	show := Condition{
		FieldID: "notes",
		Rules:   []Rule{{Field: "status", Operator: OpEquals, Value: "open"}},
		Action:  ActionShow,
	}
	hide := Condition{
		FieldID: "notes",
		Rules:   []Rule{{Field: "locked", Operator: OpEquals, Value: true}},
		Action:  ActionHide,
	}
	conds := []Condition{show, hide}

	tests := []struct {
		name   string
		values FormValues
		want   bool
	}{
		// Hide truth decides regardless of the show condition.
		{name: "hide true show true", values: FormValues{"status": "open", "locked": true}, want: false},
		{name: "hide true show false", values: FormValues{"status": "closed", "locked": true}, want: false},
		{name: "hide false show true", values: FormValues{"status": "open", "locked": false}, want: true},
		{name: "hide false show false", values: FormValues{"status": "closed", "locked": false}, want: true},
	}

	e := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.FieldVisible("notes", tt.values, conds); got != tt.want {
				t.Fatalf("FieldVisible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFieldVisible_Defaults(t *testing.T) {
	e := NewEngine()
	if !e.FieldVisible("unconditioned", FormValues{}, nil) {
		t.Fatal("field with no conditions defaults to visible")
	}

	otherField := []Condition{{
		FieldID: "other",
		Rules:   []Rule{{Field: "x", Operator: OpIsNotEmpty}},
		Action:  ActionHide,
	}}
	if !e.FieldVisible("unconditioned", FormValues{"x": "set"}, otherField) {
		t.Fatal("conditions on other fields must not affect visibility")
	}
}

func TestFieldEnabled(t *testing.T) {
	conds := []Condition{
		{
			FieldID: "asset",
			Rules:   []Rule{{Field: "location", Operator: OpIsNotEmpty}},
			Action:  ActionEnable,
		},
		{
			FieldID: "asset",
			Rules:   []Rule{{Field: "archived", Operator: OpEquals, Value: true}},
			Action:  ActionDisable,
		},
	}

	e := NewEngine()
	if !e.FieldEnabled("asset", FormValues{"location": "plant-2", "archived": false}, conds) {
		t.Fatal("asset should be enabled: disable false")
	}
	if e.FieldEnabled("asset", FormValues{"location": "plant-2", "archived": true}, conds) {
		t.Fatal("asset should be disabled: disable takes precedence over enable")
	}
	if !e.FieldEnabled("untouched", FormValues{}, conds) {
		t.Fatal("field with no conditions defaults to enabled")
	}
}

func TestFieldRequired(t *testing.T) {
	e := NewEngine()

	if e.FieldRequired("plain", FormValues{}, nil) {
		t.Fatal("field with no conditions defaults to not required")
	}

	require := []Condition{{
		FieldID: "downtime",
		Rules:   []Rule{{Field: "severity", Operator: OpEquals, Value: "critical"}},
		Action:  ActionRequire,
	}}
	if !e.FieldRequired("downtime", FormValues{"severity": "critical"}, require) {
		t.Fatal("downtime should be required for critical severity")
	}
	if e.FieldRequired("downtime", FormValues{"severity": "low"}, require) {
		t.Fatal("downtime should not be required for low severity")
	}

	both := append(require, Condition{
		FieldID: "downtime",
		Rules:   []Rule{{Field: "draft", Operator: OpEquals, Value: true}},
		Action:  ActionOptional,
	})
	if !e.FieldRequired("downtime", FormValues{"severity": "critical", "draft": true}, both) {
		t.Fatal("require takes precedence over optional")
	}
}

func TestResolveField(t *testing.T) {
	conds := []Condition{
		{
			FieldID: "guardian",
			Rules:   []Rule{{Field: "age", Operator: OpLessThan, Value: 18}},
			Action:  ActionShow,
		},
		{
			FieldID: "guardian",
			Rules:   []Rule{{Field: "age", Operator: OpLessThan, Value: 18}},
			Action:  ActionRequire,
		},
	}

	e := NewEngine()
	state := e.ResolveField("guardian", FormValues{"age": 15}, conds)
	want := FieldState{Visible: true, Enabled: true, Required: true}
	if state != want {
		t.Fatalf("ResolveField() = %+v, want %+v", state, want)
	}

	state = e.ResolveField("guardian", FormValues{"age": 30}, conds)
	want = FieldState{Visible: false, Enabled: true, Required: false}
	if state != want {
		t.Fatalf("ResolveField() = %+v, want %+v", state, want)
	}
}
