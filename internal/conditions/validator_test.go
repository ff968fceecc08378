package conditions

import (
	"errors"
	"testing"
)

func TestValidateCondition(t *testing.T) {
	leaf := Rule{Field: "status", Operator: OpEquals, Value: "open"}

	tests := []struct {
		name    string
		cond    Condition
		wantErr error
	}{
		{
			name: "valid leaf condition",
			cond: Condition{FieldID: "notes", Rules: []Rule{leaf}, Action: ActionShow},
		},
		{
			name: "valid group condition",
			cond: Condition{FieldID: "notes", Action: ActionHide, Rules: []Rule{
				{Logic: LogicOr, Rules: []Rule{leaf, {Field: "age", Operator: OpGreaterThan, Value: 18}}},
			}},
		},
		{
			name: "valid unary operator without value",
			cond: Condition{FieldID: "notes", Action: ActionRequire, Rules: []Rule{
				{Field: "attachment", Operator: OpIsEmpty},
			}},
		},
		{
			name:    "empty target id",
			cond:    Condition{Rules: []Rule{leaf}, Action: ActionShow},
			wantErr: ErrInvalidRule,
		},
		{
			name:    "unknown action",
			cond:    Condition{FieldID: "notes", Rules: []Rule{leaf}, Action: Action("blink")},
			wantErr: ErrInvalidAction,
		},
		{
			name:    "no rules",
			cond:    Condition{FieldID: "notes", Action: ActionShow},
			wantErr: ErrInvalidRule,
		},
		{
			name: "leaf without field",
			cond: Condition{FieldID: "notes", Action: ActionShow, Rules: []Rule{
				{Operator: OpEquals, Value: "x"},
			}},
			wantErr: ErrInvalidRule,
		},
		{
			name: "unknown operator",
			cond: Condition{FieldID: "notes", Action: ActionShow, Rules: []Rule{
				{Field: "status", Operator: Operator("regex"), Value: "x"},
			}},
			wantErr: ErrInvalidOperator,
		},
		{
			name: "bad group logic",
			cond: Condition{FieldID: "notes", Action: ActionShow, Rules: []Rule{
				{Logic: Logic("xor"), Rules: []Rule{leaf}},
			}},
			wantErr: ErrInvalidLogic,
		},
		{
			name: "nested group rule invalid",
			cond: Condition{FieldID: "notes", Action: ActionShow, Rules: []Rule{
				{Logic: LogicAnd, Rules: []Rule{
					{Field: "qty", Operator: Operator("between"), Value: 1},
				}},
			}},
			wantErr: ErrInvalidOperator,
		},
		{
			name: "greater_than with non-numeric value",
			cond: Condition{FieldID: "notes", Action: ActionShow, Rules: []Rule{
				{Field: "qty", Operator: OpGreaterThan, Value: true},
			}},
			wantErr: ErrInvalidRule,
		},
		{
			name: "equals without value",
			cond: Condition{FieldID: "notes", Action: ActionShow, Rules: []Rule{
				{Field: "status", Operator: OpEquals},
			}},
			wantErr: ErrInvalidRule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCondition(tt.cond)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateCondition() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateCondition() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCondition_DoesNotRejectWhatEvaluatorTolerates(t *testing.T) {
	// The evaluator fails closed on malformed input; the validator exists so
	// callers can catch those shapes earlier. A condition rejected here must
	// still evaluate without panicking.
	bad := Condition{FieldID: "notes", Action: Action("blink"), Rules: []Rule{
		{Field: "status", Operator: Operator("regex"), Value: "("},
	}}
	if err := ValidateCondition(bad); err == nil {
		t.Fatal("expected validation error")
	}

	e := NewEngine()
	if got := e.EvaluateCondition(bad, FormValues{"status": "open"}); got {
		t.Fatal("malformed condition must evaluate false, not error")
	}
}
