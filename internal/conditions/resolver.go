package conditions

// The resolvers below answer the three render-state questions the form
// layer asks on every value change. Each takes an explicit
// (fieldID, values, conditions) triple and depends on no engine state.
//
// Precedence: the restrictive action of each pair (hide, disable, require)
// wins when both actions target the same field. With no matching conditions
// a field is visible and enabled but not required; required-ness from
// conditions is layered on top of static required flags owned by the form
// layer.

// FieldVisible resolves visibility for the given field.
// Hide conditions take precedence: the field is visible only if none of
// them evaluate true. Otherwise, with show conditions present, at least one
// must evaluate true.
func (e *Engine) FieldVisible(fieldID string, values FormValues, conds []Condition) bool {
	hide, show := e.partition(fieldID, conds, ActionHide, ActionShow)
	if len(hide) > 0 {
		return !e.anyRulesPass(hide, values)
	}
	if len(show) > 0 {
		return e.anyRulesPass(show, values)
	}
	return true
}

// FieldEnabled resolves the enabled/disabled state for the given field,
// with disable conditions taking precedence over enable conditions.
func (e *Engine) FieldEnabled(fieldID string, values FormValues, conds []Condition) bool {
	disable, enable := e.partition(fieldID, conds, ActionDisable, ActionEnable)
	if len(disable) > 0 {
		return !e.anyRulesPass(disable, values)
	}
	if len(enable) > 0 {
		return e.anyRulesPass(enable, values)
	}
	return true
}

// FieldRequired resolves the required state for the given field. Require
// conditions take precedence over optional ones; with no matching
// conditions the field is not required by this mechanism.
func (e *Engine) FieldRequired(fieldID string, values FormValues, conds []Condition) bool {
	require, optional := e.partition(fieldID, conds, ActionRequire, ActionOptional)
	if len(require) > 0 {
		return e.anyRulesPass(require, values)
	}
	if len(optional) > 0 {
		return !e.anyRulesPass(optional, values)
	}
	return false
}

// ResolveField combines the three resolvers into one state.
func (e *Engine) ResolveField(fieldID string, values FormValues, conds []Condition) FieldState {
	return FieldState{
		Visible:  e.FieldVisible(fieldID, values, conds),
		Enabled:  e.FieldEnabled(fieldID, values, conds),
		Required: e.FieldRequired(fieldID, values, conds),
	}
}

func (e *Engine) partition(fieldID string, conds []Condition, primary, secondary Action) (p, s []Condition) {
	for _, c := range conds {
		if c.FieldID != fieldID {
			continue
		}
		switch c.Action {
		case primary:
			p = append(p, c)
		case secondary:
			s = append(s, c)
		}
	}
	return p, s
}

func (e *Engine) anyRulesPass(conds []Condition, values FormValues) bool {
	for _, c := range conds {
		if e.EvaluateRules(c.Rules, values) {
			return true
		}
	}
	return false
}
