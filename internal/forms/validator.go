package forms

import (
	"errors"
	"fmt"

	"github.com/mkravets/upkeep/internal/conditions"
)

// Sentinel errors returned by the validators.
var (
	ErrInvalidTemplate  = errors.New("invalid template")
	ErrInvalidField     = errors.New("invalid field")
	ErrInvalidCondition = errors.New("invalid condition")
	ErrUnknownFieldRef  = errors.New("unknown field reference")
	ErrInvalidLocation  = errors.New("invalid location")
	ErrInvalidAsset     = errors.New("invalid asset")
)

var validFieldTypes = map[FieldType]struct{}{
	FieldText:     {},
	FieldTextarea: {},
	FieldNumber:   {},
	FieldCheckbox: {},
	FieldSelect:   {},
	FieldDate:     {},
	FieldFile:     {},
	FieldLocation: {},
	FieldAsset:    {},
}

var validAssetStatuses = map[AssetStatus]struct{}{
	AssetOperational: {},
	AssetMaintenance: {},
	AssetRetired:     {},
}

// ValidateTemplate checks a template's shape before it is persisted: field
// names must be unique and typed, select fields need options, and every
// condition must be well-formed and reference fields that exist. The
// evaluator itself tolerates malformed conditions (fail closed), so this is
// the single place where configuration mistakes surface as errors.
func ValidateTemplate(t Template) error {
	if t.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidTemplate)
	}
	if len(t.Fields) == 0 {
		return fmt.Errorf("%w: template must have at least one field", ErrInvalidTemplate)
	}

	names := make(map[string]struct{}, len(t.Fields))
	for i, f := range t.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: field[%d] name must not be empty", ErrInvalidField, i)
		}
		if _, dup := names[f.Name]; dup {
			return fmt.Errorf("%w: duplicate field name %q", ErrInvalidField, f.Name)
		}
		names[f.Name] = struct{}{}
		if _, ok := validFieldTypes[f.Type]; !ok {
			return fmt.Errorf("%w: field %q has unknown type %q", ErrInvalidField, f.Name, f.Type)
		}
		if f.Type == FieldSelect && len(f.Options) == 0 {
			return fmt.Errorf("%w: select field %q must have options", ErrInvalidField, f.Name)
		}
	}

	for i, c := range t.Conditions {
		if err := conditions.ValidateCondition(c); err != nil {
			return fmt.Errorf("%w: condition[%d]: %v", ErrInvalidCondition, i, err)
		}
		if _, ok := names[c.FieldID]; !ok {
			return fmt.Errorf("%w: condition[%d] targets unknown field %q", ErrUnknownFieldRef, i, c.FieldID)
		}
		if err := checkRuleRefs(i, c.Rules, names); err != nil {
			return err
		}
	}
	return nil
}

func checkRuleRefs(i int, rules []conditions.Rule, names map[string]struct{}) error {
	for _, r := range rules {
		if r.IsGroup() {
			if err := checkRuleRefs(i, r.Rules, names); err != nil {
				return err
			}
			continue
		}
		if _, ok := names[r.Field]; !ok {
			return fmt.Errorf("%w: condition[%d] rule references unknown field %q", ErrUnknownFieldRef, i, r.Field)
		}
	}
	return nil
}

// ValidateLocation checks a location before persistence.
func ValidateLocation(l Location) error {
	if l.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidLocation)
	}
	if l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidLocation, l.Latitude)
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidLocation, l.Longitude)
	}
	return nil
}

// ValidateAsset checks an asset before persistence.
func ValidateAsset(a Asset) error {
	if a.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidAsset)
	}
	if _, ok := validAssetStatuses[a.Status]; !ok {
		return fmt.Errorf("%w: status %q is not supported", ErrInvalidAsset, a.Status)
	}
	return nil
}
