package forms

import (
	"time"

	"github.com/mkravets/upkeep/internal/conditions"
)

// FieldType identifies the widget a field renders as.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldNumber   FieldType = "number"
	FieldCheckbox FieldType = "checkbox"
	FieldSelect   FieldType = "select"
	FieldDate     FieldType = "date"
	FieldFile     FieldType = "file"
	FieldLocation FieldType = "location"
	FieldAsset    FieldType = "asset"
)

// Field is one entry in a form template. Name is the key used in submission
// values and in condition rules; Required is the static flag that condition
// driven required-ness layers on top of.
type Field struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Placeholder string    `json:"placeholder,omitempty"`
	Options     []string  `json:"options,omitempty"`
}

// Template is a maintenance form definition: an ordered field list plus the
// conditions that drive dynamic visibility, enablement, and required state.
type Template struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Fields      []Field                `json:"fields"`
	Conditions  []conditions.Condition `json:"conditions,omitempty"`
	Version     int                    `json:"version"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// FieldByName returns the field with the given name, if present.
func (t *Template) FieldByName(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Submission is one filled-out form. Values are keyed by field name and
// arrive already deserialized from JSON.
type Submission struct {
	ID          string                `json:"id"`
	TemplateID  string                `json:"templateId"`
	Values      conditions.FormValues `json:"values"`
	SubmittedBy string                `json:"submittedBy,omitempty"`
	LocationID  string                `json:"locationId,omitempty"`
	AssetID     string                `json:"assetId,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
}

// Location is a maintenance site shown on the map view.
type Location struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AssetStatus tracks an asset's maintenance lifecycle.
type AssetStatus string

const (
	AssetOperational AssetStatus = "operational"
	AssetMaintenance AssetStatus = "maintenance"
	AssetRetired     AssetStatus = "retired"
)

// Asset is a maintainable piece of equipment, optionally pinned to a location.
type Asset struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Tag        string      `json:"tag,omitempty"`
	Status     AssetStatus `json:"status"`
	LocationID string      `json:"locationId,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
