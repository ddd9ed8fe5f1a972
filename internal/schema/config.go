// Package schema implements the dynamic custom-field schema engine:
// structural validation of per-type field configs and construction of
// value validators from stored field definitions.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"custom-field-api/internal/domain"
)

// TextConfig holds the constraints for a text field
type TextConfig struct {
	MaxLength *int `json:"maxLength,omitempty"`
}

// NumberConfig holds the constraints for a number field
type NumberConfig struct {
	Min           *float64 `json:"min,omitempty"`
	Max           *float64 `json:"max,omitempty"`
	AllowDecimals bool     `json:"allowDecimals,omitempty"`
}

// DateConfig holds the constraints for a date field. Min and Max are
// ISO dates ("2006-01-02") or RFC 3339 timestamps.
type DateConfig struct {
	Min *string `json:"min,omitempty"`
	Max *string `json:"max,omitempty"`
}

// SelectConfig holds the constraints for a select or multi-select field.
// Multiple switches a select field to multi-select semantics.
type SelectConfig struct {
	Options  []string `json:"options"`
	Multiple bool     `json:"multiple,omitempty"`
}

// Config is the parsed, type-discriminated form of a field definition's
// config blob. Exactly one of the variant pointers is set for types that
// carry constraints; checkbox has none.
type Config struct {
	Type   domain.FieldType
	Text   *TextConfig
	Number *NumberConfig
	Date   *DateConfig
	Select *SelectConfig
}

// Multiple reports whether the config describes array-valued select semantics
func (c *Config) Multiple() bool {
	if c.Type == domain.FieldTypeMultiSelect {
		return true
	}
	return c.Type == domain.FieldTypeSelect && c.Select != nil && c.Select.Multiple
}

// ParseConfig unmarshals and structurally validates a config blob against
// its declared field type. The returned error carries the first violated
// rule's message.
func ParseConfig(fieldType domain.FieldType, raw []byte) (*Config, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}

	cfg := &Config{Type: fieldType}

	switch fieldType {
	case domain.FieldTypeText:
		var tc TextConfig
		if err := json.Unmarshal(raw, &tc); err != nil {
			return nil, fmt.Errorf("invalid text config: %w", err)
		}
		if tc.MaxLength != nil && *tc.MaxLength < 0 {
			return nil, errors.New("max_length must be positive")
		}
		cfg.Text = &tc

	case domain.FieldTypeNumber:
		var nc NumberConfig
		if err := json.Unmarshal(raw, &nc); err != nil {
			return nil, fmt.Errorf("invalid number config: %w", err)
		}
		if nc.Min != nil && nc.Max != nil && *nc.Min > *nc.Max {
			return nil, errors.New("min cannot be greater than max")
		}
		cfg.Number = &nc

	case domain.FieldTypeDate:
		var dc DateConfig
		if err := json.Unmarshal(raw, &dc); err != nil {
			return nil, fmt.Errorf("invalid date config: %w", err)
		}
		var minDate, maxDate time.Time
		if dc.Min != nil {
			t, err := ParseDate(*dc.Min)
			if err != nil {
				return nil, errors.New("min_date must be a valid date")
			}
			minDate = t
		}
		if dc.Max != nil {
			t, err := ParseDate(*dc.Max)
			if err != nil {
				return nil, errors.New("max_date must be a valid date")
			}
			maxDate = t
		}
		if dc.Min != nil && dc.Max != nil && minDate.After(maxDate) {
			return nil, errors.New("min_date cannot be after max_date")
		}
		cfg.Date = &dc

	case domain.FieldTypeSelect, domain.FieldTypeMultiSelect:
		var sc SelectConfig
		if err := json.Unmarshal(raw, &sc); err != nil {
			return nil, fmt.Errorf("invalid select config: %w", err)
		}
		if len(sc.Options) == 0 {
			return nil, errors.New("Select field must have at least one option")
		}
		seen := make(map[string]bool, len(sc.Options))
		for _, opt := range sc.Options {
			if seen[opt] {
				return nil, fmt.Errorf("Select options must be distinct: %s", opt)
			}
			seen[opt] = true
		}
		cfg.Select = &sc

	case domain.FieldTypeCheckbox:
		// Checkbox fields carry no constrainable config

	default:
		return nil, fmt.Errorf("unsupported field type: %s", fieldType)
	}

	return cfg, nil
}

// ValidateConfig structurally validates a config blob against its declared
// field type without retaining the parsed form.
func ValidateConfig(fieldType domain.FieldType, raw []byte) error {
	_, err := ParseConfig(fieldType, raw)
	return err
}

// ParseDate parses an ISO date or RFC 3339 timestamp
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
