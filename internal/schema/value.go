package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"custom-field-api/internal/domain"
)

// Result is the outcome of validating one value against one field definition
type Result struct {
	Valid bool   `json:"isValid"`
	Error string `json:"error,omitempty"`
}

func valid() Result {
	return Result{Valid: true}
}

func invalid(format string, args ...interface{}) Result {
	return Result{Valid: false, Error: fmt.Sprintf(format, args...)}
}

// Validator checks candidate values against one specific field definition's
// type, config, and required flag.
type Validator struct {
	cfg      *Config
	required bool
}

// NewValidator builds a value validator for a field definition. A
// construction error indicates a corrupt or invalid definition, not a bad
// value; callers must surface it as a definition-level failure.
func NewValidator(fieldType domain.FieldType, rawConfig []byte, required bool) (*Validator, error) {
	cfg, err := ParseConfig(fieldType, rawConfig)
	if err != nil {
		return nil, err
	}
	return &Validator{cfg: cfg, required: required}, nil
}

// Validate checks a single candidate value. It never mutates state and is
// safe to call repeatedly with the same inputs.
func (v *Validator) Validate(value interface{}) Result {
	if value == nil {
		if v.required {
			return invalid("field is required")
		}
		return valid()
	}

	switch v.cfg.Type {
	case domain.FieldTypeText:
		return v.validateText(value)
	case domain.FieldTypeNumber:
		return v.validateNumber(value)
	case domain.FieldTypeDate:
		return v.validateDate(value)
	case domain.FieldTypeSelect, domain.FieldTypeMultiSelect:
		if v.cfg.Multiple() {
			return v.validateMultiSelect(value)
		}
		return v.validateSelect(value)
	case domain.FieldTypeCheckbox:
		if _, ok := value.(bool); !ok {
			return invalid("must be a boolean")
		}
		return valid()
	default:
		return invalid("unsupported field type: %s", v.cfg.Type)
	}
}

func (v *Validator) validateText(value interface{}) Result {
	s, ok := value.(string)
	if !ok {
		return invalid("must be a string")
	}
	if strings.TrimSpace(s) == "" {
		if v.required {
			return invalid("field is required")
		}
		return valid()
	}
	if v.cfg.Text != nil && v.cfg.Text.MaxLength != nil && len([]rune(s)) > *v.cfg.Text.MaxLength {
		return invalid("must be at most %d characters", *v.cfg.Text.MaxLength)
	}
	return valid()
}

func (v *Validator) validateNumber(value interface{}) Result {
	f, ok := toFloat(value)
	if !ok {
		return invalid("must be a number")
	}
	nc := v.cfg.Number
	if nc != nil && !nc.AllowDecimals && f != math.Trunc(f) {
		return invalid("must be an integer")
	}
	if nc != nil && nc.Min != nil && f < *nc.Min {
		return invalid("must be at least %s", formatNumber(*nc.Min))
	}
	if nc != nil && nc.Max != nil && f > *nc.Max {
		return invalid("must be at most %s", formatNumber(*nc.Max))
	}
	return valid()
}

func (v *Validator) validateDate(value interface{}) Result {
	t, ok := toTime(value)
	if !ok {
		return invalid("must be a valid date")
	}
	dc := v.cfg.Date
	if dc != nil && dc.Min != nil {
		minDate, err := ParseDate(*dc.Min)
		if err == nil && t.Before(minDate) {
			return invalid("must be on or after %s", minDate.Format("2006-01-02"))
		}
	}
	if dc != nil && dc.Max != nil {
		maxDate, err := ParseDate(*dc.Max)
		if err == nil && t.After(maxDate) {
			return invalid("must be on or before %s", maxDate.Format("2006-01-02"))
		}
	}
	return valid()
}

func (v *Validator) validateSelect(value interface{}) Result {
	s, ok := value.(string)
	if !ok {
		return invalid("must be a string")
	}
	if s == "" {
		if v.required {
			return invalid("field is required")
		}
		return valid()
	}
	for _, opt := range v.cfg.Select.Options {
		if s == opt {
			return valid()
		}
	}
	return invalid("must be one of: %s", strings.Join(v.cfg.Select.Options, ", "))
}

// validateMultiSelect names the specific offending entry instead of
// enumerating the full option list the way single select does.
func (v *Validator) validateMultiSelect(value interface{}) Result {
	entries, ok := toSlice(value)
	if !ok {
		return invalid("must be an array of options")
	}
	if len(entries) == 0 {
		if v.required {
			return invalid("field is required")
		}
		return valid()
	}
	for _, entry := range entries {
		s, ok := entry.(string)
		if !ok {
			return invalid("invalid option: %v", entry)
		}
		found := false
		for _, opt := range v.cfg.Select.Options {
			if s == opt {
				found = true
				break
			}
		}
		if !found {
			return invalid("invalid option: %s", s)
		}
	}
	return valid()
}

// toFloat accepts the numeric shapes JSON decoding and Go callers produce
func toFloat(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func toTime(value interface{}) (time.Time, bool) {
	switch d := value.(type) {
	case time.Time:
		return d, true
	case string:
		if d == "" {
			return time.Time{}, false
		}
		t, err := ParseDate(d)
		return t, err == nil
	default:
		return time.Time{}, false
	}
}

func toSlice(value interface{}) ([]interface{}, bool) {
	switch arr := value.(type) {
	case []interface{}:
		return arr, true
	case []string:
		entries := make([]interface{}, len(arr))
		for i, s := range arr {
			entries[i] = s
		}
		return entries, true
	default:
		return nil, false
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
