package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// Value represents a typed cell value with deterministic coercion
type Value struct {
	Type      ValueType `json:"type"`
	TextVal   *string   `json:"text_val,omitempty"`
	NumberVal *float64  `json:"number_val,omitempty"`
	BoolVal   *bool     `json:"bool_val,omitempty"`
	IsMissing bool      `json:"is_missing"`
}

// ValueType defines the storage type for cell values
type ValueType string

const (
	ValueTypeText    ValueType = "text"
	ValueTypeNumber  ValueType = "number"
	ValueTypeBoolean ValueType = "boolean"
	ValueTypeMissing ValueType = "missing"
)

// NewTextValue creates a text value; empty strings become missing
func NewTextValue(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Value{Type: ValueTypeMissing, IsMissing: true}
	}
	return Value{Type: ValueTypeText, TextVal: &s}
}

// NewNumberValue creates a numeric value
func NewNumberValue(n float64) Value {
	return Value{Type: ValueTypeNumber, NumberVal: &n}
}

// NewBoolValue creates a boolean value
func NewBoolValue(b bool) Value {
	return Value{Type: ValueTypeBoolean, BoolVal: &b}
}

// NewMissingValue creates a missing value
func NewMissingValue() Value {
	return Value{Type: ValueTypeMissing, IsMissing: true}
}

// IsEmpty reports whether the value carries no content
func (v Value) IsEmpty() bool {
	return v.IsMissing || v.Type == ValueTypeMissing || v.Type == ""
}

// IsText returns true if the value is a non-empty text value
func (v Value) IsText() bool {
	return v.Type == ValueTypeText && v.TextVal != nil
}

// IsNumber returns true if the value is numeric
func (v Value) IsNumber() bool {
	return v.Type == ValueTypeNumber && v.NumberVal != nil
}

// IsBool returns true if the value is boolean
func (v Value) IsBool() bool {
	return v.Type == ValueTypeBoolean && v.BoolVal != nil
}

// AsFloat64 returns the numeric value as float64, or 0 if not numeric
func (v Value) AsFloat64() float64 {
	if v.NumberVal != nil {
		return *v.NumberVal
	}
	return 0.0
}

// String returns the trimmed textual rendering used by all heuristics.
// Numbers render without a forced decimal tail so "30" stays "30".
func (v Value) String() string {
	switch v.Type {
	case ValueTypeText:
		if v.TextVal != nil {
			return strings.TrimSpace(*v.TextVal)
		}
	case ValueTypeNumber:
		if v.NumberVal != nil {
			return strconv.FormatFloat(*v.NumberVal, 'f', -1, 64)
		}
	case ValueTypeBoolean:
		if v.BoolVal != nil {
			return fmt.Sprintf("%t", *v.BoolVal)
		}
	}
	return ""
}
