package product

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrInvalidRecord is matched by every *FieldError.
var ErrInvalidRecord = errors.New("invalid product record")

// FieldIssue describes a field that is present but malformed.
type FieldIssue struct {
	Field  string
	Reason string
}

// FieldError lists every missing and malformed field of one record.
type FieldError struct {
	Kind    string
	Missing []string
	Invalid []FieldIssue
}

func (e *FieldError) Error() string {
	parts := make([]string, 0, 2)
	if len(e.Missing) > 0 {
		parts = append(parts, "missing fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		issues := make([]string, 0, len(e.Invalid))
		for _, is := range e.Invalid {
			issues = append(issues, fmt.Sprintf("%s (%s)", is.Field, is.Reason))
		}
		parts = append(parts, "invalid fields: "+strings.Join(issues, ", "))
	}
	kind := e.Kind
	if kind == "" {
		kind = "product record"
	}
	return kind + " invalid: " + strings.Join(parts, "; ")
}

func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidRecord
}

func (e *FieldError) empty() bool {
	return len(e.Missing) == 0 && len(e.Invalid) == 0
}

type fieldKind int

const (
	kindString fieldKind = iota
	kindNonBlankString
	kindStringList
	kindPrice
)

type fieldRule struct {
	name     string
	kind     fieldKind
	optional bool
}

var recordFields = []fieldRule{
	{name: "name", kind: kindNonBlankString},
	{name: "concentration", kind: kindString},
	{name: "skin_type", kind: kindStringList},
	{name: "key_ingredients", kind: kindStringList},
	{name: "benefits", kind: kindStringList},
	{name: "how_to_use", kind: kindString},
	{name: "side_effects", kind: kindString},
	{name: "price", kind: kindPrice},
}

var comparisonFields = []fieldRule{
	{name: "name", kind: kindNonBlankString},
	{name: "concentration", kind: kindString, optional: true},
	{name: "skin_type", kind: kindStringList, optional: true},
	{name: "key_ingredients", kind: kindStringList},
	{name: "benefits", kind: kindStringList},
	{name: "price", kind: kindPrice},
}

// Load reads and validates the primary product record at path.
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("read product record %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates raw JSON and returns the typed record. All missing and
// malformed fields are reported together.
func Parse(data []byte) (Record, error) {
	values, err := decodeFields(data, "product record", recordFields)
	if err != nil {
		return Record{}, err
	}
	return Record{
		Name:           values.strings["name"],
		Concentration:  values.strings["concentration"],
		SkinType:       values.lists["skin_type"],
		KeyIngredients: values.lists["key_ingredients"],
		Benefits:       values.lists["benefits"],
		HowToUse:       values.strings["how_to_use"],
		SideEffects:    values.strings["side_effects"],
		Price:          values.price,
	}, nil
}

// LoadComparison reads and validates a comparison product at path.
func LoadComparison(path string) (Comparison, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Comparison{}, fmt.Errorf("read comparison product %s: %w", path, err)
	}
	return ParseComparison(data)
}

// ParseComparison validates raw JSON for the comparison product.
func ParseComparison(data []byte) (Comparison, error) {
	values, err := decodeFields(data, "comparison product", comparisonFields)
	if err != nil {
		return Comparison{}, err
	}
	return Comparison{
		Name:           values.strings["name"],
		Concentration:  values.strings["concentration"],
		SkinType:       values.lists["skin_type"],
		KeyIngredients: values.lists["key_ingredients"],
		Benefits:       values.lists["benefits"],
		Price:          values.price,
	}, nil
}

type decodedFields struct {
	strings map[string]string
	lists   map[string][]string
	price   int
}

func decodeFields(data []byte, kind string, fields []fieldRule) (*decodedFields, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s is not a JSON object: %v", ErrInvalidRecord, kind, err)
	}

	out := &decodedFields{
		strings: make(map[string]string),
		lists:   make(map[string][]string),
	}
	fe := &FieldError{Kind: kind}

	for _, field := range fields {
		value, ok := raw[field.name]
		if !ok || isNull(value) {
			if !field.optional {
				fe.Missing = append(fe.Missing, field.name)
			}
			continue
		}
		switch field.kind {
		case kindString, kindNonBlankString:
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				fe.Invalid = append(fe.Invalid, FieldIssue{Field: field.name, Reason: "must be a string"})
				continue
			}
			if field.kind == kindNonBlankString && strings.TrimSpace(s) == "" {
				fe.Invalid = append(fe.Invalid, FieldIssue{Field: field.name, Reason: "must not be blank"})
				continue
			}
			out.strings[field.name] = s
		case kindStringList:
			var list []string
			if err := json.Unmarshal(value, &list); err != nil || len(list) == 0 {
				fe.Invalid = append(fe.Invalid, FieldIssue{Field: field.name, Reason: "must be a non-empty array of strings"})
				continue
			}
			out.lists[field.name] = list
		case kindPrice:
			price, reason := decodePrice(value)
			if reason != "" {
				fe.Invalid = append(fe.Invalid, FieldIssue{Field: field.name, Reason: reason})
				continue
			}
			out.price = price
		}
	}

	if !fe.empty() {
		return nil, fe
	}
	return out, nil
}

func decodePrice(value json.RawMessage) (int, string) {
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 || trimmed[0] == '"' {
		return 0, "must be a number"
	}
	dec := json.NewDecoder(bytes.NewReader(value))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return 0, "must be a number"
	}
	i, err := n.Int64()
	if err != nil {
		return 0, "must be an integer"
	}
	if i < 0 {
		return 0, "must not be negative"
	}
	return int(i), ""
}

func isNull(v json.RawMessage) bool {
	return string(bytes.TrimSpace(v)) == "null"
}
