package llm

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// FieldKind enumerates the JSON value kinds a schema field accepts.
type FieldKind int

const (
	KindString FieldKind = iota
	KindInt
	KindFloat
)

// Field describes one required field of a provider's structured output.
type Field struct {
	Name string
	Kind FieldKind

	// Bounded enables Min/Max range checks for numeric kinds.
	Bounded  bool
	Min, Max float64

	// Enum restricts string fields to a fixed value set (case-insensitive).
	Enum []string
}

// Schema is the strict output contract submitted with a reasoning request.
// A response that is not valid JSON, misses a field, or violates a field
// constraint counts as a provider failure.
type Schema struct {
	Fields []Field
}

// Instruction renders the schema as prompt text telling the model exactly
// which JSON object to produce.
func (s *Schema) Instruction() string {
	var b strings.Builder
	b.WriteString("Respond with a single JSON object and nothing else. Required fields:\n")
	for _, f := range s.Fields {
		b.WriteString("- \"")
		b.WriteString(f.Name)
		b.WriteString("\": ")
		switch f.Kind {
		case KindInt:
			b.WriteString("integer")
		case KindFloat:
			b.WriteString("number")
		default:
			b.WriteString("string")
		}
		if f.Bounded {
			fmt.Fprintf(&b, " between %g and %g", f.Min, f.Max)
		}
		if len(f.Enum) > 0 {
			fmt.Fprintf(&b, ", one of [%s]", strings.Join(f.Enum, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Validate checks raw JSON against the schema.
func (s *Schema) Validate(raw []byte) error {
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return fmt.Errorf("response is not a JSON object: %w", err)
	}

	for _, f := range s.Fields {
		value, ok := obj[f.Name]
		if !ok {
			return fmt.Errorf("missing required field %q", f.Name)
		}

		switch f.Kind {
		case KindString:
			str, ok := value.(string)
			if !ok {
				return fmt.Errorf("field %q must be a string", f.Name)
			}
			if str == "" {
				return fmt.Errorf("field %q is empty", f.Name)
			}
			if len(f.Enum) > 0 && !matchesEnum(str, f.Enum) {
				return fmt.Errorf("field %q value %q is not one of [%s]",
					f.Name, str, strings.Join(f.Enum, ", "))
			}
		case KindInt:
			num, ok := value.(float64)
			if !ok {
				return fmt.Errorf("field %q must be an integer", f.Name)
			}
			if num != math.Trunc(num) {
				return fmt.Errorf("field %q must be an integer, got %v", f.Name, num)
			}
			if f.Bounded && (num < f.Min || num > f.Max) {
				return fmt.Errorf("field %q value %v out of range [%g, %g]",
					f.Name, num, f.Min, f.Max)
			}
		case KindFloat:
			num, ok := value.(float64)
			if !ok {
				return fmt.Errorf("field %q must be a number", f.Name)
			}
			if f.Bounded && (num < f.Min || num > f.Max) {
				return fmt.Errorf("field %q value %v out of range [%g, %g]",
					f.Name, num, f.Min, f.Max)
			}
		}
	}

	return nil
}

func matchesEnum(value string, enum []string) bool {
	for _, e := range enum {
		if strings.EqualFold(value, e) {
			return true
		}
	}
	return false
}
