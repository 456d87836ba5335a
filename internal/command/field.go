package command

import (
	"encoding/json"
	"math"
	"sort"
	"strings"

	"github.com/thoreinstein/cec/internal/api"
)

// FieldType is the declared type of an argument.
type FieldType int

const (
	// TypeAny accepts any JSON value.
	TypeAny FieldType = iota
	TypeString
	TypeInteger
	TypeNumber
	TypeBoolean
	TypeArray
	TypeObject
)

// String returns the JSON-schema style name of the type.
func (t FieldType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return "any"
	}
}

// Field declares one argument of a command.
type Field struct {
	Name        string
	Type        FieldType
	Required    bool
	Description string
}

// Required declares a required field.
func Required(name string, t FieldType, description string) Field {
	return Field{Name: name, Type: t, Required: true, Description: description}
}

// Optional declares an optional field.
func Optional(name string, t FieldType, description string) Field {
	return Field{Name: name, Type: t, Description: description}
}

// Validate checks args against fields and returns a normalized copy.
//
// Missing required fields, type mismatches and undeclared fields are all
// reported together in one KindValidation error. Integral numbers are
// normalized to int64 for integer fields and every number to float64 for
// number fields. A nil args is treated as empty.
func Validate(fields []Field, args Args) (Args, error) {
	declared := make(map[string]Field, len(fields))
	for _, f := range fields {
		declared[f.Name] = f
	}

	var missing, invalid, unknown []string
	out := make(Args, len(args))

	for _, f := range fields {
		v, ok := args[f.Name]
		if !ok || v == nil {
			if f.Required {
				missing = append(missing, f.Name)
			}
			continue
		}
		if s, isStr := v.(string); isStr && f.Required && strings.TrimSpace(s) == "" {
			missing = append(missing, f.Name)
			continue
		}

		nv, ok := coerce(f.Type, v)
		if !ok {
			invalid = append(invalid, f.Name+" (want "+f.Type.String()+")")
			continue
		}
		out[f.Name] = nv
	}

	for name := range args {
		if _, ok := declared[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)

	if len(missing)+len(invalid)+len(unknown) == 0 {
		return out, nil
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing required field(s): "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		parts = append(parts, "invalid field(s): "+strings.Join(invalid, ", "))
	}
	if len(unknown) > 0 {
		parts = append(parts, "unknown field(s): "+strings.Join(unknown, ", "))
	}
	return nil, api.Validation("%s", strings.Join(parts, "; "))
}

func coerce(t FieldType, v any) (any, bool) {
	switch t {
	case TypeAny:
		return v, true
	case TypeString:
		s, ok := v.(string)
		return s, ok
	case TypeBoolean:
		b, ok := v.(bool)
		return b, ok
	case TypeInteger:
		return integer(v)
	case TypeNumber:
		f, ok := number(v)
		return f, ok
	case TypeArray:
		switch a := v.(type) {
		case []any:
			return a, true
		case []string:
			out := make([]any, len(a))
			for i, s := range a {
				out[i] = s
			}
			return out, true
		default:
			return nil, false
		}
	case TypeObject:
		m, ok := v.(map[string]any)
		return m, ok
	default:
		return nil, false
	}
}

// integer converts v to int64 without loss. Values outside the int64 range
// and non-integral values are rejected.
func integer(v any) (any, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		// Forms like 1e3 or 10.0. Above 2^53 the float is no longer exact.
		f, err := n.Float64()
		if err != nil || math.Abs(f) > maxExactFloat {
			return nil, false
		}
		return floatInteger(f)
	case float32:
		return floatInteger(float64(n))
	case float64:
		return floatInteger(n)
	default:
		return nil, false
	}
}

// maxExactFloat is the largest magnitude below which every integer has an
// exact float64 representation.
const maxExactFloat = 1 << 53

func floatInteger(f float64) (any, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, false
	}
	return int64(f), true
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
