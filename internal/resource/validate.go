package resource

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stemsi/academy-backoffice/internal/model"
)

// ValidationError carries per-field messages for a rejected payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var validate = govalidator.New()

// ValidateCreate checks a full payload and returns the normalised fields
// to store. Unknown and reserved keys are dropped; defaults are applied.
func (s *Schema) ValidateCreate(payload map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(s.Fields))
	errs := map[string]string{}

	for _, f := range s.Fields {
		raw, present := payload[f.Name]
		if !present || raw == nil || isBlank(raw) {
			if f.Required {
				errs[f.Name] = "is required"
				continue
			}
			if f.Default != nil {
				out[f.Name] = f.Default
			}
			continue
		}
		v, msg := f.normalize(raw)
		if msg != "" {
			errs[f.Name] = msg
			continue
		}
		out[f.Name] = v
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	return out, nil
}

// ValidatePatch checks only the supplied fields. A null value clears an
// optional field; required fields cannot be cleared.
func (s *Schema) ValidatePatch(payload map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(payload))
	errs := map[string]string{}

	for name, raw := range payload {
		f, ok := s.Field(name)
		if !ok {
			continue
		}
		if raw == nil || isBlank(raw) {
			if f.Required {
				errs[name] = "cannot be empty"
				continue
			}
			out[name] = nil
			continue
		}
		v, msg := f.normalize(raw)
		if msg != "" {
			errs[name] = msg
			continue
		}
		out[name] = v
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	return out, nil
}

func isBlank(v interface{}) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// normalize returns the stored form of raw, or a message describing why
// it is rejected.
func (f Field) normalize(raw interface{}) (interface{}, string) {
	switch f.Type {
	case TypeString, TypeText:
		s, ok := raw.(string)
		if !ok {
			return nil, "must be a string"
		}
		return strings.TrimSpace(s), ""

	case TypeEmail:
		s, ok := raw.(string)
		if !ok || validate.Var(strings.TrimSpace(s), "email") != nil {
			return nil, "must be a valid email address"
		}
		return strings.ToLower(strings.TrimSpace(s)), ""

	case TypeURL:
		s, ok := raw.(string)
		if !ok || validate.Var(strings.TrimSpace(s), "url") != nil {
			return nil, "must be a valid URL"
		}
		return strings.TrimSpace(s), ""

	case TypeNumber:
		n, ok := raw.(float64)
		if !ok {
			return nil, "must be a number"
		}
		return n, ""

	case TypeInteger:
		n, ok := raw.(float64)
		if !ok || n != math.Trunc(n) {
			return nil, "must be an integer"
		}
		return n, ""

	case TypeBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, "must be a boolean"
		}
		return b, ""

	case TypeDate:
		s, ok := raw.(string)
		if !ok || !validDate(s) {
			return nil, "must be a date (YYYY-MM-DD or RFC3339)"
		}
		return s, ""

	case TypeEnum:
		s, ok := raw.(string)
		if ok {
			for _, allowed := range f.Enum {
				if s == allowed {
					return s, ""
				}
			}
		}
		return nil, "must be one of: " + strings.Join(f.Enum, ", ")

	case TypeRef:
		s, ok := raw.(string)
		if !ok || validate.Var(s, "uuid") != nil {
			return nil, "must be a valid id"
		}
		return s, ""

	case TypeStringList:
		items, ok := raw.([]interface{})
		if !ok {
			return nil, "must be a list of strings"
		}
		list := make([]interface{}, 0, len(items))
		for _, it := range items {
			s, ok := it.(string)
			if !ok {
				return nil, "must be a list of strings"
			}
			list = append(list, s)
		}
		return list, ""
	}
	return nil, fmt.Sprintf("unsupported field type %q", f.Type)
}

func validDate(s string) bool {
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

// reservedKeys are never accepted from payloads.
var reservedKeys = map[string]bool{
	model.FieldID:        true,
	model.FieldCreatedAt: true,
	model.FieldUpdatedAt: true,
}
