// Package validate provides struct-tag validation for request bodies.
//
// Request structs use pointer fields so that an absent JSON key (nil) can be
// told apart from a zero value. Two modes are offered:
//
//	Struct(v)   full schema: `required` fails for absent fields
//	Partial(v)  every field optional: absent fields are skipped entirely
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must be present; a present string must not be ""
//	nullable            if empty, skip all remaining rules for this field
//	email               valid email address
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	gt=N                number > N
//	regex=pattern       value must match the regex (no commas in pattern)
//
// Whitespace counts: " " is a present string of length one.
//
// Example:
//
//	type RoleInput struct {
//	    Name *string `json:"name" validate:"required,min=5"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// Issue is one field-level violation. Path holds the JSON key(s) leading to
// the offending value.
type Issue struct {
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

// Issues is an ordered list of violations, in struct field order.
type Issues []Issue

func (is Issues) Error() string {
	parts := make([]string, 0, len(is))
	for _, i := range is {
		parts = append(parts, strings.Join(i.Path, ".")+": "+i.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the messages reported for the given JSON field name.
func (is Issues) Field(name string) []string {
	var out []string
	for _, i := range is {
		if len(i.Path) > 0 && i.Path[0] == name {
			out = append(out, i.Message)
		}
	}
	return out
}

// HasErrors returns true when is is non-empty.
func HasErrors(is Issues) bool { return len(is) > 0 }

// NewIssue builds a single-field issue.
func NewIssue(field, message string) Issue {
	return Issue{Path: []string{field}, Message: message}
}

// Struct validates all exported fields of v that carry a `validate` tag.
// Absent fields fail `required`.
func Struct(v interface{}) Issues {
	return check(v, false)
}

// Partial validates v with every field treated as optional: nil pointer
// fields are skipped, present fields must satisfy all of their rules.
func Partial(v interface{}) Issues {
	return check(v, true)
}

func check(v interface{}, partial bool) Issues {
	var issues Issues

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return issues
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return issues
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if !field.IsExported() || tag == "" {
			continue
		}

		name := JSONName(field)
		rules := strings.Split(tag, ",")
		value := rv.Field(i)

		if value.Kind() == reflect.Ptr {
			if value.IsNil() {
				if !partial && hasRule(rules, "required") {
					issues = append(issues, NewIssue(name, fmt.Sprintf("The %s field is required.", name)))
				}
				continue
			}
			value = value.Elem()
		}

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			rule = strings.TrimSpace(rule)
			msg := applyRule(rule, name, value)
			if msg == "" {
				continue
			}
			issues = append(issues, NewIssue(name, msg))
			if rule == "required" {
				break
			}
		}
	}

	return issues
}

func applyRule(rule, field string, v reflect.Value) string {
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		// Present numbers and bools satisfy required even when zero.
		if v.Kind() == reflect.String && v.Len() == 0 {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "email":
		if !emailRE.MatchString(text(v)) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}

	case "min":
		n := number(param)
		if isNumeric(v) {
			if toFloat(v) < n {
				return fmt.Sprintf("The %s must be at least %s.", field, param)
			}
		} else if runeLen(v) < n {
			return fmt.Sprintf("The %s must be at least %s characters.", field, param)
		}

	case "max":
		n := number(param)
		if isNumeric(v) {
			if toFloat(v) > n {
				return fmt.Sprintf("The %s must not be greater than %s.", field, param)
			}
		} else if runeLen(v) > n {
			return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
		}

	case "gt":
		if toFloat(v) <= number(param) {
			return fmt.Sprintf("The %s must be greater than %s.", field, param)
		}

	case "regex":
		re, err := compile(param)
		if err != nil {
			return fmt.Sprintf("The %s has an invalid validation pattern.", field)
		}
		if !re.MatchString(text(v)) {
			return fmt.Sprintf("The %s format is invalid.", field)
		}
	}

	return ""
}

var (
	emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	patterns sync.Map // pattern string → *regexp.Regexp
)

func compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := patterns.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	patterns.Store(pattern, re)
	return re, nil
}

// isEmpty backs `nullable`: "" and numeric zero count as empty.
func isEmpty(v reflect.Value) bool {
	switch {
	case v.Kind() == reflect.String:
		return v.Len() == 0
	case isNumeric(v):
		return toFloat(v) == 0
	}
	return false
}

func isNumeric(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	return number(text(v))
}

func text(v reflect.Value) string {
	if v.Kind() == reflect.String {
		return v.String()
	}
	return fmt.Sprint(v.Interface())
}

func runeLen(v reflect.Value) float64 { return float64(len([]rune(text(v)))) }

func number(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

// JSONName returns the JSON key a struct field is decoded from.
func JSONName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func hasRule(rules []string, target string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == target {
			return true
		}
	}
	return false
}
