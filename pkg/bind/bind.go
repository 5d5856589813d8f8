// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/shashiranjanraj/bizapi/config"
	"github.com/shashiranjanraj/bizapi/pkg/validate"
)

// ErrEmptyBody is returned when the request carries no JSON document.
var ErrEmptyBody = errors.New("request body is empty")

// JSON decodes r.Body into dest and validates it against the full schema:
// fields tagged `required` must be present.
//
// Returns (issues, nil) when the document decoded but violates the schema.
// Returns (nil, err) when the body is malformed JSON or too large.
func JSON(r *http.Request, dest interface{}) (validate.Issues, error) {
	return decode(r, dest, validate.Struct)
}

// PartialJSON is JSON with every field optional. Only the fields present in
// the body are validated.
func PartialJSON(r *http.Request, dest interface{}) (validate.Issues, error) {
	return decode(r, dest, validate.Partial)
}

func decode(r *http.Request, dest interface{}, check func(interface{}) validate.Issues) (validate.Issues, error) {
	// The body is capped at MAX_BODY_BYTES (default 4 MB) to prevent memory exhaustion.
	body := http.MaxBytesReader(nil, r.Body, config.MaxBodyBytes())
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyBody
	}

	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		if err := json.Unmarshal(data, dest); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		return check(dest), nil
	}

	mistyped, err := decodeFields(data, rv.Elem())
	if err != nil {
		return nil, err
	}
	if len(mistyped) == 0 {
		return check(dest), nil
	}

	issues := mistyped
	for _, is := range check(dest) {
		// A mistyped field is left absent; its presence issues are noise.
		if len(is.Path) > 0 && len(mistyped.Field(is.Path[0])) > 0 {
			continue
		}
		issues = append(issues, is)
	}
	sortByField(dest, issues)
	return issues, nil
}

// decodeFields decodes a JSON object field by field into the struct rv so
// that every value of the wrong JSON type is reported, not only the first.
// Mistyped fields are reset to their zero value.
func decodeFields(data []byte, rv reflect.Value) (validate.Issues, error) {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(data, &object); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	var issues validate.Issues
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() || f.Tag.Get("json") == "-" {
			continue
		}
		name := validate.JSONName(f)
		raw, ok := lookup(object, name)
		if !ok {
			continue
		}

		err := json.Unmarshal(raw, rv.Field(i).Addr().Interface())
		if err == nil {
			continue
		}
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		rv.Field(i).Set(reflect.Zero(f.Type))
		issues = append(issues, validate.NewIssue(name,
			fmt.Sprintf("Expected %s, received %s", kindName(f.Type), typeErr.Value)))
	}
	return issues, nil
}

// lookup finds key in object, preferring an exact match and falling back to
// a case-insensitive one like encoding/json does.
func lookup(object map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	if raw, ok := object[key]; ok {
		return raw, true
	}
	for k, raw := range object {
		if strings.EqualFold(k, key) {
			return raw, true
		}
	}
	return nil, false
}

// sortByField orders issues by the declaration order of their top-level field.
func sortByField(dest interface{}, issues validate.Issues) {
	rt := reflect.TypeOf(dest)
	for rt != nil && rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt == nil || rt.Kind() != reflect.Struct {
		return
	}

	order := make(map[string]int, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		order[validate.JSONName(rt.Field(i))] = i
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return order[issues[i].Path[0]] < order[issues[j].Path[0]]
	})
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	}
	return t.Kind().String()
}
