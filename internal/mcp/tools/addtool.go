package tools

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddTool registers a tool after checking its output type with
// OutputSchemaError. Panics on a bad output type so the server fails at
// startup instead of on the first call.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	if err := OutputSchemaError[Out](); err != nil {
		panic(fmt.Sprintf("tool %q: %v", t.Name, err))
	}
	sdkmcp.AddTool(srv, t, h)
}

// OutputSchemaError reports whether the zero value of T would be rejected by
// the output schema the SDK infers for T.
//
// encoding/json writes nil slices and maps as null, which fails an inferred
// "array" or "object" type; such fields need omitempty or a non-nil value.
// json.RawMessage fields are also rejected since the schema types them as
// byte arrays.
//
// Returns nil for the untyped any output and when inference itself fails.
func OutputSchemaError[T any]() error {
	rt := reflect.TypeFor[T]()
	if rt == reflect.TypeFor[any]() {
		return nil
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	if paths := rawMessagePaths(rt, "", map[reflect.Type]bool{}); len(paths) > 0 {
		return fmt.Errorf("output type %s has json.RawMessage at %s; use any instead",
			rt, strings.Join(paths, ", "))
	}

	schema, err := jsonschema.ForType(rt, &jsonschema.ForOptions{})
	if err != nil {
		return nil
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return nil
	}

	data, err := json.Marshal(reflect.Zero(rt).Interface())
	if err != nil {
		return nil
	}
	var zero map[string]any
	if err := json.Unmarshal(data, &zero); err != nil {
		return nil
	}
	if err := resolved.Validate(&zero); err != nil {
		return fmt.Errorf("zero value of %s fails its schema (%s): %w", rt, data, err)
	}
	return nil
}

var rawMessageType = reflect.TypeFor[json.RawMessage]()

// rawMessagePaths lists the field paths of t that hold json.RawMessage.
func rawMessagePaths(t reflect.Type, path string, seen map[reflect.Type]bool) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == rawMessageType {
		return []string{path}
	}
	if seen[t] {
		return nil
	}
	seen[t] = true
	defer delete(seen, t)

	join := func(name string) string {
		if path == "" {
			return name
		}
		return path + "." + name
	}

	var out []string
	switch t.Kind() {
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if f.IsExported() {
				out = append(out, rawMessagePaths(f.Type, join(f.Name), seen)...)
			}
		}
	case reflect.Slice, reflect.Array:
		out = append(out, rawMessagePaths(t.Elem(), join("[]"), seen)...)
	case reflect.Map:
		out = append(out, rawMessagePaths(t.Elem(), join("[value]"), seen)...)
	}
	return out
}
