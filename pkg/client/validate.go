package client

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/component.json
var componentSchemaJSON []byte

const componentSchemaURL = "component.json"

// componentSchema compiles the embedded components API schema once.
var componentSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(componentSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parsing component schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(componentSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("adding component schema: %w", err)
	}
	compiled, err := compiler.Compile(componentSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling component schema: %w", err)
	}
	return compiled, nil
})

// printer renders validation error kinds in English.
var printer = message.NewPrinter(language.English)

// validateComponentResponse checks a decoded components API body.
func validateComponentResponse(value any) error {
	schema, err := componentSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(value); err != nil {
		return &ResponseError{Endpoint: "components", Problems: validationProblems(err)}
	}
	return nil
}

// validationProblems flattens a validation error into sorted "path: message"
// lines, one per leaf failure.
func validationProblems(err error) []string {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return []string{err.Error()}
	}

	seen := make(map[string]bool)
	var out []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if e.ErrorKind != nil && len(e.Causes) == 0 {
			msg := e.ErrorKind.LocalizedString(printer)
			if len(e.InstanceLocation) > 0 {
				msg = "/" + strings.Join(e.InstanceLocation, "/") + ": " + msg
			}
			if !seen[msg] {
				seen[msg] = true
				out = append(out, msg)
			}
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(verr)

	if len(out) == 0 {
		return []string{verr.Error()}
	}
	sort.Strings(out)
	return out
}
