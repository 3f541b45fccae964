package productpage

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/usestring/easyeda-mcp/pkg/jsliteral"
)

// Parameters maps a parameter display name to its value.
type Parameters map[string]string

// Derived parameter names.
const (
	ParamCategory = "Category"
	ParamValue    = "Value"
	ParamPackage  = "Package"
)

// Field names of a paramVOList entry.
const (
	fieldParamName  = "paramNameEn"
	fieldParamValue = "paramValueEn"
)

// ValueRule derives the Value parameter from Source when the category
// contains Needle.
type ValueRule struct {
	Needle string
	Source string
}

// ValueRules are checked in order; the first matching rule wins.
var ValueRules = []ValueRule{
	{Needle: "Resistor", Source: "Resistance"},
	{Needle: "Capacitor", Source: "Capacitance"},
	{Needle: "Inductor", Source: "Inductance"},
}

// ParametersFromState reads data[0].detail.paramVOList from the reconstructed
// state and flattens it into name/value pairs. Later duplicates win.
func ParametersFromState(root jsliteral.Value) (Parameters, error) {
	list, err := paramList(root)
	if err != nil {
		return nil, err
	}

	params := make(Parameters, list.Len())
	for i, entry := range list.Items() {
		if entry.Kind() != jsliteral.Object {
			return nil, schemaMismatch("paramVOList[%d] is %s, not object", i, entry.Kind())
		}
		name, err := stringField(entry, fieldParamName, i)
		if err != nil {
			return nil, err
		}
		value, err := stringField(entry, fieldParamValue, i)
		if err != nil {
			return nil, err
		}
		params[name] = value
	}
	return params, nil
}

func paramList(root jsliteral.Value) (jsliteral.Value, error) {
	data, ok := root.Get("data")
	if !ok {
		return jsliteral.Value{}, schemaMismatch("missing data")
	}
	first, ok := data.Index(0)
	if !ok {
		return jsliteral.Value{}, schemaMismatch("data is %s with %d items, want non-empty array", data.Kind(), data.Len())
	}
	detail, ok := first.Get("detail")
	if !ok {
		return jsliteral.Value{}, schemaMismatch("missing data[0].detail")
	}
	list, ok := detail.Get("paramVOList")
	if !ok {
		return jsliteral.Value{}, schemaMismatch("missing data[0].detail.paramVOList")
	}
	if list.Kind() != jsliteral.Array {
		return jsliteral.Value{}, schemaMismatch("data[0].detail.paramVOList is %s, not array", list.Kind())
	}
	return list, nil
}

// stringField reads a scalar field as its string form. Substituted values
// are always strings; literal numbers and booleans are accepted too.
func stringField(entry jsliteral.Value, field string, i int) (string, error) {
	v, ok := entry.Get(field)
	if !ok {
		return "", schemaMismatch("paramVOList[%d] has no %s", i, field)
	}
	switch v.Kind() {
	case jsliteral.String, jsliteral.Number, jsliteral.Bool:
		return v.String(), nil
	default:
		return "", schemaMismatch("paramVOList[%d].%s is %s", i, field, v.Kind())
	}
}

// ApplyDerived sets Category, Value and Package on params.
func ApplyDerived(params Parameters, category, pkg string) {
	params[ParamCategory] = category
	for _, rule := range ValueRules {
		if !strings.Contains(category, rule.Needle) {
			continue
		}
		if v, ok := params[rule.Source]; ok {
			params[ParamValue] = v
		}
		break
	}
	params[ParamPackage] = pkg
}

// ProjectParameters builds the full parameter record from the reconstructed
// state and the page's breadcrumb and attribute table.
func ProjectParameters(doc *goquery.Document, root jsliteral.Value) (Parameters, error) {
	return NewExtractor().ProjectParameters(doc, root)
}
