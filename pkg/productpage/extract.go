// Package productpage extracts part descriptions and parameters from LCSC
// product detail pages.
//
// The parameters are not in the HTML tables. They live in a Nuxt state
// script of the form
//
//	window.__NUXT__=(function(a,b,c){return {data:[{detail:{paramVOList:[{paramNameEn:a,paramValueEn:b}]}}]}}("Resistance","10kΩ",...));
//
// which Reconstruct decodes without executing it: the skeleton's `:a`
// placeholders are replaced by the quoted arguments and the result is parsed
// with the lenient literal parser in package jsliteral.
//
// Extraction failures are classified by ErrNotFound, ErrMalformedPayload and
// ErrSchemaMismatch. Optional rows that are simply absent yield "".
package productpage

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/usestring/easyeda-mcp/pkg/jsliteral"
)

// Extraction is the data taken from one product page.
type Extraction struct {
	Description string     `json:"description"`
	Parameters  Parameters `json:"parameters"`
}

// Extractor holds the page-layout knobs. The zero value is not usable; use
// NewExtractor.
type Extractor struct {
	Marker             string
	BreadcrumbSelector string
}

// NewExtractor returns an Extractor for the current LCSC layout.
func NewExtractor() *Extractor {
	return &Extractor{
		Marker:             NuxtStateMarker,
		BreadcrumbSelector: BreadcrumbSelector,
	}
}

// Extract runs the full pipeline on doc: locate the state script,
// reconstruct it, project the parameters and read the description.
func (e *Extractor) Extract(doc *goquery.Document) (*Extraction, error) {
	script, err := LocateScriptWithMarker(doc, e.Marker)
	if err != nil {
		return nil, err
	}

	root, err := Reconstruct(script)
	if err != nil {
		return nil, err
	}

	params, err := e.ProjectParameters(doc, root)
	if err != nil {
		return nil, err
	}

	return &Extraction{
		Description: FindDescription(doc),
		Parameters:  params,
	}, nil
}

// ProjectParameters flattens the state's parameter list and adds the
// derived Category, Value and Package entries.
func (e *Extractor) ProjectParameters(doc *goquery.Document, root jsliteral.Value) (Parameters, error) {
	params, err := ParametersFromState(root)
	if err != nil {
		return nil, err
	}
	ApplyDerived(params, FindBreadcrumbCategoryWith(doc, e.BreadcrumbSelector), FindPackage(doc))
	return params, nil
}

// Extract runs NewExtractor().Extract(doc).
func Extract(doc *goquery.Document) (*Extraction, error) {
	return NewExtractor().Extract(doc)
}
