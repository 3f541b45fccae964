package component

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"regexp"
	"strings"
	"time"

	"github.com/usestring/easyeda-mcp/pkg/productpage"
)

// ErrInvalidID is returned for strings that are not LCSC part numbers.
var ErrInvalidID = errors.New("invalid LCSC part number")

var lcscIDPattern = regexp.MustCompile(`^C[0-9]+$`)

// NormalizeID trims and upper-cases an LCSC part number and checks its form
// ("C" followed by digits).
func NormalizeID(s string) (string, error) {
	id := strings.ToUpper(strings.TrimSpace(s))
	if !lcscIDPattern.MatchString(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

// CAD keys merged from the product page.
const (
	KeyParameters  = "parameters"
	KeyDescription = "description"
)

// Record is an assembled component: CAD data from the components API
// enriched with the LCSC product page.
type Record struct {
	LCSCID      string                 `json:"lcsc_id"`
	Title       string                 `json:"title,omitempty"`
	Description string                 `json:"description"`
	Parameters  productpage.Parameters `json:"parameters"`

	// CAD is the components API result object with parameters and
	// description merged in.
	CAD map[string]any `json:"cad"`

	// EnrichmentError is set when the product page could not be used and
	// the record carries CAD data only.
	EnrichmentError string    `json:"enrichment_error,omitempty"`
	FetchedAt       time.Time `json:"fetched_at"`
}

// Enriched reports whether the product page data was merged.
func (r *Record) Enriched() bool {
	return r.EnrichmentError == ""
}

// newRecord merges page data into a copy of the CAD result.
func newRecord(lcscID string, cad map[string]any, page *productpage.Extraction, fetchedAt time.Time) *Record {
	merged := maps.Clone(cad)
	if merged == nil {
		merged = make(map[string]any)
	}

	params := productpage.Parameters{}
	var description string
	if page != nil {
		params = page.Parameters
		description = page.Description
	}

	paramsAny := make(map[string]any, len(params))
	for k, v := range params {
		paramsAny[k] = v
	}
	merged[KeyParameters] = paramsAny
	merged[KeyDescription] = description

	title, _ := cad["title"].(string)
	return &Record{
		LCSCID:      lcscID,
		Title:       title,
		Description: description,
		Parameters:  params,
		CAD:         merged,
		FetchedAt:   fetchedAt,
	}
}

// ModelRef identifies the 3D model referenced by a footprint.
type ModelRef struct {
	UUID  string `json:"uuid"`
	Title string `json:"title,omitempty"`
}

// svgNodePrefix starts the footprint shape that embeds the 3D model
// reference as JSON.
const svgNodePrefix = "SVGNODE~"

// ModelRef finds the 3D model reference in the footprint's shape list
// (packageDetail.dataStr.shape).
func (r *Record) ModelRef() (ModelRef, bool) {
	return FindModelRef(r.CAD)
}

// FindModelRef is ModelRef on a raw CAD result object.
func FindModelRef(cad map[string]any) (ModelRef, bool) {
	pkg, _ := cad["packageDetail"].(map[string]any)
	data, _ := pkg["dataStr"].(map[string]any)
	shapes, _ := data["shape"].([]any)

	for _, s := range shapes {
		line, ok := s.(string)
		if !ok || !strings.HasPrefix(line, svgNodePrefix) {
			continue
		}
		var node struct {
			Attrs struct {
				UUID  string `json:"uuid"`
				Title string `json:"title"`
			} `json:"attrs"`
		}
		if err := json.Unmarshal([]byte(line[len(svgNodePrefix):]), &node); err != nil {
			continue
		}
		if node.Attrs.UUID != "" {
			return ModelRef{UUID: node.Attrs.UUID, Title: node.Attrs.Title}, true
		}
	}
	return ModelRef{}, false
}
