package tools

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/usestring/easyeda-mcp/internal/cache"
	"github.com/usestring/easyeda-mcp/internal/component"
	"github.com/usestring/easyeda-mcp/internal/config"
	"github.com/usestring/easyeda-mcp/internal/query"
	"github.com/usestring/easyeda-mcp/pkg/client"
	"github.com/usestring/easyeda-mcp/pkg/textquery"
)

const resistorPage = `<html><body>
<ul>
<li class="v-breadcrumbs__item">Home</li>
<li class="v-breadcrumbs__item">Resistors</li>
<li class="v-breadcrumbs__item">Chip Resistor - Surface Mount</li>
<li class="v-breadcrumbs__item">0603WAF1002T5E</li>
</ul>
<table>
<tr><td>Package</td><td>0603</td></tr>
<tr><td>Description</td><td>100mW Thick Film Resistors 10kOhm 0603</td></tr>
</table>
<script>window.__NUXT__=(function(a,b,c,d){return {data:[{detail:{productCode:"C25804",paramVOList:[{paramNameEn:a,paramValueEn:b},{paramNameEn:c,paramValueEn:d}]}}]}}("Resistance","10k","Tolerance","1%"));</script>
</body></html>`

const brokenPage = `<html><body><script>window.__NUXT__={data:[}("x"));</script></body></html>`

const testOBJ = "# model\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

func resistorCAD() map[string]any {
	return map[string]any{
		"success": true,
		"result": map[string]any{
			"uuid":  "c3f7e1",
			"title": "0603WAF1002T5E",
			"dataStr": map[string]any{
				"shape": []any{"P~show~0~1", "P~show~0~2", "W~1", "W~2", "W~3", "W~4", "W~5", "W~6"},
			},
			"packageDetail": map[string]any{
				"title": "R0603",
				"dataStr": map[string]any{"shape": []any{
					`SVGNODE~{"gId":"g1","nodeName":"g","attrs":{"uuid":"m-0603","title":"R0603_L1.6-W0.8-H0.6"}}`,
				}},
			},
		},
	}
}

// newUpstreamServer serves the components API, product pages and 3D models
// for C25804 (complete), C99 (broken page) and nothing else.
func newUpstreamServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/products/{id}/components", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.PathValue("id") {
		case "C25804", "C99":
			_ = json.NewEncoder(w).Encode(resistorCAD())
		default:
			_, _ = w.Write([]byte(`{"success":false,"code":404,"result":null}`))
		}
	})
	mux.HandleFunc("/product-detail/{page}", func(w http.ResponseWriter, r *http.Request) {
		switch strings.TrimSuffix(r.PathValue("page"), ".html") {
		case "C25804":
			_, _ = w.Write([]byte(resistorPage))
		case "C99":
			_, _ = w.Write([]byte(brokenPage))
		default:
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("/analyzer/api/3dmodel/{uuid}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("uuid") != "m-0603" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(testOBJ))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		APIBaseURL:           baseURL,
		ModelBaseURL:         baseURL,
		ProductBaseURL:       baseURL,
		HTTPClientTimeout:    5 * time.Second,
		UserAgent:            "easyeda-mcp-test",
		FetchWorkers:         2,
		CacheMaxItems:        16,
		BreadcrumbSelector:   ".v-breadcrumbs__item",
		StateMarker:          "window.__NUXT__",
		CompactMaxArrayItems: 3,
		CompactMaxStringLen:  200,
		DefaultQueryLimit:    50,
		ModelMaxBytesDefault: 1_000_000,
		MaxBatchSize:         5,
	}
}

func newTestDeps(t *testing.T) *Deps {
	t.Helper()
	srv := newUpstreamServer(t)
	cfg := testConfig(srv.URL)

	records, err := cache.New[*component.Record](cfg.CacheMaxItems, cfg.CacheTTL)
	require.NoError(t, err)

	up := client.New(cfg.ClientOptions()...)
	return &Deps{
		Components: component.NewService(up, records, component.Options{
			FetchWorkers:     cfg.FetchWorkers,
			StrictEnrichment: cfg.StrictEnrichment,
			Extractor:        cfg.Extractor(),
		}),
		Query:     query.NewEngine(),
		TextQuery: textquery.NewEngineWithMarker(cfg.StateMarker),
		Config:    cfg,
	}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var coded *CodedError
	require.ErrorAs(t, err, &coded)
	require.Equal(t, code, coded.Code, coded.Error())
}
