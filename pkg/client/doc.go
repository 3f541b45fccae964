// Package client fetches part data from EasyEDA and LCSC.
//
// Three upstreams are covered:
//
//   - the EasyEDA components API, which returns the CAD data (symbol,
//     footprint and 3D model references) of an LCSC part;
//   - the EasyEDA 3D model endpoint, which serves OBJ text by model UUID;
//   - the LCSC product detail page, whose HTML carries the description and
//     the parameter table (see package productpage).
//
// # Quick Start
//
//	c := client.New()
//	cad, err := c.GetComponent(ctx, "C25804")
//	if errors.Is(err, client.ErrComponentNotFound) {
//	    // no CAD data for this part
//	}
//
// Use custom configuration:
//
//	c := client.New(
//	    client.WithUserAgent("my-tool/1.0"),
//	    client.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}),
//	)
//
// # Errors
//
// Non-2xx responses are returned as *APIError. Components API bodies are
// checked against an embedded JSON Schema; a body of the wrong shape yields
// a *ResponseError listing each problem.
package client
