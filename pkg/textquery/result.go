package textquery

// QueryResult holds extraction results from one page.
type QueryResult struct {
	Values    []any    `json:"values"`
	Count     int      `json:"count"`
	Mode      string   `json:"mode"`
	Truncated bool     `json:"truncated,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// collector gathers values up to a limit.
type collector struct {
	max       int
	values    []any
	truncated bool
}

func newCollector(max int) *collector {
	return &collector{max: max, values: []any{}}
}

// add appends v and reports whether more values are wanted.
func (c *collector) add(v any) bool {
	if c.full() {
		c.truncated = true
		return false
	}
	c.values = append(c.values, v)
	return true
}

func (c *collector) full() bool {
	return c.max > 0 && len(c.values) >= c.max
}

func (c *collector) result(mode string) *QueryResult {
	return &QueryResult{
		Values:    c.values,
		Count:     len(c.values),
		Mode:      mode,
		Truncated: c.truncated,
	}
}
