package textquery

import (
	"fmt"
	"regexp"
)

// ValidateRegex checks that a regular expression compiles.
func ValidateRegex(expression string) error {
	if _, err := regexp.Compile(expression); err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	return nil
}

// QueryRegex extracts matches from the raw page source. When the regex has
// capture groups, the first group of each match is returned; otherwise the
// full match.
func QueryRegex(body []byte, expression string, maxResults int) (*QueryResult, error) {
	re, err := regexp.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid regex: %w", err)
	}

	hasGroups := re.NumSubexp() > 0
	limit := -1
	if maxResults > 0 {
		limit = maxResults + 1
	}

	c := newCollector(maxResults)
	for _, match := range re.FindAllSubmatch(body, limit) {
		v := match[0]
		if hasGroups {
			v = match[1]
		}
		if !c.add(string(v)) {
			break
		}
	}

	return c.result(ModeRegex), nil
}
