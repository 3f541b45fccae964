package textquery

import "fmt"

// Mode constants for extraction languages.
const (
	ModeCSS   = "css"
	ModeXPath = "xpath"
	ModeRegex = "regex"
	ModeState = "state"
)

// Modes lists the supported modes.
var Modes = []string{ModeCSS, ModeXPath, ModeRegex, ModeState}

// DefaultMode is used when no mode is given.
const DefaultMode = ModeCSS

func unknownMode(mode string) error {
	return fmt.Errorf("unknown mode: %q (valid: css, xpath, regex, state)", mode)
}
