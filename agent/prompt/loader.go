package prompt

import (
	_ "embed"
	"strings"
)

//go:embed template/cairo.txt
var cairoRaw string

// Instructions returns the system instructions of the in-app agent.
func Instructions() string {
	return strings.TrimSpace(cairoRaw)
}
