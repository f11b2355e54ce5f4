// Package urlname mints the url_name identifiers used for every exported OLX
// node. Names are lowercase, URL-safe, length-bounded and unique within one
// conversion run.
package urlname

import (
	"fmt"
	"regexp"
	"strings"
)

const DefaultMaxLength = 50

var (
	reInvalid    = regexp.MustCompile(`[^a-z0-9_-]`)
	reUnderscore = regexp.MustCompile(`_+`)
)

// Generator keeps the run-scoped registry of names handed out so far. It is
// not safe for concurrent use; the conversion pipeline is single-threaded by
// design.
type Generator struct {
	used map[string]struct{}
}

func New() *Generator {
	return &Generator{used: map[string]struct{}{}}
}

// Generate returns a unique url_name derived from displayName. A name that
// normalizes to a previously issued one gets a _1, _2, ... suffix, with the
// base re-truncated so the result stays within maxLength where the suffix
// allows it.
func (g *Generator) Generate(displayName string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	name := strings.ToLower(strings.TrimSpace(displayName))
	name = reInvalid.ReplaceAllString(name, "_")
	name = reUnderscore.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if len(name) > maxLength {
		name = strings.TrimRight(name[:maxLength], "_")
	}
	base := name
	for counter := 1; ; counter++ {
		if _, taken := g.used[name]; !taken {
			break
		}
		suffix := fmt.Sprintf("_%d", counter)
		truncated := base
		// The suffix can consume the whole length allowance; uniqueness
		// wins over the length bound in that case.
		if cut := maxLength - len(suffix); cut <= 0 {
			truncated = ""
		} else if len(truncated) > cut {
			truncated = truncated[:cut]
		}
		name = truncated + suffix
	}
	g.used[name] = struct{}{}
	return name
}

// Reset clears the registry. Only call between independent conversion runs.
func (g *Generator) Reset() {
	g.used = map[string]struct{}{}
}
