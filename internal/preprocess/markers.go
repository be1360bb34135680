package preprocess

import "regexp"

// Trace markers: {{#trace <target>:<record>}} or {{#tr <target>:<record>}}.
// The record is free text, trimmed, and may span lines.
var traceRE = regexp.MustCompile(`(?s)\{\{#(?:trace|tr)\s+([a-zA-Z0-9_-]+):\s*(.*?)\s*\}\}`)

// Matrix markers: {{#tracematrix <target>}} or {{#trace_matrix <target>}}.
var matrixRE = regexp.MustCompile(`(?s)\{\{#(?:tracematrix|trace_matrix)\s+([a-zA-Z0-9_-]+)\s*\}\}`)

// MarkerKind distinguishes the two marker grammars.
type MarkerKind string

const (
	KindTrace  MarkerKind = "trace"
	KindMatrix MarkerKind = "matrix"
)

// Marker is one recognized marker occurrence, as found by Markers.
type Marker struct {
	Kind   MarkerKind
	Target string
	Record string // empty for matrix markers
}

// Markers scans content for both marker grammars without rewriting
// anything. Used by the standalone check mode. Trace markers come first,
// each grammar in document order.
func Markers(content string) []Marker {
	var out []Marker
	for _, m := range traceRE.FindAllStringSubmatch(content, -1) {
		out = append(out, Marker{Kind: KindTrace, Target: m[1], Record: m[2]})
	}
	for _, m := range matrixRE.FindAllStringSubmatch(content, -1) {
		out = append(out, Marker{Kind: KindMatrix, Target: m[1]})
	}
	return out
}
