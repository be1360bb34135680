// Package trace implements the traceability model: traces registered
// against named records under configured targets, with hierarchical
// numbering and the rendered forms (anchors, footnotes, references,
// matrix tables) derived from them.
package trace

import (
	"fmt"
	"strconv"
	"strings"
)

// Trace is one occurrence of a trace marker: the chapter it appeared in,
// its hierarchical number, and whether visible numbers render fully
// qualified. Identity is structural over all three fields.
type Trace struct {
	Path      string // chapter source path, "" when unknown (draft chapter)
	Number    []int
	Qualified bool
}

// Equal reports structural equality.
func (t Trace) Equal(o Trace) bool {
	if t.Path != o.Path || t.Qualified != o.Qualified || len(t.Number) != len(o.Number) {
		return false
	}
	for i, n := range t.Number {
		if n != o.Number[i] {
			return false
		}
	}
	return true
}

// number joins the sequence with sep, or renders only the last segment
// when qualified is false.
func (t Trace) number(sep string, qualified bool) string {
	if !qualified {
		return strconv.Itoa(t.Number[len(t.Number)-1])
	}
	parts := make([]string, len(t.Number))
	for i, n := range t.Number {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, sep)
}

// id is the always-qualified, underscore-joined form used in anchor and
// footnote names. Globally unique even when two traces share the same
// unqualified visible number.
func (t Trace) id() string {
	return t.number("_", true)
}

// Anchor is the named anchor placed at the marker's original position.
func (t Trace) Anchor() string {
	return fmt.Sprintf("<a name=\"trace_%s\"></a>", t.id())
}

// Footnote is the footnote marker: a named anchor plus the superscripted
// visible number. The caller appends the target and record names.
func (t Trace) Footnote() string {
	return fmt.Sprintf("<a name=\"note_%s\"></a><sup>%s</sup>", t.id(), t.number(".", t.Qualified))
}

// Reference is the inline superscripted link pointing at the footnote.
func (t Trace) Reference() string {
	return fmt.Sprintf("<a href=\"#note_%s\"><sup>%s</sup></a>", t.id(), t.number(".", t.Qualified))
}

// Link is the cross-reference used in matrix cells: always the qualified
// number, linked to the trace anchor when the source path is known.
func (t Trace) Link() string {
	if t.Path == "" {
		return t.number(".", true)
	}
	return fmt.Sprintf("[%s](%s#trace_%s)", t.number(".", true), t.Path, t.id())
}
