// Package config holds the preprocessor configuration, decoded from the
// `preprocessor.trace` table of a book's configuration.
package config

import (
	"encoding/json"
	"fmt"
)

// ParentNumbering selects the trace numbering strategy for a chapter
// that has subchapters.
type ParentNumbering string

const (
	// NumberingAllowDuplicates numbers traces as normal. A trace may
	// share its number with a subchapter (the first trace and first
	// subchapter of chapter 1 are both 1.1).
	NumberingAllowDuplicates ParentNumbering = "allow-duplicates"
	// NumberingOffset shifts trace numbers past the last subchapter
	// (chapter 1 with 2 subchapters numbers its first trace 1.3).
	NumberingOffset ParentNumbering = "offset"
	// NumberingZero inserts a ".0" qualifier before traces in a chapter
	// with subchapters (chapter 1 with a subchapter numbers its first
	// trace 1.0.1).
	NumberingZero ParentNumbering = "zero"
)

// UnmarshalText validates the policy name. Used by both the JSON and the
// TOML decoders.
func (p *ParentNumbering) UnmarshalText(text []byte) error {
	switch v := ParentNumbering(text); v {
	case NumberingAllowDuplicates, NumberingOffset, NumberingZero:
		*p = v
		return nil
	default:
		return fmt.Errorf("unknown parent-numbering %q", text)
	}
}

// TargetConfig describes one trace target.
type TargetConfig struct {
	// Name is the display name used in footnotes and matrix output.
	Name string `json:"name" toml:"name"`
}

// Config is the preprocessor configuration. All fields are optional in
// the source table; absent fields keep their defaults.
type Config struct {
	// Use the fully qualified trace number as the in-page footnote number.
	QualifiedFootnotes bool `json:"qualified-footnotes" toml:"qualified-footnotes"`
	// Prepend chapter numbers to each page title.
	ChapterNumbers bool `json:"chapter-numbers" toml:"chapter-numbers"`
	// Insert a horizontal rule between the page body and the footnotes.
	FootnoteDivider bool `json:"footnote-divider" toml:"footnote-divider"`

	ParentNumbering ParentNumbering `json:"parent-numbering" toml:"parent-numbering"`

	// Headings for the two columns of the trace matrix.
	RecordHeading string `json:"record-heading" toml:"record-heading"`
	TraceHeading  string `json:"trace-heading" toml:"trace-heading"`

	// Targets maps target id to target, keyed as written in markers.
	Targets map[string]TargetConfig `json:"targets" toml:"targets"`
}

// Default returns the configuration used when a field (or the whole
// table) is absent.
func Default() Config {
	return Config{
		QualifiedFootnotes: false,
		ChapterNumbers:     false,
		FootnoteDivider:    false,
		ParentNumbering:    NumberingZero,
		RecordHeading:      "Record",
		TraceHeading:       "Traces",
		Targets:            map[string]TargetConfig{},
	}
}

// FromJSON overlays a raw preprocessor table onto the defaults. A nil
// table yields the defaults unchanged.
func FromJSON(raw json.RawMessage) (Config, error) {
	cfg := Default()
	if len(raw) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode trace config: %w", err)
	}
	return cfg, nil
}
