package book

import (
	"encoding/json"
	"fmt"
	"io"
)

// Context is the preprocessor context mdBook sends as the first element
// of the input pair. Config holds the full book configuration; only the
// preprocessor's own table is of interest here.
type Context struct {
	Root          string                     `json:"root"`
	Config        map[string]json.RawMessage `json:"config"`
	Renderer      string                     `json:"renderer"`
	MdbookVersion string                     `json:"mdbook_version"`
}

// PreprocessorConfig returns the raw `preprocessor.<name>` table from the
// book configuration, or false if absent.
func (c *Context) PreprocessorConfig(name string) (json.RawMessage, bool) {
	raw, ok := c.Config["preprocessor"]
	if !ok {
		return nil, false
	}
	var tables map[string]json.RawMessage
	if err := json.Unmarshal(raw, &tables); err != nil {
		return nil, false
	}
	table, ok := tables[name]
	return table, ok
}

// ParseInput decodes the (context, book) pair mdBook writes to the
// preprocessor's stdin.
func ParseInput(r io.Reader) (*Context, *Book, error) {
	var pair []json.RawMessage
	if err := json.NewDecoder(r).Decode(&pair); err != nil {
		return nil, nil, fmt.Errorf("decode preprocessor input: %w", err)
	}
	if len(pair) != 2 {
		return nil, nil, fmt.Errorf("expected [context, book] pair, got %d elements", len(pair))
	}

	ctx := &Context{}
	if err := json.Unmarshal(pair[0], ctx); err != nil {
		return nil, nil, fmt.Errorf("decode context: %w", err)
	}
	b := &Book{}
	if err := json.Unmarshal(pair[1], b); err != nil {
		return nil, nil, fmt.Errorf("decode book: %w", err)
	}
	return ctx, b, nil
}
