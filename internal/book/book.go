// Package book models the mdBook preprocessor wire protocol: the book
// tree, its chapters, and the context object mdBook sends alongside it.
package book

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SectionNumber is a chapter's hierarchical position in the book,
// e.g. [1] for chapter 1, [1 2] for its second subchapter. Empty for
// unnumbered (prefix/suffix/draft) chapters.
type SectionNumber []int

// String renders the number dot-joined, e.g. "1.2".
func (n SectionNumber) String() string {
	parts := make([]string, len(n))
	for i, v := range n {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ".")
}

// Chapter is a single page of the book. Content is raw markdown;
// SubItems nest recursively.
type Chapter struct {
	Name        string        `json:"name"`
	Content     string        `json:"content"`
	Number      SectionNumber `json:"number"`
	SubItems    []BookItem    `json:"sub_items"`
	Path        *string       `json:"path"`
	SourcePath  *string       `json:"source_path"`
	ParentNames []string      `json:"parent_names"`
}

// PathString returns the chapter's source path, or "" for draft chapters.
func (c *Chapter) PathString() string {
	if c.Path == nil {
		return ""
	}
	return *c.Path
}

// BookItem is one entry in the book tree: a chapter, a part title, or a
// separator. Exactly one variant is set.
type BookItem struct {
	Chapter   *Chapter
	PartTitle string
	Separator bool
}

// MarshalJSON reproduces mdBook's serde enum encoding:
// {"Chapter": {...}}, {"PartTitle": "..."}, or the bare string "Separator".
func (it BookItem) MarshalJSON() ([]byte, error) {
	switch {
	case it.Chapter != nil:
		return json.Marshal(map[string]*Chapter{"Chapter": it.Chapter})
	case it.Separator:
		return json.Marshal("Separator")
	default:
		return json.Marshal(map[string]string{"PartTitle": it.PartTitle})
	}
}

func (it *BookItem) UnmarshalJSON(data []byte) error {
	*it = BookItem{}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "Separator" {
			return fmt.Errorf("unknown book item %q", s)
		}
		it.Separator = true
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decode book item: %w", err)
	}
	if raw, ok := obj["Chapter"]; ok {
		ch := &Chapter{}
		if err := json.Unmarshal(raw, ch); err != nil {
			return fmt.Errorf("decode chapter: %w", err)
		}
		it.Chapter = ch
		return nil
	}
	if raw, ok := obj["PartTitle"]; ok {
		if err := json.Unmarshal(raw, &it.PartTitle); err != nil {
			return fmt.Errorf("decode part title: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown book item variant")
}

// Book is the root of the document tree.
type Book struct {
	Sections []BookItem `json:"sections"`

	// mdBook marks Book non-exhaustive; the field round-trips as null.
	NonExhaustive *struct{} `json:"__non_exhaustive"`
}

// ForEachChapter visits every chapter depth-first in document order,
// stopping at the first error.
func (b *Book) ForEachChapter(fn func(*Chapter) error) error {
	return walkItems(b.Sections, fn)
}

func walkItems(items []BookItem, fn func(*Chapter) error) error {
	for i := range items {
		ch := items[i].Chapter
		if ch == nil {
			continue
		}
		if err := fn(ch); err != nil {
			return err
		}
		if err := walkItems(ch.SubItems, fn); err != nil {
			return err
		}
	}
	return nil
}
