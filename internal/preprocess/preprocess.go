// Package preprocess runs the two-pass trace pipeline over a book:
// pass 1 numbers headings and rewrites trace markers into anchored
// footnotes while populating the registry, pass 2 rewrites matrix
// markers from the fully populated registry.
package preprocess

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/booktrace/mdbook-trace/internal/book"
	"github.com/booktrace/mdbook-trace/internal/config"
	"github.com/booktrace/mdbook-trace/internal/trace"
)

// Name is the preprocessor's name as configured in book.toml.
const Name = "trace"

// Preprocessor owns one run: the configuration and the registry built
// from it. Not safe for reuse across books.
type Preprocessor struct {
	cfg config.Config
	reg *trace.Registry
	log *slog.Logger
}

// New builds a preprocessor with a registry seeded from the configured
// targets.
func New(cfg config.Config, log *slog.Logger) *Preprocessor {
	return &Preprocessor{
		cfg: cfg,
		reg: trace.NewRegistry(cfg.Targets),
		log: log,
	}
}

// SupportsRenderer reports whether the preprocessor supports the given
// renderer. All renderers are supported except the sentinel value.
func (p *Preprocessor) SupportsRenderer(renderer string) bool {
	return renderer != "not-supported"
}

// Run mutates the book in place. Pass 1 must finish for the whole tree
// before pass 2 starts: matrices may summarize traces from chapters that
// appear later in document order. The first error aborts the run.
func (p *Preprocessor) Run(b *book.Book) error {
	err := b.ForEachChapter(func(ch *book.Chapter) error {
		if p.cfg.ChapterNumbers {
			p.numberHeading(ch)
		}
		return p.generateTraces(ch)
	})
	if err != nil {
		return err
	}
	return b.ForEachChapter(p.generateMatrices)
}

// generateTraces rewrites every trace marker in the chapter into an
// anchor plus footnote reference, registers the trace, and appends the
// collected footnotes to the chapter body.
func (p *Preprocessor) generateTraces(ch *book.Chapter) error {
	matches := traceRE.FindAllStringSubmatchIndex(ch.Content, -1)
	if len(matches) == 0 {
		return nil
	}

	var (
		out       strings.Builder
		footnotes []string
		last      int
		count     int
	)
	for _, m := range matches {
		count++
		targetID := ch.Content[m[2]:m[3]]
		record := ch.Content[m[4]:m[5]]

		target, err := p.reg.Target(targetID)
		if err != nil {
			return fmt.Errorf("chapter %q: %w", ch.Name, err)
		}

		number := trace.Number(p.cfg.ParentNumbering, ch.Number, count, len(ch.SubItems))
		tr := trace.Trace{
			Path:      ch.PathString(),
			Number:    number,
			Qualified: p.cfg.QualifiedFootnotes,
		}
		target.AddTrace(record, tr)

		out.WriteString(ch.Content[last:m[0]])
		out.WriteString(tr.Anchor())
		out.WriteString(tr.Reference())
		last = m[1]

		footnotes = append(footnotes, fmt.Sprintf("%s %s %s", tr.Footnote(), target.Name, record))
	}
	out.WriteString(ch.Content[last:])

	sep := "\n\n"
	if p.cfg.FootnoteDivider {
		sep = "\n\n---\n\n"
	}
	ch.Content = out.String() + sep + strings.Join(footnotes, "\n\n")

	p.log.Debug("traces generated", "chapter", ch.Name, "count", count)
	return nil
}

// generateMatrices rewrites every matrix marker into the rendered
// traceability table for its target. Read-only over the registry.
func (p *Preprocessor) generateMatrices(ch *book.Chapter) error {
	matches := matrixRE.FindAllStringSubmatchIndex(ch.Content, -1)
	if len(matches) == 0 {
		return nil
	}

	var out strings.Builder
	last := 0
	for _, m := range matches {
		targetID := ch.Content[m[2]:m[3]]
		target, err := p.reg.Target(targetID)
		if err != nil {
			return fmt.Errorf("chapter %q: %w", ch.Name, err)
		}
		out.WriteString(ch.Content[last:m[0]])
		out.WriteString(target.Matrix(p.cfg.RecordHeading, p.cfg.TraceHeading))
		last = m[1]
	}
	out.WriteString(ch.Content[last:])
	ch.Content = out.String()
	return nil
}
