package trace

import (
	"fmt"
	"sort"
	"strings"

	"github.com/booktrace/mdbook-trace/internal/config"
)

// UnknownTargetError is returned when a marker references a target id
// absent from the configuration. It aborts the whole run.
type UnknownTargetError struct {
	ID string
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("no target defined with id %q", e.ID)
}

// Record is a named item with the unique set of traces that reference
// it. Traces keep insertion order so matrix output is stable across runs.
type Record struct {
	Name   string
	traces []Trace
}

// Add inserts a trace unless an equal one is already present.
func (r *Record) Add(t Trace) {
	for _, have := range r.traces {
		if have.Equal(t) {
			return
		}
	}
	r.traces = append(r.traces, t)
}

// Traces returns the record's traces in insertion order.
func (r *Record) Traces() []Trace {
	return r.traces
}

// references renders every trace as a matrix cell link.
func (r *Record) references() []string {
	refs := make([]string, len(r.traces))
	for i, t := range r.traces {
		refs[i] = t.Link()
	}
	return refs
}

// Target is a named traceability table: records keyed by record name.
type Target struct {
	Name    string
	records map[string]*Record
}

// AddTrace registers a trace against the named record, creating the
// record on first reference.
func (t *Target) AddTrace(record string, tr Trace) {
	rec, ok := t.records[record]
	if !ok {
		rec = &Record{Name: record}
		t.records[record] = rec
	}
	rec.Add(tr)
}

// Record returns the named record, or nil if never referenced.
func (t *Target) Record(name string) *Record {
	return t.records[name]
}

// Matrix renders the target's traceability table as a markdown pipe
// table, one row per record sorted by record name.
func (t *Target) Matrix(recordHeading, traceHeading string) string {
	rows := []string{
		fmt.Sprintf("| %s | %s |", recordHeading, traceHeading),
		"|--------|--------|",
	}

	names := make([]string, 0, len(t.records))
	for name := range t.records {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rec := t.records[name]
		rows = append(rows, fmt.Sprintf("| %s | %s |", rec.Name, strings.Join(rec.references(), ", ")))
	}
	return strings.Join(rows, "\n")
}

// Registry holds all targets for one run. The target set is fixed at
// construction; only records and traces are added afterwards.
type Registry struct {
	targets map[string]*Target
}

// NewRegistry seeds one target per configured target id.
func NewRegistry(targets map[string]config.TargetConfig) *Registry {
	reg := &Registry{targets: make(map[string]*Target, len(targets))}
	for id, tc := range targets {
		reg.targets[id] = &Target{
			Name:    tc.Name,
			records: map[string]*Record{},
		}
	}
	return reg
}

// Target resolves a target id, returning *UnknownTargetError on a miss.
func (r *Registry) Target(id string) (*Target, error) {
	t, ok := r.targets[id]
	if !ok {
		return nil, &UnknownTargetError{ID: id}
	}
	return t, nil
}
