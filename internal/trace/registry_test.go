package trace

import (
	"errors"
	"strings"
	"testing"

	"github.com/booktrace/mdbook-trace/internal/config"
)

func newTestRegistry() *Registry {
	return NewRegistry(map[string]config.TargetConfig{
		"req": {Name: "Requirements"},
	})
}

func TestRegistryResolvesConfiguredTarget(t *testing.T) {
	reg := newTestRegistry()
	target, err := reg.Target("req")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.Name != "Requirements" {
		t.Errorf("expected name %q, got %q", "Requirements", target.Name)
	}
}

func TestRegistryUnknownTarget(t *testing.T) {
	reg := newTestRegistry()
	_, err := reg.Target("nope")
	if err == nil {
		t.Fatal("expected error for unknown target")
	}

	var unknown *UnknownTargetError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownTargetError, got %T", err)
	}
	if unknown.ID != "nope" {
		t.Errorf("expected offending id %q, got %q", "nope", unknown.ID)
	}
	if !strings.Contains(err.Error(), `"nope"`) {
		t.Errorf("error message should name the target id, got %q", err.Error())
	}
}

func TestRecordCollapsesDuplicateTraces(t *testing.T) {
	reg := newTestRegistry()
	target, _ := reg.Target("req")

	tr := Trace{Path: "a.md", Number: []int{1, 1}, Qualified: false}
	target.AddTrace("FR-1", tr)
	target.AddTrace("FR-1", tr)
	target.AddTrace("FR-1", Trace{Path: "a.md", Number: []int{1, 2}, Qualified: false})

	rec := target.Record("FR-1")
	if rec == nil {
		t.Fatal("record FR-1 not created")
	}
	if got := len(rec.Traces()); got != 2 {
		t.Fatalf("expected 2 unique traces, got %d", got)
	}
}

func TestRecordKeepsInsertionOrder(t *testing.T) {
	reg := newTestRegistry()
	target, _ := reg.Target("req")

	target.AddTrace("FR-1", Trace{Path: "b.md", Number: []int{2, 1}})
	target.AddTrace("FR-1", Trace{Path: "a.md", Number: []int{1, 1}})

	traces := target.Record("FR-1").Traces()
	if traces[0].Path != "b.md" || traces[1].Path != "a.md" {
		t.Errorf("traces out of insertion order: %v", traces)
	}
}

func TestMatrixSortsRowsByRecordName(t *testing.T) {
	reg := newTestRegistry()
	target, _ := reg.Target("req")

	target.AddTrace("Widget", Trace{Path: "w.md", Number: []int{2, 1}})
	target.AddTrace("Apple", Trace{Path: "a.md", Number: []int{1, 1}})

	matrix := target.Matrix("Record", "Traces")
	lines := strings.Split(matrix, "\n")

	if lines[0] != "| Record | Traces |" {
		t.Errorf("bad header row: %q", lines[0])
	}
	if lines[1] != "|--------|--------|" {
		t.Errorf("bad separator row: %q", lines[1])
	}
	if len(lines) != 4 {
		t.Fatalf("expected 4 rows, got %d: %q", len(lines), matrix)
	}
	if !strings.HasPrefix(lines[2], "| Apple |") {
		t.Errorf("expected Apple first, got %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "| Widget |") {
		t.Errorf("expected Widget second, got %q", lines[3])
	}
}

func TestMatrixCellJoinsLinks(t *testing.T) {
	reg := newTestRegistry()
	target, _ := reg.Target("req")

	target.AddTrace("FR-1", Trace{Path: "a.md", Number: []int{1, 1}})
	target.AddTrace("FR-1", Trace{Path: "b.md", Number: []int{2, 1}})

	matrix := target.Matrix("Record", "Traces")
	want := "| FR-1 | [1.1](a.md#trace_1_1), [2.1](b.md#trace_2_1) |"
	if !strings.Contains(matrix, want) {
		t.Errorf("matrix missing row %q:\n%s", want, matrix)
	}
}

func TestRegistryTargetSetIsFixed(t *testing.T) {
	reg := NewRegistry(nil)
	if _, err := reg.Target("anything"); err == nil {
		t.Error("empty registry should resolve nothing")
	}
}
