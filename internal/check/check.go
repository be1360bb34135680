// Package check validates a book's trace markers without invoking
// mdBook: it loads book.toml, scans every markdown source file for
// markers, and verifies that all referenced targets are configured.
// It never rewrites files.
package check

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/booktrace/mdbook-trace/internal/config"
	"github.com/booktrace/mdbook-trace/internal/preprocess"
	"github.com/booktrace/mdbook-trace/internal/trace"
)

// Report summarizes one check run.
type Report struct {
	Files    int
	Traces   int
	Matrices int

	// Records counts trace markers per target id and record name.
	Records map[string]map[string]int
}

// Run checks the book rooted at dir. It fails on the first marker whose
// target id is not configured.
func Run(dir string, log *slog.Logger) (*Report, error) {
	cfg, src, err := config.LoadBookFile(dir)
	if err != nil {
		return nil, err
	}

	rep := &Report{Records: map[string]map[string]int{}}

	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		rep.Files++

		for _, m := range preprocess.Markers(string(data)) {
			if _, ok := cfg.Targets[m.Target]; !ok {
				return fmt.Errorf("%s: %w", path, &trace.UnknownTargetError{ID: m.Target})
			}
			switch m.Kind {
			case preprocess.KindTrace:
				rep.Traces++
				byRecord, ok := rep.Records[m.Target]
				if !ok {
					byRecord = map[string]int{}
					rep.Records[m.Target] = byRecord
				}
				byRecord[m.Record]++
			case preprocess.KindMatrix:
				rep.Matrices++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("check complete",
		"dir", dir,
		"files", rep.Files,
		"traces", rep.Traces,
		"matrices", rep.Matrices,
	)
	for target, byRecord := range rep.Records {
		log.Info("target summary", "target", target, "records", len(byRecord))
	}
	return rep, nil
}
