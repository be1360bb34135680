package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/booktrace/mdbook-trace/internal/book"
	"github.com/booktrace/mdbook-trace/internal/check"
	"github.com/booktrace/mdbook-trace/internal/config"
	"github.com/booktrace/mdbook-trace/internal/preprocess"
)

// mdbookCompat is the mdBook release line this preprocessor was built
// against. A mismatch is a warning, not an error.
const mdbookCompat = "~0.4"

func main() {
	// stdout carries the processed book; everything else goes to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	root := &cobra.Command{
		Use:           "mdbook-trace",
		Short:         "An mdBook preprocessor for requirements traceability",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreprocess(log)
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "supports <renderer>",
		Short: "Check whether a renderer is supported",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			p := preprocess.New(config.Default(), log)
			if !p.SupportsRenderer(args[0]) {
				os.Exit(1)
			}
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "check [book-dir]",
		Short: "Validate trace markers in a book's sources without building it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			_, err := check.Run(dir, log)
			return err
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runPreprocess reads the (context, book) pair from stdin, applies the
// pipeline, and writes the mutated book to stdout. Nothing is written
// on failure.
func runPreprocess(log *slog.Logger) error {
	ctx, b, err := book.ParseInput(os.Stdin)
	if err != nil {
		return err
	}

	warnVersion(ctx.MdbookVersion, log)

	raw, _ := ctx.PreprocessorConfig(preprocess.Name)
	cfg, err := config.FromJSON(raw)
	if err != nil {
		return err
	}

	p := preprocess.New(cfg, log)
	if err := p.Run(b); err != nil {
		return err
	}
	return json.NewEncoder(os.Stdout).Encode(b)
}

// warnVersion logs when the calling mdBook falls outside the release
// line this binary was built against.
func warnVersion(version string, log *slog.Logger) {
	if version == "" {
		return
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		log.Warn("unparseable mdbook version", "version", version)
		return
	}
	constraint, err := semver.NewConstraint(mdbookCompat)
	if err != nil {
		return
	}
	if !constraint.Check(v) {
		log.Warn("mdbook version mismatch",
			"mdbook", version,
			"built_against", mdbookCompat,
		)
	}
}
