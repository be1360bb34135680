package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// bookFile is the subset of book.toml the check command needs.
type bookFile struct {
	Book struct {
		Src string `toml:"src"`
	} `toml:"book"`
	Preprocessor map[string]toml.Primitive `toml:"preprocessor"`
}

// LoadBookFile reads <dir>/book.toml and returns the trace preprocessor
// configuration plus the book's source directory (relative to dir,
// default "src"). A book without a [preprocessor.trace] table gets the
// default configuration.
func LoadBookFile(dir string) (Config, string, error) {
	path := filepath.Join(dir, "book.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, "", fmt.Errorf("read %s: %w", path, err)
	}

	var bf bookFile
	md, err := toml.Decode(string(data), &bf)
	if err != nil {
		return Config{}, "", fmt.Errorf("parse %s: %w", path, err)
	}

	cfg := Default()
	if prim, ok := bf.Preprocessor["trace"]; ok {
		if err := md.PrimitiveDecode(prim, &cfg); err != nil {
			return Config{}, "", fmt.Errorf("decode [preprocessor.trace] in %s: %w", path, err)
		}
	}

	src := bf.Book.Src
	if src == "" {
		src = "src"
	}
	return cfg, filepath.Join(dir, src), nil
}
