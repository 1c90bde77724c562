// Package config loads the optional project-wide defaults the CLI falls
// back to when a flag isn't given on the command line, the way
// tqw.ScanFileInfo lets a TOML header override zero-value struct fields.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// File is the shape of an "lrcc.toml"; the CLI reads it from the current
// working directory only. Every field mirrors one of §6's CLI flags
// and is left zero when unset, so a flag explicitly passed on the
// command line always wins over the file.
type File struct {
	OutDir         string `toml:"out_dir"`
	Template       string `toml:"template"`
	SeparateHeader bool   `toml:"separate_header"`
	NoCompress     bool   `toml:"no_compress"`
	Quiet          bool   `toml:"quiet"`
}

// Load reads and parses path. A missing file is not an error: it just
// means no project defaults apply, and the zero File is returned.
func Load(path string) (File, error) {
	var f File
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return f, err
	}
	err = toml.Unmarshal(data, &f)
	return f, err
}

// Merge overlays cli on top of f: a zero-valued field in cli falls back
// to f's value, a non-zero field in cli always wins.
func Merge(f File, cli File) File {
	out := f
	if cli.OutDir != "" {
		out.OutDir = cli.OutDir
	}
	if cli.Template != "" {
		out.Template = cli.Template
	}
	if cli.SeparateHeader {
		out.SeparateHeader = true
	}
	if cli.NoCompress {
		out.NoCompress = true
	}
	if cli.Quiet {
		out.Quiet = true
	}
	return out
}
