package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/kymmt90/lrcc/config"
	"github.com/kymmt90/lrcc/emit"
	"github.com/kymmt90/lrcc/grammar"
	"github.com/kymmt90/lrcc/rerr"
	"github.com/kymmt90/lrcc/table"
)

func runGenerate(cmd *cobra.Command, args []string) error {
	if flags.printVersion {
		printVersion()
		return nil
	}
	if len(args) == 0 {
		return fatal(fmt.Errorf("a grammar file is required"))
	}
	grmPath := args[0]

	raw, err := os.ReadFile(grmPath)
	if err != nil {
		return fatal(&rerr.FatalError{Cause: err})
	}

	cliCfg := config.File{
		OutDir:         flags.outDir,
		Template:       flags.template,
		SeparateHeader: flags.separateHeader,
		NoCompress:     flags.noCompress,
		Quiet:          flags.quiet,
	}
	fileCfg, err := config.Load("lrcc.toml")
	if err != nil {
		return fatal(&rerr.FatalError{Cause: err})
	}
	cfg := config.Merge(fileCfg, cliCfg)

	g := grammar.Compile(string(raw), grmPath)

	if flags.reprintOnly {
		g.WriteSymbolsAndRules(os.Stdout)
		exitCode = g.Errors.Len() + g.ConflictCount
		return nil
	}

	for _, e := range g.Errors {
		pterm.Error.Println(e.Error())
	}

	if len(g.States) == 0 {
		// ResolveStart couldn't find a start symbol, so Compile returned
		// before building any states; nothing downstream can run.
		exitCode = g.Errors.Len() + g.ConflictCount
		return nil
	}

	if !cfg.NoCompress {
		table.Compress(g)
	}
	packed := table.Pack(g)
	dt := emit.AssignDataTypes(g)

	tmpl := emit.DefaultTemplate()
	if cfg.Template != "" {
		f, err := os.Open(cfg.Template)
		if err != nil {
			return fatal(&rerr.FatalError{Cause: err})
		}
		defer f.Close()
		tmpl = f
	}

	srcPath, headerPath, reportPath := outputPaths(grmPath, cfg.OutDir)
	name := parserName(g, srcPath)

	var out strings.Builder
	header, err := emit.Emit(g, packed, dt, tmpl, &out, emit.Options{
		Name:           name,
		SeparateHeader: cfg.SeparateHeader,
	})
	if err != nil {
		return fatal(&rerr.FatalError{Cause: err})
	}

	if err := writeFileIfChanged(srcPath, []byte(out.String())); err != nil {
		return fatal(&rerr.FatalError{Cause: err})
	}
	if cfg.SeparateHeader {
		if err := writeFileIfChanged(headerPath, []byte(header)); err != nil {
			return fatal(&rerr.FatalError{Cause: err})
		}
	}

	if !cfg.Quiet {
		var report strings.Builder
		g.WriteReport(&report, flags.basisOnly)
		if err := writeFileIfChanged(reportPath, []byte(report.String())); err != nil {
			return fatal(&rerr.FatalError{Cause: err})
		}
	}

	if flags.printCounts {
		fmt.Printf("%v terminals, %v nonterminals, %v rules, %v states, %v conflicts\n",
			g.NTerminal, g.Symbols.Len()-g.NTerminal, len(g.Rules), len(g.States), g.ConflictCount)
	}
	if g.ConflictCount > 0 {
		pterm.Warning.Printf("%v parsing conflict(s)\n", g.ConflictCount)
	}

	exitCode = g.Errors.Len() + g.ConflictCount
	return nil
}

// parserName derives the generated parser's name substituted for "Parse"
// in the template: the grammar's own %name declaration if given, else the
// output file's base name, PascalCased.
func parserName(g *grammar.Grammar, srcPath string) string {
	if g.Name != "" {
		return g.Name
	}
	base := filepath.Base(srcPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return pascalCase(base)
}

func pascalCase(s string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range s {
		if r == '_' || r == '-' {
			upperNext = true
			continue
		}
		if upperNext {
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
