package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// version is printed by -x, per §6.
const version = "0.1.0"

var flags = struct {
	basisOnly      bool
	noCompress     bool
	outDir         string
	reprintOnly    bool
	separateHeader bool
	quiet          bool
	printCounts    bool
	template       string
	printVersion   bool
}{}

var rootCmd = &cobra.Command{
	Use:           "lrcc [grammar-file]",
	Short:         "Generate an LALR(1) parser from a grammar",
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runGenerate,
}

func init() {
	pterm.Error.Prefix = pterm.Prefix{Text: "ERROR", Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack)}
	pterm.Info.Prefix = pterm.Prefix{Text: "INFO", Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack)}
	pterm.Warning.Prefix = pterm.Prefix{Text: "WARN", Style: pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)}

	f := rootCmd.Flags()
	f.BoolVarP(&flags.basisOnly, "basis", "b", false, "report only basis configurations, not full closure")
	f.BoolVarP(&flags.noCompress, "no-compress", "c", false, "disable action-table compression")
	f.StringVarP(&flags.outDir, "out-dir", "d", "", "output directory (default: alongside the input file)")
	f.BoolVarP(&flags.reprintOnly, "grammar", "g", false, "reprint the grammar (symbol cross-reference + rules), do nothing else")
	f.BoolVarP(&flags.separateHeader, "header", "m", false, "emit a separate header file and elide inline token defines")
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "suppress the .out report")
	f.BoolVarP(&flags.printCounts, "stats", "s", false, "print terminal/nonterminal/rule/state/conflict counts to stdout")
	f.StringVarP(&flags.template, "template", "t", "", "explicit template file path")
	f.BoolVarP(&flags.printVersion, "version", "x", false, "print version and exit")
}

// Execute runs the command and returns the process exit code, per §6's
// "exit status = errorcnt + conflictcnt" plus the immediate-nonzero rule
// for fatal host errors.
func Execute() (int, error) {
	if err := rootCmd.Execute(); err != nil {
		if fe, ok := err.(*fatalExit); ok {
			return fe.code, fe.cause
		}
		return 1, err
	}
	return exitCode, nil
}

// exitCode accumulates errorcnt+conflictcnt from the last run; RunE has
// no other channel back to main since cobra's contract is just an error.
var exitCode int

// fatalExit lets RunE signal a specific nonzero exit status for a host
// error (file open/read/write failure), distinct from the
// errorcnt+conflictcnt accounting used for grammar-level problems.
type fatalExit struct {
	code  int
	cause error
}

func (e *fatalExit) Error() string { return e.cause.Error() }

func fatal(cause error) error {
	return &fatalExit{code: 1, cause: cause}
}

func printVersion() {
	fmt.Println("lrcc version", version)
}
