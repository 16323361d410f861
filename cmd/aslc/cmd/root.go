// Package cmd implements the aslc command-line surface, grounded on
// _examples/CWBudde-go-dws/cmd/dwscript/cmd/root.go's cobra.Command tree
// shape: a single root command carrying the compiler's flags, with
// Execute as the package's sole exported entry point.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"aslc/internal/compiler"
	"aslc/internal/ioutil"
)

var (
	flagTokens    bool
	flagTree      bool
	flagSymbols   bool
	flagDecorated bool
	flagOut       string
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "aslc [file]",
	Short: "aslc compiles ASL source into three-address code",
	Long: `aslc is a compiler for ASL, a small imperative language of
functions, arrays, and scalar variables. It reads source from a file
argument or from stdin, runs it through symbol resolution and type
checking, and emits three-address code.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRoot,
}

// Execute runs the root command, returning any error cobra reports.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolVarP(&flagTokens, "tokens", "T", false, "emit the token stream and exit before parsing")
	rootCmd.Flags().BoolVarP(&flagTree, "tree", "P", false, "emit the parse tree before semantic analysis")
	rootCmd.Flags().BoolVarP(&flagSymbols, "symbols", "S", false, "emit a symbol table dump after pass 1")
	rootCmd.Flags().BoolVarP(&flagDecorated, "decorated", "D", false, "emit the parse tree after pass 2 (type and lvalue decorations are not shown)")
	rootCmd.Flags().StringVarP(&flagOut, "out", "o", "", "output file path (default: stdout)")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "accepted; has no effect on the output")
}

func runRoot(_ *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return fmt.Errorf("could not read source: %w", err)
	}

	out, closeOut, err := ioutil.Open(flagOut)
	if err != nil {
		return fmt.Errorf("could not open output %q: %w", flagOut, err)
	}
	defer closeOut()

	opt := compiler.Options{
		Tokens:    flagTokens,
		Tree:      flagTree,
		Symbols:   flagSymbols,
		Decorated: flagDecorated,
		Verbose:   flagVerbose,
	}
	res := compiler.Run(src, opt, os.Stderr)
	if res.Output != "" {
		var w ioutil.Writer
		w.WriteString(res.Output)
		if err := w.Flush(out); err != nil {
			return fmt.Errorf("could not write output: %w", err)
		}
	}
	if !res.OK {
		return fmt.Errorf("compilation failed")
	}
	return nil
}

// readSource reads the single file argument, if given, otherwise stdin,
// matching spec.md §6's "compiler [flags] < source.asl" invocation.
func readSource(args []string) (string, error) {
	if len(args) == 1 {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
