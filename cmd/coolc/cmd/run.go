package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/coolc/internal/engine"
)

var (
	runFormat            string
	runNoColor           bool
	runMaxInferenceIters int
)

var runCmd = &cobra.Command{
	Use:   "run <file.cl-ast.json>",
	Short: "Run a COOL program from its AST description",
	Long: `Run loads a JSON- or YAML-encoded AST, runs it through the full
semantic pipeline, and — if no diagnostics were produced — executes
Main.main, printing its program output to stdout.

Any diagnostic is printed to stderr and the program is not executed.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFormat, "format", "", `input format: "json" or "yaml" (default: inferred from extension)`)
	runCmd.Flags().BoolVar(&runNoColor, "no-color", false, "disable colorized diagnostic output")
	runCmd.Flags().IntVar(&runMaxInferenceIters, "max-inference-iters", 0, "bound on AUTO_TYPE fixed-point iterations (default: 100)")
}

func runRun(_ *cobra.Command, args []string) error {
	path := args[0]
	prog, src, err := loadProgram(path, runFormat)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "coolc: analyzing %s\n", path)
	}

	result := engine.CompileAndRun(prog, engine.Options{
		Out:               os.Stdout,
		In:                os.Stdin,
		MaxInferenceIters: runMaxInferenceIters,
	})

	if len(result.Diagnostics) > 0 {
		fmt.Fprint(os.Stderr, engine.Report(result, src, !runNoColor))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("semantic analysis failed with %d error(s)", len(result.Diagnostics))
	}

	if result.RuntimeErr != nil {
		fmt.Fprintf(os.Stderr, "runtime error: %s\n", result.RuntimeErr)
		return fmt.Errorf("execution aborted: %s", result.RuntimeErr.Kind)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "coolc: main() returned %s\n", result.Value)
	}
	return nil
}
