package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/coolc/internal/diag"
	"github.com/cwbudde/coolc/internal/sema"
)

var (
	checkFormat            string
	checkNoColor           bool
	checkMaxInferenceIters int
	checkDumpAST           bool
)

var checkCmd = &cobra.Command{
	Use:   "check <file.cl-ast.json>",
	Short: "Run the static semantic pipeline only, without executing the program",
	Long: `Check runs the same multi-pass analyzer run uses but never executes
Main.main, for CI and editor integrations that only want diagnostics.
Its exit code reflects the diagnostic count: 0 when clean, 1 otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkFormat, "format", "", `input format: "json" or "yaml" (default: inferred from extension)`)
	checkCmd.Flags().BoolVar(&checkNoColor, "no-color", false, "disable colorized diagnostic output")
	checkCmd.Flags().IntVar(&checkMaxInferenceIters, "max-inference-iters", 0, "bound on AUTO_TYPE fixed-point iterations (default: 100)")
	checkCmd.Flags().BoolVar(&checkDumpAST, "dump-ast", false, "print the decoded AST before analyzing")
}

func runCheck(_ *cobra.Command, args []string) error {
	path := args[0]
	prog, src, err := loadProgram(path, checkFormat)
	if err != nil {
		return err
	}

	if checkDumpAST {
		fmt.Println("AST:")
		fmt.Println(prog.String())
	}

	ctx := sema.NewPassContext()
	if checkMaxInferenceIters > 0 {
		ctx.MaxInferenceIters = checkMaxInferenceIters
	}
	sema.RunPipeline(prog, ctx)

	diags := ctx.Diagnostics.All()
	if len(diags) == 0 {
		if verbose {
			fmt.Fprintf(os.Stderr, "coolc: %s is well typed (%d classes)\n", path, ctx.Registry.Count())
		}
		return nil
	}

	likes := make([]diag.DiagnosticLike, len(diags))
	for i, d := range diags {
		likes[i] = d
	}
	fmt.Fprint(os.Stderr, diag.NewReport(likes, src).FormatAll(!checkNoColor))
	fmt.Fprintln(os.Stderr)
	return fmt.Errorf("%d diagnostic(s) found", len(diags))
}
