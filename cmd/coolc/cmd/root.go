package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "coolc",
	Short: "COOL semantic front-end and interpreter",
	Long: `coolc is a Go implementation of a COOL (Classroom Object-Oriented
Language) semantic front-end and tree-walking interpreter.

It runs an already-parsed program (an AST encoded as JSON or YAML)
through a multi-pass semantic analyzer — type collection, type
building, inheritance ordering, override checking, AUTO_TYPE
inference, and type checking — and, if the program is well typed,
executes its Main.main entry point.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print progress messages to stderr")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
