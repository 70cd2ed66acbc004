// Command coolc runs a COOL program's already-parsed AST through the
// semantic pipeline and tree-walking interpreter.
package main

import (
	"os"

	"github.com/cwbudde/coolc/cmd/coolc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
