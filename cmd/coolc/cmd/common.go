package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/coolc/internal/ast"
	"github.com/cwbudde/coolc/internal/astio"
)

// loadProgram reads path and decodes it as an AST description, using
// the file extension to pick JSON vs YAML unless format overrides it.
// It returns the decoded program alongside the raw text, which diag
// uses as source context when rendering a diagnostic's line+caret.
func loadProgram(path, format string) (*ast.Program, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	src := string(data)

	switch resolveFormat(path, format) {
	case "yaml":
		prog, err := astio.DecodeYAML(data)
		return prog, src, err
	default:
		prog, err := astio.DecodeJSON(data)
		return prog, src, err
	}
}

func resolveFormat(path, format string) string {
	if format != "" {
		return format
	}
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return "yaml"
	}
	return "json"
}
