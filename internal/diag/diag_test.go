package diag_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/coolc/internal/ast"
	"github.com/cwbudde/coolc/internal/diag"
)

type fakeDiagnostic struct {
	pos ast.Position
	msg string
}

func (f fakeDiagnostic) Position() ast.Position { return f.pos }
func (f fakeDiagnostic) Text() string           { return f.msg }

func TestCompilerErrorFormatPointsAtTheOffendingLine(t *testing.T) {
	src := "line one\nlet x: Int <- \"oops\" in x\nline three"
	ce := diag.NewCompilerError(ast.Position{Line: 2, Column: 15}, `Cannot convert "String" into "Int".`, src)

	formatted := ce.Format(false)
	assert.Contains(t, formatted, "Error at line 2:15")
	assert.Contains(t, formatted, `let x: Int <- "oops" in x`)
	assert.Contains(t, formatted, `Cannot convert "String" into "Int".`)
}

func TestCompilerErrorFormatToleratesOutOfRangeLine(t *testing.T) {
	ce := diag.NewCompilerError(ast.Position{Line: 99, Column: 1}, "boom", "only one line")
	formatted := ce.Format(false)
	assert.NotContains(t, formatted, "\t")
	assert.Contains(t, formatted, "boom")
}

func TestReportFormatAllSingleError(t *testing.T) {
	report := diag.NewReport([]diag.DiagnosticLike{
		fakeDiagnostic{pos: ast.Position{Line: 1, Column: 1}, msg: "only problem"},
	}, "")
	require.Len(t, report.Errors, 1)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, report.Errors[0].Format(false), report.FormatAll(false))
}

func TestReportFormatAllMultipleErrorsSnapshot(t *testing.T) {
	report := diag.NewReport([]diag.DiagnosticLike{
		fakeDiagnostic{pos: ast.Position{Line: 1, Column: 1}, msg: `Variable "x" is not defined in "main".`},
		fakeDiagnostic{pos: ast.Position{Line: 2, Column: 5}, msg: `Variable "self" is read-only.`},
	}, "")
	snaps.MatchSnapshot(t, report.FormatAll(false))
}
