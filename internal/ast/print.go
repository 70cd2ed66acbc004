package ast

import (
	"fmt"
	"strings"
)

// String renders a flat debugging dump of the program, used by
// `coolc check --dump-ast`. It is not a substitute for the external
// pretty-printer; it exists only so the CLI
// has something to show without round-tripping through the parser.
func (p *Program) String() string {
	var sb strings.Builder
	for _, c := range p.Classes {
		sb.WriteString(c.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (c *ClassDecl) String() string {
	parent := c.Parent
	if parent == "" {
		parent = "Object"
	}
	var feats []string
	for _, f := range c.Features {
		switch v := f.(type) {
		case *AttrDecl:
			feats = append(feats, fmt.Sprintf("%s : %s", v.Name, v.Type))
		case *MethodDecl:
			feats = append(feats, fmt.Sprintf("%s(...) : %s", v.Name, v.ReturnType))
		}
	}
	return fmt.Sprintf("class %s inherits %s { %s }", c.Name, parent, strings.Join(feats, "; "))
}
