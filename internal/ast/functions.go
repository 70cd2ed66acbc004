package ast

// MethodCall is "Receiver[@StaticClass].Method(Args...)". StaticClass
// is empty for ordinary dynamic dispatch; when non-empty it names the
// ancestor class for static dispatch ("obj@T.m(...)").
type MethodCall struct {
	Receiver    Expr
	StaticClass string
	Method      string
	Args        []Expr
	Position    Position
}

func (m *MethodCall) Pos() Position { return m.Position }
func (m *MethodCall) exprNode()     {}
