package expr

import (
	"fmt"

	"github.com/Serajian/go-query-builder/schema"
	"github.com/Serajian/go-query-builder/serialize"
	"github.com/Serajian/go-query-builder/sqltype"
)

// BinaryOp is the node type behind every infix operator (eq/ne/lt/le/...
// /concat/arithmetic). ST is the result SQL type, which may differ from the
// operand type (comparators return Bool over operands of any matching ST).
type BinaryOp[ST sqltype.SQLType] struct {
	left, right Expr
	op          string
}

func newBinaryOp[ST sqltype.SQLType](left, right Expr, op string) *BinaryOp[ST] {
	return &BinaryOp[ST]{left: left, right: right, op: op}
}

func (b *BinaryOp[ST]) SqlType() ST      { var z ST; return z }
func (b *BinaryOp[ST]) SQLTypeName() string { return b.SqlType().TypeName() }

func (b *BinaryOp[ST]) AggKind() AggKind {
	combined, ok := CombineAgg(b.left.AggKind(), b.right.AggKind())
	if !ok {
		panic("expr: cannot mix aggregate and non-aggregate operands in " + b.op)
	}
	return combined
}

func (b *BinaryOp[ST]) Tables() []*schema.Table {
	return mergeTables(b.left.Tables(), b.right.Tables())
}

func (b *BinaryOp[ST]) WalkAST(pass *serialize.AstPass) error {
	pass.PushSQL("(")
	if err := b.left.WalkAST(pass.Reborrow()); err != nil {
		return err
	}
	pass.PushSQL(" " + b.op + " ")
	if err := b.right.WalkAST(pass.Reborrow()); err != nil {
		return err
	}
	pass.PushSQL(")")
	return nil
}

func mergeTables(a, b []*schema.Table) []*schema.Table {
	seen := make(map[*schema.Table]bool, len(a)+len(b))
	out := make([]*schema.Table, 0, len(a)+len(b))
	for _, t := range a {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, t := range b {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// Eq builds `lhs = rhs`. Both operands must resolve the same SQL type ST —
// enforced by the Go compiler at the call site, not at runtime.
func Eq[ST sqltype.SQLType](lhs, rhs TypedExpr[ST]) *BinaryOp[sqltype.Bool] {
	return newBinaryOp[sqltype.Bool](lhs, rhs, "=")
}

// EqNullable builds `lhs = rhs` where rhs (or lhs) is Nullable<ST>,
// producing Nullable<Bool>: equality of T with Nullable<T> propagates
// nullability into the result.
func EqNullable[ST sqltype.SQLType](lhs TypedExpr[ST], rhs TypedExpr[sqltype.Nullable[ST]]) *BinaryOp[sqltype.Nullable[sqltype.Bool]] {
	return newBinaryOp[sqltype.Nullable[sqltype.Bool]](lhs, rhs, "=")
}

// Ne builds `lhs != rhs`.
func Ne[ST sqltype.SQLType](lhs, rhs TypedExpr[ST]) *BinaryOp[sqltype.Bool] {
	return newBinaryOp[sqltype.Bool](lhs, rhs, "!=")
}

// Lt builds `lhs < rhs`.
func Lt[ST sqltype.SQLType](lhs, rhs TypedExpr[ST]) *BinaryOp[sqltype.Bool] {
	return newBinaryOp[sqltype.Bool](lhs, rhs, "<")
}

// Le builds `lhs <= rhs`.
func Le[ST sqltype.SQLType](lhs, rhs TypedExpr[ST]) *BinaryOp[sqltype.Bool] {
	return newBinaryOp[sqltype.Bool](lhs, rhs, "<=")
}

// Gt builds `lhs > rhs`.
func Gt[ST sqltype.SQLType](lhs, rhs TypedExpr[ST]) *BinaryOp[sqltype.Bool] {
	return newBinaryOp[sqltype.Bool](lhs, rhs, ">")
}

// Ge builds `lhs >= rhs`.
func Ge[ST sqltype.SQLType](lhs, rhs TypedExpr[ST]) *BinaryOp[sqltype.Bool] {
	return newBinaryOp[sqltype.Bool](lhs, rhs, ">=")
}

// Like builds `lhs LIKE pattern`. Use .Escape on the result to attach an
// ESCAPE clause.
func Like(lhs, pattern TypedExpr[sqltype.Text]) *LikeOp { return &LikeOp{lhs: lhs, rhs: pattern, op: "LIKE"} }

// NotLike builds `lhs NOT LIKE pattern`.
func NotLike(lhs, pattern TypedExpr[sqltype.Text]) *LikeOp {
	return &LikeOp{lhs: lhs, rhs: pattern, op: "NOT LIKE"}
}

// ILike builds `lhs ILIKE pattern` (PostgreSQL only; the dialect layer
// rejects it for MySQL/SQLite at capability-check time).
func ILike(lhs, pattern TypedExpr[sqltype.Text]) *LikeOp { return &LikeOp{lhs: lhs, rhs: pattern, op: "ILIKE"} }

// SimilarTo builds `lhs SIMILAR TO pattern` (PostgreSQL only).
func SimilarTo(lhs, pattern TypedExpr[sqltype.Text]) *LikeOp {
	return &LikeOp{lhs: lhs, rhs: pattern, op: "SIMILAR TO"}
}

// LikeOp is LIKE/NOT LIKE/ILIKE/SIMILAR TO, with an optional ESCAPE clause
// attached via .Escape.
type LikeOp struct {
	lhs, rhs Expr
	op       string
	escape   *rune
}

// Escape attaches an ESCAPE clause naming the escape character.
func (l *LikeOp) Escape(c rune) *LikeOp {
	cp := c
	return &LikeOp{lhs: l.lhs, rhs: l.rhs, op: l.op, escape: &cp}
}

func (l *LikeOp) SqlType() sqltype.Bool   { return sqltype.Bool{} }
func (l *LikeOp) SQLTypeName() string     { return "bool" }
func (l *LikeOp) Tables() []*schema.Table { return mergeTables(l.lhs.Tables(), l.rhs.Tables()) }

func (l *LikeOp) AggKind() AggKind {
	combined, ok := CombineAgg(l.lhs.AggKind(), l.rhs.AggKind())
	if !ok {
		panic("expr: cannot mix aggregate and non-aggregate operands in " + l.op)
	}
	return combined
}

func (l *LikeOp) WalkAST(pass *serialize.AstPass) error {
	if (l.op == "ILIKE" || l.op == "SIMILAR TO") && !pass.Capabilities().ILike {
		return fmt.Errorf("expr: %s is not supported by this dialect", l.op)
	}
	pass.PushSQL("(")
	if err := l.lhs.WalkAST(pass.Reborrow()); err != nil {
		return err
	}
	pass.PushSQL(" " + l.op + " ")
	if err := l.rhs.WalkAST(pass.Reborrow()); err != nil {
		return err
	}
	if l.escape != nil {
		pass.PushSQL(" ESCAPE ")
		pass.PushBindParam("text", string(*l.escape))
	}
	pass.PushSQL(")")
	return nil
}

// And folds a list of boolean expressions with AND. An empty list is the
// identity (always-true literal).
func And(exprs ...TypedExpr[sqltype.Bool]) *VariadicBoolOp { return &VariadicBoolOp{op: "AND", exprs: toExprs(exprs)} }

// Or folds a list of boolean expressions with OR. An empty list is the
// identity (always-false literal).
func Or(exprs ...TypedExpr[sqltype.Bool]) *VariadicBoolOp { return &VariadicBoolOp{op: "OR", exprs: toExprs(exprs)} }

func toExprs(in []TypedExpr[sqltype.Bool]) []Expr {
	out := make([]Expr, len(in))
	for i, e := range in {
		out[i] = e.(Expr)
	}
	return out
}

// VariadicBoolOp is AND/OR over N boolean operands.
type VariadicBoolOp struct {
	op    string
	exprs []Expr
}

func (v *VariadicBoolOp) SqlType() sqltype.Bool { return sqltype.Bool{} }
func (v *VariadicBoolOp) SQLTypeName() string   { return "bool" }

func (v *VariadicBoolOp) Tables() []*schema.Table {
	var out []*schema.Table
	for _, e := range v.exprs {
		out = mergeTables(out, e.Tables())
	}
	return out
}

func (v *VariadicBoolOp) AggKind() AggKind {
	kind := AggNever
	for _, e := range v.exprs {
		combined, ok := CombineAgg(kind, e.AggKind())
		if !ok {
			panic("expr: cannot mix aggregate and non-aggregate operands in " + v.op)
		}
		kind = combined
	}
	return kind
}

func (v *VariadicBoolOp) WalkAST(pass *serialize.AstPass) error {
	if len(v.exprs) == 0 {
		if v.op == "AND" {
			pass.PushSQL("TRUE")
		} else {
			pass.PushSQL("FALSE")
		}
		return nil
	}
	pass.PushSQL("(")
	for i, e := range v.exprs {
		if i > 0 {
			pass.PushSQL(" " + v.op + " ")
		}
		if err := e.WalkAST(pass.Reborrow()); err != nil {
			return err
		}
	}
	pass.PushSQL(")")
	return nil
}

// Not builds `NOT expr`.
func Not(e TypedExpr[sqltype.Bool]) *UnaryOp[sqltype.Bool] {
	return &UnaryOp[sqltype.Bool]{expr: e.(Expr), prefix: "NOT "}
}

// IsNull builds `expr IS NULL`.
func IsNull(e Expr) *UnaryOp[sqltype.Bool] { return &UnaryOp[sqltype.Bool]{expr: e, suffix: " IS NULL"} }

// IsNotNull builds `expr IS NOT NULL`.
func IsNotNull(e Expr) *UnaryOp[sqltype.Bool] {
	return &UnaryOp[sqltype.Bool]{expr: e, suffix: " IS NOT NULL"}
}

// UnaryOp is a prefix or suffix unary operator (NOT, IS NULL, IS NOT NULL).
type UnaryOp[ST sqltype.SQLType] struct {
	expr           Expr
	prefix, suffix string
}

func (u *UnaryOp[ST]) SqlType() ST            { var z ST; return z }
func (u *UnaryOp[ST]) SQLTypeName() string    { return u.SqlType().TypeName() }
func (u *UnaryOp[ST]) AggKind() AggKind       { return u.expr.AggKind() }
func (u *UnaryOp[ST]) Tables() []*schema.Table { return u.expr.Tables() }

func (u *UnaryOp[ST]) WalkAST(pass *serialize.AstPass) error {
	pass.PushSQL("(" + u.prefix)
	if err := u.expr.WalkAST(pass.Reborrow()); err != nil {
		return err
	}
	pass.PushSQL(u.suffix + ")")
	return nil
}

// Between builds `expr BETWEEN lo AND hi`.
func Between[ST sqltype.SQLType](e, lo, hi TypedExpr[ST]) *BetweenOp {
	return &BetweenOp{expr: e, lo: lo, hi: hi, negate: false}
}

// NotBetween builds `expr NOT BETWEEN lo AND hi`.
func NotBetween[ST sqltype.SQLType](e, lo, hi TypedExpr[ST]) *BetweenOp {
	return &BetweenOp{expr: e, lo: lo, hi: hi, negate: true}
}

// BetweenOp is BETWEEN/NOT BETWEEN.
type BetweenOp struct {
	expr, lo, hi Expr
	negate       bool
}

func (b *BetweenOp) SqlType() sqltype.Bool { return sqltype.Bool{} }
func (b *BetweenOp) SQLTypeName() string   { return "bool" }

func (b *BetweenOp) Tables() []*schema.Table {
	return mergeTables(mergeTables(b.expr.Tables(), b.lo.Tables()), b.hi.Tables())
}

func (b *BetweenOp) AggKind() AggKind {
	k1, ok := CombineAgg(b.expr.AggKind(), b.lo.AggKind())
	if !ok {
		panic("expr: cannot mix aggregate and non-aggregate operands in BETWEEN")
	}
	k2, ok := CombineAgg(k1, b.hi.AggKind())
	if !ok {
		panic("expr: cannot mix aggregate and non-aggregate operands in BETWEEN")
	}
	return k2
}

func (b *BetweenOp) WalkAST(pass *serialize.AstPass) error {
	pass.PushSQL("(")
	if err := b.expr.WalkAST(pass.Reborrow()); err != nil {
		return err
	}
	if b.negate {
		pass.PushSQL(" NOT BETWEEN ")
	} else {
		pass.PushSQL(" BETWEEN ")
	}
	if err := b.lo.WalkAST(pass.Reborrow()); err != nil {
		return err
	}
	pass.PushSQL(" AND ")
	if err := b.hi.WalkAST(pass.Reborrow()); err != nil {
		return err
	}
	pass.PushSQL(")")
	return nil
}

// arithmetic: Add/Sub/Mul/Div, result type mirrors the operand type.

// Add builds `lhs + rhs`.
func Add[ST sqltype.SQLType](lhs, rhs TypedExpr[ST]) *BinaryOp[ST] { return newBinaryOp[ST](lhs, rhs, "+") }

// Sub builds `lhs - rhs`.
func Sub[ST sqltype.SQLType](lhs, rhs TypedExpr[ST]) *BinaryOp[ST] { return newBinaryOp[ST](lhs, rhs, "-") }

// Mul builds `lhs * rhs`.
func Mul[ST sqltype.SQLType](lhs, rhs TypedExpr[ST]) *BinaryOp[ST] { return newBinaryOp[ST](lhs, rhs, "*") }

// Div builds `lhs / rhs`.
func Div[ST sqltype.SQLType](lhs, rhs TypedExpr[ST]) *BinaryOp[ST] { return newBinaryOp[ST](lhs, rhs, "/") }

// Concat builds `lhs || rhs` (SQL string concatenation).
func Concat(lhs, rhs TypedExpr[sqltype.Text]) *BinaryOp[sqltype.Text] {
	return newBinaryOp[sqltype.Text](lhs, rhs, "||")
}
