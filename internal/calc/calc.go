// Package calc evaluates the arithmetic expressions typed into the calculator.
package calc

import (
	"errors"
	"fmt"
	"go/ast"
	"go/constant"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
)

var (
	ErrSyntax         = errors.New("invalid expression")
	ErrDivisionByZero = errors.New("division by zero")
)

// symbols maps calculator keypad glyphs to Go operators.
var symbols = strings.NewReplacer("×", "*", "÷", "/", "−", "-", ",", "")

// Evaluate computes expr with exact rational arithmetic and formats the
// result: integers without a decimal point, everything else as the
// shortest float64 representation.
func Evaluate(expr string) (string, error) {
	src := strings.TrimSpace(symbols.Replace(expr))
	if src == "" {
		return "", fmt.Errorf("%w: empty", ErrSyntax)
	}

	node, err := parser.ParseExpr(src)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	v, err := eval(node)
	if err != nil {
		return "", err
	}
	return format(v), nil
}

func eval(node ast.Expr) (constant.Value, error) {
	switch n := node.(type) {
	case *ast.BasicLit:
		if n.Kind != token.INT && n.Kind != token.FLOAT {
			return nil, fmt.Errorf("%w: unexpected %s", ErrSyntax, n.Value)
		}
		v := constant.MakeFromLiteral(n.Value, n.Kind, 0)
		if v.Kind() == constant.Unknown {
			return nil, fmt.Errorf("%w: bad number %s", ErrSyntax, n.Value)
		}
		return v, nil

	case *ast.ParenExpr:
		return eval(n.X)

	case *ast.UnaryExpr:
		x, err := eval(n.X)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case token.ADD, token.SUB:
			return constant.UnaryOp(n.Op, x, 0), nil
		}
		return nil, fmt.Errorf("%w: unsupported operator %s", ErrSyntax, n.Op)

	case *ast.BinaryExpr:
		x, err := eval(n.X)
		if err != nil {
			return nil, err
		}
		y, err := eval(n.Y)
		if err != nil {
			return nil, err
		}
		return binary(n.Op, x, y)
	}

	return nil, fmt.Errorf("%w: unsupported term", ErrSyntax)
}

func binary(op token.Token, x, y constant.Value) (constant.Value, error) {
	switch op {
	case token.ADD, token.SUB, token.MUL:
		return constant.BinaryOp(x, op, y), nil
	case token.QUO:
		if constant.Sign(y) == 0 {
			return nil, ErrDivisionByZero
		}
		return constant.BinaryOp(constant.ToFloat(x), token.QUO, constant.ToFloat(y)), nil
	case token.REM:
		if x.Kind() != constant.Int || y.Kind() != constant.Int {
			return nil, fmt.Errorf("%w: %% needs integers", ErrSyntax)
		}
		if constant.Sign(y) == 0 {
			return nil, ErrDivisionByZero
		}
		return constant.BinaryOp(x, token.REM, y), nil
	}
	return nil, fmt.Errorf("%w: unsupported operator %s", ErrSyntax, op)
}

func format(v constant.Value) string {
	if i := constant.ToInt(v); i.Kind() == constant.Int {
		return i.ExactString()
	}
	f, _ := constant.Float64Val(v)
	return strconv.FormatFloat(f, 'f', -1, 64)
}
