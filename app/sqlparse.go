package main

import (
	"strconv"
	"strings"

	"github.com/xwb1989/sqlparser"
)

// ParseCommand is the external request parser: it recognizes
// ".dbinfo", ".tables", and a restricted SELECT grammar, and turns any
// of them into the core's Command value. The core never sees raw SQL
// text past this boundary.
func ParseCommand(input string) (Command, error) {
	switch input {
	case ".dbinfo":
		return Command{Kind: CmdInfo}, nil
	case ".tables":
		return Command{Kind: CmdTables}, nil
	}

	stmt, err := sqlparser.Parse(input)
	if err != nil {
		return Command{}, newError("parse_command", ErrBadRequest, map[string]any{"input": input, "err": err.Error()})
	}

	sel, ok := stmt.(*sqlparser.Select)
	if !ok {
		return Command{}, newError("parse_command", ErrBadRequest, map[string]any{"statement": input})
	}
	return commandFromSelect(sel)
}

func commandFromSelect(sel *sqlparser.Select) (Command, error) {
	table, err := tableName(sel)
	if err != nil {
		return Command{}, err
	}

	cond, err := conditionFrom(sel.Where)
	if err != nil {
		return Command{}, err
	}

	isCount, columns, err := selectExprs(sel.SelectExprs)
	if err != nil {
		return Command{}, err
	}

	if isCount {
		return Command{Kind: CmdCount, Table: table}, nil
	}
	return Command{Kind: CmdSelect, Table: table, Columns: columns, Cond: cond}, nil
}

func tableName(sel *sqlparser.Select) (string, error) {
	if len(sel.From) == 0 {
		return "", newError("table_name", ErrBadRequest, nil)
	}
	aliased, ok := sel.From[0].(*sqlparser.AliasedTableExpr)
	if !ok {
		return "", newError("table_name", ErrBadRequest, nil)
	}
	name, ok := aliased.Expr.(sqlparser.TableName)
	if !ok {
		return "", newError("table_name", ErrBadRequest, nil)
	}
	return name.Name.String(), nil
}

// selectExprs walks the SELECT list. Expanding "*" into every stored
// column is not attempted here — this engine only ever sees explicit
// column lists and count(*) in the grammar it targets.
func selectExprs(exprs sqlparser.SelectExprs) (isCount bool, columns []string, err error) {
	for _, expr := range exprs {
		aliased, ok := expr.(*sqlparser.AliasedExpr)
		if !ok {
			return false, nil, newError("select_exprs", ErrBadRequest, nil)
		}
		switch inner := aliased.Expr.(type) {
		case *sqlparser.FuncExpr:
			if strings.ToLower(inner.Name.String()) != "count" {
				return false, nil, newError("select_exprs", ErrBadRequest, map[string]any{"func": inner.Name.String()})
			}
			isCount = true
		case *sqlparser.ColName:
			columns = append(columns, inner.Name.String())
		default:
			return false, nil, newError("select_exprs", ErrBadRequest, nil)
		}
	}
	return isCount, columns, nil
}

// conditionFrom extracts the single "col = literal" predicate this
// engine supports. Anything more elaborate than one top-level equality
// comparison is rejected rather than partially honored.
func conditionFrom(where *sqlparser.Where) (*Equality, error) {
	if where == nil {
		return nil, nil
	}
	cmp, ok := where.Expr.(*sqlparser.ComparisonExpr)
	if !ok || cmp.Operator != "=" {
		return nil, newError("condition_from", ErrBadRequest, nil)
	}

	col, ok := cmp.Left.(*sqlparser.ColName)
	if !ok {
		return nil, newError("condition_from", ErrBadRequest, nil)
	}

	val, err := literalValue(cmp.Right)
	if err != nil {
		return nil, err
	}

	return &Equality{Column: col.Name.String(), Value: val}, nil
}

func literalValue(expr sqlparser.Expr) (Value, error) {
	switch e := expr.(type) {
	case *sqlparser.NullVal:
		return NullValue(), nil
	case *sqlparser.SQLVal:
		switch e.Type {
		case sqlparser.StrVal:
			return TextValue(string(e.Val)), nil
		case sqlparser.IntVal:
			n, err := strconv.ParseInt(string(e.Val), 10, 64)
			if err != nil {
				return Value{}, newError("literal_value", ErrBadRequest, map[string]any{"literal": string(e.Val)})
			}
			return IntValue(n), nil
		case sqlparser.FloatVal:
			f, err := strconv.ParseFloat(string(e.Val), 64)
			if err != nil {
				return Value{}, newError("literal_value", ErrBadRequest, map[string]any{"literal": string(e.Val)})
			}
			return FloatValue(f), nil
		}
	}
	return Value{}, newError("literal_value", ErrBadRequest, map[string]any{"expr": expr})
}
