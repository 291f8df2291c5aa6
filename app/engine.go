package main

// Engine is the query entry point: an open database plus its decoded
// schema, wired to dispatch a Command to the right component and
// render the result.
type Engine struct {
	pager  *Pager
	schema *Schema
	fmt    RowFormatter
}

// OpenEngine opens the database file, decodes its schema once, and
// returns an Engine ready to run commands against it.
func OpenEngine(path string, opts ...Option) (*Engine, error) {
	pager, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	schema, err := decodeSchema(pager)
	if err != nil {
		pager.Close()
		return nil, err
	}
	return &Engine{pager: pager, schema: schema}, nil
}

func (e *Engine) Close() error {
	return e.pager.Close()
}

// Run dispatches a Command and returns its formatted output.
func (e *Engine) Run(cmd Command) (string, error) {
	switch cmd.Kind {
	case CmdInfo:
		return e.fmt.Info(e.pager.Header.PageSize, e.schema.CellCount), nil

	case CmdTables:
		var names []string
		for _, d := range e.schema.Tables() {
			if !d.Internal() {
				names = append(names, d.Name)
			}
		}
		return e.fmt.Tables(names), nil

	case CmdCount:
		table, err := e.resolveTable(cmd.Table)
		if err != nil {
			return "", err
		}
		n, err := table.Count()
		if err != nil {
			return "", err
		}
		return e.fmt.Count(n), nil

	case CmdSelect:
		if len(cmd.Columns) == 0 {
			return "", newError("run_select", ErrBadRequest, map[string]any{"reason": "empty column list"})
		}
		table, err := e.resolveTable(cmd.Table)
		if err != nil {
			return "", err
		}
		rows, err := table.Select(cmd.Columns, cmd.Cond)
		if err != nil {
			return "", err
		}
		return e.fmt.Rows(rows), nil

	default:
		return "", newError("run", ErrBadRequest, map[string]any{"kind": cmd.Kind})
	}
}

func (e *Engine) resolveTable(name string) (*Table, error) {
	desc, err := e.schema.TableNamed(name)
	if err != nil {
		return nil, err
	}
	return openTable(e.pager, *desc), nil
}
