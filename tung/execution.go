package tung

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Execution runs statements for one program run. It owns the step counter
// and threads the registry and source text down to the evaluator.
type Execution struct {
	ctx      context.Context
	registry *Registry
	source   string
	quota    int
	steps    int
	logger   *slog.Logger
}

func newExecution(ctx context.Context, registry *Registry, source string, quota int, logger *slog.Logger) *Execution {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Execution{ctx: ctx, registry: registry, source: source, quota: quota, logger: logger}
}

// ExecuteProgram runs top-level statements in order against a fresh root
// Env. The first failure aborts the run; output already written stays
// written. A nil registry means the standard builtins on the process's
// stdin and stdout.
func ExecuteProgram(ctx context.Context, statements []*Node, registry *Registry) error {
	if registry == nil {
		registry = NewRegistry(os.Stdin, os.Stdout)
	}
	exec := newExecution(ctx, registry, "", 0, nil)
	_, err := exec.executeStatements(statements, NewEnv())
	return err
}

func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return fmt.Errorf("%w (%d)", ErrStepQuotaExceeded, exec.quota)
	}
	select {
	case <-exec.ctx.Done():
		return exec.ctx.Err()
	default:
	}
	return nil
}

func (exec *Execution) evaluate(node *Node, env *Env) (Value, error) {
	ev := &evaluator{env: env, registry: exec.registry, source: exec.source}
	return ev.eval(node)
}

func (exec *Execution) errorAt(node *Node, err error) error {
	ev := &evaluator{source: exec.source}
	return ev.errorAt(node, err)
}

// executeStatements returns the value of the last statement when it is an
// expression statement, and Undefined otherwise.
func (exec *Execution) executeStatements(stmts []*Node, env *Env) (Value, error) {
	last := NewUndefined()
	for _, stmt := range stmts {
		if err := exec.step(); err != nil {
			return NewUndefined(), err
		}
		val, err := exec.executeStatement(stmt, env)
		if err != nil {
			return NewUndefined(), err
		}
		last = val
	}
	return last, nil
}

func (exec *Execution) executeStatement(stmt *Node, env *Env) (Value, error) {
	if stmt == nil {
		return NewUndefined(), exec.errorAt(nil, fmt.Errorf("%w: missing node", ErrInvalidStatement))
	}
	exec.logger.Debug("statement", "kind", stmt.Kind.String(), "line", stmt.Span.Line)

	switch stmt.Kind {
	case NodeVarDecl:
		return NewUndefined(), exec.executeVarDecl(stmt, env)
	case NodeAssign:
		return NewUndefined(), exec.executeAssign(stmt, env)
	case NodeAugAssign:
		return NewUndefined(), exec.executeAugAssign(stmt, env)
	case NodePrint:
		return NewUndefined(), exec.executePrint(stmt, env)
	case NodeExprStmt:
		if len(stmt.Children) != 1 {
			return NewUndefined(), exec.errorAt(stmt, fmt.Errorf("%w: expression statement with %d children", ErrInvalidStatement, len(stmt.Children)))
		}
		return exec.evaluate(stmt.Children[0], env)
	case NodeIf:
		return NewUndefined(), exec.executeIf(stmt, env)
	case NodeWhile:
		return NewUndefined(), exec.executeWhile(stmt, env)
	case NodeBlock:
		return NewUndefined(), exec.executeBlock(stmt, env)
	default:
		return NewUndefined(), exec.errorAt(stmt, fmt.Errorf("%w: %s node", ErrInvalidStatement, stmt.Kind))
	}
}

// bindingParts splits a declaration or assignment into target name and value
// expression.
func (exec *Execution) bindingParts(stmt *Node) (*Node, *Node, error) {
	name, value := stmt.Child(0), stmt.Child(len(stmt.Children)-1)
	if name == nil || name.Kind != NodeIdentifier || value == nil || value == name {
		return nil, nil, exec.errorAt(stmt, fmt.Errorf("%w: malformed %s", ErrInvalidStatement, stmt.Kind))
	}
	return name, value, nil
}

func (exec *Execution) executeVarDecl(stmt *Node, env *Env) error {
	name, valueNode, err := exec.bindingParts(stmt)
	if err != nil {
		return err
	}
	val, err := exec.evaluate(valueNode, env)
	if err != nil {
		return err
	}
	if err := env.Declare(name.Text, val); err != nil {
		return exec.errorAt(name, err)
	}
	return nil
}

func (exec *Execution) executeAssign(stmt *Node, env *Env) error {
	name, valueNode, err := exec.bindingParts(stmt)
	if err != nil {
		return err
	}
	val, err := exec.evaluate(valueNode, env)
	if err != nil {
		return err
	}
	if err := env.Assign(name.Text, val); err != nil {
		return exec.errorAt(name, err)
	}
	return nil
}

// executeAugAssign handles `name op= expr` by applying op to the current
// value and rebinding the result.
func (exec *Execution) executeAugAssign(stmt *Node, env *Env) error {
	name, valueNode, err := exec.bindingParts(stmt)
	if err != nil {
		return err
	}
	op := stmt.Child(1)
	if len(stmt.Children) != 3 || op == nil || op.Kind != NodeOperator {
		return exec.errorAt(stmt, fmt.Errorf("%w: malformed %s", ErrInvalidStatement, stmt.Kind))
	}
	current, ok := env.Get(name.Text)
	if !ok {
		return exec.errorAt(name, fmt.Errorf("%w: %s", ErrUndeclaredAssignment, name.Text))
	}
	rhs, err := exec.evaluate(valueNode, env)
	if err != nil {
		return err
	}
	result, err := ApplyOperator(current, rhs, strings.TrimSuffix(op.Text, "="))
	if err != nil {
		return exec.errorAt(op, err)
	}
	return env.Assign(name.Text, result)
}

// executePrint routes through the registered print builtin so hosts that
// replace it see print statements too.
func (exec *Execution) executePrint(stmt *Node, env *Env) error {
	args := make([]Value, 0, len(stmt.Children))
	for _, child := range stmt.Children {
		val, err := exec.evaluate(child, env)
		if err != nil {
			return err
		}
		args = append(args, val)
	}
	fn, ok := exec.registry.Lookup("print")
	if !ok {
		return exec.errorAt(stmt, fmt.Errorf("%w: print", ErrUnknownFunction))
	}
	if _, err := fn(exec.registry, args); err != nil {
		return exec.errorAt(stmt, fmt.Errorf("print: %w", err))
	}
	return nil
}

// executeIf runs the first branch whose condition is truthy. Children are
// the if condition and block, then Elif nodes, then an optional Else.
func (exec *Execution) executeIf(stmt *Node, env *Env) error {
	if len(stmt.Children) < 2 {
		return exec.errorAt(stmt, fmt.Errorf("%w: malformed If", ErrInvalidStatement))
	}
	taken, err := exec.executeBranch(stmt.Children[0], stmt.Children[1], env)
	if err != nil || taken {
		return err
	}
	for _, clause := range stmt.Children[2:] {
		if clause == nil {
			return exec.errorAt(stmt, fmt.Errorf("%w: missing If clause", ErrInvalidStatement))
		}
		switch clause.Kind {
		case NodeElif:
			if len(clause.Children) != 2 {
				return exec.errorAt(clause, fmt.Errorf("%w: malformed Elif", ErrInvalidStatement))
			}
			taken, err := exec.executeBranch(clause.Children[0], clause.Children[1], env)
			if err != nil || taken {
				return err
			}
		case NodeElse:
			if len(clause.Children) != 1 {
				return exec.errorAt(clause, fmt.Errorf("%w: malformed Else", ErrInvalidStatement))
			}
			return exec.executeBlock(clause.Children[0], env)
		default:
			return exec.errorAt(clause, fmt.Errorf("%w: %s inside If", ErrInvalidStatement, clause.Kind))
		}
	}
	return nil
}

func (exec *Execution) executeBranch(cond, body *Node, env *Env) (bool, error) {
	val, err := exec.evaluate(cond, env)
	if err != nil {
		return false, err
	}
	if !val.Truthy() {
		return false, nil
	}
	return true, exec.executeBlock(body, env)
}

func (exec *Execution) executeWhile(stmt *Node, env *Env) error {
	if len(stmt.Children) != 2 {
		return exec.errorAt(stmt, fmt.Errorf("%w: malformed While", ErrInvalidStatement))
	}
	cond, body := stmt.Children[0], stmt.Children[1]
	for {
		if err := exec.step(); err != nil {
			return err
		}
		val, err := exec.evaluate(cond, env)
		if err != nil {
			return err
		}
		if !val.Truthy() {
			return nil
		}
		if err := exec.executeBlock(body, env); err != nil {
			return err
		}
	}
}

// executeBlock runs a block against a snapshot of env. Afterwards only names
// env already bound receive the block's values; names first bound inside the
// block are dropped.
func (exec *Execution) executeBlock(block *Node, env *Env) error {
	if block == nil {
		return exec.errorAt(nil, fmt.Errorf("%w: missing Block", ErrInvalidStatement))
	}
	if block.Kind != NodeBlock {
		return exec.errorAt(block, fmt.Errorf("%w: expected Block, got %s", ErrInvalidStatement, block.Kind))
	}
	scope := env.Snapshot()
	if _, err := exec.executeStatements(block.Children, scope); err != nil {
		return err
	}
	copied := env.MergeBack(scope)
	exec.logger.Debug("block merged", "line", block.Span.Line, "copied", copied, "dropped", scope.Len()-copied)
	return nil
}
