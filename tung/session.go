package tung

import "context"

// Session keeps one root Env alive across evaluations, for interactive use.
// The step quota applies to each Eval separately.
type Session struct {
	engine   *Engine
	env      *Env
	registry *Registry
}

func (e *Engine) NewSession() *Session {
	return &Session{engine: e, env: NewEnv(), registry: e.newRegistry()}
}

// Eval parses and runs source against the session's bindings. When the last
// statement is an expression its value is returned, otherwise Undefined.
// Bindings made before a failure are kept.
func (s *Session) Eval(ctx context.Context, source string) (Value, error) {
	program, err := Parse(source, s.engine.config.Aliases)
	if err != nil {
		return NewUndefined(), err
	}
	cfg := s.engine.config
	exec := newExecution(ctx, s.registry, source, cfg.StepQuota, cfg.Logger)
	return exec.executeStatements(program.Children, s.env)
}

// Reset drops every binding.
func (s *Session) Reset() {
	s.env = NewEnv()
}

// Names lists the bound variable names in sorted order.
func (s *Session) Names() []string { return s.env.Names() }

// Lookup returns the current value of a variable.
func (s *Session) Lookup(name string) (Value, bool) { return s.env.Get(name) }

// Len reports how many variables are bound.
func (s *Session) Len() int { return s.env.Len() }
