package tung

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
)

// Config controls engine I/O, keyword aliases and execution bounds.
type Config struct {
	// Stdin feeds input(). Defaults to os.Stdin.
	Stdin io.Reader
	// Stdout receives print output and input prompts. Defaults to os.Stdout.
	Stdout io.Writer
	// Aliases resolves alternative keyword spellings while parsing.
	// Defaults to DefaultAliases().
	Aliases *AliasTable
	// StepQuota caps executed statements plus loop iterations. Zero means
	// unlimited.
	StepQuota int
	// Logger receives debug records about statement execution. Defaults to
	// a discarding logger.
	Logger *slog.Logger
}

// Engine compiles and runs tung programs.
type Engine struct {
	config   Config
	builtins map[string]BuiltinFunc
}

// NewEngine constructs an Engine, filling unset Config fields with defaults.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.StepQuota < 0 {
		return nil, fmt.Errorf("step quota must be non-negative, got %d", cfg.StepQuota)
	}
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Aliases == nil {
		cfg.Aliases = DefaultAliases()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{config: cfg, builtins: make(map[string]BuiltinFunc)}, nil
}

// MustNewEngine is like NewEngine but panics on invalid configuration.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// RegisterBuiltin adds or replaces a function for later runs. Registering
// over a standard name such as print replaces it.
func (e *Engine) RegisterBuiltin(name string, fn BuiltinFunc) {
	e.builtins[name] = fn
}

// Builtins returns every callable name, standard and host registered, in
// sorted order.
func (e *Engine) Builtins() []string {
	names := slices.Collect(maps.Keys(e.builtins))
	for _, name := range builtinNames {
		if _, ok := e.builtins[name]; !ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Aliases returns the alias table used when parsing.
func (e *Engine) Aliases() *AliasTable { return e.config.Aliases }

func (e *Engine) newRegistry() *Registry {
	return newRegistry(e.config.Stdin, e.config.Stdout, e.builtins)
}

// Script is a parsed program ready to run.
type Script struct {
	engine  *Engine
	source  string
	program *Node
}

// Compile parses source into a Script.
func (e *Engine) Compile(source string) (*Script, error) {
	program, err := Parse(source, e.config.Aliases)
	if err != nil {
		return nil, err
	}
	return &Script{engine: e, source: source, program: program}, nil
}

// Program returns the script's parse tree.
func (s *Script) Program() *Node { return s.program }

func (s *Script) Source() string { return s.source }

// Run executes the script with a fresh root Env and Registry.
func (s *Script) Run(ctx context.Context) error {
	cfg := s.engine.config
	exec := newExecution(ctx, s.engine.newRegistry(), s.source, cfg.StepQuota, cfg.Logger)
	cfg.Logger.Debug("run start", "statements", len(s.program.Children))
	_, err := exec.executeStatements(s.program.Children, NewEnv())
	cfg.Logger.Debug("run end", "steps", exec.steps, "error", err != nil)
	return err
}

// Execute compiles and runs source in one call.
func (e *Engine) Execute(ctx context.Context, source string) error {
	script, err := e.Compile(source)
	if err != nil {
		return err
	}
	return script.Run(ctx)
}
