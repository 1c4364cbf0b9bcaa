package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tunglang/tung/tung"
)

const scriptExtension = ".tung"

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, renderDiagnostic(err, colorEnabled(os.Stderr, err)))
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "check":
		return checkCommand(args[2:])
	case "repl":
		return replCommand(args[2:])
	case "aliases":
		return aliasesCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

// commonFlags holds the engine flags. Each command binds only the ones it
// honours.
type commonFlags struct {
	aliases  string
	maxSteps int
	debug    bool
	noColor  bool
}

func newFlagSet(name string, opts *commonFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	fs.StringVar(&opts.aliases, "aliases", "", "load keyword aliases from a YAML or JSON file")
	return fs
}

func (o *commonFlags) bindMaxSteps(fs *flag.FlagSet) {
	fs.IntVar(&o.maxSteps, "max-steps", 0, "abort after this many statements and loop iterations (0 = unlimited)")
}

func (o *commonFlags) bindDebug(fs *flag.FlagSet) {
	fs.BoolVar(&o.debug, "debug", false, "log execution details to stderr")
}

func (o *commonFlags) bindNoColor(fs *flag.FlagSet) {
	fs.BoolVar(&o.noColor, "no-color", false, "disable colored diagnostics")
}

func (o *commonFlags) engine() (*tung.Engine, error) {
	cfg := tung.Config{StepQuota: o.maxSteps}
	if o.aliases != "" {
		table, err := tung.LoadAliases(o.aliases)
		if err != nil {
			return nil, err
		}
		cfg.Aliases = table
	}
	if o.debug {
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return tung.NewEngine(cfg)
}

// wrap marks err for plain rendering when -no-color was given.
func (o *commonFlags) wrap(err error) error {
	if err == nil || !o.noColor {
		return err
	}
	return plainError{err}
}

func runCommand(args []string) error {
	var opts commonFlags
	fs := newFlagSet("run", &opts)
	opts.bindMaxSteps(fs)
	opts.bindDebug(fs)
	opts.bindNoColor(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	script, err := compileScriptArg("run", fs.Args(), &opts)
	if err != nil {
		return opts.wrap(err)
	}
	return opts.wrap(script.Run(context.Background()))
}

func checkCommand(args []string) error {
	var opts commonFlags
	fs := newFlagSet("check", &opts)
	opts.bindNoColor(fs)
	dump := fs.Bool("dump", false, "print the parse tree")
	if err := fs.Parse(args); err != nil {
		return err
	}
	script, err := compileScriptArg("check", fs.Args(), &opts)
	if err != nil {
		return opts.wrap(err)
	}
	if *dump {
		fmt.Print(script.Program().Dump())
	}
	return nil
}

func compileScriptArg(command string, remaining []string, opts *commonFlags) (*tung.Script, error) {
	if len(remaining) == 0 {
		return nil, fmt.Errorf("tung %s: script path required", command)
	}
	scriptPath := remaining[0]
	if filepath.Ext(scriptPath) != scriptExtension {
		return nil, fmt.Errorf("tung %s: %s is not a %s file", command, scriptPath, scriptExtension)
	}
	input, err := os.ReadFile(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	engine, err := opts.engine()
	if err != nil {
		return nil, err
	}
	return engine.Compile(string(input))
}

func replCommand(args []string) error {
	var opts commonFlags
	fs := newFlagSet("repl", &opts)
	opts.bindMaxSteps(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	var aliases *tung.AliasTable
	if opts.aliases != "" {
		table, err := tung.LoadAliases(opts.aliases)
		if err != nil {
			return opts.wrap(err)
		}
		aliases = table
	}
	return runREPL(aliases, opts.maxSteps)
}

// aliasesCommand lists the alias table in effect.
func aliasesCommand(args []string) error {
	var opts commonFlags
	fs := newFlagSet("aliases", &opts)
	if err := fs.Parse(args); err != nil {
		return err
	}
	table := tung.DefaultAliases()
	if opts.aliases != "" {
		loaded, err := tung.LoadAliases(opts.aliases)
		if err != nil {
			return opts.wrap(err)
		}
		table = loaded
	}
	for _, def := range table.Definitions() {
		aliases := table.AliasesFor(def.OriginalName)
		if len(aliases) == 0 {
			continue
		}
		fmt.Printf("%-8s %-8s %s\n", def.OriginalName, def.KeywordType, strings.Join(aliases, ", "))
	}
	return nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [script.tung]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run      execute a script")
	fmt.Fprintln(os.Stderr, "  check    parse a script without running it (-dump prints the tree)")
	fmt.Fprintln(os.Stderr, "  repl     start an interactive session")
	fmt.Fprintln(os.Stderr, "  aliases  list keyword aliases")
	fmt.Fprintln(os.Stderr, "Flags (run takes all; check -aliases -no-color; repl -aliases -max-steps):")
	fmt.Fprintln(os.Stderr, "  -aliases <file>")
	fmt.Fprintln(os.Stderr, "    load keyword aliases from a YAML or JSON file")
	fmt.Fprintln(os.Stderr, "  -max-steps int")
	fmt.Fprintln(os.Stderr, "    abort after this many statements and loop iterations (0 = unlimited)")
	fmt.Fprintln(os.Stderr, "  -debug")
	fmt.Fprintln(os.Stderr, "    log execution details to stderr")
	fmt.Fprintln(os.Stderr, "  -no-color")
	fmt.Fprintln(os.Stderr, "    disable colored diagnostics (NO_COLOR is also honoured)")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
