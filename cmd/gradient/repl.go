package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/born-ml/gradient/internal/autodiff"
	"github.com/born-ml/gradient/internal/expr"
	"github.com/born-ml/gradient/internal/parser"
)

const (
	newprompt    = "\033[32m>\033[0m "
	resultprompt = "\033[31m=\033[0m "
)

var errQuit = errors.New("quit")

// repl keeps one session and scope for the whole interactive run, so a name
// refers to the same leaf on every line.
type repl struct {
	session *expr.Session
	scope   *parser.Scope
	env     *bindings
	format  func(float64) string
}

func newRepl(precision int) *repl {
	s := expr.NewSession()
	return &repl{
		session: s,
		scope:   parser.NewScope(s),
		env:     newBindings(),
		format:  formatter(precision),
	}
}

func runRepl(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	history := fs.String("history", ".gradient-history.tmp", "history file")
	precision := fs.Int("precision", -1, "digits after the decimal point (-1 for shortest)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	l, err := readline.NewEx(&readline.Config{
		Prompt:            newprompt,
		HistoryFile:       *history,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer l.Close()
	l.CaptureExitSignal()

	r := newRepl(*precision)
	fmt.Fprintf(os.Stdout, "gradient %s (%s), type help for commands\n", version, r.session.ID())
	for {
		line, err := l.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}

		err = r.exec(line, os.Stdout)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(os.Stdout, "error:", err)
		}
	}
}

// exec runs one line of input.
func (r *repl) exec(line string, out io.Writer) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "exit", "quit":
		return errQuit
	case "help":
		fmt.Fprintln(out, "let <name> = <expr>   bind a name to a constant expression")
		fmt.Fprintln(out, "unset <name>          remove a binding")
		fmt.Fprintln(out, "env                   list bindings")
		fmt.Fprintln(out, "vars                  list declared leaves")
		fmt.Fprintln(out, "grad <expr>           value and gradient")
		fmt.Fprintln(out, "check <expr>          compare gradient with finite differences")
		fmt.Fprintln(out, "<expr>                value")
		return nil
	case "let":
		return r.let(rest, out)
	case "unset":
		if !r.env.unset(rest) {
			return fmt.Errorf("%q is not bound", rest)
		}
		return nil
	case "env":
		if r.env.len() == 0 {
			fmt.Fprintln(out, "no bindings")
			return nil
		}
		r.env.each(func(name string, value float64) {
			fmt.Fprintf(out, "%s = %s\n", name, r.format(value))
		})
		return nil
	case "vars":
		for i, name := range r.session.Leaves() {
			fmt.Fprintf(out, "#%d %s\n", i, name)
		}
		return nil
	case "grad":
		n, err := r.scope.Parse(rest)
		if err != nil {
			return err
		}
		value, grad, err := autodiff.ValueAndGradient(n, r.env.env())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s%s\n", resultprompt, r.format(value))
		printGradient(out, r.session.Leaves(), grad, r.format)
		return nil
	case "check":
		n, err := r.scope.Parse(rest)
		if err != nil {
			return err
		}
		report, err := autodiff.CheckGradient(n, r.env.env(), 0)
		if err != nil {
			return err
		}
		printReport(out, report, r.format)
		return nil
	default:
		n, err := r.scope.Parse(line)
		if err != nil {
			return err
		}
		value, err := autodiff.Evaluate(n, r.env.env())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s%s\n", resultprompt, r.format(value))
		return nil
	}
}

// let binds a name to the value of an expression over the current bindings.
func (r *repl) let(spec string, out io.Writer) error {
	name, src, ok := strings.Cut(spec, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("usage: let <name> = <expr>")
	}
	// Parse in a throwaway session so helper expressions do not add leaves.
	n, err := parser.Parse(expr.NewSession(), src)
	if err != nil {
		return err
	}
	v, err := autodiff.Evaluate(n, r.env.env())
	if err != nil {
		return err
	}
	r.env.set(name, v)
	fmt.Fprintf(out, "%s = %s\n", name, r.format(v))
	return nil
}
