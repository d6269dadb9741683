// Package main provides the gradient CLI.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/gradient/internal/autodiff"
	"github.com/born-ml/gradient/internal/expr"
	"github.com/born-ml/gradient/internal/parser"
)

const version = "v0.1.0-dev"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "gradient:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		usage(out)
		return nil
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(out, "gradient %s\n", version)
		return nil
	case "eval":
		return runEval(args[1:], out)
	case "repl":
		return runRepl(args[1:])
	case "help", "-h", "--help":
		usage(out)
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(out io.Writer) {
	fmt.Fprintln(out, "gradient - forward-mode differentiation of scalar expressions")
	fmt.Fprintf(out, "Version: %s\n\n", version)
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  version                       Show version")
	fmt.Fprintln(out, "  eval -at x=1,y=2 <expr>       Print value and gradient")
	fmt.Fprintln(out, "  repl                          Interactive session")
}

func runEval(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	fs.SetOutput(out)
	at := fs.String("at", "", "comma separated bindings, e.g. x=3,y=4")
	precision := fs.Int("precision", -1, "digits after the decimal point (-1 for shortest)")
	check := fs.Bool("check", false, "compare against finite differences")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("eval: missing expression")
	}

	env, err := parseBindings(*at)
	if err != nil {
		return err
	}
	s := expr.NewSession()
	n, err := parser.Parse(s, strings.Join(fs.Args(), " "))
	if err != nil {
		return err
	}

	value, grad, err := autodiff.ValueAndGradient(n, env)
	if err != nil {
		return err
	}
	f := formatter(*precision)
	fmt.Fprintf(out, "value = %s\n", f(value))
	printGradient(out, s.Leaves(), grad, f)

	if *check {
		report, err := autodiff.CheckGradient(n, env, 0)
		if err != nil {
			return err
		}
		printReport(out, report, f)
	}
	return nil
}

// parseBindings reads "x=3,y=4" into an environment.
func parseBindings(spec string) (expr.Env, error) {
	env := expr.Env{}
	if strings.TrimSpace(spec) == "" {
		return env, nil
	}
	for _, part := range strings.Split(spec, ",") {
		name, raw, ok := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid binding %q (want name=value)", part)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", name, err)
		}
		env[name] = v
	}
	return env, nil
}

func formatter(precision int) func(float64) string {
	return func(v float64) string {
		return strconv.FormatFloat(v, 'f', precision, 64)
	}
}

func printGradient(out io.Writer, leaves []string, grad expr.Vector, f func(float64) string) {
	for i, d := range grad {
		name := "?"
		if i < len(leaves) {
			name = leaves[i]
		}
		fmt.Fprintf(out, "d/d%s = %s\n", name, f(d))
	}
}

func printReport(out io.Writer, report *autodiff.GradientReport, f func(float64) string) {
	for _, c := range report.Leaves {
		fmt.Fprintf(out, "check %s: analytical %s numerical %s diff %s\n",
			c.Name, f(c.Analytical), f(c.Numerical), f(c.Diff))
	}
	fmt.Fprintf(out, "max diff = %s\n", f(report.MaxDiff))
}
