package repl

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/ardnew/acalc/lang"
	"github.com/ardnew/acalc/log"
)

// action is a side effect requested by a control command.
type action int

const (
	actionNone action = iota
	actionClear
	actionQuit
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{
	"help", "vars", "set", "unset", "postfix", "clear", "quit",
}

// Result is the outcome of evaluating one line in eval mode.
type Result struct {
	Name  string  // variable assigned by "name = expr", or empty
	Expr  string  // expression text that was evaluated
	Value float64 // result of the expression
}

func (r Result) String() string {
	if r.Name != "" {
		return r.Name + " = " + lang.FormatNumber(r.Value)
	}

	return lang.FormatNumber(r.Value)
}

// Session holds the variable bindings of an interactive session. Compiled
// expressions are cached for the lifetime of the session.
type Session struct {
	vars   map[string]float64
	cache  *lang.Cache
	logger log.Logger
}

// NewSession creates a session whose variables start with a copy of
// bindings.
func NewSession(bindings map[string]float64, logger log.Logger) *Session {
	vars := maps.Clone(bindings)
	if vars == nil {
		vars = make(map[string]float64)
	}

	return &Session{vars: vars, cache: lang.NewCache(), logger: logger}
}

// Names returns the bound variable names in sorted order.
func (s *Session) Names() []string {
	return slices.Sorted(maps.Keys(s.vars))
}

// Value returns the value bound to name.
func (s *Session) Value(name string) (float64, bool) {
	v, ok := s.vars[name]

	return v, ok
}

// Eval evaluates input, which is either an expression or an assignment of
// the form "name = expr". An assignment binds the result to name.
//
// The returned Result carries Expr even on failure so that positions in
// validation errors can be rendered against it.
func (s *Session) Eval(input string) (Result, error) {
	res := Result{Expr: strings.TrimSpace(input)}

	if lhs, rhs, ok := strings.Cut(input, "="); ok {
		res.Name, res.Expr = strings.TrimSpace(lhs), strings.TrimSpace(rhs)

		if !isName(res.Name) {
			return res, fmt.Errorf("%w: %q", ErrInvalidName, res.Name)
		}
	}

	x, err := lang.New(res.Expr,
		lang.WithCache(s.cache), lang.WithLogger(s.logger))
	if err != nil {
		return res, err
	}

	res.Value, err = x.Calculate(s.vars)
	if err != nil {
		return res, err
	}

	if res.Name != "" {
		s.vars[res.Name] = res.Value
		s.logger.Debug("variable bound",
			slog.String("name", res.Name), slog.Float64("value", res.Value))
	}

	return res, nil
}

// Command runs a control-mode command and returns its printable output.
func (s *Session) Command(input string) (string, action, error) {
	name, rest, _ := strings.Cut(strings.TrimSpace(input), " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case "q", "quit", "exit":
		return "", actionQuit, nil

	case "c", "clear":
		return "", actionClear, nil

	case "h", "help":
		return helpMessage(), actionNone, nil

	case "v", "vars":
		return s.listVars(), actionNone, nil

	case "set":
		varName, expr, ok := strings.Cut(rest, " ")
		if !ok || strings.TrimSpace(expr) == "" {
			return "", actionNone, fmt.Errorf("%w: set NAME EXPR", ErrUsage)
		}

		res, err := s.Eval(varName + " = " + expr)
		if err != nil {
			return "", actionNone, err
		}

		return res.String(), actionNone, nil

	case "unset":
		if rest == "" {
			return "", actionNone, fmt.Errorf("%w: unset NAME...", ErrUsage)
		}

		for _, v := range strings.Fields(rest) {
			if _, ok := s.vars[v]; !ok {
				return "", actionNone, fmt.Errorf("%w: %q", ErrUnboundVariable, v)
			}

			delete(s.vars, v)
		}

		return "", actionNone, nil

	case "p", "postfix":
		if rest == "" {
			return "", actionNone, fmt.Errorf("%w: postfix EXPR", ErrUsage)
		}

		x, err := lang.New(rest, lang.WithCache(s.cache))
		if err != nil {
			return "", actionNone, err
		}

		return strings.TrimSpace(x.Postfix()), actionNone, nil

	default:
		return "", actionNone,
			fmt.Errorf("%w: %s (try 'help')", ErrUnknownCommand, name)
	}
}

func (s *Session) listVars() string {
	if len(s.vars) == 0 {
		return "  (no variables)"
	}

	var b strings.Builder

	for i, name := range s.Names() {
		if i > 0 {
			b.WriteByte('\n')
		}

		fmt.Fprintf(&b, "  %s = %s", name, lang.FormatNumber(s.vars[name]))
	}

	return b.String()
}

// isName reports whether s can be bound as a variable: letters and digits
// starting with a letter, and neither a function name nor a number.
func isName(s string) bool {
	if s == "" || lang.IsFunction(s) || lang.IsNumber(s) {
		return false
	}

	for i, c := range []byte(s) {
		letter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if !letter && (i == 0 || c < '0' || c > '9') {
			return false
		}
	}

	return true
}
