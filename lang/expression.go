package lang

import (
	"log/slog"
	"slices"

	"github.com/ardnew/acalc/log"
)

// Expression is an arithmetic expression compiled to postfix form together
// with the current values of its variables.
//
// Calculate updates the variable table in place, so calls on the same
// Expression must not run concurrently. Distinct Expressions share no
// mutable state.
type Expression struct {
	*compiled

	operands Operands
	logger   log.Logger
	cache    *Cache
}

// Option configures an [Expression].
type Option func(*Expression)

// WithLogger sets the logger that receives trace records from compilation
// and evaluation.
func WithLogger(logger log.Logger) Option {
	return func(e *Expression) { e.logger = logger }
}

// WithCache reuses compiled forms from c and stores new ones in it.
func WithCache(c *Cache) Option {
	return func(e *Expression) { e.cache = c }
}

// New validates and converts text.
//
// Errors from [Validate] are returned unchanged and no Expression is built.
func New(text string, opts ...Option) (*Expression, error) {
	e := new(Expression)

	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	if e.cache != nil {
		if entry, ok := e.cache.load(text); ok {
			e.logger.Trace("cache hit", slog.String("infix", text))
			e.bind(entry)

			return e, nil
		}
	}

	if err := Validate(text); err != nil {
		e.logger.Debug("validation failed",
			slog.String("infix", text), slog.Any("error", err))

		return nil, err
	}

	tokens := Tokenize(text)
	postfix, operands := convert(tokens)

	entry := &compiled{
		infix:   text,
		postfix: postfix,
		names:   operands.Names(),
		tokens:  tokens,
	}

	e.logger.Trace("compiled",
		slog.String("infix", text),
		slog.String("postfix", postfix),
		slog.Int("tokens", len(tokens)),
		slog.Any("operands", entry.names))

	if e.cache != nil {
		e.cache.store(entry)
	}

	e.bind(entry)

	return e, nil
}

// bind attaches entry and a fresh operand table initialized to 0.
func (e *Expression) bind(entry *compiled) {
	e.compiled = entry
	e.operands = make(Operands, len(entry.names))

	for _, name := range entry.names {
		e.operands[name] = 0
	}
}

// Calculate evaluates the expression with the given variable bindings.
//
// Every variable of the expression must have a binding, otherwise
// [ErrMissingOperand] names the first missing variable in sorted order.
// Bindings for names the expression does not use are ignored.
func (e *Expression) Calculate(bindings map[string]float64) (float64, error) {
	for _, name := range e.names {
		if _, ok := bindings[name]; !ok {
			return 0, ErrMissingOperand.named(name)
		}
	}

	for name, value := range bindings {
		if _, ok := e.operands[name]; ok {
			e.operands[name] = value
		}
	}

	v, err := Evaluate(e.postfix, e.operands)
	if err != nil {
		e.logger.Debug("evaluation failed",
			slog.String("postfix", e.postfix), slog.Any("error", err))

		return 0, err
	}

	e.logger.Trace("evaluated",
		slog.String("postfix", e.postfix), slog.Float64("result", v))

	return v, nil
}

// Infix returns the source text.
func (e *Expression) Infix() string { return e.infix }

// Postfix returns the postfix form, each token followed by a space.
func (e *Expression) Postfix() string { return e.postfix }

// Operands returns the variable names in sorted order.
func (e *Expression) Operands() []string { return slices.Clone(e.names) }

// Tokens returns the tokens of the source text.
func (e *Expression) Tokens() []Token { return slices.Clone(e.tokens) }

// Value returns the value last bound to the named variable.
func (e *Expression) Value(name string) (float64, bool) {
	v, ok := e.operands[name]

	return v, ok
}

// Report captures the expression and its variable values with result.
func (e *Expression) Report(result float64) Report {
	return Report{
		Infix:    e.infix,
		Postfix:  e.postfix,
		Operands: e.operands.Clone(),
		Result:   result,
	}
}
