package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// signatures describe the built-in functions. Each takes one argument.
var signatures = map[string]struct {
	param, summary string
}{
	"sin":  {"x", "sine of x radians"},
	"cos":  {"x", "cosine of x radians"},
	"log":  {"x", "natural logarithm of x"},
	"sqrt": {"x", "square root of x, x ≥ 0"},
}

// signatureHintStyle styles for parameter hints.
var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall represents a detected function call in the input.
type functionCall struct {
	name   string // function name preceding the open bracket
	inCall bool   // true if cursor is inside the argument brackets
}

// detectFunctionCall reports whether the cursor is inside the argument of a
// function call, and which function. Input is ASCII, so positions are byte
// offsets.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(max(cursor, 0), len(input))

	// Scan backward from cursor to find the unclosed open bracket, tracking
	// nested brackets.
	depth := 0
	open := -1

scan:
	for i := cursor - 1; i >= 0; i-- {
		switch input[i] {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				open = i

				break scan
			}

			depth--
		}
	}

	if open == -1 {
		return functionCall{}
	}

	// The function name is the run of letters immediately before '(',
	// allowing spaces between them.
	end := len(strings.TrimRight(input[:open], " "))
	start := end

	for start > 0 && isLetter(input[start-1]) {
		start--
	}

	name := input[start:end]
	if _, ok := signatures[name]; !ok {
		return functionCall{}
	}

	return functionCall{name: name, inCall: true}
}

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

// renderSignatureHint renders the signature of fn with its parameter
// highlighted, followed by a short description.
func renderSignatureHint(fn string) string {
	sig, ok := signatures[fn]
	if !ok {
		return ""
	}

	return signatureNameStyle.Render(fn) +
		signatureStyle.Render("(") +
		currentParamStyle.Render(sig.param) +
		signatureStyle.Render(")  "+sig.summary)
}
