package lang

// lexer accumulates multi-character operands between delimiters.
type lexer struct {
	text   string
	tokens []Token
	buf    []byte
	start  int  // offset of buf[0]
	opened bool // last emitted token was an operator, or nothing was emitted
}

// Tokenize splits text into tokens in a single left-to-right scan.
//
// Digits and letters accumulate into one operand until an operator symbol,
// parenthesis, or space ends it, so "2x" is a single identifier. A period
// joins the operand only when it follows a digit; any other period, and any
// byte outside the expression alphabet, is dropped. A minus sign at the start
// or after an operator or opening parenthesis becomes the unary minus marker.
//
// Tokenize does not validate text and never fails.
func Tokenize(text string) []Token {
	l := lexer{text: text, opened: true}

	for i := range len(text) {
		c := text[i]

		switch {
		case isDigit(c) || (c == '.' && len(l.buf) > 0 && isDigit(l.buf[len(l.buf)-1])):
			l.push(i, c)

		case isLetter(c):
			l.push(i, c)

		case isOperator(c) || c == '(' || c == ')':
			l.flush()

			if c == '-' && (l.opened || len(l.tokens) == 0) {
				l.emit(Token{Kind: KindUnaryMinus, Text: UnaryMinus, Pos: i})
			} else {
				l.emit(Token{Kind: symbolKind(c), Text: text[i : i+1], Pos: i})
			}

			l.opened = c != ')'

		case c == ' ':
			l.flush()
		}
	}

	l.flush()

	return l.tokens
}

func (l *lexer) push(i int, c byte) {
	if len(l.buf) == 0 {
		l.start = i
	}

	l.buf = append(l.buf, c)
	l.opened = false
}

// flush emits the buffered operand, if any.
func (l *lexer) flush() {
	if len(l.buf) == 0 {
		return
	}

	text := string(l.buf)
	kind := KindIdentifier

	switch {
	case IsNumber(text):
		kind = KindNumber
	case IsFunction(text):
		kind = KindFunction
	}

	l.emit(Token{Kind: kind, Text: text, Pos: l.start})
	l.buf = l.buf[:0]
}

func (l *lexer) emit(t Token) { l.tokens = append(l.tokens, t) }

func symbolKind(c byte) Kind {
	switch c {
	case '!':
		return KindFactorial
	case '(':
		return KindLeftParen
	case ')':
		return KindRightParen
	default:
		return KindOperator
	}
}
