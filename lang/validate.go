package lang

// Validate reports whether text is fit for conversion.
//
// Every byte must be an ASCII digit or letter, an operator symbol
// (+ - * / ! ^), a parenthesis, a space, or a period. Characters are checked
// before brackets, so text with balanced brackets is still rejected for a
// stray character.
//
// The first offending byte yields [ErrInvalidCharacter] and an unmatched
// closing bracket yields [ErrUnmatchedClosingBracket], each at its byte
// offset. Unclosed opening brackets yield [ErrUnmatchedOpeningBracket] with
// the number of unclosed brackets minus one as the reported position.
func Validate(text string) error {
	for i := range len(text) {
		if !isValidByte(text[i]) {
			return ErrInvalidCharacter.at(i)
		}
	}

	var open []int

	for i := range len(text) {
		switch text[i] {
		case '(':
			open = append(open, i)
		case ')':
			if len(open) == 0 {
				return ErrUnmatchedClosingBracket.at(i)
			}

			open = open[:len(open)-1]
		}
	}

	if len(open) > 0 {
		return ErrUnmatchedOpeningBracket.at(len(open) - 1)
	}

	return nil
}

func isValidByte(c byte) bool {
	return isDigit(c) || isLetter(c) || isOperator(c) ||
		c == '(' || c == ')' || c == ' ' || c == '.'
}
