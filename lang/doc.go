// Package lang parses and evaluates arithmetic expressions.
//
// Expressions are written in infix notation with numeric literals, variables,
// the binary operators + - * / ^, unary minus, postfix factorial (!), and the
// functions sin, cos, log (natural), and sqrt. Parentheses group as usual.
//
// # Pipeline
//
// Text flows through four stages, each usable on its own:
//
//   - [Validate] rejects invalid characters and unbalanced brackets.
//   - [Tokenize] splits the text into [Token] values.
//   - [Convert] reorders the tokens into postfix (Reverse Polish) notation
//     with the shunting-yard algorithm and collects the variable names.
//   - [Evaluate] runs the postfix text against a table of variable values.
//
// [Expression] ties the stages together: [New] validates and converts once,
// and [Expression.Calculate] evaluates against caller-supplied bindings as
// many times as needed.
//
// # Example
//
//	e, err := lang.New("-(a + 2) * sqrt(b) / 3!")
//	if err != nil {
//		return err
//	}
//
//	fmt.Println(e.Postfix()) // a 2 + _ b sqrt * 3 ! /
//
//	v, err := e.Calculate(map[string]float64{"a": 1, "b": 16})
//	// v == -2
//
// # Precedence
//
// Operators bind in the following order, loosest first. Operators of equal
// rank associate to the left, including ^.
//
//	1  + -
//	2  * /
//	3  ^
//	4  unary minus (written as _ in postfix text)
//	5  !
//	6  sin cos log sqrt
//
// # Errors
//
// Every failure is an [*Error] that matches one of the package sentinels with
// [errors.Is]. Validation failures carry a byte position ([Error.Position]),
// and binding failures carry a variable name ([Error.Name]).
package lang
