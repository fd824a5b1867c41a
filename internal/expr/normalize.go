package expr

import (
	"fmt"
	"go/scanner"
	"go/token"
	"strings"
)

// identifiers a formula may reference: the variable n, the predeclared
// constants, and the functions srcTemplate defines. Anything else is
// rejected up front; inside the interpreter an unknown name could resolve
// to the generated Coefficient function itself and recurse without bound.
var allowedIdents = map[string]bool{
	"n": true, "pi": true, "tau": true, "e": true,
	"sin": true, "cos": true, "tan": true,
	"sinh": true, "cosh": true,
	"exp": true, "log": true, "sqrt": true, "pow": true,
	"abs": true, "conj": true, "re": true, "im": true,
}

// normalized expression token with its source position end, used to detect
// adjacency for literal merging
type exprToken struct {
	text     string
	isNumber bool
	end      int
}

// Normalize rewrites a coefficient formula into a strict Go expression:
//
//   - π spellings (pi, PI, Pi, π) become the predeclared constant pi
//   - a bare i or j becomes the imaginary literal 1i
//   - a number immediately followed by i or j (2j, 1.5i) becomes a single
//     imaginary literal
//
// The rewrite is token-aware: identifiers like sin or n are never corrupted
// by substring matches. Only arithmetic expression tokens and whitelisted
// identifiers are accepted; keywords, braces, selectors, string literals
// and unknown names are rejected before the source ever reaches the
// interpreter.
func Normalize(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", fmt.Errorf("%w: empty expression", ErrBadExpression)
	}

	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(input))

	var scanErr error
	var sc scanner.Scanner
	sc.Init(file, []byte(input), func(pos token.Position, msg string) {
		if scanErr == nil {
			scanErr = fmt.Errorf("%w: %s at offset %d", ErrBadExpression, msg, pos.Offset)
		}
	}, 0)

	var out []exprToken
	prevTok := token.ILLEGAL
	prevPos := token.Pos(0)

	for {
		pos, tok, lit := sc.Scan()
		if tok == token.EOF {
			break
		}
		if scanErr != nil {
			return "", scanErr
		}

		switch tok {
		case token.SEMICOLON:
			// automatic semicolon insertion at the end of input
			continue

		case token.IDENT:
			switch lit {
			case "pi", "PI", "Pi", "π":
				out = append(out, exprToken{text: "pi", end: int(pos) + len(lit)})
			case "i", "j":
				// merge a directly preceding number into one imaginary literal
				if n := len(out); n > 0 && out[n-1].isNumber && out[n-1].end == int(pos) {
					out[n-1] = exprToken{
						text:     out[n-1].text + "i",
						isNumber: true,
						end:      int(pos) + len(lit),
					}
				} else {
					out = append(out, exprToken{text: "1i", isNumber: true, end: int(pos) + len(lit)})
				}
			default:
				if !allowedIdents[lit] {
					return "", fmt.Errorf("%w: unknown identifier %q", ErrBadExpression, lit)
				}
				out = append(out, exprToken{text: lit, end: int(pos) + len(lit)})
			}

		case token.INT, token.FLOAT, token.IMAG:
			out = append(out, exprToken{text: lit, isNumber: true, end: int(pos) + len(lit)})

		case token.ADD, token.SUB, token.QUO, token.REM, token.LPAREN, token.RPAREN, token.COMMA:
			out = append(out, exprToken{text: tok.String(), end: int(pos) + len(tok.String())})

		case token.MUL:
			// two adjacent asterisks are Python exponentiation
			if prevTok == token.MUL && pos == prevPos+1 {
				return "", fmt.Errorf("%w: exponentiation is written pow(x, y), not **", ErrBadExpression)
			}
			out = append(out, exprToken{text: tok.String(), end: int(pos) + len(tok.String())})

		default:
			return "", fmt.Errorf("%w: token %q not allowed in a coefficient formula", ErrBadExpression, tok.String())
		}

		prevTok = tok
		prevPos = pos
	}
	if scanErr != nil {
		return "", scanErr
	}
	if len(out) == 0 {
		return "", fmt.Errorf("%w: empty expression", ErrBadExpression)
	}

	parts := make([]string, len(out))
	for i, t := range out {
		parts[i] = t.text
	}
	return strings.Join(parts, " "), nil
}
