// Package expr evaluates the restricted arithmetic grammar used by GridMove
// bound expressions.
//
// The grammar covers decimal literals, the operators + - * /, parentheses,
// and bracketed variable references such as [Monitor1Width]. Evaluation is
// a hand-written recursive descent over that closed token set; there is
// deliberately no fallthrough to a general-purpose evaluator, so an
// expression can only ever compute arithmetic over known variables.
//
// # Grammar
//
//	expression := term (('+' | '-') term)*
//	term       := unary (('*' | '/') unary)*
//	unary      := ('+' | '-') unary | primary
//	primary    := number | '[' name ']' | '(' expression ')'
//
// Operators associate left to right, '*' and '/' bind tighter than '+' and
// '-', and '/' is float division. Division by zero and unknown variables
// are reported as errors rather than producing Inf or zero.
package expr

import (
	"strconv"
	"strings"

	"github.com/matzehuels/gridkz/pkg/errors"
)

// Eval parses and evaluates input against vars. It is a pure function: the
// same input and context always produce the same result, and nothing is
// mutated. Failures carry one of three codes: ErrCodeInvalidExpression for
// any token outside the grammar, ErrCodeUnknownVariable for a bracketed
// name missing from vars, and ErrCodeDivisionByZero.
func Eval(input string, vars Context) (float64, error) {
	p := &parser{input: input, vars: vars}

	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0, errors.New(errors.ErrCodeInvalidExpression, "empty expression")
	}

	val, err := p.parseExpression()
	if err != nil {
		return 0, err
	}

	// The whole input must be consumed. "50 x" parses 50 and leaves "x",
	// which is a rejection, not a partial result.
	p.skipSpaces()
	if p.pos < len(p.input) {
		return 0, errors.New(errors.ErrCodeInvalidExpression,
			"unexpected character %q at position %d", p.input[p.pos], p.pos)
	}

	return val, nil
}

type parser struct {
	input string
	pos   int
	vars  Context
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t':
			p.pos++
		default:
			return
		}
	}
}

// peek returns the next non-space byte without consuming it, or 0 at end
// of input.
func (p *parser) peek() byte {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) parseExpression() (float64, error) {
	val, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			val += right
		case '-':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			val -= right
		default:
			return val, nil
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	val, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			val *= right
		case '/':
			p.pos++
			right, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, errors.New(errors.ErrCodeDivisionByZero, "division by zero")
			}
			val /= right
		default:
			return val, nil
		}
	}
}

func (p *parser) parseUnary() (float64, error) {
	switch p.peek() {
	case '-':
		p.pos++
		val, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return -val, nil
	case '+':
		p.pos++
		return p.parseUnary()
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (float64, error) {
	switch c := p.peek(); {
	case c == '(':
		p.pos++
		val, err := p.parseExpression()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, errors.New(errors.ErrCodeInvalidExpression,
				"missing closing parenthesis at position %d", p.pos)
		}
		p.pos++
		return val, nil

	case c == '[':
		return p.parseVariable()

	case c >= '0' && c <= '9', c == '.':
		return p.parseNumber()

	case c == 0:
		return 0, errors.New(errors.ErrCodeInvalidExpression, "unexpected end of expression")

	default:
		return 0, errors.New(errors.ErrCodeInvalidExpression,
			"unexpected character %q at position %d", c, p.pos)
	}
}

// parseNumber scans a decimal literal. Exponents are not part of the
// grammar; a stray 'e' after the digits is caught as an unexpected
// character by the caller.
func (p *parser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) && (isDigit(p.input[p.pos]) || p.input[p.pos] == '.') {
		p.pos++
	}
	text := p.input[start:p.pos]
	val, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidExpression,
			"invalid number %q at position %d", text, start)
	}
	return val, nil
}

// parseVariable scans a bracketed reference like [Monitor1Width] and looks
// it up in the context.
func (p *parser) parseVariable() (float64, error) {
	start := p.pos
	p.pos++ // consume '['

	end := strings.IndexByte(p.input[p.pos:], ']')
	if end < 0 {
		return 0, errors.New(errors.ErrCodeInvalidExpression,
			"unterminated variable reference at position %d", start)
	}

	name := strings.TrimSpace(p.input[p.pos : p.pos+end])
	p.pos += end + 1 // past ']'

	if name == "" {
		return 0, errors.New(errors.ErrCodeInvalidExpression,
			"empty variable reference at position %d", start)
	}

	val, ok := p.vars.Lookup(name)
	if !ok {
		return 0, errors.New(errors.ErrCodeUnknownVariable, "unknown variable [%s]", name)
	}
	return val, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
