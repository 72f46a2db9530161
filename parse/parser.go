package parse

import (
	"errors"
	"fmt"

	"github.com/cliway/cliway/types"
	"github.com/cliway/cliway/types/queue"
)

var (
	ErrMalformedToken       = errors.New("malformed token")
	ErrUnexpectedToken      = errors.New("unexpected token")
	ErrUnbalancedBrace      = errors.New("unbalanced brace")
	ErrEmptyPattern         = errors.New("empty route pattern")
	ErrInvalidName          = errors.New("name is not a valid identifier")
	ErrInvalidConstraint    = errors.New("type constraint is not a valid identifier")
	ErrStarPosition         = errors.New("'*' is only valid as the first character inside braces")
	ErrShortWithoutLong     = errors.New("short option form requires a long form")
	ErrCatchAllNotLast      = errors.New("catch-all parameter must be the final positional segment")
	ErrDuplicateParameter   = errors.New("duplicate parameter name")
	ErrAmbiguousOptionals   = errors.New("more than one optional positional parameter")
	ErrCatchAllWithOptional = errors.New("catch-all cannot be combined with an optional positional parameter")
	ErrOptionFormConflict   = errors.New("option form already declared")
)

// parser consumes the token stream front to back, accumulating every
// reportable error instead of stopping at the first.
type parser struct {
	tokens *queue.Q[Token]
	errs   []error
}

// Parse builds a RoutePattern from a token stream in two phases: syntactic
// (token ordering, brace balance, identifier shape) and semantic (the route
// level rules). All applicable errors are accumulated in one pass; the
// returned pattern is nil whenever errors are present. Constraint names are
// only checked for identifier shape here - resolution against a converter
// registry happens at compile time.
func Parse(tokens []Token) (*RoutePattern, []error) {
	p := &parser{tokens: queue.New[Token]()}
	for _, tok := range tokens {
		p.tokens.Enqueue(tok)
	}

	pattern := &RoutePattern{}
	for {
		tok := p.next()
		if tok.Kind == TokenEOF {
			break
		}

		switch tok.Kind {
		case TokenIdentifier:
			pattern.Segments = append(pattern.Segments, Segment{
				Kind:    types.SegmentLiteral,
				Literal: tok.Text,
			})
		case TokenBraceOpen:
			if param := p.parseParameter(tok); param != nil {
				kind := types.SegmentParameter
				if param.IsCatchAll {
					kind = types.SegmentCatchAll
				}
				pattern.Segments = append(pattern.Segments, Segment{Kind: kind, Parameter: param})
			}
		case TokenDashLong:
			if opt := p.parseOption(); opt != nil {
				pattern.Options = append(pattern.Options, opt)
			}
		case TokenDashShort:
			p.errorf(ErrShortWithoutLong, tok)
			p.skipWord()
		case TokenBraceClose:
			p.errorf(ErrUnbalancedBrace, tok)
		case TokenInvalid:
			p.errorf(ErrMalformedToken, tok)
		default:
			p.errorf(ErrUnexpectedToken, tok)
		}
	}

	if len(pattern.Segments) == 0 && len(pattern.Options) == 0 && len(p.errs) == 0 {
		p.errs = append(p.errs, ErrEmptyPattern)
	}

	p.validate(pattern)

	if len(p.errs) > 0 {
		return nil, p.errs
	}

	return pattern, nil
}

// ParsePattern tokenizes and parses a pattern string
func ParsePattern(pattern string) (*RoutePattern, []error) {
	return Parse(Tokenize(pattern))
}

func (p *parser) next() Token {
	tok, ok := p.tokens.Dequeue()
	if !ok {
		return Token{Kind: TokenEOF}
	}

	return tok
}

func (p *parser) peek() Token {
	tok, ok := p.tokens.First()
	if !ok {
		return Token{Kind: TokenEOF}
	}

	return tok
}

func (p *parser) accept(kind TokenKind) (Token, bool) {
	if p.peek().Kind == kind {
		return p.next(), true
	}

	return Token{}, false
}

func (p *parser) errorf(sentinel error, tok Token) {
	if tok.Kind == TokenEOF {
		p.errs = append(p.errs, fmt.Errorf("%w: at end of pattern", sentinel))
		return
	}
	p.errs = append(p.errs, fmt.Errorf("%w: %q at position %d", sentinel, tok.Text, tok.Pos))
}

// skipWord drops tokens until a plausible segment boundary so that one
// malformed construct does not cascade into spurious diagnostics.
func (p *parser) skipWord() {
	for {
		switch p.peek().Kind {
		case TokenIdentifier, TokenQuestion, TokenColon, TokenPipe, TokenComma, TokenStar:
			p.next()
		default:
			return
		}
	}
}

// skipBrace drops tokens up to and including the next closing brace
func (p *parser) skipBrace() {
	for {
		tok := p.next()
		if tok.Kind == TokenBraceClose || tok.Kind == TokenEOF {
			return
		}
	}
}

// parseParameter parses the inside of a brace pair. open is the consumed
// opening brace, used for positioning brace-balance diagnostics.
func (p *parser) parseParameter(open Token) *ParameterSyntax {
	param := &ParameterSyntax{}

	if _, ok := p.accept(TokenStar); ok {
		param.IsCatchAll = true
	}

	name, ok := p.accept(TokenIdentifier)
	if !ok {
		p.errorf(ErrInvalidName, p.peek())
		p.skipBrace()
		return nil
	}
	if !IsIdentifier(name.Text) {
		p.errorf(ErrInvalidName, name)
	}
	param.Name = name.Text

	if _, ok := p.accept(TokenColon); ok {
		constraint, ok := p.accept(TokenIdentifier)
		if !ok {
			p.errorf(ErrInvalidConstraint, p.peek())
			p.skipBrace()
			return nil
		}
		if !IsIdentifier(constraint.Text) {
			p.errorf(ErrInvalidConstraint, constraint)
		}
		param.Constraint = constraint.Text
	}

	if _, ok := p.accept(TokenQuestion); ok {
		param.IsOptional = true
	}

	if _, ok := p.accept(TokenPipe); ok {
		if desc, ok := p.accept(TokenIdentifier); ok {
			param.Description = desc.Text
		}
	}

	if stray, ok := p.accept(TokenStar); ok {
		p.errorf(ErrStarPosition, stray)
		p.skipBrace()
		return nil
	}

	if _, ok := p.accept(TokenBraceClose); !ok {
		p.errorf(ErrUnbalancedBrace, open)
		p.skipBrace()
		return nil
	}

	return param
}

// parseOption parses one option declaration after its leading double dash
func (p *parser) parseOption() *OptionSyntax {
	name, ok := p.accept(TokenIdentifier)
	if !ok || !IsIdentifier(name.Text) {
		if !ok {
			name = p.peek()
		}
		p.errorf(ErrInvalidName, name)
		p.skipWord()
		return nil
	}
	opt := &OptionSyntax{Long: name.Text}

	if _, ok := p.accept(TokenComma); ok {
		if _, ok := p.accept(TokenDashShort); !ok {
			p.errorf(ErrUnexpectedToken, p.peek())
			p.skipWord()
			return nil
		}
		short, ok := p.accept(TokenIdentifier)
		if !ok {
			p.errorf(ErrInvalidName, p.peek())
			p.skipWord()
			return nil
		}
		opt.Short = short.Text
	}

	if _, ok := p.accept(TokenQuestion); ok {
		opt.IsNullable = true
	}

	if _, ok := p.accept(TokenPipe); ok {
		if desc, ok := p.accept(TokenIdentifier); ok {
			opt.Description = desc.Text
		}
	}

	if open, ok := p.accept(TokenBraceOpen); ok {
		value := p.parseParameter(open)
		if value == nil {
			return nil
		}
		if value.IsCatchAll {
			p.errorf(ErrStarPosition, open)
			return nil
		}
		opt.Value = value
		if value.IsOptional {
			opt.IsNullable = true
		}
	}

	return opt
}

// validate applies the route-level semantic rules. Every violated rule is
// reported; none short-circuits the others.
func (p *parser) validate(pattern *RoutePattern) {
	seen := map[string]bool{}
	optionalCount := 0
	hasCatchAll := false

	for i, seg := range pattern.Segments {
		if seg.Parameter == nil {
			continue
		}
		param := seg.Parameter

		if seen[param.Name] {
			p.errs = append(p.errs, fmt.Errorf("%w: %q", ErrDuplicateParameter, param.Name))
		}
		seen[param.Name] = true

		if param.IsCatchAll {
			hasCatchAll = true
			if i != len(pattern.Segments)-1 {
				p.errs = append(p.errs, fmt.Errorf("%w: %q", ErrCatchAllNotLast, param.Name))
			}
		} else if param.IsOptional {
			optionalCount++
		}
	}

	if optionalCount > 1 {
		p.errs = append(p.errs, fmt.Errorf("%w: route declares %d", ErrAmbiguousOptionals, optionalCount))
	}
	if hasCatchAll && optionalCount > 0 {
		p.errs = append(p.errs, ErrCatchAllWithOptional)
	}

	longForms := map[string]bool{}
	shortForms := map[string]bool{}
	for _, opt := range pattern.Options {
		if longForms[opt.Long] {
			p.errs = append(p.errs, fmt.Errorf("%w: --%s", ErrOptionFormConflict, opt.Long))
		}
		longForms[opt.Long] = true

		if opt.Short != "" {
			if shortForms[opt.Short] {
				p.errs = append(p.errs, fmt.Errorf("%w: -%s", ErrOptionFormConflict, opt.Short))
			}
			shortForms[opt.Short] = true
		}

		if opt.Value != nil {
			if seen[opt.Value.Name] {
				p.errs = append(p.errs, fmt.Errorf("%w: %q", ErrDuplicateParameter, opt.Value.Name))
			}
			seen[opt.Value.Name] = true
		}
	}
}
