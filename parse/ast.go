package parse

import (
	"strings"

	"github.com/cliway/cliway/types"
)

// ParameterSyntax describes one {name}, {name?}, {name:type}, {name:type?}
// or {*name} parameter as written in a pattern.
type ParameterSyntax struct {
	Name        string
	Constraint  string // type-constraint name, empty when untyped
	IsOptional  bool
	IsCatchAll  bool
	Description string
}

// OptionSyntax describes one --long[,-s] [{value}] option declaration.
// Presence of the option itself is always optional; IsNullable only governs
// how a missing value is reported to the binding layer.
type OptionSyntax struct {
	Long        string
	Short       string // empty when no short alias is declared
	Value       *ParameterSyntax
	IsNullable  bool
	Description string
}

// ExpectsValue reports whether the option consumes a value token
func (o *OptionSyntax) ExpectsValue() bool {
	return o.Value != nil
}

// Segment is one ordered positional element of a route pattern
type Segment struct {
	Kind      types.SegmentKind
	Literal   string           // set when Kind == SegmentLiteral
	Parameter *ParameterSyntax // set otherwise
}

// RoutePattern is the abstract syntax of one route: ordered positional
// segments plus the route's option set. Built once per registration and
// never mutated afterwards.
type RoutePattern struct {
	Segments []Segment
	Options  []*OptionSyntax
}

// String serializes the pattern back to its textual form. Parsing the
// result yields a structurally equal RoutePattern.
func (p *RoutePattern) String() string {
	parts := make([]string, 0, len(p.Segments)+len(p.Options))
	for _, seg := range p.Segments {
		if seg.Kind == types.SegmentLiteral {
			parts = append(parts, seg.Literal)
			continue
		}
		parts = append(parts, seg.Parameter.String())
	}
	for _, opt := range p.Options {
		parts = append(parts, opt.String())
	}

	return strings.Join(parts, " ")
}

// String serializes the parameter in brace form
func (p *ParameterSyntax) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	if p.IsCatchAll {
		sb.WriteByte('*')
	}
	sb.WriteString(p.Name)
	if p.Constraint != "" {
		sb.WriteByte(':')
		sb.WriteString(p.Constraint)
	}
	if p.IsOptional {
		sb.WriteByte('?')
	}
	if p.Description != "" {
		sb.WriteByte('|')
		sb.WriteString(p.Description)
	}
	sb.WriteByte('}')

	return sb.String()
}

// String serializes the option declaration
func (o *OptionSyntax) String() string {
	var sb strings.Builder
	sb.WriteString("--")
	sb.WriteString(o.Long)
	if o.Short != "" {
		sb.WriteString(",-")
		sb.WriteString(o.Short)
	}
	// an optional value already implies nullability, so the marker is
	// only written when it carries information of its own
	if o.IsNullable && (o.Value == nil || !o.Value.IsOptional) {
		sb.WriteByte('?')
	}
	if o.Description != "" {
		sb.WriteByte('|')
		sb.WriteString(o.Description)
	}
	if o.Value != nil {
		sb.WriteByte(' ')
		sb.WriteString(o.Value.String())
	}

	return sb.String()
}

// CatchAll returns the trailing catch-all parameter or nil
func (p *RoutePattern) CatchAll() *ParameterSyntax {
	if len(p.Segments) == 0 {
		return nil
	}
	last := p.Segments[len(p.Segments)-1]
	if last.Kind == types.SegmentCatchAll {
		return last.Parameter
	}

	return nil
}
