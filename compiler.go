package cliway

import (
	"fmt"

	"github.com/cliway/cliway/convert"
	"github.com/cliway/cliway/parse"
	"github.com/cliway/cliway/types"
)

// Specificity weights per segment kind. Each position is scaled by a
// descending power of four so that a literal-versus-parameter divergence at
// any position outweighs everything that can follow it: the maximum tail
// contribution Σ 3·4^j for j < k is strictly less than 4^k.
const (
	weightLiteral  = 3
	weightTyped    = 2
	weightUntyped  = 1
	weightCatchAll = 0

	specificityDepth = 16
)

// positionalMatcher is one compiled positional segment. converter is nil
// for literals and untyped parameters (which bind the raw token).
type positionalMatcher struct {
	kind      types.SegmentKind
	literal   string
	name      string
	optional  bool
	converter *convert.Converter
}

// optionMatcher is one compiled option. Options are optional-by-presence
// regardless of declared nullability; nullable only governs how absence is
// reported in the bound arguments.
type optionMatcher struct {
	long        string
	short       string
	valueName   string
	nullable    bool
	converter   *convert.Converter
	description string
}

func (o *optionMatcher) expectsValue() bool {
	return o.valueName != ""
}

// matches reports whether tok is one of the option's declared forms
func (o *optionMatcher) matches(tok string) bool {
	if tok == "--"+o.long {
		return true
	}

	return o.short != "" && tok == "-"+o.short
}

// compiledRoute is the shared representation the resolver and the
// completion engine both operate on. Exclusively owned by its endpoint and
// immutable after compilation.
type compiledRoute struct {
	positionals []positionalMatcher
	options     []*optionMatcher
	specificity int
}

// compileRoute resolves every constraint name in the pattern against the
// registry and computes the route's specificity. Unresolvable constraints
// fail compilation - this is where the parser's tentative acceptance of
// identifier-shaped constraint names is settled.
func compileRoute(pattern *parse.RoutePattern, registry *convert.Registry) (*compiledRoute, error) {
	route := &compiledRoute{}

	for i, seg := range pattern.Segments {
		weight := weightLiteral
		matcher := positionalMatcher{kind: seg.Kind, literal: seg.Literal}

		if seg.Parameter != nil {
			param := seg.Parameter
			matcher.name = param.Name
			matcher.optional = param.IsOptional

			conv, err := resolveConstraint(param, registry)
			if err != nil {
				return nil, err
			}
			matcher.converter = conv

			switch {
			case seg.Kind == types.SegmentCatchAll:
				weight = weightCatchAll
			case conv != nil:
				weight = weightTyped
			default:
				weight = weightUntyped
			}
		}

		route.positionals = append(route.positionals, matcher)
		route.specificity += weight << positionShift(i)
	}

	for _, opt := range pattern.Options {
		matcher := &optionMatcher{
			long:        opt.Long,
			short:       opt.Short,
			nullable:    opt.IsNullable,
			description: opt.Description,
		}
		if opt.Value != nil {
			matcher.valueName = opt.Value.Name
			conv, err := resolveConstraint(opt.Value, registry)
			if err != nil {
				return nil, err
			}
			matcher.converter = conv
		}
		route.options = append(route.options, matcher)
		route.specificity++
	}

	return route, nil
}

// resolveConstraint maps a parameter's constraint to a converter, wrapping
// it as nullable when the parameter is declared optional. Untyped
// parameters resolve to nil and bind raw tokens.
func resolveConstraint(param *parse.ParameterSyntax, registry *convert.Registry) (*convert.Converter, error) {
	if param.Constraint == "" {
		return nil, nil
	}

	conv, ok := registry.Lookup(param.Constraint)
	if !ok {
		return nil, fmt.Errorf("%w: parameter %q has unknown constraint %q",
			ErrUnknownElement, param.Name, param.Constraint)
	}

	if param.IsOptional && !param.IsCatchAll {
		conv = convert.Nullable(conv)
	}

	return conv, nil
}

func positionShift(i int) int {
	if i >= specificityDepth {
		return 0
	}

	return 2 * (specificityDepth - i)
}

// requiredAfter counts the required positionals following index i, used to
// decide whether an optional positional is absent
func (r *compiledRoute) requiredAfter(i int) int {
	count := 0
	for _, m := range r.positionals[i+1:] {
		if m.kind == types.SegmentCatchAll || m.optional {
			continue
		}
		count++
	}

	return count
}
