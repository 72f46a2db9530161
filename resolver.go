package cliway

import (
	"strings"

	"github.com/cliway/cliway/convert"
	"github.com/cliway/cliway/parse"
	"github.com/cliway/cliway/types"
	"github.com/cliway/cliway/types/orderedmap"
	"github.com/cliway/cliway/types/queue"
)

// matchFailure records why an endpoint did not match and how far it got,
// so Resolve can surface the most promising near miss.
type matchFailure struct {
	reason   MatchReason
	cause    error
	progress int
}

// Resolve maps a complete argument vector to exactly one endpoint with
// typed bound parameters. Tokens containing ':' are set aside before
// matching begins (the grammar disallows ':' in option identifiers, so they
// unambiguously belong to an external configuration consumer) and are
// surfaced unmodified in the result's Passthrough.
//
// Endpoints are tried in descending specificity order; the first to match
// wins and there is no cross-endpoint backtracking. Each call allocates its
// own result and scratch state, so concurrent calls against the frozen
// collection are safe without synchronization.
func (c *EndpointCollection) Resolve(argv []string) *MatchResult {
	result := &MatchResult{Argv: argv, Reason: ReasonNoEndpoints}

	tokens := make([]string, 0, len(argv))
	for _, arg := range argv {
		if strings.Contains(arg, ":") {
			result.Passthrough = append(result.Passthrough, arg)
			continue
		}
		tokens = append(tokens, arg)
	}

	bestProgress := -1
	for _, endpoint := range c.endpoints {
		args, failure := matchEndpoint(endpoint.route, tokens)
		if failure == nil {
			result.Matched = true
			result.Endpoint = endpoint
			result.Args = args
			result.Closest = nil
			result.Reason = ReasonNone
			result.Cause = nil

			return result
		}

		// remember the deepest near miss; specificity order breaks ties
		if failure.progress > bestProgress {
			bestProgress = failure.progress
			result.Closest = endpoint
			result.Reason = failure.reason
			result.Cause = failure.cause
		}
	}

	return result
}

// ResolveString splits a full command line with shell quoting rules and
// resolves the resulting vector.
func (c *EndpointCollection) ResolveString(line string) (*MatchResult, error) {
	argv, err := parse.Split(line)
	if err != nil {
		return nil, err
	}

	return c.Resolve(argv), nil
}

// matchEndpoint runs the two-pass scan for one endpoint: pass 1 claims
// option tokens anywhere in the vector, pass 2 walks positional matchers
// left to right over whatever remains. An endpoint matches iff every
// required positional bound, every claimed value option received a value,
// and no token is left over.
func matchEndpoint(route *compiledRoute, tokens []string) (*orderedmap.OrderedMap[string, any], *matchFailure) {
	args := orderedmap.NewOrderedMap[string, any]()

	claimed := make([]bool, len(tokens))
	for _, opt := range route.options {
		if failure := claimOption(route, opt, tokens, claimed, args); failure != nil {
			return nil, failure
		}
	}

	pool := queue.New[string]()
	for i, tok := range tokens {
		if !claimed[i] {
			pool.Enqueue(tok)
		}
	}

	for i, m := range route.positionals {
		switch m.kind {
		case types.SegmentLiteral:
			tok, ok := pool.First()
			if !ok {
				return nil, &matchFailure{reason: ReasonMissingSegment, progress: i}
			}
			if tok != m.literal {
				return nil, &matchFailure{reason: ReasonUnmatchedLiteral, progress: i}
			}
			pool.Dequeue()

		case types.SegmentParameter:
			if m.optional && pool.Len() <= route.requiredAfter(i) {
				args.Set(m.name, nil)
				continue
			}
			tok, ok := pool.First()
			if !ok {
				return nil, &matchFailure{reason: ReasonMissingSegment, progress: i}
			}
			val, err := convertToken(m.converter, tok)
			if err != nil {
				return nil, &matchFailure{reason: ReasonFailedConversion, cause: err, progress: i}
			}
			pool.Dequeue()
			args.Set(m.name, val)

		case types.SegmentCatchAll:
			rest := make([]string, 0, pool.Len())
			for {
				tok, ok := pool.Dequeue()
				if !ok {
					break
				}
				rest = append(rest, tok)
			}
			val, err := convertCatchAll(m.converter, rest)
			if err != nil {
				return nil, &matchFailure{reason: ReasonFailedConversion, cause: err, progress: i}
			}
			args.Set(m.name, val)
		}
	}

	if pool.Len() > 0 {
		tok, _ := pool.First()
		if strings.HasPrefix(tok, "-") {
			return nil, &matchFailure{reason: ReasonUnmatchedLiteral, progress: len(route.positionals)}
		}
		return nil, &matchFailure{reason: ReasonUnexpectedArgument, progress: len(route.positionals)}
	}

	return args, nil
}

// claimOption claims every lexical occurrence of the option's forms, along
// with the value token immediately following each when the option expects
// one. Absent options bind their documented absent value: false for
// presence flags (nil when declared nullable) and nil for value options.
func claimOption(route *compiledRoute, opt *optionMatcher, tokens []string, claimed []bool, args *orderedmap.OrderedMap[string, any]) *matchFailure {
	present := false
	for i, tok := range tokens {
		if claimed[i] || !opt.matches(tok) {
			continue
		}
		claimed[i] = true
		present = true

		if !opt.expectsValue() {
			args.Set(opt.long, true)
			continue
		}

		if i+1 >= len(tokens) || claimed[i+1] {
			return &matchFailure{reason: ReasonMissingOptionValue, progress: 0}
		}
		claimed[i+1] = true
		val, err := convertToken(opt.converter, tokens[i+1])
		if err != nil {
			return &matchFailure{reason: ReasonFailedConversion, cause: err, progress: 0}
		}
		args.Set(opt.valueName, val)
	}

	if !present {
		switch {
		case opt.expectsValue():
			args.Set(opt.valueName, nil)
		case opt.nullable:
			args.Set(opt.long, nil)
		default:
			args.Set(opt.long, false)
		}
	}

	return nil
}

// convertToken binds one token through its converter; untyped parameters
// bind the raw string
func convertToken(conv *convert.Converter, tok string) (any, error) {
	if conv == nil {
		return tok, nil
	}

	return conv.Convert(tok)
}

// convertCatchAll applies the scalar converter to every captured element
// with fail-fast semantics; untyped catch-alls bind the raw string slice
func convertCatchAll(conv *convert.Converter, rest []string) (any, error) {
	if conv == nil {
		return rest, nil
	}

	values := make([]any, len(rest))
	for i, tok := range rest {
		val, err := conv.Convert(tok)
		if err != nil {
			return nil, err
		}
		values[i] = val
	}

	return values, nil
}
