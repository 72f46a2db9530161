package cliway

import (
	"strings"

	"github.com/cliway/cliway/completion"
	"github.com/cliway/cliway/convert"
	"github.com/cliway/cliway/types"
)

// helpCandidate is offered whenever at least one route is still viable,
// even with required segments left to type, unless disabled via
// WithHelpOption. The only exclusion is an option awaiting its value.
var helpCandidate = completion.Candidate{
	Value:       "--help",
	Description: "show usage",
	Kind:        types.KindOption,
}

// Complete matches a partially typed input line against the route table
// and returns ranked suggestions for the word under the cursor. Only the
// completed words constrain matching; a route stays alive as long as the
// input could still grow into one of its argument vectors. Adding a
// character to the partial word never widens the result, it only narrows
// the prefix filter.
func (c *EndpointCollection) Complete(line string) []completion.Candidate {
	input := completion.ParseInput(line)

	var candidates []completion.Candidate
	helpEligible := false
	for _, endpoint := range c.endpoints {
		state, ok := endpoint.route.replay(input.Completed)
		if !ok {
			continue
		}
		// an option mid-value admits nothing but that value
		if state.pending == nil {
			helpEligible = true
		}
		candidates = append(candidates, state.candidates(endpoint)...)
	}

	if helpEligible && c.helpOption {
		candidates = append(candidates, helpCandidate)
	}

	return completion.Rank(candidates, input.Partial)
}

// completeState is the position an endpoint reached after replaying the
// completed words: the next positional to satisfy, which options were
// already given, and an option still waiting for its value.
type completeState struct {
	route       *compiledRoute
	pos         int
	usedOptions map[*optionMatcher]bool
	pending     *optionMatcher
}

// replay walks the completed words through the route left to right.
// It returns ok=false when the words can no longer be a prefix of any
// invocation of this route. Tokens carrying ':' are passthrough and do
// not participate, mirroring resolution.
func (r *compiledRoute) replay(words []string) (*completeState, bool) {
	state := &completeState{
		route:       r,
		usedOptions: map[*optionMatcher]bool{},
	}

	for _, word := range words {
		if strings.ContainsRune(word, ':') {
			continue
		}
		if state.pending != nil {
			if !acceptsValue(state.pending.converter, word) {
				return nil, false
			}
			state.pending = nil
			continue
		}
		if opt := r.optionFor(word); opt != nil {
			state.usedOptions[opt] = true
			if opt.expectsValue() {
				state.pending = opt
			}
			continue
		}
		if strings.HasPrefix(word, "-") {
			return nil, false
		}
		if !state.consumePositional(word) {
			return nil, false
		}
	}

	return state, true
}

func (r *compiledRoute) optionFor(word string) *optionMatcher {
	for _, opt := range r.options {
		if opt.matches(word) {
			return opt
		}
	}
	return nil
}

// consumePositional binds one word to the next positional. An optional
// parameter is skipped when the word is the literal expected right after
// it, or when its converter rejects the word; the route only ever carries
// a single optional positional so one level of lookahead suffices.
func (s *completeState) consumePositional(word string) bool {
	for s.pos < len(s.route.positionals) {
		matcher := s.route.positionals[s.pos]
		switch matcher.kind {
		case types.SegmentLiteral:
			if matcher.literal != word {
				return false
			}
			s.pos++
			return true
		case types.SegmentCatchAll:
			// a catch-all absorbs everything that follows
			return true
		default:
			if matcher.optional && s.skipsOptional(word) {
				s.pos++
				continue
			}
			if !acceptsValue(matcher.converter, word) {
				if matcher.optional {
					s.pos++
					continue
				}
				return false
			}
			s.pos++
			return true
		}
	}
	return false
}

func (s *completeState) skipsOptional(word string) bool {
	if s.pos+1 >= len(s.route.positionals) {
		return false
	}
	next := s.route.positionals[s.pos+1]
	return next.kind == types.SegmentLiteral && next.literal == word
}

func acceptsValue(conv *convert.Converter, word string) bool {
	if conv == nil {
		return true
	}
	_, err := conv.Convert(word)
	return err == nil
}

// candidates collects the suggestions valid at the current position: the
// value of a pending option, otherwise the next positionals (an optional
// parameter also exposes what follows it) plus the options not yet given.
func (s *completeState) candidates(endpoint *Endpoint) []completion.Candidate {
	if s.pending != nil {
		return valueCandidates(s.pending.converter, s.pending.valueName)
	}

	var result []completion.Candidate

	for i := s.pos; i < len(s.route.positionals); i++ {
		matcher := s.route.positionals[i]
		switch matcher.kind {
		case types.SegmentLiteral:
			result = append(result, completion.Candidate{
				Value:       matcher.literal,
				Description: endpoint.Description,
				Kind:        types.KindCommand,
			})
		default:
			result = append(result, valueCandidates(matcher.converter, matcher.name)...)
		}
		if !matcher.optional && matcher.kind != types.SegmentCatchAll {
			break
		}
	}

	for _, opt := range s.route.options {
		if s.usedOptions[opt] {
			continue
		}
		result = append(result, completion.Candidate{
			Value:       "--" + opt.long,
			Description: opt.description,
			Kind:        types.KindOption,
		})
		if opt.short != "" {
			result = append(result, completion.Candidate{
				Value:       "-" + opt.short,
				Description: opt.description,
				Kind:        types.KindOption,
			})
		}
	}

	return result
}

// valueCandidates suggests concrete values when a converter enumerates
// them (enums, booleans) and a placeholder hint otherwise. Placeholders
// never survive a non-empty prefix filter, so they only show up when the
// user has not started typing the value.
func valueCandidates(conv *convert.Converter, name string) []completion.Candidate {
	if conv != nil && len(conv.Values) > 0 {
		candidates := make([]completion.Candidate, 0, len(conv.Values))
		for _, value := range conv.Values {
			candidates = append(candidates, completion.Candidate{
				Value: value,
				Kind:  conv.Kind,
			})
		}
		return candidates
	}

	kind := types.KindParameter
	if conv != nil && (conv.Kind == types.KindFile || conv.Kind == types.KindDirectory) {
		kind = conv.Kind
	}

	return []completion.Candidate{{
		Value: "<" + name + ">",
		Kind:  kind,
	}}
}
