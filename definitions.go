package cliway

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cliway/cliway/convert"
	"github.com/cliway/cliway/types/orderedmap"
)

var (
	ErrNilHandler     = errors.New("route handler cannot be nil")
	ErrEmptyRoute     = errors.New("route pattern cannot be empty")
	ErrRegistration   = errors.New("route registration failed")
	ErrUnknownElement = errors.New("route element cannot be compiled")
)

// ConfigureRouterFunc configures a Router during construction
type ConfigureRouterFunc func(router *Router, err *error)

// ConfigureEndpointFunc configures an Endpoint during registration
type ConfigureEndpointFunc func(endpoint *Endpoint)

// MatchReason explains why resolution failed, for "did you mean" diagnostics
type MatchReason int

const (
	ReasonNone               MatchReason = iota
	ReasonNoEndpoints                    // the collection is empty
	ReasonUnmatchedLiteral               // a leading or interior literal did not match
	ReasonMissingSegment                 // a required positional had no token to bind
	ReasonFailedConversion               // a token could not convert to the declared type
	ReasonUnexpectedArgument             // tokens remained after all segments bound
	ReasonMissingOptionValue             // a claimed option expected a value token
)

// String returns the string representation of a MatchReason
func (r MatchReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNoEndpoints:
		return "no endpoints registered"
	case ReasonUnmatchedLiteral:
		return "unmatched literal"
	case ReasonMissingSegment:
		return "missing required segment"
	case ReasonFailedConversion:
		return "failed conversion"
	case ReasonUnexpectedArgument:
		return "unexpected argument"
	case ReasonMissingOptionValue:
		return "missing option value"
	}
	return "unknown"
}

// Endpoint is a compiled route bound to an opaque handler. Invoking the
// handler with the bound arguments is the caller's responsibility.
type Endpoint struct {
	Pattern     string
	Description string
	Handler     any
	route       *compiledRoute
}

// Specificity returns the route's disambiguation score. Literal-heavy
// routes score higher than parameter-heavy ones, earlier segments higher
// than later ones.
func (e *Endpoint) Specificity() int {
	return e.route.specificity
}

// MatchResult is the outcome of one Resolve call. When Matched is true,
// Endpoint and Args are set; otherwise Closest and Reason carry the best
// near miss. Argv and Passthrough are always populated: Passthrough holds
// the configuration-override tokens (any argv token containing ':') set
// aside before matching, unmodified, and Argv the original vector.
type MatchResult struct {
	Matched     bool
	Endpoint    *Endpoint
	Args        *orderedmap.OrderedMap[string, any]
	Argv        []string
	Passthrough []string
	Closest     *Endpoint
	Reason      MatchReason
	Cause       error
}

// RouteError aggregates every diagnostic for one pattern, so registration
// feedback is exhaustive in one cycle instead of dripping out error by error.
type RouteError struct {
	Pattern string
	Errs    []error
}

// Error joins all accumulated diagnostics
func (e *RouteError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}

	return fmt.Sprintf("route %q: %s", e.Pattern, strings.Join(msgs, "; "))
}

// Is reports whether any accumulated diagnostic matches target
func (e *RouteError) Is(target error) bool {
	for _, err := range e.Errs {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// WithRegistry replaces the router's converter registry. The registry is
// treated as frozen once routes are registered against it.
func WithRegistry(registry *convert.Registry) ConfigureRouterFunc {
	return func(router *Router, err *error) {
		if registry == nil {
			*err = fmt.Errorf("%w: nil registry", ErrRegistration)
			return
		}
		router.registry = registry
	}
}

// WithConverter registers a custom converter under the given constraint name
func WithConverter(name string, conv *convert.Converter) ConfigureRouterFunc {
	return func(router *Router, err *error) {
		if e := router.registry.Register(name, conv); e != nil {
			*err = e
		}
	}
}

// WithEnum registers an enumeration constraint whose values are matched
// case-insensitively and offered as completion candidates
func WithEnum(name string, values ...string) ConfigureRouterFunc {
	return func(router *Router, err *error) {
		if e := router.registry.Register(name, convert.NewEnumConverter(name, values...)); e != nil {
			*err = e
		}
	}
}

// WithHelpOption controls whether completion offers --help on satisfiable
// endpoints. Enabled by default.
func WithHelpOption(enabled bool) ConfigureRouterFunc {
	return func(router *Router, err *error) {
		router.helpOption = enabled
	}
}

// WithDescription sets the endpoint description shown in usage listings and
// completion candidates
func WithDescription(description string) ConfigureEndpointFunc {
	return func(endpoint *Endpoint) {
		endpoint.Description = description
	}
}
