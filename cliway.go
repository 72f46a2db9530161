// Package cliway is a route-pattern language for dispatching command-line
// invocations to handlers. Declarative pattern strings such as
//
//	deploy {env:environment} --version {ver?} --force,-f|skip-confirmation
//
// are lexed, parsed and compiled once at startup into an immutable,
// specificity-sorted EndpointCollection. At run time the collection
// resolves a complete argument vector to exactly one handler with typed
// bound parameters, or incrementally matches a partial input line to
// produce ranked completion suggestions. Both paths share the same
// compiled routes and the same type-converter registry; neither mutates
// them, so a built collection is safe for concurrent use.
package cliway

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cliway/cliway/convert"
	"github.com/cliway/cliway/parse"
)

// Router accumulates route registrations. All lex, parse and compile
// diagnostics are gathered across all routes rather than failing fast -
// registration feedback is exhaustive in one cycle. Call Build to freeze
// the result into an EndpointCollection.
type Router struct {
	registry   *convert.Registry
	endpoints  []*Endpoint
	errs       []error
	helpOption bool
}

// NewRouter creates a Router with the built-in converter registry. Use the
// ConfigureRouterFunc options to add enums and custom converters or to
// supply a pre-configured registry.
func NewRouter(configs ...ConfigureRouterFunc) *Router {
	router := &Router{
		registry:   convert.NewRegistry(),
		helpOption: true,
	}

	for _, config := range configs {
		var err error
		config(router, &err)
		if err != nil {
			router.errs = append(router.errs, err)
		}
	}

	return router
}

// Registry returns the router's converter registry. Treat it as frozen
// once routes have been registered.
func (r *Router) Registry() *convert.Registry {
	return r.registry
}

// Route registers one pattern bound to a handler. This is the only entry
// point exercising the lexer, parser and compiler. Errors are returned and
// also accumulated on the router, so a host can register everything and
// inspect Errs once.
func (r *Router) Route(pattern string, handler any, configs ...ConfigureEndpointFunc) (*Endpoint, error) {
	if handler == nil {
		err := fmt.Errorf("%w: %q", ErrNilHandler, pattern)
		r.errs = append(r.errs, err)
		return nil, err
	}
	if strings.TrimSpace(pattern) == "" {
		r.errs = append(r.errs, ErrEmptyRoute)
		return nil, ErrEmptyRoute
	}

	ast, parseErrs := parse.ParsePattern(pattern)
	if len(parseErrs) > 0 {
		err := &RouteError{Pattern: pattern, Errs: parseErrs}
		r.errs = append(r.errs, err)
		return nil, err
	}

	route, err := compileRoute(ast, r.registry)
	if err != nil {
		err = &RouteError{Pattern: pattern, Errs: []error{err}}
		r.errs = append(r.errs, err)
		return nil, err
	}

	endpoint := &Endpoint{
		Pattern: ast.String(),
		Handler: handler,
		route:   route,
	}
	for _, config := range configs {
		config(endpoint)
	}

	r.endpoints = append(r.endpoints, endpoint)

	return endpoint, nil
}

// Errs returns every diagnostic accumulated during configuration and
// registration
func (r *Router) Errs() []error {
	return r.errs
}

// Build freezes the registered routes into an EndpointCollection sorted by
// descending specificity, registration order breaking ties. Build fails if
// any registration failed - a partially valid route table would silently
// change dispatch semantics.
func (r *Router) Build() (*EndpointCollection, error) {
	if len(r.errs) > 0 {
		return nil, fmt.Errorf("%w: %d error(s), see Errs", ErrRegistration, len(r.errs))
	}

	endpoints := make([]*Endpoint, len(r.endpoints))
	copy(endpoints, r.endpoints)
	sort.SliceStable(endpoints, func(i, j int) bool {
		return endpoints[i].route.specificity > endpoints[j].route.specificity
	})

	return &EndpointCollection{
		endpoints:  endpoints,
		registry:   r.registry,
		helpOption: r.helpOption,
	}, nil
}

// EndpointCollection is the frozen, specificity-sorted route table shared
// by resolution and completion. It is an explicit owned value passed by
// handle - there is no ambient global registry - and is never mutated
// after Build, which removes any need for locking on the hot path.
type EndpointCollection struct {
	endpoints  []*Endpoint
	registry   *convert.Registry
	helpOption bool
}

// Len returns the number of endpoints
func (c *EndpointCollection) Len() int {
	return len(c.endpoints)
}

// Endpoints returns the endpoints in specificity order
func (c *EndpointCollection) Endpoints() []*Endpoint {
	endpoints := make([]*Endpoint, len(c.endpoints))
	copy(endpoints, c.endpoints)

	return endpoints
}

// DescribeUsage pretty prints the registered routes and their options to
// an io.Writer, one route per line in specificity order.
func (c *EndpointCollection) DescribeUsage(writer io.Writer) {
	for _, endpoint := range c.endpoints {
		if endpoint.Description != "" {
			_, _ = fmt.Fprintf(writer, " %s \"%s\"\n", endpoint.Pattern, endpoint.Description)
		} else {
			_, _ = fmt.Fprintf(writer, " %s\n", endpoint.Pattern)
		}
		for _, opt := range endpoint.route.options {
			desc := opt.description
			if desc == "" {
				continue
			}
			if opt.short != "" {
				_, _ = fmt.Fprintf(writer, "   --%s or -%s \"%s\"\n", opt.long, opt.short, desc)
			} else {
				_, _ = fmt.Fprintf(writer, "   --%s \"%s\"\n", opt.long, desc)
			}
		}
	}
}
