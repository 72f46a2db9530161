package cliway

import (
	"bytes"
	"testing"

	"github.com/cliway/cliway/convert"
	"github.com/cliway/cliway/parse"
	"github.com/stretchr/testify/assert"
)

func TestRouter_Route(t *testing.T) {
	router := NewRouter(WithEnum("environment", "dev", "prod"))

	endpoint, err := router.Route("deploy {env:environment}", func() {})
	assert.NoError(t, err)
	if assert.NotNil(t, endpoint) {
		assert.Equal(t, "deploy {env:environment}", endpoint.Pattern)
		assert.Positive(t, endpoint.Specificity())
	}
	assert.Empty(t, router.Errs())
}

func TestRouter_RouteNilHandler(t *testing.T) {
	router := NewRouter()

	_, err := router.Route("status", nil)
	assert.ErrorIs(t, err, ErrNilHandler)
	assert.Len(t, router.Errs(), 1)
}

func TestRouter_RouteEmptyPattern(t *testing.T) {
	router := NewRouter()

	_, err := router.Route("   ", func() {})
	assert.ErrorIs(t, err, ErrEmptyRoute)
}

func TestRouter_RouteAccumulatesAllErrors(t *testing.T) {
	router := NewRouter()

	_, err := router.Route("run {env} {env} --force --force", func() {})

	var routeErr *RouteError
	if assert.ErrorAs(t, err, &routeErr) {
		assert.Equal(t, "run {env} {env} --force --force", routeErr.Pattern)
		assert.GreaterOrEqual(t, len(routeErr.Errs), 2,
			"every diagnostic for the pattern is reported in one cycle")
	}
	assert.ErrorIs(t, err, parse.ErrDuplicateParameter, "wrapped sentinels stay matchable")
	assert.ErrorIs(t, err, parse.ErrOptionFormConflict)
}

func TestRouter_BuildFailsOnAnyRegistrationError(t *testing.T) {
	router := NewRouter()
	mustRoute(t, router, "status")
	_, _ = router.Route("broken {", func() {})

	collection, err := router.Build()
	assert.Nil(t, collection)
	assert.ErrorIs(t, err, ErrRegistration)
}

func TestRouter_BuildSortsBySpecificity(t *testing.T) {
	router := NewRouter()
	mustRoute(t, router, "deploy {env}")
	mustRoute(t, router, "deploy status")
	mustRoute(t, router, "{*rest}")

	collection, err := router.Build()
	if !assert.NoError(t, err) {
		return
	}

	endpoints := collection.Endpoints()
	assert.Equal(t, "deploy status", endpoints[0].Pattern)
	assert.Equal(t, "deploy {env}", endpoints[1].Pattern)
	assert.Equal(t, "{*rest}", endpoints[2].Pattern)
	assert.Equal(t, 3, collection.Len())
}

func TestRouter_BuildIsStableForEqualSpecificity(t *testing.T) {
	router := NewRouter()
	mustRoute(t, router, "alpha {x}")
	mustRoute(t, router, "other {y}")

	collection, err := router.Build()
	if !assert.NoError(t, err) {
		return
	}

	endpoints := collection.Endpoints()
	assert.Equal(t, "alpha {x}", endpoints[0].Pattern,
		"registration order breaks specificity ties")
}

func TestWithConverter(t *testing.T) {
	router := NewRouter(
		WithConverter("severity", convert.NewEnumConverter("severity", "low", "high")),
	)
	mustRoute(t, router, "alert {level:severity}")

	collection, err := router.Build()
	if !assert.NoError(t, err) {
		return
	}

	result := collection.Resolve([]string{"alert", "HIGH"})
	assert.True(t, result.Matched)
	level, _ := result.Args.Get("level")
	assert.Equal(t, "high", level)
}

func TestWithConverter_DuplicateBuiltin(t *testing.T) {
	router := NewRouter(
		WithConverter("int", convert.NewEnumConverter("int", "one")),
	)

	assert.Len(t, router.Errs(), 1, "shadowing a built-in converter is rejected")
	_, err := router.Build()
	assert.ErrorIs(t, err, ErrRegistration)
}

func TestWithRegistry(t *testing.T) {
	registry := convert.NewEmptyRegistry()
	assert.NoError(t, registry.Register("color", convert.NewEnumConverter("color", "red", "blue")))

	router := NewRouter(WithRegistry(registry))
	mustRoute(t, router, "paint {c:color}")

	_, err := router.Route("wait {d:duration}", func() {})
	assert.ErrorIs(t, err, ErrUnknownElement,
		"an empty registry carries no built-ins")
}

func TestWithRegistry_Nil(t *testing.T) {
	router := NewRouter(WithRegistry(nil))

	assert.Len(t, router.Errs(), 1)
}

func TestDescribeUsage(t *testing.T) {
	router := NewRouter(WithEnum("environment", "dev", "prod"))
	_, err := router.Route("deploy {env:environment} --force,-f|skip-confirmation", func() {},
		WithDescription("deploy a release"))
	assert.NoError(t, err)
	mustRoute(t, router, "status")

	collection, err := router.Build()
	if !assert.NoError(t, err) {
		return
	}

	var buf bytes.Buffer
	collection.DescribeUsage(&buf)

	out := buf.String()
	assert.Contains(t, out, "deploy {env:environment}")
	assert.Contains(t, out, "deploy a release")
	assert.Contains(t, out, "--force or -f")
	assert.Contains(t, out, "skip-confirmation")
	assert.Contains(t, out, "status")
}

func TestRouteError_Message(t *testing.T) {
	_, errs := parse.ParsePattern("{env} {env}")
	err := &RouteError{Pattern: "{env} {env}", Errs: errs}

	assert.Contains(t, err.Error(), "{env} {env}")
	assert.Contains(t, err.Error(), "duplicate parameter")
}
