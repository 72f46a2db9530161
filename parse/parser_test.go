package parse

import (
	"errors"
	"testing"

	"github.com/cliway/cliway/types"
	"github.com/stretchr/testify/assert"
)

func TestParsePattern(t *testing.T) {
	pattern, errs := ParsePattern("deploy {env:environment} --version {ver?} --force,-f|skip-confirmation")

	assert.Empty(t, errs, "pattern should parse without errors")
	if !assert.NotNil(t, pattern) {
		return
	}

	if assert.Len(t, pattern.Segments, 2) {
		assert.Equal(t, types.SegmentLiteral, pattern.Segments[0].Kind)
		assert.Equal(t, "deploy", pattern.Segments[0].Literal)

		assert.Equal(t, types.SegmentParameter, pattern.Segments[1].Kind)
		param := pattern.Segments[1].Parameter
		assert.Equal(t, "env", param.Name)
		assert.Equal(t, "environment", param.Constraint)
		assert.False(t, param.IsOptional)
	}

	if assert.Len(t, pattern.Options, 2) {
		version := pattern.Options[0]
		assert.Equal(t, "version", version.Long)
		assert.True(t, version.ExpectsValue())
		assert.Equal(t, "ver", version.Value.Name)
		assert.True(t, version.Value.IsOptional)
		assert.True(t, version.IsNullable, "an optional value makes the option nullable")

		force := pattern.Options[1]
		assert.Equal(t, "force", force.Long)
		assert.Equal(t, "f", force.Short)
		assert.False(t, force.ExpectsValue())
		assert.Equal(t, "skip-confirmation", force.Description)
	}
}

func TestParsePattern_CatchAll(t *testing.T) {
	pattern, errs := ParsePattern("config set {key} {*values}")

	assert.Empty(t, errs)
	if !assert.NotNil(t, pattern) {
		return
	}

	catchAll := pattern.CatchAll()
	if assert.NotNil(t, catchAll, "final segment should be the catch-all") {
		assert.Equal(t, "values", catchAll.Name)
		assert.True(t, catchAll.IsCatchAll)
	}
}

func TestParsePattern_Descriptions(t *testing.T) {
	pattern, errs := ParsePattern("{env:environment|target environment} --force|skip-confirmation")

	assert.Empty(t, errs)
	if !assert.NotNil(t, pattern) {
		return
	}
	assert.Equal(t, "target environment", pattern.Segments[0].Parameter.Description)
	assert.Equal(t, "skip-confirmation", pattern.Options[0].Description)
}

func TestParsePattern_Errors(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		expected error
	}{
		{"empty pattern", "", ErrEmptyPattern},
		{"whitespace only", "   ", ErrEmptyPattern},
		{"malformed word", "foo--bar", ErrMalformedToken},
		{"short without long", "deploy -f", ErrShortWithoutLong},
		{"unbalanced open", "deploy {env", ErrUnbalancedBrace},
		{"unbalanced close", "deploy env}", ErrUnbalancedBrace},
		{"missing parameter name", "deploy {}", ErrInvalidName},
		{"numeric parameter name", "deploy {2fast}", ErrInvalidName},
		{"missing constraint", "deploy {env:}", ErrInvalidConstraint},
		{"star not first", "deploy {env*}", ErrStarPosition},
		{"catch-all option value", "--files {*rest}", ErrStarPosition},
		{"catch-all not last", "run {*rest} {env}", ErrCatchAllNotLast},
		{"duplicate parameter", "run {env} {env}", ErrDuplicateParameter},
		{"duplicate across option value", "run {ver} --version {ver}", ErrDuplicateParameter},
		{"two optional positionals", "run {a?} {b?}", ErrAmbiguousOptionals},
		{"catch-all with optional", "run {a?} {*rest}", ErrCatchAllWithOptional},
		{"duplicate long form", "--force --force", ErrOptionFormConflict},
		{"duplicate short form", "--force,-f --fast,-f", ErrOptionFormConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern, errs := ParsePattern(tt.pattern)

			assert.Nil(t, pattern, "pattern must be nil when any error is reported")
			found := false
			for _, err := range errs {
				if errors.Is(err, tt.expected) {
					found = true
				}
			}
			assert.True(t, found, "expected %v in %v", tt.expected, errs)
		})
	}
}

func TestParsePattern_AccumulatesErrors(t *testing.T) {
	_, errs := ParsePattern("run {env} {env} {a?} {b?} --force --force")

	assert.GreaterOrEqual(t, len(errs), 3,
		"duplicate parameter, ambiguous optionals and option conflict should all be reported in one pass")
}

func TestParsePattern_NullableMarkerWithRequiredValue(t *testing.T) {
	pattern, errs := ParsePattern("--confirm? {reason}")

	assert.Empty(t, errs)
	if !assert.NotNil(t, pattern) {
		return
	}

	opt := pattern.Options[0]
	assert.True(t, opt.IsNullable)
	assert.False(t, opt.Value.IsOptional)
	assert.Equal(t, "--confirm? {reason}", pattern.String(),
		"the explicit marker must survive serialization when the value alone does not imply it")
}

func TestRoutePattern_StringRoundTrip(t *testing.T) {
	patterns := []string{
		"deploy {env:environment} --version {ver?} --force,-f",
		"config set {key} {*values}",
		"logs {service} --since {cutoff:datetime?} --follow,-F?",
		"tag {name} --message? {text}",
		"status",
		"{env:environment|target environment}",
	}

	for _, text := range patterns {
		t.Run(text, func(t *testing.T) {
			first, errs := ParsePattern(text)
			if !assert.Empty(t, errs) {
				return
			}

			second, errs := ParsePattern(first.String())
			if assert.Empty(t, errs, "serialized form %q should parse cleanly", first.String()) {
				assert.Equal(t, first, second, "parse(String()) should be structurally equal")
			}
		})
	}
}
