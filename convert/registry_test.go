package convert

import (
	"reflect"
	"testing"

	"github.com/cliway/cliway/types"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	registry := NewEmptyRegistry()

	err := registry.Register("Severity", NewEnumConverter("severity", "low", "high"))
	assert.NoError(t, err)

	conv, ok := registry.Lookup("severity")
	assert.True(t, ok, "lookup should normalize the same way registration did")
	assert.Equal(t, types.KindEnum, conv.Kind)

	_, ok = registry.Lookup("SEVERITY")
	assert.True(t, ok, "default normalization is case-insensitive")
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	registry := NewEmptyRegistry()

	assert.NoError(t, registry.Register("level", NewEnumConverter("level", "a")))
	err := registry.Register("LEVEL", NewEnumConverter("level", "b"))
	assert.ErrorIs(t, err, ErrConverterExists, "names colliding after normalization must be rejected")
}

func TestRegistry_RegisterEmptyName(t *testing.T) {
	registry := NewEmptyRegistry()

	assert.ErrorIs(t, registry.Register("", NewEnumConverter("x", "a")), ErrEmptyName)
}

func TestRegistry_NamesPreserveRegistrationOrder(t *testing.T) {
	registry := NewEmptyRegistry()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		assert.NoError(t, registry.Register(name, NewEnumConverter(name, "v")))
	}

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, registry.Names())
	assert.Equal(t, 3, registry.Count())
}

func TestRegistry_SetNameNormalizer(t *testing.T) {
	registry := NewEmptyRegistry()
	registry.SetNameNormalizer(ToKebabCase)

	assert.NoError(t, registry.Register("LogLevel", NewEnumConverter("log-level", "debug")))

	_, ok := registry.Lookup("log-level")
	assert.True(t, ok, "kebab normalization maps LogLevel to log-level")
}

func TestRegistry_TryConvert(t *testing.T) {
	registry := NewRegistry()

	val, err := registry.TryConvert("int", "42")
	assert.NoError(t, err)
	assert.Equal(t, 42, val)

	_, err = registry.TryConvert("nope", "42")
	assert.ErrorIs(t, err, ErrUnknownConstraint)
}

func TestRegistry_ConvertAll(t *testing.T) {
	registry := NewRegistry()

	values, err := registry.ConvertAll("int", []string{"1", "2", "3"})
	assert.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, values)

	_, err = registry.ConvertAll("int", []string{"1", "x", "3"})
	assert.ErrorIs(t, err, ErrParseInt, "one bad element invalidates the whole slice")
}

func TestNullable(t *testing.T) {
	base, ok := NewRegistry().Lookup("int")
	if !assert.True(t, ok) {
		return
	}

	nullable := Nullable(base)

	val, err := nullable.Convert("")
	assert.NoError(t, err)
	assert.Nil(t, val, "empty input converts to absence")

	val, err = nullable.Convert("7")
	assert.NoError(t, err)
	assert.Equal(t, 7, val)

	assert.Equal(t, reflect.Ptr, nullable.TargetType.Kind(), "declared type becomes a pointer")
	assert.Equal(t, base.TargetType, nullable.TargetType.Elem())
}

func TestNameConversionStrategies(t *testing.T) {
	assert.Equal(t, "log-level", ToKebabCase("LogLevel"))
	assert.Equal(t, "log_level", ToSnakeCase("LogLevel"))
	assert.Equal(t, "logLevel", ToLowerCamel("LogLevel"))
	assert.Equal(t, "loglevel", ToLowerCase("LogLevel"))
}
