// Package convert implements the type-converter registry: the mapping from
// constraint names written in route patterns (int, datetime, uuid, ...) to
// string-to-typed-value conversions. The registry is configured once at
// startup and treated as frozen afterwards; conversions themselves are pure
// and perform no I/O.
package convert

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/cliway/cliway/types"
	"github.com/cliway/cliway/types/orderedmap"
)

var (
	ErrUnknownConstraint = errors.New("no converter registered for constraint")
	ErrConverterExists   = errors.New("converter already registered")
	ErrEmptyName         = errors.New("converter name cannot be empty")
)

// Built-in name conversion strategies
var (
	// ToKebabCase converts a name to kebab case "my-type-name"
	ToKebabCase = func(s string) string {
		return strcase.ToKebab(s)
	}

	// ToSnakeCase converts a name to snake case "my_type_name"
	ToSnakeCase = func(s string) string {
		return strcase.ToSnake(s)
	}

	// ToLowerCamel converts a name to lower camel case "myTypeName"
	ToLowerCamel = func(s string) string {
		return strcase.ToLowerCamel(s)
	}

	// ToLowerCase converts a name to lower case "mytypename"
	ToLowerCase = func(s string) string {
		return strings.ToLower(s)
	}

	// DefaultNameNormalizer makes constraint lookup case-insensitive, so
	// {when:DateTime} and {when:datetime} resolve to the same converter
	DefaultNameNormalizer types.NameConversionFunc = ToLowerCase
)

// ConvertFunc turns the raw argv token into a typed value
type ConvertFunc func(raw string) (any, error)

// Converter binds a constraint name to a conversion and the metadata the
// completion engine and the external binding layer need: the declared
// target type (the matching core itself never introspects it), the
// completion category, and enum candidate values when applicable.
type Converter struct {
	Name       string
	TargetType reflect.Type
	Kind       types.CandidateKind
	Values     []string // enum candidates, exposed to completion
	Convert    ConvertFunc
}

// Registry maps normalized constraint names to converters in registration order
type Registry struct {
	converters *orderedmap.OrderedMap[string, *Converter]
	normalize  types.NameConversionFunc
}

// NewRegistry creates a registry pre-populated with the built-in converters
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	registerBuiltins(r)

	return r
}

// NewEmptyRegistry creates a registry without built-ins
func NewEmptyRegistry() *Registry {
	return &Registry{
		converters: orderedmap.NewOrderedMap[string, *Converter](),
		normalize:  DefaultNameNormalizer,
	}
}

// SetNameNormalizer replaces the constraint-name normalization strategy.
// Must be called before any Register.
func (r *Registry) SetNameNormalizer(fn types.NameConversionFunc) {
	if fn != nil {
		r.normalize = fn
	}
}

// Register adds a converter under name. Registering a name twice is an
// error; configuration is a build-time contract and silent replacement
// would change route semantics underfoot.
func (r *Registry) Register(name string, conv *Converter) error {
	if name == "" {
		return ErrEmptyName
	}

	key := r.normalize(name)
	if _, exists := r.converters.Get(key); exists {
		return fmt.Errorf("%w: %q", ErrConverterExists, name)
	}

	if conv.Name == "" {
		conv.Name = key
	}
	r.converters.Set(key, conv)

	return nil
}

// Lookup resolves a constraint name to its converter
func (r *Registry) Lookup(name string) (*Converter, bool) {
	return r.converters.Get(r.normalize(name))
}

// TryConvert converts raw using the converter registered under name
func (r *Registry) TryConvert(name, raw string) (any, error) {
	conv, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConstraint, name)
	}

	return conv.Convert(raw)
}

// ConvertAll applies the scalar converter to each element with fail-fast
// semantics - the first bad element invalidates the whole slice. Used for
// catch-all parameters, keeping route matching deterministic.
func (r *Registry) ConvertAll(name string, raws []string) ([]any, error) {
	conv, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConstraint, name)
	}

	values := make([]any, len(raws))
	for i, raw := range raws {
		val, err := conv.Convert(raw)
		if err != nil {
			return nil, err
		}
		values[i] = val
	}

	return values, nil
}

// Names returns the registered constraint names in registration order
func (r *Registry) Names() []string {
	return r.converters.Keys()
}

// Count returns the number of registered converters
func (r *Registry) Count() int {
	return r.converters.Count()
}

// Nullable wraps a scalar converter: absent or empty input converts to the
// untyped nil value, anything else goes through the underlying conversion.
// The declared target type becomes a pointer to the scalar's type so the
// binding layer can represent absence.
func Nullable(conv *Converter) *Converter {
	target := conv.TargetType
	if target != nil && target.Kind() != reflect.Ptr {
		target = reflect.PtrTo(target)
	}

	return &Converter{
		Name:       conv.Name,
		TargetType: target,
		Kind:       conv.Kind,
		Values:     conv.Values,
		Convert: func(raw string) (any, error) {
			if raw == "" {
				return nil, nil
			}
			return conv.Convert(raw)
		},
	}
}
