package convert

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"

	"github.com/cliway/cliway/types"
	"github.com/cliway/cliway/util"
)

var (
	ErrParseInt      = errors.New("value is not an integer")
	ErrParseUint     = errors.New("value is not an unsigned integer")
	ErrParseFloat    = errors.New("value is not a number")
	ErrParseBool     = errors.New("value is not a boolean")
	ErrParseTime     = errors.New("value is not a date/time")
	ErrParseDuration = errors.New("value is not a duration")
	ErrParseUUID     = errors.New("value is not a uuid")
	ErrParseURL      = errors.New("value is not a url")
	ErrEmptyPath     = errors.New("path cannot be empty")
	ErrEnumValue     = errors.New("value is not one of the accepted names")
)

var timeOfDayLayouts = []string{"15:04:05", "15:04", time.Kitchen}

func registerBuiltins(r *Registry) {
	builtins := []*Converter{
		{
			Name:       "string",
			TargetType: reflect.TypeOf(""),
			Kind:       types.KindParameter,
			Convert: func(raw string) (any, error) {
				return raw, nil
			},
		},
		{
			Name:       "int",
			TargetType: reflect.TypeOf(0),
			Kind:       types.KindParameter,
			Convert: func(raw string) (any, error) {
				num, ok := util.ParseNumeric(raw)
				if !ok || !num.IsInt {
					return nil, fmt.Errorf("%w: %q", ErrParseInt, raw)
				}
				return int(num.Int), nil
			},
		},
		{
			Name:       "long",
			TargetType: reflect.TypeOf(int64(0)),
			Kind:       types.KindParameter,
			Convert: func(raw string) (any, error) {
				val, err := strconv.ParseInt(raw, 0, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: %q", ErrParseInt, raw)
				}
				return val, nil
			},
		},
		{
			Name:       "uint",
			TargetType: reflect.TypeOf(uint64(0)),
			Kind:       types.KindParameter,
			Convert: func(raw string) (any, error) {
				val, err := strconv.ParseUint(raw, 0, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: %q", ErrParseUint, raw)
				}
				return val, nil
			},
		},
		{
			Name:       "float",
			TargetType: reflect.TypeOf(float64(0)),
			Kind:       types.KindParameter,
			Convert: func(raw string) (any, error) {
				val, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: %q", ErrParseFloat, raw)
				}
				return val, nil
			},
		},
		{
			Name:       "bool",
			TargetType: reflect.TypeOf(false),
			Kind:       types.KindParameter,
			Values:     []string{"true", "false"},
			Convert: func(raw string) (any, error) {
				val, err := strconv.ParseBool(raw)
				if err != nil {
					return nil, fmt.Errorf("%w: %q", ErrParseBool, raw)
				}
				return val, nil
			},
		},
		{
			Name:       "datetime",
			TargetType: reflect.TypeOf(time.Time{}),
			Kind:       types.KindParameter,
			Convert: func(raw string) (any, error) {
				val, err := dateparse.ParseLocal(raw)
				if err != nil {
					return nil, fmt.Errorf("%w: %q", ErrParseTime, raw)
				}
				return val, nil
			},
		},
		{
			Name:       "date",
			TargetType: reflect.TypeOf(time.Time{}),
			Kind:       types.KindParameter,
			Convert: func(raw string) (any, error) {
				val, err := dateparse.ParseLocal(raw)
				if err != nil {
					return nil, fmt.Errorf("%w: %q", ErrParseTime, raw)
				}
				y, m, d := val.Date()
				return time.Date(y, m, d, 0, 0, 0, 0, val.Location()), nil
			},
		},
		{
			Name:       "time",
			TargetType: reflect.TypeOf(time.Time{}),
			Kind:       types.KindParameter,
			Convert: func(raw string) (any, error) {
				for _, layout := range timeOfDayLayouts {
					if val, err := time.Parse(layout, raw); err == nil {
						return val, nil
					}
				}
				return nil, fmt.Errorf("%w: %q", ErrParseTime, raw)
			},
		},
		{
			Name:       "duration",
			TargetType: reflect.TypeOf(time.Duration(0)),
			Kind:       types.KindParameter,
			Convert: func(raw string) (any, error) {
				val, err := time.ParseDuration(raw)
				if err != nil {
					return nil, fmt.Errorf("%w: %q", ErrParseDuration, raw)
				}
				return val, nil
			},
		},
		{
			Name:       "uuid",
			TargetType: reflect.TypeOf(uuid.UUID{}),
			Kind:       types.KindParameter,
			Convert: func(raw string) (any, error) {
				val, err := uuid.Parse(raw)
				if err != nil {
					return nil, fmt.Errorf("%w: %q", ErrParseUUID, raw)
				}
				return val, nil
			},
		},
		{
			Name:       "url",
			TargetType: reflect.TypeOf(&url.URL{}),
			Kind:       types.KindParameter,
			Convert: func(raw string) (any, error) {
				val, err := url.Parse(raw)
				if err != nil || val.Scheme == "" {
					return nil, fmt.Errorf("%w: %q", ErrParseURL, raw)
				}
				return val, nil
			},
		},
		{
			Name:       "file",
			TargetType: reflect.TypeOf(""),
			Kind:       types.KindFile,
			Convert:    cleanPath,
		},
		{
			Name:       "dir",
			TargetType: reflect.TypeOf(""),
			Kind:       types.KindDirectory,
			Convert:    cleanPath,
		},
		{
			Name:       "path",
			TargetType: reflect.TypeOf(""),
			Kind:       types.KindFile,
			Convert:    cleanPath,
		},
	}

	for _, conv := range builtins {
		// built-in names are already normalized
		r.converters.Set(conv.Name, conv)
	}
}

// cleanPath normalizes a filesystem path without touching the filesystem -
// existence checks are the caller's business, conversion stays I/O free
func cleanPath(raw string) (any, error) {
	if raw == "" {
		return nil, ErrEmptyPath
	}

	return filepath.Clean(raw), nil
}

// NewEnumConverter builds a converter accepting exactly the given names,
// matched case-insensitively. The converted value is the canonical name as
// declared, and the declared names double as completion candidates.
func NewEnumConverter(name string, values ...string) *Converter {
	return &Converter{
		Name:       name,
		TargetType: reflect.TypeOf(""),
		Kind:       types.KindEnum,
		Values:     values,
		Convert: func(raw string) (any, error) {
			for _, v := range values {
				if strings.EqualFold(v, raw) {
					return v, nil
				}
			}
			return nil, fmt.Errorf("%w: %q (accepted: %s)", ErrEnumValue, raw, strings.Join(values, ", "))
		},
	}
}
