// Copyright 2026 The rnix-lsp Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package envflag fills a struct of settings from a comma-separated
// environment variable such as NIXNAV_DEBUG=parsetrace,log=debug.
package envflag

import (
	"encoding"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// Init uses Parse with the contents of the given environment variable as input.
func Init[T any](flags *T, envVar string) error {
	if err := Parse(flags, os.Getenv(envVar)); err != nil {
		return fmt.Errorf("cannot parse %s: %w", envVar, err)
	}
	return nil
}

// Parse initializes the fields in flags from their struct field tags and
// then from the contents of env.
//
// A field is named by its lower-cased Go name unless the tag renames it,
// as in `envflag:"name:trace"`. The tag may also give a default other than
// the zero value, as in `envflag:"default:true"`. Tag entries are
// separated by commas.
//
// The string env is a comma-separated list of name=value pairs. For a
// boolean field the value may be omitted, in which case it is true. Names
// are matched case insensitively. Booleans are parsed via
// [strconv.ParseBool], integers via [strconv.Atoi], strings are taken
// as-is, and any field whose pointer implements
// [encoding.TextUnmarshaler] is set through UnmarshalText.
//
// All problems in env are reported together; a field whose value is
// invalid keeps its default.
func Parse[T any](flags *T, env string) error {
	fv := reflect.ValueOf(flags).Elem()
	byName, err := fields(fv)
	if err != nil {
		return err
	}

	var errs []error
	for _, elem := range strings.Split(env, ",") {
		if elem == "" {
			// Allow empty elements so that values can be joined
			// with a comma even when one of them is empty.
			continue
		}
		name, value, hasValue := strings.Cut(elem, "=")
		name = strings.ToLower(name)
		index, ok := byName[name]
		if !ok {
			errs = append(errs, fmt.Errorf("unknown flag %q", elem))
			continue
		}
		field := fv.Field(index)
		if !hasValue {
			if field.Kind() != reflect.Bool {
				errs = append(errs, fmt.Errorf("value needed for flag %q", name))
				continue
			}
			value = "true"
		}
		if err := set(field, name, value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// fields applies the defaults of the struct fields and returns the field
// index for each flag name.
func fields(fv reflect.Value) (map[string]int, error) {
	byName := make(map[string]int)
	ft := fv.Type()
	for i := range ft.NumField() {
		sf := ft.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := strings.ToLower(sf.Name)
		def, hasDefault := "", false
		if tag, ok := sf.Tag.Lookup("envflag"); ok {
			for _, entry := range strings.Split(tag, ",") {
				key, rest, _ := strings.Cut(entry, ":")
				switch key {
				case "name":
					name = strings.ToLower(rest)
				case "default":
					def, hasDefault = rest, true
				default:
					return nil, fmt.Errorf("unknown envflag tag %q", entry)
				}
			}
		}
		if _, dup := byName[name]; dup {
			return nil, fmt.Errorf("duplicate flag name %q", name)
		}
		if hasDefault {
			if err := set(fv.Field(i), name, def); err != nil {
				return nil, err
			}
		}
		byName[name] = i
	}
	return byName, nil
}

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

func set(field reflect.Value, name, str string) error {
	if field.Addr().Type().Implements(textUnmarshalerType) {
		u := field.Addr().Interface().(encoding.TextUnmarshaler)
		if err := u.UnmarshalText([]byte(str)); err != nil {
			return errInvalid{fmt.Errorf("invalid value for %s: %v", name, err)}
		}
		return nil
	}

	var err error
	switch field.Kind() {
	case reflect.Bool:
		var b bool
		if b, err = strconv.ParseBool(str); err == nil {
			field.SetBool(b)
		}
	case reflect.Int:
		var n int
		if n, err = strconv.Atoi(str); err == nil {
			field.SetInt(int64(n))
		}
	case reflect.String:
		field.SetString(str)
	default:
		return errInvalid{fmt.Errorf("unsupported kind %s for %s", field.Kind(), name)}
	}
	if err != nil {
		return errInvalid{fmt.Errorf("invalid %s value for %s: %v", field.Kind(), name, err)}
	}
	return nil
}

// ErrInvalid indicates a malformed value.
var ErrInvalid = errors.New("invalid value")

type errInvalid struct{ error }

func (errInvalid) Is(err error) bool {
	return err == ErrInvalid
}
