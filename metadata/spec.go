package metadata

import (
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// specReader consumes the keys of a Spec. The first error is kept and
// returned by finish, which also rejects the keys nobody asked for.
type specReader struct {
	entity string
	spec   Spec
	used   map[string]bool
	err    error
}

func newSpecReader(entity string, s Spec) *specReader {
	return &specReader{entity: entity, spec: s, used: map[string]bool{}}
}

func (r *specReader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// raw returns the value of the first alias present. Giving more than one
// alias is an error, nil values count as absent.
func (r *specReader) raw(keys ...string) (interface{}, bool) {
	var (
		found string
		value interface{}
	)
	for _, key := range keys {
		v, ok := r.spec[key]
		if !ok {
			continue
		}
		r.used[key] = true
		if found != "" {
			r.fail(validationErrorf(r.entity, "", "%s and %s are mutually exclusive", found, key))
			return nil, false
		}
		found, value = key, v
	}
	if found == "" || value == nil {
		return nil, false
	}
	return value, true
}

func (r *specReader) str(keys ...string) (string, bool) {
	v, ok := r.raw(keys...)
	if !ok {
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		r.fail(validationErrorf(keys[0], "", "%v", err))
		return "", false
	}
	return s, true
}

func (r *specReader) required(key string) string {
	s, ok := r.str(key)
	if !ok {
		r.fail(validationErrorf(r.entity, "", "%s is required", key))
	}
	return s
}

func (r *specReader) strs(key string) ([]string, bool) {
	v, ok := r.raw(key)
	if !ok {
		return nil, false
	}
	ss, err := cast.ToStringSliceE(v)
	if err != nil {
		r.fail(validationErrorf(key, "", "%v", err))
		return nil, false
	}
	return ss, true
}

// common reads the keys shared by language and sort aware entities.
func (r *specReader) common() []Option {
	var opts []Option
	if lang, ok := r.str("lang"); ok {
		opts = append(opts, WithLang(lang))
	}
	// Presence of the key forces the value even when it is empty.
	if key, ok := r.str("sort_key", "sort_val"); ok {
		opts = append(opts, WithSortKey(key))
	} else if _, present := r.spec["sort_key"]; present {
		opts = append(opts, WithSortKey(""))
	} else if _, present := r.spec["sort_val"]; present {
		opts = append(opts, WithSortKey(""))
	}
	return opts
}

func (r *specReader) finish() error {
	if r.err != nil {
		return r.err
	}
	var unknown []string
	for key := range r.spec {
		if !r.used[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return validationErrorf(r.entity, "", "unexpected arguments: %s", strings.Join(unknown, ", "))
	}
	return nil
}

func nameTypeOf(r *specReader) (NameTypeEnum, bool) {
	v, ok := r.raw("name_type")
	if !ok {
		return 0, false
	}
	if e, ok := v.(NameTypeEnum); ok {
		return e, true
	}
	e, err := ParseNameTypeEnum(cast.ToString(v))
	if err != nil {
		r.fail(err)
		return 0, false
	}
	return e, true
}

func titleTypeOf(r *specReader) (TitleTypeEnum, bool) {
	v, ok := r.raw("title_type")
	if !ok {
		return 0, false
	}
	if e, ok := v.(TitleTypeEnum); ok {
		return e, true
	}
	e, err := ParseTitleTypeEnum(cast.ToString(v))
	if err != nil {
		r.fail(err)
		return 0, false
	}
	return e, true
}

func roleOf(r *specReader) (RoleTermEnum, bool) {
	v, ok := r.raw("role")
	if !ok {
		return 0, false
	}
	if e, ok := v.(RoleTermEnum); ok {
		return e, true
	}
	e, err := ParseRoleTermEnum(cast.ToString(v))
	if err != nil {
		r.fail(err)
		return 0, false
	}
	return e, true
}
