package metadata

import (
	"fmt"

	"github.com/pkg/errors"
)

// Spec carries constructor arguments of an entity keyed by their serialized
// names, e.g. Spec{"full_name": "Tom Elliott"} for a Name.
type Spec map[string]interface{}

// Input is either an entity already constructed or the Spec to construct one.
// Containers accept Inputs wherever they hold entities.
type Input[T any] struct {
	instance *T
	spec     Spec
}

// Instance wraps an entity already constructed.
func Instance[T any](v *T) Input[T] {
	return Input[T]{instance: v}
}

// FromSpec wraps the arguments of an entity yet to be constructed.
func FromSpec[T any](s Spec) Input[T] {
	return Input[T]{spec: s}
}

// Instances wraps a list of entities already constructed.
func Instances[T any](vs ...*T) []Input[T] {
	ret := make([]Input[T], len(vs))
	for i, v := range vs {
		ret[i] = Instance(v)
	}
	return ret
}

// resolve turns inputs into entities, in order. The first failure aborts the
// whole list.
func resolve[T any](entity string, inputs []Input[T], build func(Spec) (*T, error)) ([]*T, error) {
	ret := make([]*T, 0, len(inputs))
	for i, in := range inputs {
		switch {
		case in.instance != nil:
			ret = append(ret, in.instance)
		case in.spec != nil:
			v, err := build(in.spec)
			if err != nil {
				return nil, errors.Wrapf(err, "%s %d", entity, i)
			}
			ret = append(ret, v)
		default:
			return nil, validationErrorf(entity, "", "element %d carries neither an instance nor a spec", i)
		}
	}
	return ret, nil
}

// inputsOf converts the raw value of a list field found in a Spec.
func inputsOf[T any](entity string, v interface{}) ([]Input[T], error) {
	switch vv := v.(type) {
	case nil:
		return nil, nil
	case []Input[T]:
		return vv, nil
	case []*T:
		return Instances(vv...), nil
	case []Spec:
		ret := make([]Input[T], len(vv))
		for i, s := range vv {
			ret[i] = FromSpec[T](s)
		}
		return ret, nil
	case []map[string]interface{}:
		ret := make([]Input[T], len(vv))
		for i, s := range vv {
			ret[i] = FromSpec[T](Spec(s))
		}
		return ret, nil
	case []interface{}:
		ret := make([]Input[T], len(vv))
		for i, item := range vv {
			in, err := inputOf[T](entity, item)
			if err != nil {
				return nil, err
			}
			ret[i] = in
		}
		return ret, nil
	}
	return nil, validationErrorf(entity, "", "expected a list, got %T", v)
}

func inputOf[T any](entity string, v interface{}) (Input[T], error) {
	switch vv := v.(type) {
	case Input[T]:
		return vv, nil
	case *T:
		if vv != nil {
			return Instance(vv), nil
		}
	case T:
		return Instance(&vv), nil
	case Spec:
		return FromSpec[T](vv), nil
	case map[string]interface{}:
		return FromSpec[T](Spec(vv)), nil
	}
	return Input[T]{}, ValidationError{
		Field:   entity,
		Message: fmt.Sprintf("%s information of type %T is not supported", entity, v),
	}
}
