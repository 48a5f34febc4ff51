package core

import (
	"github.com/mitchellh/mapstructure"
)

// FromMapDefault decodes a normalized map into a typed value with weak type
// coercion, so loosely typed document fields land in string fields without
// ceremony (a YAML `year: 2016` decodes into a string).
func FromMapDefault[T any](data any) (T, error) {
	var out T

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return out, err
	}

	return out, decoder.Decode(data)
}
