package jsondiff

import (
	"encoding/json"
	"sort"
)

// FromInterface builds a Value from the go types created by unmarshaling
// JSON into an interface{}: map[string]interface{}, []interface{}, string,
// float64, bool & nil. Integer types & json.Number are accepted as numbers.
// Any other type returns an *IncomparableInputError
//
// mapping keys from go maps have no order, FromInterface sorts them
func FromInterface(v interface{}) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		if isNil(x) {
			return Null(), nil
		}
		return x, nil
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case float64:
		return Number(x), nil
	case float32:
		return Number(float64(x)), nil
	case int:
		return Number(float64(x)), nil
	case int8:
		return Number(float64(x)), nil
	case int16:
		return Number(float64(x)), nil
	case int32:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case uint:
		return Number(float64(x)), nil
	case uint8:
		return Number(float64(x)), nil
	case uint16:
		return Number(float64(x)), nil
	case uint32:
		return Number(float64(x)), nil
	case uint64:
		return Number(float64(x)), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil, &IncomparableInputError{Value: v}
		}
		return Number(f), nil
	case []interface{}:
		items := make([]Value, len(x))
		for i, el := range x {
			item, err := FromInterface(el)
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return NewSequence(items...), nil
	case map[string]interface{}:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pairs := make([]Pair, len(keys))
		for i, k := range keys {
			el, err := FromInterface(x[k])
			if err != nil {
				return nil, err
			}
			pairs[i] = Pair{Key: k, Value: el}
		}
		return NewMapping(pairs...), nil
	}

	return nil, &IncomparableInputError{Value: v}
}

// MustFromInterface is FromInterface that panics on error. intended for tests
// & package-level literals
func MustFromInterface(v interface{}) Value {
	val, err := FromInterface(v)
	if err != nil {
		panic(err)
	}
	return val
}

// FromJSON decodes a JSON document into a Value
func FromJSON(data []byte) (Value, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return FromInterface(v)
}
