package loader

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/qri-io/jsondiff"
)

// decodeJSON walks the token stream instead of unmarshaling into an
// interface{} so that object keys keep the order they were written in
func decodeJSON(r io.Reader) (jsondiff.Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, errors.Errorf("unexpected %v after top-level value", tok)
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (jsondiff.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var pairs []jsondiff.Pair
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, errors.Errorf("expected object key, got %v", kt)
				}
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, errors.Wrapf(err, "key %q", key)
				}
				pairs = append(pairs, jsondiff.Pair{Key: key, Value: v})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return jsondiff.NewMapping(pairs...), nil
		case '[':
			var items []jsondiff.Value
			for dec.More() {
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, errors.Wrapf(err, "index %d", len(items))
				}
				items = append(items, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return jsondiff.NewSequence(items...), nil
		}
		return nil, errors.Errorf("unexpected delimiter %q", rune(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, errors.Wrapf(err, "number %s", t.String())
		}
		return jsondiff.Number(f), nil
	}
	return jsondiff.FromInterface(tok)
}
