package zaius

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

// ErrNotAnObject is returned when a payload expected to be a JSON object is not one.
var ErrNotAnObject = errors.New("payload is not a JSON object")

// Object is a server-backed entity: an ordered mapping from field name to
// value. Fields unknown to the library are kept as-is. Nested JSON objects
// are *Object, arrays are []interface{} and numbers are json.Number.
//
// An Object is owned by the caller and is not safe for concurrent mutation.
type Object struct {
	keys   []string
	values map[string]interface{}
	opts   *RequestOptions
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{values: make(map[string]interface{})}
}

// ObjectFrom builds an object from a decoded payload and binds the call
// options that produced it. It fails when payload is not an object.
func ObjectFrom(payload interface{}, opts *RequestOptions) (*Object, error) {
	obj, ok := payload.(*Object)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotAnObject, payload)
	}

	out := obj.shallowCopy()
	out.opts = opts.Clone()

	return out, nil
}

func (o *Object) shallowCopy() *Object {
	return &Object{
		keys:   slices.Clone(o.keys),
		values: cloneValues(o.values),
		opts:   o.opts,
	}
}

func cloneValues(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}

	return out
}

func (o *Object) init() {
	if o.values == nil {
		o.values = make(map[string]interface{})
	}
}

// Get returns the value of key, or nil.
func (o *Object) Get(key string) interface{} {
	if o == nil {
		return nil
	}

	return o.values[key]
}

// Lookup returns the value of key and whether it is present.
func (o *Object) Lookup(key string) (interface{}, bool) {
	if o == nil {
		return nil, false
	}

	v, ok := o.values[key]

	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Lookup(key)

	return ok
}

// Set stores value under key. New keys are appended to the key order.
func (o *Object) Set(key string, value interface{}) {
	o.init()

	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}

	o.values[key] = value
}

// Delete removes key.
func (o *Object) Delete(key string) {
	if o == nil {
		return
	}

	if _, ok := o.values[key]; !ok {
		return
	}

	delete(o.values, key)
	o.keys = slices.DeleteFunc(o.keys, func(k string) bool { return k == key })
}

// Keys returns the field names in payload order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}

	return slices.Clone(o.keys)
}

// Len returns the number of fields.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}

	return len(o.keys)
}

// String returns the value of key when it is a string, or "".
func (o *Object) String(key string) string {
	s, _ := o.Get(key).(string)

	return s
}

// Int returns the value of key as an int64 when it is an integral number.
func (o *Object) Int(key string) (int64, bool) {
	switch v := o.Get(key).(type) {
	case json.Number:
		i, err := v.Int64()

		return i, err == nil
	case int:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
}

// Bool returns the value of key when it is a boolean.
func (o *Object) Bool(key string) (bool, bool) {
	b, ok := o.Get(key).(bool)

	return b, ok
}

// Object returns the value of key when it is a nested object.
func (o *Object) Object(key string) *Object {
	obj, _ := o.Get(key).(*Object)

	return obj
}

// ID returns the "id" field rendered as a string.
func (o *Object) ID() string {
	switch v := o.Get("id").(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Options returns a copy of the call options the object was produced with.
// Follow-up calls made through the object reuse them.
func (o *Object) Options() *RequestOptions {
	if o == nil {
		return &RequestOptions{}
	}

	return o.opts.Clone()
}

// Map converts the object into plain Go maps and slices, recursively.
func (o *Object) Map() map[string]interface{} {
	if o == nil {
		return nil
	}

	out := make(map[string]interface{}, len(o.keys))
	for _, k := range o.keys {
		out[k] = plainValue(o.values[k])
	}

	return out
}

func plainValue(v interface{}) interface{} {
	switch t := v.(type) {
	case *Object:
		return t.Map()
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = plainValue(e)
		}

		return out
	default:
		return v
	}
}

// MarshalJSON writes the fields in payload order.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("encoding key %q: %w", k, err)
		}

		val, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, fmt.Errorf("encoding field %q: %w", k, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the fields of o with those of data. Bound call
// options are kept.
func (o *Object) UnmarshalJSON(data []byte) error {
	v, err := DecodeValue(data)
	if err != nil {
		return err
	}

	obj, ok := v.(*Object)
	if !ok {
		return fmt.Errorf("%w: got %T", ErrNotAnObject, v)
	}

	o.keys = obj.keys
	o.values = obj.values

	return nil
}

// MarshalYAML renders the object as an ordered YAML mapping.
func (o *Object) MarshalYAML() (interface{}, error) {
	return o.yamlNode()
}

func (o *Object) yamlNode() (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, k := range o.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}

		valNode, err := yamlValue(o.values[k])
		if err != nil {
			return nil, fmt.Errorf("encoding field %q: %w", k, err)
		}

		node.Content = append(node.Content, keyNode, valNode)
	}

	return node, nil
}

func yamlValue(v interface{}) (*yaml.Node, error) {
	switch t := v.(type) {
	case *Object:
		return t.yamlNode()
	case []interface{}:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}

		for _, e := range t {
			n, err := yamlValue(e)
			if err != nil {
				return nil, err
			}

			seq.Content = append(seq.Content, n)
		}

		return seq, nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return yamlValue(i)
		}

		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("decoding number %q: %w", t, err)
		}

		return yamlValue(f)
	default:
		n := &yaml.Node{}

		err := n.Encode(v)
		if err != nil {
			return nil, fmt.Errorf("encoding yaml value: %w", err)
		}

		return n, nil
	}
}

// DecodeValue decodes a JSON document into the generic value model: objects
// become *Object (key order preserved), arrays []interface{}, numbers
// json.Number. Trailing data after the document is an error.
func DecodeValue(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("decoding JSON payload: %w", err)
	}

	_, err = dec.Token()
	if !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding JSON payload: %w", errTrailingData)
	}

	return v, nil
}

var errTrailingData = errors.New("unexpected data after top-level value")

func decodeValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := NewObject()

		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}

			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyTok)
			}

			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}

			obj.Set(key, val)
		}

		_, err = dec.Token()
		if err != nil {
			return nil, err
		}

		return obj, nil
	case '[':
		arr := make([]interface{}, 0)

		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}

			arr = append(arr, val)
		}

		_, err = dec.Token()
		if err != nil {
			return nil, err
		}

		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}
