package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/zaius-go/internal/constants"
	"github.com/fivetwenty-io/zaius-go/pkg/zaius"
)

// Descriptor is a fully resolved request. It is built once per call and
// not modified afterwards.
type Descriptor struct {
	Method string
	URL    string
	Header http.Header
	Query  url.Values
	Body   []byte
}

// FullURL returns URL with the encoded query string appended.
func (d *Descriptor) FullURL() string {
	if len(d.Query) == 0 {
		return d.URL
	}

	return d.URL + "?" + d.Query.Encode()
}

// DefaultUserAgent is sent when the configuration does not override it.
func DefaultUserAgent() string {
	return fmt.Sprintf("%s %s/%s", constants.UserAgentPrefix, constants.UserAgentBinding, zaius.Version)
}

// carriesQuery reports whether method sends its parameters in the query
// string. Any other supported method sends a JSON body.
func carriesQuery(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return true
	default:
		return false
	}
}

func supportedMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete,
		http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}

// Encode turns a logical operation into a Descriptor. It performs no I/O
// and returns identical output for identical input.
func Encode(method, rawURL string, params interface{}, apiKey, userAgent string, extra map[string]string) (*Descriptor, error) {
	method = strings.ToUpper(method)
	if !supportedMethod(method) {
		return nil, fmt.Errorf("%w: %q", zaius.ErrUnsupportedMethod, method)
	}

	if userAgent == "" {
		userAgent = DefaultUserAgent()
	}

	baseURL, existing, err := splitQuery(rawURL)
	if err != nil {
		return nil, err
	}

	desc := &Descriptor{
		Method: method,
		URL:    baseURL,
		Header: make(http.Header),
	}

	desc.Header.Set("User-Agent", userAgent)
	desc.Header.Set(constants.APIKeyHeader, apiKey)
	desc.Header.Set("Content-Type", constants.ContentTypeJSON)

	for k, v := range extra {
		desc.Header.Set(k, v)
	}

	if carriesQuery(method) {
		query, err := EncodeQuery(params)
		if err != nil {
			return nil, err
		}

		for k, v := range query {
			existing[k] = append(existing[k], v...)
		}

		desc.Query = existing

		return desc, nil
	}

	body, err := encodeBody(params)
	if err != nil {
		return nil, err
	}

	desc.Body = body

	if len(existing) > 0 {
		desc.Query = existing
	}

	return desc, nil
}

// splitQuery separates any query string already present on rawURL so
// it can be merged with the encoded parameters.
func splitQuery(rawURL string) (string, url.Values, error) {
	idx := strings.IndexByte(rawURL, '?')
	if idx < 0 {
		return rawURL, url.Values{}, nil
	}

	existing, err := url.ParseQuery(rawURL[idx+1:])
	if err != nil {
		return "", nil, fmt.Errorf("%w: parsing query of %q: %w", zaius.ErrInvalidParams, rawURL, err)
	}

	return rawURL[:idx], existing, nil
}

func encodeBody(params interface{}) ([]byte, error) {
	switch p := params.(type) {
	case nil:
		return []byte("{}"), nil
	case json.RawMessage:
		return p, nil
	case []byte:
		return p, nil
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding body: %w", zaius.ErrInvalidParams, err)
	}

	if string(body) == "null" {
		return []byte("{}"), nil
	}

	return body, nil
}

// EncodeQuery flattens params into query values. Nested objects become
// key[sub], arrays become repeated key[] entries and arrays of objects
// key[][sub]. url.Values.Encode sorts the keys.
func EncodeQuery(params interface{}) (url.Values, error) {
	values := url.Values{}

	switch p := params.(type) {
	case nil:
		return values, nil
	case url.Values:
		for k, v := range p {
			values[k] = slices.Clone(v)
		}

		return values, nil
	case zaius.Params:
		flattenMap(values, "", p)

		return values, nil
	case map[string]interface{}:
		flattenMap(values, "", p)

		return values, nil
	case map[string]string:
		for k, v := range p {
			values.Add(k, v)
		}

		return values, nil
	case *zaius.Object:
		flattenObject(values, "", p)

		return values, nil
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding query: %w", zaius.ErrInvalidParams, err)
	}

	decoded, err := zaius.DecodeValue(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding query: %w", zaius.ErrInvalidParams, err)
	}

	obj, ok := decoded.(*zaius.Object)
	if !ok {
		return nil, fmt.Errorf("%w: query parameters must be an object, got %T", zaius.ErrInvalidParams, params)
	}

	flattenObject(values, "", obj)

	return values, nil
}

func nestedKey(prefix, key string) string {
	if prefix == "" {
		return key
	}

	return prefix + "[" + key + "]"
}

func flattenMap(values url.Values, prefix string, m map[string]interface{}) {
	for k, v := range m {
		flattenValue(values, nestedKey(prefix, k), v)
	}
}

func flattenObject(values url.Values, prefix string, obj *zaius.Object) {
	for _, k := range obj.Keys() {
		flattenValue(values, nestedKey(prefix, k), obj.Get(k))
	}
}

func flattenValue(values url.Values, key string, v interface{}) {
	switch t := v.(type) {
	case *zaius.Object:
		flattenObject(values, key, t)
	case zaius.Params:
		flattenMap(values, key, t)
	case map[string]interface{}:
		flattenMap(values, key, t)
	case []interface{}:
		for _, e := range t {
			flattenValue(values, key+"[]", e)
		}
	case []string:
		for _, e := range t {
			values.Add(key+"[]", e)
		}
	default:
		if nested, ok := normalizeComposite(v); ok {
			flattenValue(values, key, nested)

			return
		}

		values.Add(key, scalarString(v))
	}
}

// normalizeComposite converts typed slices, arrays and maps into the
// generic decoded model so they flatten like their JSON counterparts.
// []byte stays a scalar.
func normalizeComposite(v interface{}) (interface{}, bool) {
	if v == nil {
		return nil, false
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
	case reflect.Map:
	default:
		return nil, false
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}

	decoded, err := zaius.DecodeValue(raw)
	if err != nil || decoded == nil {
		return nil, false
	}

	return decoded, true
}

func scalarString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}
