package http_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	zaiushttp "github.com/fivetwenty-io/zaius-go/internal/http"
	"github.com/fivetwenty-io/zaius-go/pkg/zaius"
)

const testURL = "https://api.zaius.com/v3/profiles"

func TestEncode_QueryMethods(t *testing.T) {
	t.Parallel()

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			t.Parallel()

			desc, err := zaiushttp.Encode(method, testURL, zaius.Params{"email": "a@example.com"}, "key", "", nil)
			require.NoError(t, err)

			assert.Equal(t, method, desc.Method)
			assert.Nil(t, desc.Body)
			assert.Equal(t, "a@example.com", desc.Query.Get("email"))
			assert.Equal(t, testURL+"?email=a%40example.com", desc.FullURL())
		})
	}
}

func TestEncode_BodyMethods(t *testing.T) {
	t.Parallel()

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			t.Parallel()

			desc, err := zaiushttp.Encode(method, testURL, zaius.Params{"email": "a@example.com"}, "key", "", nil)
			require.NoError(t, err)

			assert.JSONEq(t, `{"email":"a@example.com"}`, string(desc.Body))
			assert.Empty(t, desc.Query)
			assert.Equal(t, testURL, desc.FullURL())
		})
	}
}

func TestEncode_NilBody(t *testing.T) {
	t.Parallel()

	desc, err := zaiushttp.Encode(http.MethodPost, testURL, nil, "key", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(desc.Body))
}

func TestEncode_RawBody(t *testing.T) {
	t.Parallel()

	desc, err := zaiushttp.Encode(http.MethodPost, testURL, []byte(`[{"type":"pageview"}]`), "key", "", nil)
	require.NoError(t, err)
	assert.Equal(t, `[{"type":"pageview"}]`, string(desc.Body))
}

func TestEncode_Headers(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		desc, err := zaiushttp.Encode(http.MethodGet, testURL, nil, "secret-key", "", nil)
		require.NoError(t, err)

		assert.Equal(t, "secret-key", desc.Header.Get("x-api-key"))
		assert.Equal(t, "application/json", desc.Header.Get("Content-Type"))
		assert.Equal(t, "Zaius/v1 GoBindings/"+zaius.Version, desc.Header.Get("User-Agent"))
	})

	t.Run("custom user agent", func(t *testing.T) {
		t.Parallel()

		desc, err := zaiushttp.Encode(http.MethodGet, testURL, nil, "key", "my-app/1.0", nil)
		require.NoError(t, err)
		assert.Equal(t, "my-app/1.0", desc.Header.Get("User-Agent"))
	})

	t.Run("extra headers override defaults", func(t *testing.T) {
		t.Parallel()

		extra := map[string]string{
			"Content-Type": "application/vnd.zaius+json",
			"X-Trace":      "abc",
		}

		desc, err := zaiushttp.Encode(http.MethodPost, testURL, nil, "key", "", extra)
		require.NoError(t, err)

		assert.Equal(t, "application/vnd.zaius+json", desc.Header.Get("Content-Type"))
		assert.Equal(t, "abc", desc.Header.Get("X-Trace"))
		assert.Equal(t, "key", desc.Header.Get("x-api-key"))
	})
}

func TestEncode_UnsupportedMethod(t *testing.T) {
	t.Parallel()

	_, err := zaiushttp.Encode("TRACE", testURL, nil, "key", "", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, zaius.ErrUnsupportedMethod)
}

func TestEncode_LowercaseMethod(t *testing.T) {
	t.Parallel()

	desc, err := zaiushttp.Encode("get", testURL, nil, "key", "", nil)
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, desc.Method)
}

func TestEncode_Idempotent(t *testing.T) {
	t.Parallel()

	params := zaius.Params{
		"email":   "a@example.com",
		"filters": zaius.Params{"status": "active", "limit": 10},
		"tags":    []interface{}{"b", "a"},
	}

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		first, err := zaiushttp.Encode(method, testURL, params, "key", "", map[string]string{"X-A": "1"})
		require.NoError(t, err)

		second, err := zaiushttp.Encode(method, testURL, params, "key", "", map[string]string{"X-A": "1"})
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, first.FullURL(), second.FullURL())
	}
}

func TestEncodeQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		params   interface{}
		expected url.Values
	}{
		{
			name:     "nil",
			params:   nil,
			expected: url.Values{},
		},
		{
			name:     "url values",
			params:   url.Values{"page": {"2"}},
			expected: url.Values{"page": {"2"}},
		},
		{
			name:     "string map",
			params:   map[string]string{"email": "a@example.com"},
			expected: url.Values{"email": {"a@example.com"}},
		},
		{
			name:   "nested map",
			params: zaius.Params{"identifiers": map[string]interface{}{"email": "a@example.com"}},
			expected: url.Values{
				"identifiers[email]": {"a@example.com"},
			},
		},
		{
			name:     "array",
			params:   zaius.Params{"ids": []interface{}{"2", "1"}},
			expected: url.Values{"ids[]": {"2", "1"}},
		},
		{
			name: "array of objects",
			params: zaius.Params{"lists": []interface{}{
				map[string]interface{}{"id": "a"},
				map[string]interface{}{"id": "b"},
			}},
			expected: url.Values{"lists[][id]": {"a", "b"}},
		},
		{
			name:     "scalars",
			params:   map[string]interface{}{"limit": 10, "ratio": 1.5, "active": true, "none": nil},
			expected: url.Values{"limit": {"10"}, "ratio": {"1.5"}, "active": {"true"}, "none": {""}},
		},
		{
			name: "struct",
			params: struct {
				Email string `json:"email"`
				Limit int    `json:"limit"`
			}{Email: "a@example.com", Limit: 5},
			expected: url.Values{"email": {"a@example.com"}, "limit": {"5"}},
		},
		{
			name:     "typed slice",
			params:   zaius.Params{"ids": []int{1, 2}},
			expected: url.Values{"ids[]": {"1", "2"}},
		},
		{
			name:     "slice of typed maps",
			params:   zaius.Params{"filters": []map[string]interface{}{{"a": "b"}}},
			expected: url.Values{"filters[][a]": {"b"}},
		},
		{
			name:     "slice of params",
			params:   zaius.Params{"lists": []zaius.Params{{"id": "a"}, {"id": "b"}}},
			expected: url.Values{"lists[][id]": {"a", "b"}},
		},
		{
			name:     "nested string map",
			params:   zaius.Params{"tags": map[string]string{"x": "y"}},
			expected: url.Values{"tags[x]": {"y"}},
		},
		{
			name:     "byte slice",
			params:   zaius.Params{"raw": []byte("abc")},
			expected: url.Values{"raw": {"abc"}},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			values, err := zaiushttp.EncodeQuery(testCase.params)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, values)
		})
	}
}

func TestEncodeQuery_Object(t *testing.T) {
	t.Parallel()

	obj := zaius.NewObject()
	obj.Set("email", "a@example.com")

	values, err := zaiushttp.EncodeQuery(obj)
	require.NoError(t, err)
	assert.Equal(t, "email=a%40example.com", values.Encode())
}

func TestEncodeQuery_NotAnObject(t *testing.T) {
	t.Parallel()

	_, err := zaiushttp.EncodeQuery([]string{"a", "b"})
	require.Error(t, err)
	assert.ErrorIs(t, err, zaius.ErrInvalidParams)
}

func TestEncodeQuery_TypedCompositesFlatten(t *testing.T) {
	t.Parallel()

	values, err := zaiushttp.EncodeQuery(zaius.Params{
		"ids":     []int{1, 2},
		"filters": []map[string]interface{}{{"a": "b"}},
		"tags":    map[string]string{"x": "y"},
	})
	require.NoError(t, err)
	assert.Equal(t, "filters%5B%5D%5Ba%5D=b&ids%5B%5D=1&ids%5B%5D=2&tags%5Bx%5D=y", values.Encode())
}

func TestEncode_MergesExistingQuery(t *testing.T) {
	t.Parallel()

	desc, err := zaiushttp.Encode(http.MethodGet, testURL+"?cursor=abc", zaius.Params{"limit": 10}, "key", "", nil)
	require.NoError(t, err)

	assert.Equal(t, testURL, desc.URL)
	assert.Equal(t, "abc", desc.Query.Get("cursor"))
	assert.Equal(t, "10", desc.Query.Get("limit"))
	assert.Equal(t, testURL+"?cursor=abc&limit=10", desc.FullURL())
}

func TestEncode_ExistingQueryOnBodyMethod(t *testing.T) {
	t.Parallel()

	desc, err := zaiushttp.Encode(http.MethodPost, testURL+"?dry_run=true", zaius.Params{"email": "a@example.com"}, "key", "", nil)
	require.NoError(t, err)

	assert.JSONEq(t, `{"email":"a@example.com"}`, string(desc.Body))
	assert.Equal(t, testURL+"?dry_run=true", desc.FullURL())
}

func TestEncode_MalformedExistingQuery(t *testing.T) {
	t.Parallel()

	_, err := zaiushttp.Encode(http.MethodGet, testURL+"?a=%zz", nil, "key", "", nil)
	require.ErrorIs(t, err, zaius.ErrInvalidParams)
}
