package zaius

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func decodeObject(t *testing.T, payload string) *Object {
	t.Helper()

	v, err := DecodeValue([]byte(payload))
	require.NoError(t, err)

	obj, err := ObjectFrom(v, &RequestOptions{APIKey: "key"})
	require.NoError(t, err)

	return obj
}

func TestObject_FromPayload(t *testing.T) {
	t.Parallel()

	obj := decodeObject(t, `{"id":"123","email":"a@example.com","custom_field":{"nested":[1,2.5,"x"]}}`)

	assert.Equal(t, "a@example.com", obj.Get("email"))
	assert.Equal(t, "123", obj.ID())
	assert.Equal(t, []string{"id", "email", "custom_field"}, obj.Keys())
	assert.Equal(t, "key", obj.Options().APIKey)

	nested := obj.Object("custom_field").Get("nested").([]interface{})
	assert.Equal(t, json.Number("1"), nested[0])
	assert.Equal(t, json.Number("2.5"), nested[1])
	assert.Equal(t, "x", nested[2])
}

func TestObject_Accessors(t *testing.T) {
	t.Parallel()

	obj := decodeObject(t, `{"id":42,"count":7,"active":true,"name":"list"}`)

	assert.Equal(t, "42", obj.ID())

	count, ok := obj.Int("count")
	assert.True(t, ok)
	assert.Equal(t, int64(7), count)

	active, ok := obj.Bool("active")
	assert.True(t, ok)
	assert.True(t, active)

	_, ok = obj.Int("name")
	assert.False(t, ok)
	assert.Empty(t, obj.String("missing"))
	assert.False(t, obj.Has("missing"))

	obj.Set("name", "renamed")
	obj.Set("extra", 1)
	obj.Delete("count")
	assert.Equal(t, []string{"id", "active", "name", "extra"}, obj.Keys())
	assert.Equal(t, 4, obj.Len())
}

func TestObject_MarshalJSONKeepsOrderAndUnknownFields(t *testing.T) {
	t.Parallel()

	payload := `{"zeta":1,"alpha":{"b":2,"a":[true,null]},"unknown":"kept"}`
	obj := decodeObject(t, payload)

	out, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, payload, string(out))
}

func TestObject_UnmarshalJSONKeepsOptions(t *testing.T) {
	t.Parallel()

	obj := decodeObject(t, `{"a":1}`)
	require.NoError(t, json.Unmarshal([]byte(`{"b":2}`), obj))

	assert.Equal(t, []string{"b"}, obj.Keys())
	assert.Equal(t, "key", obj.Options().APIKey)
}

func TestObject_MarshalYAML(t *testing.T) {
	t.Parallel()

	obj := decodeObject(t, `{"name":"Ada","age":36,"score":1.5,"tags":["a"]}`)

	out, err := yaml.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, "name: Ada\nage: 36\nscore: 1.5\ntags:\n    - a\n", string(out))
}

func TestObject_Map(t *testing.T) {
	t.Parallel()

	obj := decodeObject(t, `{"a":{"b":"c"},"list":[{"d":"e"}]}`)

	assert.Equal(t, map[string]interface{}{
		"a":    map[string]interface{}{"b": "c"},
		"list": []interface{}{map[string]interface{}{"d": "e"}},
	}, obj.Map())
}

func TestObjectFrom_NotAnObject(t *testing.T) {
	t.Parallel()

	_, err := ObjectFrom([]interface{}{}, nil)
	require.ErrorIs(t, err, ErrNotAnObject)
}

func TestDecodeValue_Errors(t *testing.T) {
	t.Parallel()

	_, err := DecodeValue([]byte(`{"a":1} trailing`))
	require.Error(t, err)

	_, err = DecodeValue([]byte(`{"a":`))
	require.Error(t, err)
}

func TestObject_NilSafe(t *testing.T) {
	t.Parallel()

	var obj *Object

	assert.Nil(t, obj.Get("a"))
	assert.Equal(t, 0, obj.Len())
	assert.Nil(t, obj.Keys())
	assert.NotNil(t, obj.Options())

	out, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
