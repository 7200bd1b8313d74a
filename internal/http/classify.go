package http

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/fivetwenty-io/zaius-go/pkg/zaius"
)

// errorPayload is the shape of an error body returned by the API.
type errorPayload struct {
	Title  json.RawMessage `json:"title"`
	Detail json.RawMessage `json:"detail"`
}

// Classify converts a received response into a success envelope or a typed
// error. It is only called when the server answered; failures without a
// response are handled by the executor.
func Classify(status int, header http.Header, body []byte) (*zaius.Response, error) {
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return classifySuccess(status, header, body)
	}

	return nil, classifyFailure(status, header, body)
}

func classifySuccess(status int, header http.Header, body []byte) (*zaius.Response, error) {
	resp := &zaius.Response{
		StatusCode: status,
		Headers:    header,
		Body:       body,
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return resp, nil
	}

	data, err := zaius.DecodeValue(body)
	if err != nil {
		return nil, &zaius.IndeterminateError{
			HTTPStatus:  status,
			HTTPBody:    string(body),
			HTTPHeaders: header,
			Err:         err,
		}
	}

	resp.Data = data

	return resp, nil
}

func classifyFailure(status int, header http.Header, body []byte) error {
	indeterminate := &zaius.IndeterminateError{
		HTTPStatus:  status,
		HTTPBody:    string(body),
		HTTPHeaders: header,
	}

	var payload errorPayload

	err := json.Unmarshal(body, &payload)
	if err != nil {
		indeterminate.Err = err

		return indeterminate
	}

	title, ok := errorTitle(payload.Title)
	if !ok {
		return indeterminate
	}

	resp := &zaius.Response{
		StatusCode: status,
		Headers:    header,
		Body:       body,
	}

	data, err := zaius.DecodeValue(body)
	if err == nil {
		resp.Data = data
	}

	return &zaius.APIError{
		Title:       title,
		HTTPStatus:  status,
		Detail:      payload.Detail,
		HTTPBody:    string(body),
		HTTPHeaders: header,
		Response:    resp,
	}
}

// errorTitle renders a present, non-null title. Strings are used as-is and
// any other JSON value keeps its compact JSON text.
func errorTitle(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", false
	}

	var title string

	err := json.Unmarshal(trimmed, &title)
	if err == nil {
		return title, true
	}

	var compact bytes.Buffer

	err = json.Compact(&compact, trimmed)
	if err != nil {
		return string(trimmed), true
	}

	return compact.String(), true
}
