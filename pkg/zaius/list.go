package zaius

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// ListObject is one page of a list call: the response object plus its
// ordered "data" sequence, the resource URL it came from and the filters
// used to produce it.
//
// Iterating a ListObject never performs requests. Fetching another page is
// an explicit NextPage call that replays the stored filters.
type ListObject struct {
	*Object

	data      []*Object
	url       string
	filters   Params
	requester Requester
}

// NewListObject builds a list from a decoded payload. A JSON array payload
// is treated as the data sequence; an object payload contributes its "data"
// field. requester may be nil, in which case follow-up calls fail.
func NewListObject(payload interface{}, resourceURL string, filters Params, opts *RequestOptions, requester Requester) (*ListObject, error) {
	list := &ListObject{
		url:       resourceURL,
		filters:   filters.Clone(),
		requester: requester,
	}

	var raw interface{}

	switch p := payload.(type) {
	case *Object:
		obj, err := ObjectFrom(p, opts)
		if err != nil {
			return nil, err
		}

		list.Object = obj
		raw = p.Get("data")
	case []interface{}:
		list.Object = &Object{values: map[string]interface{}{}, opts: opts.Clone()}
		list.Object.Set("data", p)
		raw = p
	case nil:
		list.Object = &Object{values: map[string]interface{}{}, opts: opts.Clone()}
		list.Object.Set("data", []interface{}{})
	default:
		return nil, fmt.Errorf("%w: got %T", ErrNotAnObject, payload)
	}

	items, ok := raw.([]interface{})
	if !ok && raw != nil {
		return nil, fmt.Errorf("%w: data is %T, not an array", ErrInvalidListData, raw)
	}

	list.data = make([]*Object, 0, len(items))

	for i, item := range items {
		obj, ok := item.(*Object)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %T", ErrInvalidListData, i, item)
		}

		list.data = append(list.data, obj)
	}

	if list.Object.Has("url") && list.url == "" {
		list.url = list.Object.String("url")
	}

	return list, nil
}

// EmptyList returns a list with no data, bound to opts.
func EmptyList(opts *RequestOptions) *ListObject {
	list, _ := NewListObject(nil, "", nil, opts, nil)

	return list
}

// Data returns the items of this page in server order.
func (l *ListObject) Data() []*Object {
	return slices.Clone(l.data)
}

// Len returns the number of items in this page.
func (l *ListObject) Len() int {
	return len(l.data)
}

// All iterates over the items of this page. No requests are made.
func (l *ListObject) All() iter.Seq2[int, *Object] {
	return func(yield func(int, *Object) bool) {
		for i, obj := range l.data {
			if !yield(i, obj) {
				return
			}
		}
	}
}

// URL returns the resource URL the list was fetched from.
func (l *ListObject) URL() string {
	return l.url
}

// Filters returns a copy of the filters used to produce the list.
func (l *ListObject) Filters() Params {
	return l.filters.Clone()
}

// Retrieve fetches one item of the listed resource by id, reusing the
// list's credentials and base URL. opts override them.
func (l *ListObject) Retrieve(ctx context.Context, id string, opts *RequestOptions) (*Object, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrIDRequired
	}

	if l.url == "" {
		return nil, ErrNoResourceURL
	}

	if l.requester == nil {
		return nil, ErrNoRequester
	}

	callOpts := l.Options().Merge(opts)

	resp, apiKey, err := l.requester.Execute(ctx, http.MethodGet, l.url+"/"+url.PathEscape(id), nil, callOpts)
	if err != nil {
		return nil, fmt.Errorf("retrieving %s: %w", id, err)
	}

	obj, err := ObjectFrom(resp.Data, callOpts.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", id, err)
	}

	return obj, nil
}

// NextPage requests the resource URL again with the stored filters
// overlaid by params (typically a cursor or page number). The returned list
// remembers the combined filters.
func (l *ListObject) NextPage(ctx context.Context, params Params, opts *RequestOptions) (*ListObject, error) {
	if l.url == "" {
		return nil, ErrNoResourceURL
	}

	if l.requester == nil {
		return nil, ErrNoRequester
	}

	filters := l.filters.Merge(params)
	callOpts := l.Options().Merge(opts)

	resp, apiKey, err := l.requester.Execute(ctx, http.MethodGet, l.url, filters, callOpts)
	if err != nil {
		return nil, fmt.Errorf("fetching next page: %w", err)
	}

	next, err := NewListObject(resp.Data, l.url, filters, callOpts.WithAPIKey(apiKey), l.requester)
	if err != nil {
		return nil, fmt.Errorf("parsing next page: %w", err)
	}

	return next, nil
}
