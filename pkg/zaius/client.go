package zaius

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CustomersClient manages customer profiles.
type CustomersClient interface {
	Get(ctx context.Context, params Params, opts *RequestOptions) (*Object, error)
	Create(ctx context.Context, params Params, opts *RequestOptions) (*Object, error)
	Update(ctx context.Context, params Params, opts *RequestOptions) (*Object, error)
	Retrieve(ctx context.Context, id string, opts *RequestOptions) (*Object, error)
}

// EventsClient sends events.
type EventsClient interface {
	Create(ctx context.Context, events interface{}, opts *RequestOptions) (*Object, error)
	Subscribe(ctx context.Context, request *SubscribeRequest, opts *RequestOptions) (*Object, error)
}

// SubscriptionsClient manages list subscriptions and opt-in state.
type SubscriptionsClient interface {
	List(ctx context.Context, params Params, opts *RequestOptions) (*Object, error)
	UpdateOptIn(ctx context.Context, params Params, opts *RequestOptions) (*Object, error)
	Update(ctx context.Context, request *SubscriptionUpdate, opts *RequestOptions) (*Object, error)
	UpdateList(ctx context.Context, request *UpdateListRequest, opts *RequestOptions) (*Object, error)
	OptIn(ctx context.Context, params Params, opts *RequestOptions) (*Object, error)
	OptOut(ctx context.Context, params Params, opts *RequestOptions) (*Object, error)
}

// ListsClient manages marketing lists.
type ListsClient interface {
	List(ctx context.Context, filters Params, opts *RequestOptions) (*ListObject, error)
	Create(ctx context.Context, params Params, opts *RequestOptions) (*Object, error)
	Retrieve(ctx context.Context, id string, opts *RequestOptions) (*Object, error)
}

// ResourceClients provides access to all resource-specific clients.
type ResourceClients interface {
	Customers() CustomersClient
	Events() EventsClient
	Subscriptions() SubscriptionsClient
	Lists() ListsClient
}

// Client is the Zaius API client.
type Client interface {
	ResourceClients
	Requester

	// Request performs a call against a path without a dedicated resource
	// client and converts an object payload into an Object.
	Request(ctx context.Context, method, path string, params interface{}, opts *RequestOptions) (*Object, error)
}

// SubscribeRequest subscribes an email address to a list through the
// events endpoint.
type SubscribeRequest struct {
	ListID string `json:"list_id" yaml:"list_id" validate:"required"`
	Email  string `json:"email"   yaml:"email"   validate:"required,email"`
	// Fields are merged into the event data next to list_id.
	Fields Params `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// SubscriptionUpdate sets the subscription state of an email on a list.
type SubscriptionUpdate struct {
	Email      string `json:"email"      yaml:"email"`
	ListID     string `json:"list_id"    yaml:"list_id"`
	Subscribed bool   `json:"subscribed" yaml:"subscribed"`
}

// ListSubscription is one entry of an UpdateListRequest.
type ListSubscription struct {
	ID         string `json:"id"         yaml:"id"`
	Subscribed bool   `json:"subscribed" yaml:"subscribed"`
}

// UpdateListRequest updates the opt-in state of an email and its
// subscriptions to several lists in one call.
type UpdateListRequest struct {
	OptedIn bool               `json:"opted_in" yaml:"opted_in"`
	Email   string             `json:"email"    yaml:"email"`
	Lists   []ListSubscription `json:"lists"    yaml:"lists"`
}

// Validate checks that the list id and email are present.
func (r *SubscribeRequest) Validate() error {
	if r == nil {
		return ErrListIDRequired
	}

	err := getValidator().Struct(r)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}

	for _, fe := range validationErrors {
		switch fe.Field() {
		case "list_id":
			return ErrListIDRequired
		case "email":
			if fe.Tag() == "required" {
				return ErrEmailRequired
			}

			return fmt.Errorf("%w: %q is not a valid email address", ErrInvalidParams, r.Email)
		}
	}

	return fmt.Errorf("%w: %w", ErrInvalidParams, err)
}
