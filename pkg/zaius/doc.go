// Package zaius provides types, interfaces, and helpers for working with the
// Zaius v3 REST API.
//
// # Overview
//
// The zaius package defines the configuration (Config), per-call options
// (RequestOptions), the generic server-backed entity (Object), list pages
// (ListObject), the error taxonomy and the interfaces for resource-oriented
// clients (CustomersClient, EventsClient, SubscriptionsClient, ListsClient).
// A concrete implementation is provided by the zaiusclient package. Most
// consumers import zaiusclient to construct a client and then interact with
// the resource client interfaces exposed here.
//
// Getting a client
//
//	cli, err := zaiusclient.New(&zaius.Config{APIKey: "pk_..."})
//	if err != nil { log.Fatal(err) }
//
//	profile, err := cli.Customers().Get(ctx, zaius.Params{"email": "a@example.com"}, nil)
//	if err != nil { log.Fatal(err) }
//	fmt.Println(profile.Get("attributes"))
//
// # Objects and lists
//
// Payloads are decoded into Object values that keep the server's field order
// and every field, known or not. Nested objects are *Object, arrays are
// []interface{} and numbers are json.Number. A ListObject exposes the "data"
// items of one page; iterating it never performs requests. Retrieve and
// NextPage are explicit follow-up calls that reuse the options the page was
// fetched with.
//
// # Errors
//
// Every failure of the request pipeline has an ErrorKind reported by KindOf:
//
//   - AuthenticationError: no API key or a key containing whitespace.
//     Returned before any network I/O.
//   - APIError: the server answered with an error payload carrying a title.
//   - IndeterminateError: an error payload in an unexpected shape, or a
//     success body that is not JSON. The raw body is kept.
//   - NetworkError: no response was received. Retried up to Config.RetryMax
//     additional times; by default a call makes a single attempt.
//
// Anything else, such as a cancelled context, is returned unclassified and
// wrapped with %w. Helpers such as IsNotFound, IsUnauthorized and
// IsRateLimited branch on common statuses.
//
// # Logging
//
// Config.Logger receives every pipeline event ("Request to Zaius",
// "Response from Zaius", "Request error", ...). Without one, Config.LogLevel
// enables a console sink on stderr.
package zaius
