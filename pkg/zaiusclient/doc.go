// Package zaiusclient provides the primary entry point for constructing a
// Zaius API client that implements the zaius.Client interface.
//
// It layers configuration, the pooled HTTP connection, logging and the
// request pipeline on top of the resource interfaces and types defined in the
// zaius package.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/zaius-go/pkg/zaius"
//	  "github.com/fivetwenty-io/zaius-go/pkg/zaiusclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := zaiusclient.New(&zaius.Config{
//	    APIKey:   "pk_...",
//	    LogLevel: zaius.LogLevelInfo,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  customer, err := cli.Customers().Get(ctx, zaius.Params{"email": "a@example.com"}, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = customer
//
//	  // Per-call options override the configured key and base URL.
//	  _, err = cli.Subscriptions().OptOut(ctx, zaius.Params{"email": "a@example.com"},
//	    &zaius.RequestOptions{APIKey: "pk_other"})
//	}
//
// # Helpers
//
// NewWithAPIKey and NewWithEndpoint wrap New for the common cases.
package zaiusclient
