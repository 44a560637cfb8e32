// Package sophos provides types, interfaces, and helpers for working with the
// Sophos Central partner APIs.
//
// # Overview
//
// The sophos package defines the domain types (Tenant, Endpoint, HealthCheck)
// and the interfaces for resource-oriented clients (TenantsClient,
// EndpointsClient, HealthClient). A concrete implementation is provided by the
// sophosclient package, which wires configuration, transport, and OAuth2
// authentication. Most consumers should import sophosclient to construct a
// client and then interact with the interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/sophos-partner-client/pkg/sophos"
//	  "github.com/fivetwenty-io/sophos-partner-client/pkg/sophosclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := sophosclient.New(&sophos.Config{
//	    ClientID:     "...",
//	    ClientSecret: "...",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  tenants, err := cli.Tenants().List(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = tenants
//	}
//
// # Pagination
//
// The partner tenant listing uses page numbers, the regional APIs use opaque
// cursors. FetchAllByOffset and FetchAllByKey accumulate either style into one
// slice in arrival order, with a page cap and a repeated-cursor guard so a
// misbehaving upstream cannot trap a caller in an infinite loop.
//
// # Errors
//
// Non-2xx responses are represented by ResponseError, which carries the status
// code, a body snippet, and the parsed APIError when the body was a Sophos
// error document. Sentinel errors such as ErrMissingCredentials, ErrNotPartner
// and ErrRepeatedPageKey support errors.Is branching.
package sophos
