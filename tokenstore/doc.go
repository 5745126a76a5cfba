// Package tokenstore provides durable storage for the session bearer token.
// Every store keeps a single value under a well known key and implements
// storefront.TokenStore: Get returns "" when nothing is stored, Remove is a
// no-op when nothing is stored.
package tokenstore

// DefaultKey is the storage key used when none is configured
const DefaultKey = "token"
