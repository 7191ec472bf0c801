// Package google handles OAuth2 authentication against Google APIs.
//
// Tokens are cached per account under the user cache directory, so the
// browser-based authorization flow only has to be completed once per
// account. The TokenProvider interface abstracts the token source so that
// clients can be constructed from other stores in tests.
package google
