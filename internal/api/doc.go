// Package api is the JSON-over-HTTP client for the Remote Event Service.
//
// The service exposes two collections, /events and /categories. Every call
// is a single request/response round trip: there is no retry and no caching.
// Failures are returned as *Error values whose Kind says which operation
// family failed (fetch, submit, delete) or that a 2xx body did not decode.
package api
