// Package service holds the application logic between the HTTP handlers and
// the stores: input validation beyond request shape, pricing, and the
// cross-store order flows, which run as sagas.
package service
