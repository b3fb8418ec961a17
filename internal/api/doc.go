// Package api holds the HTTP handlers for products, orders, tasks and todos.
// Handlers decode and presence-check requests, call the services, and shape
// every response into the shared success or error envelope. Error to status
// mapping lives in errors.go.
package api
