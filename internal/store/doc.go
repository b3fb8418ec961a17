// Package store defines interfaces for data persistence operations.
// These interfaces abstract the two underlying engines (a relational store
// for orders, tasks and todos, a document store for products) from the
// services, so cross-store flows can be exercised against in-memory fakes.
package store
