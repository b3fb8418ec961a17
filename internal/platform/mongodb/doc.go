// Package mongodb implements the document store side of the service:
// the client lifecycle (Adapter) and the product catalog (MongoProductStore).
//
// Driver errors are translated at this boundary with MapError so callers
// only ever see the sentinels declared in the store package.
package mongodb
