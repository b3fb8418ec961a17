// Package events provides a small in-process publish/subscribe mechanism.
//
// Services emit events without knowing which handlers will process them.
// The one event type in use today is TypeSagaStepFailed, which the saga
// package emits when a cross-store write completes only partially; the
// logging handler and the metrics drift counter subscribe to it.
package events
