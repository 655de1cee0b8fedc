// Package resolver turns translated location labels into coordinates.
//
// Cache hits complete immediately. Misses join a FIFO queue drained by a
// single worker, so outbound geocoding calls never overlap and each one
// starts at least MinDelay after the previous one finished. Successful
// lookups are written back to the cache; not-found and failed lookups are
// not, so they are retried on the next run.
package resolver
