// Package id provides unique identifier generation for job records.
package id

import (
	"sync/atomic"
	"time"
)

var last atomic.Int64

// Generate creates a new record ID from the wall clock in milliseconds.
// Calls landing in the same millisecond get strictly increasing values,
// so IDs handed out by one process never collide.
// Example: 1757894400123
func Generate() int64 {
	now := time.Now().UnixMilli()
	for {
		prev := last.Load()
		next := now
		if next <= prev {
			next = prev + 1
		}
		if last.CompareAndSwap(prev, next) {
			return next
		}
	}
}

// Observe raises the floor of Generate so later IDs are greater than seen.
// Use it for IDs that did not come from Generate, such as stored records.
func Observe(seen int64) {
	for {
		prev := last.Load()
		if seen <= prev || last.CompareAndSwap(prev, seen) {
			return
		}
	}
}
