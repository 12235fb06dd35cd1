// Package cache provides the concurrency-safe maps backing the proxy
// caches.
//
//   - [Map]: an unbounded get-or-create map for sub-caches that live as long
//     as their owner
//   - [LRU]: a bounded map with least-recently-used eviction, used for
//     counters that must not grow without limit
//
// Both are safe for concurrent use and have a Clear operation for tests.
package cache
