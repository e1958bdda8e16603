// Package cache provides a concurrent memoizing LRU cache.
//
// ShardedCache splits keys across 16 independently locked shards and offers
// GetOrCreate, which constructs a missing value at most once per key even
// when many goroutines ask for it at the same time:
//
//	engines := cache.NewSharded[Config, *Engine](64, hashConfig)
//	e := engines.GetOrCreate(cfg, func() *Engine { return build(cfg) })
//
// Values evicted by the LRU policy are simply dropped; the cache never calls
// any teardown hook, so it is meant for values that can be rebuilt cheaply
// and own no external resources.
//
// ShardedCache is safe for concurrent use and must not be copied after
// creation.
package cache
