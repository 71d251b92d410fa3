package redisconn

import (
	"sync"

	"github.com/redis/go-redis/v9"
)

var (
	clientsMu sync.RWMutex
	clients   = make(map[string]redis.UniversalClient)
)

// Client returns the process-wide client for a resolved descriptor,
// constructing it on first use. Repeated calls with descriptors resolving to
// the same target reuse one client, so connection-pool setup happens once.
// Externally registered pools are returned identity-equal and never owned by
// this cache.
//
// Construction races for the same fingerprint collapse to a single winner;
// go-redis clients are stateless handles over their pool, so the losing
// construction is simply discarded.
func Client(d Descriptor) redis.UniversalClient {
	if d.Strategy == StrategyPool {
		return d.Pool
	}

	key := d.fingerprint()

	clientsMu.RLock()
	client, ok := clients[key]
	clientsMu.RUnlock()
	if ok {
		return client
	}

	client = redis.NewClient(d.Options)

	clientsMu.Lock()
	defer clientsMu.Unlock()
	if existing, ok := clients[key]; ok {
		_ = client.Close()
		return existing
	}
	clients[key] = client
	return client
}

// Reset closes and forgets every cached client. Registered pools are not
// touched. Intended for tests that need a clean slate between cases.
func Reset() {
	clientsMu.Lock()
	defer clientsMu.Unlock()
	for key, client := range clients {
		_ = client.Close()
		delete(clients, key)
	}
}
