package chat

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"
)

type storeEntry struct {
	store        *Store
	lastAccessed time.Time
}

// StoreCache keeps one Store per user, evicting the least recently used
// entry when full. An evicted store is simply dropped; its state is
// reloaded from the database the next time the user appears.
type StoreCache struct {
	lock    sync.Mutex
	stores  map[string]*storeEntry
	maxSize int
	db      *gorm.DB
}

func NewStoreCache(db *gorm.DB, maxSize int) *StoreCache {
	return &StoreCache{
		stores:  make(map[string]*storeEntry, maxSize),
		maxSize: maxSize,
		db:      db,
	}
}

func (pool *StoreCache) GetStore(ctx context.Context, userId string) (*Store, error) {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	if entry, exists := pool.stores[userId]; exists {
		entry.lastAccessed = time.Now()
		return entry.store, nil
	}

	if len(pool.stores) >= pool.maxSize {
		oldestUserId := ""
		var oldestTime time.Time
		for id, entry := range pool.stores {
			if oldestUserId == "" || entry.lastAccessed.Before(oldestTime) {
				oldestUserId = id
				oldestTime = entry.lastAccessed
			}
		}
		delete(pool.stores, oldestUserId)
	}

	store := NewStore(NewRepository(pool.db, userId))
	if err := store.FetchChats(ctx); err != nil {
		return nil, err
	}
	pool.stores[userId] = &storeEntry{
		store:        store,
		lastAccessed: time.Now(),
	}
	return store, nil
}
