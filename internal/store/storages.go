package store

// Storages groups every persistence dependency of the service layer.
type Storages struct {
	UserRepository      UserRepository
	BlacklistRepository BlacklistRepository
	UserCache           UserCache
}

// NewStorages wires the PostgreSQL repositories over db. A nil cache falls
// back to NewNoopUserCache.
func NewStorages(db *DB, cache UserCache) *Storages {
	if cache == nil {
		cache = NewNoopUserCache()
	}

	return &Storages{
		UserRepository:      NewUserRepository(db, db.logger),
		BlacklistRepository: NewBlacklistRepository(db, db.logger),
		UserCache:           cache,
	}
}
