package store

type SessionRepository interface {
	SaveSession(session Session) error
	GetSession() (*Session, error)
	ClearSession() error
}

type CacheRepository interface {
	GetCacheEntry(key string) (*CacheEntry, error)
	PutCacheEntry(entry CacheEntry) error
	DeleteCacheByResource(resources ...string) error
	DeleteAllCache() error
	PurgeExpiredCache(now int64) (int64, error)
}

type SelectionRepository interface {
	GetSelection() (Selection, error)
	AddToSelection(pageKey string, rowIDs []string) (Selection, error)
	RemoveFromSelection(rowIDs []string) (Selection, error)
	ClearSelection() error
}

type Repository interface {
	SessionRepository
	CacheRepository
	SelectionRepository

	Close() error
}
