package store

// Session is the persisted login token. Only one session exists at a time.
type Session struct {
	Token     string
	Email     string
	CreatedAt int64
	ExpiresAt int64
}

// Expired reports whether the session is past its expiry at the given unix time.
func (s *Session) Expired(now int64) bool {
	return now >= s.ExpiresAt
}

type CacheEntry struct {
	Key       string
	Resource  string
	Payload   []byte
	StoredAt  int64
	ExpiresAt int64
}

// Selection is the set of row ids picked on one table page.
type Selection struct {
	PageKey string
	RowIDs  []string
}

func (s Selection) Empty() bool {
	return len(s.RowIDs) == 0
}

func (s Selection) Contains(id string) bool {
	for _, rowID := range s.RowIDs {
		if rowID == id {
			return true
		}
	}
	return false
}
