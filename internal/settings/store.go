package settings

import (
	"sort"
	"sync"

	"apechain-buybot/internal/types"
)

// Store is the canonical in-memory collection of buy-alert settings.
// All watcher goroutines and the conversational handler go through it;
// writes are serialized behind the RWMutex, reads run concurrently.
// Durability is handled outside the store by a periodic flush of
// SnapshotAll.
type Store struct {
	mu   sync.RWMutex
	opts []types.SettingOpts

	selMu    sync.RWMutex
	selected map[int64]types.SettingOpts // per-user draft being edited
}

func NewStore() *Store {
	return &Store{
		selected: make(map[int64]types.SettingOpts),
	}
}

// DefaultOpts is the record Find synthesizes when no settings exist yet
// for the composite key.
func DefaultOpts(userID int64, tokenAddress string) types.SettingOpts {
	return types.SettingOpts{
		UserID:       userID,
		TokenAddress: tokenAddress,
		MinBuyAmount: 0,
		BuyStep:      30,
		Emoji:        "💎",
		MediaToggle:  true,
	}
}

// Upsert inserts or replaces the record matching (UserID, TokenAddress).
// It reports whether an existing record was replaced.
func (s *Store) Upsert(opt types.SettingOpts) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.opts {
		if s.opts[i].SameKey(opt.UserID, opt.TokenAddress) {
			s.opts[i] = opt
			return true
		}
	}
	s.opts = append(s.opts, opt)
	return false
}

// Find returns the record for the composite key, or a default record if
// none exists. It never fails.
func (s *Store) Find(userID int64, tokenAddress string) types.SettingOpts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, opt := range s.opts {
		if opt.SameKey(userID, tokenAddress) {
			return opt
		}
	}
	return DefaultOpts(userID, tokenAddress)
}

// Exists reports whether a record is stored for the composite key.
func (s *Store) Exists(userID int64, tokenAddress string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, opt := range s.opts {
		if opt.SameKey(userID, tokenAddress) {
			return true
		}
	}
	return false
}

// Delete removes the record for the composite key and reports whether a
// record was actually removed.
func (s *Store) Delete(userID int64, tokenAddress string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.opts {
		if s.opts[i].SameKey(userID, tokenAddress) {
			s.opts = append(s.opts[:i], s.opts[i+1:]...)
			return true
		}
	}
	return false
}

// SnapshotAll returns a copy of every record ordered by composite key,
// suitable for the persistence flush.
func (s *Store) SnapshotAll() []types.SettingOpts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.SettingOpts, len(s.opts))
	copy(out, s.opts)
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].TokenAddress < out[j].TokenAddress
	})
	return out
}

// Restore atomically replaces the whole collection. Used at startup to
// reload persisted state.
func (s *Store) Restore(opts []types.SettingOpts) {
	replacement := make([]types.SettingOpts, len(opts))
	copy(replacement, opts)

	s.mu.Lock()
	s.opts = replacement
	s.mu.Unlock()
}

// Select stores the draft record the user is currently editing. Each
// user owns an independent slot, so concurrent interactive sessions
// never trample each other.
func (s *Store) Select(userID int64, opt types.SettingOpts) {
	s.selMu.Lock()
	s.selected[userID] = opt
	s.selMu.Unlock()
}

// Selected returns the user's draft and whether one is active.
func (s *Store) Selected(userID int64) (types.SettingOpts, bool) {
	s.selMu.RLock()
	defer s.selMu.RUnlock()

	opt, ok := s.selected[userID]
	return opt, ok
}

// ClearSelected drops the user's draft slot.
func (s *Store) ClearSelected(userID int64) {
	s.selMu.Lock()
	delete(s.selected, userID)
	s.selMu.Unlock()
}
