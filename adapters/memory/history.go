// Package memory provides the in-process history store. State lives for
// the lifetime of the process; cross-restart persistence is out of scope.
package memory

import (
	"sync"

	"statcanvas/domain/core"
	"statcanvas/domain/stats"
)

// HistoryStore is a mutex-guarded map from conversation id to its ordered
// analysis records.
type HistoryStore struct {
	mu            sync.RWMutex
	conversations map[core.ConversationID][]stats.AnalysisRecord
}

// NewHistoryStore creates an empty store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		conversations: make(map[core.ConversationID][]stats.AnalysisRecord),
	}
}

// Append adds a record to the conversation's log.
func (s *HistoryStore) Append(id core.ConversationID, record stats.AnalysisRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[id] = append(s.conversations[id], record)
}

// History returns a copy of the conversation's records in append order.
func (s *HistoryStore) History(id core.ConversationID) []stats.AnalysisRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.conversations[id]
	out := make([]stats.AnalysisRecord, len(records))
	copy(out, records)
	return out
}
