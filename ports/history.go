package ports

import (
	"statcanvas/domain/core"
	"statcanvas/domain/stats"
)

// HistoryStore keeps the per-conversation, append-only analysis log.
// Implementations must allow at most one concurrent appender per
// conversation id; records are never mutated or deleted.
type HistoryStore interface {
	Append(id core.ConversationID, record stats.AnalysisRecord)
	History(id core.ConversationID) []stats.AnalysisRecord
}
