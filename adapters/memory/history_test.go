package memory

import (
	"fmt"
	"sync"
	"testing"

	"statcanvas/domain/core"
	"statcanvas/domain/stats"
)

func record(resolved stats.AnalysisType) stats.AnalysisRecord {
	return stats.AnalysisRecord{
		ID:           core.NewID(),
		ResolvedType: resolved,
		Results:      stats.NewResultBag(),
		CreatedAt:    core.Now(),
	}
}

func TestHistoryStore_AppendOrder(t *testing.T) {
	store := NewHistoryStore()
	id := core.ConversationID("conv-1")

	store.Append(id, record(stats.TypeDescriptive))
	store.Append(id, record(stats.TypeCorrelation))
	store.Append(id, record(stats.TypeChiSquare))

	history := store.History(id)
	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}
	want := []stats.AnalysisType{stats.TypeDescriptive, stats.TypeCorrelation, stats.TypeChiSquare}
	for i, w := range want {
		if history[i].ResolvedType != w {
			t.Errorf("history[%d] = %s, want %s", i, history[i].ResolvedType, w)
		}
	}
}

func TestHistoryStore_ConversationIsolation(t *testing.T) {
	store := NewHistoryStore()
	store.Append(core.ConversationID("a"), record(stats.TypeDescriptive))

	if got := store.History(core.ConversationID("b")); len(got) != 0 {
		t.Errorf("unknown conversation returned %d records", len(got))
	}
}

func TestHistoryStore_ReturnsCopy(t *testing.T) {
	store := NewHistoryStore()
	id := core.ConversationID("conv")
	store.Append(id, record(stats.TypeDescriptive))

	first := store.History(id)
	first[0].ResolvedType = stats.TypeAnova

	second := store.History(id)
	if second[0].ResolvedType != stats.TypeDescriptive {
		t.Error("History must return a copy, not the backing slice")
	}
}

func TestHistoryStore_ConcurrentAppends(t *testing.T) {
	store := NewHistoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := core.ConversationID(fmt.Sprintf("conv-%d", n%3))
			for j := 0; j < 20; j++ {
				store.Append(id, record(stats.TypeDescriptive))
				store.History(id)
			}
		}(i)
	}
	wg.Wait()

	total := 0
	for _, id := range []string{"conv-0", "conv-1", "conv-2"} {
		total += len(store.History(core.ConversationID(id)))
	}
	if total != 200 {
		t.Errorf("total records = %d, want 200", total)
	}
}
