package memory

import (
	"testing"
	"time"

	"github.com/basupportii/ai-router/internal/reqtypes"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveAndScopedRead(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(reqtypes.MemoryEntry{ID: "1", UserID: "alice", Prompt: "p", Response: "r", CreatedAt: time.Now()}))
	require.NoError(t, s.Save(reqtypes.MemoryEntry{ID: "2", UserID: "bob", Prompt: "p2", Response: "r2", CreatedAt: time.Now()}))

	aliceEntries := s.Entries("alice", "", false)
	require.Len(t, aliceEntries, 1)
	require.Equal(t, "1", aliceEntries[0].ID)
}

func TestStore_TailTrimsTo500(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	for i := 0; i < 510; i++ {
		require.NoError(t, s.Save(reqtypes.MemoryEntry{ID: string(rune(i)), UserID: "alice", CreatedAt: time.Now()}))
	}
	require.Len(t, s.Entries("alice", "", false), 500)
}

func TestIsExpired_NilNeverExpires(t *testing.T) {
	require.False(t, IsExpired(reqtypes.MemoryEntry{}))
}

func TestIsExpired_PastTimeIsExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	require.True(t, IsExpired(reqtypes.MemoryEntry{ExpiresAt: &past}))
}

func TestRecall_KeywordOverlapScores(t *testing.T) {
	entries := []reqtypes.MemoryEntry{
		{ID: "1", Keywords: []string{"golang", "concurrency"}},
		{ID: "2", Keywords: []string{"cooking", "pasta"}},
	}
	recalled := Recall(entries, []string{"golang", "channels"}, nil)
	require.Len(t, recalled, 1)
	require.Equal(t, "1", recalled[0].Entry.ID)
}

func TestShouldSummarize_FiresEveryEighthMessage(t *testing.T) {
	require.True(t, ShouldSummarize(8))
	require.True(t, ShouldSummarize(16))
	require.False(t, ShouldSummarize(7))
}

func TestExport_JSONRoundTrips(t *testing.T) {
	entries := []reqtypes.MemoryEntry{{ID: "1", Prompt: "p", Response: "r", CreatedAt: time.Now()}}
	out, err := Export(entries, ExportJSON)
	require.NoError(t, err)
	require.Contains(t, out, `"id": "1"`)
}
