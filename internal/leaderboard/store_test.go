package leaderboard

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []Entry {
	return []Entry{
		{Score: 100, TimeTaken: 40.0, LevelReached: 3, Date: "2024-05-17 14:03"},
		{Score: 100, TimeTaken: 45.5, LevelReached: 3, Date: "2024-05-17 14:05"},
		{Score: 80, TimeTaken: 60.2, LevelReached: 2, Date: "2024-05-18 09:12"},
	}
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	entries, err := s.Load()

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStore_WritesExactFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaderboard.json")
	s := NewFileStore(path)

	require.NoError(t, s.Save(sampleEntries()[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Len(t, raw[0], 4)
	assert.Equal(t, 100.0, raw[0]["score"])
	assert.Equal(t, 40.0, raw[0]["time_taken"])
	assert.Equal(t, 3.0, raw[0]["level_reached"])
	assert.Equal(t, "2024-05-17 14:03", raw[0]["date"])
}

func TestFileStore_EmptyBoardIsEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaderboard.json")

	require.NoError(t, NewFileStore(path).Save(nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestFileStore_RoundTripAndNoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "leaderboard.json")
	s := NewFileStore(path)

	require.NoError(t, s.Save(sampleEntries()))
	require.NoError(t, s.Save(sampleEntries()[1:]))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleEntries()[1:], got)

	files, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestFileStore_CorruptData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaderboard.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"score": 1}`), 0o600))

	_, err := NewFileStore(path).Load()

	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestFileStore_UnwritableDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := NewFileStore(filepath.Join(blocker, "leaderboard.json")).Save(sampleEntries())

	assert.Error(t, err)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "leaderboard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	empty, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, s.Save(sampleEntries()))
	require.NoError(t, s.Save(sampleEntries()[:2]))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleEntries()[:2], got)
}

func TestSQLiteStore_BacksLeaderboard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaderboard.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)

	lb := newTestBoard(t, s, WithMaxEntries(2))
	lb.AddEntry(10, 5, 1)
	lb.AddEntry(30, 5, 3)
	lb.AddEntry(20, 5, 2)
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	assert.Equal(t, []scoreTime{{30, 5}, {20, 5}}, summarize(newTestBoard(t, reopened).Entries()))
}

func TestHighScore_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "high_score.txt")

	score, err := LoadHighScore(path)
	require.NoError(t, err)
	assert.Equal(t, 0, score)

	require.NoError(t, SaveHighScore(path, 312))
	score, err = LoadHighScore(path)
	require.NoError(t, err)
	assert.Equal(t, 312, score)

	require.NoError(t, os.WriteFile(path, []byte("lots"), 0o600))
	_, err = LoadHighScore(path)
	assert.ErrorIs(t, err, ErrCorrupt)
}
