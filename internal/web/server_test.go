package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/gemrush/internal/leaderboard"
)

func newTestServer(t *testing.T, scores ...int) (*httptest.Server, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leaderboard.json")
	board := leaderboard.New(leaderboard.NewFileStore(path))
	for i, score := range scores {
		board.AddEntry(score, float64(60+i), 3)
	}

	srv := httptest.NewServer(NewServer(board, WithSSHAddr("play.example -p 2222")).Routes())
	t.Cleanup(srv.Close)
	return srv, path
}

func getJSON(t *testing.T, url string, into any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	var body map[string]string
	status := getJSON(t, srv.URL+"/health", &body)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestLeaderboardAPI(t *testing.T) {
	srv, _ := newTestServer(t, 120, 300, 210)

	var entries []leaderboard.Entry
	status := getJSON(t, srv.URL+"/api/leaderboard", &entries)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, entries, 3)
	assert.Equal(t, 300, entries[0].Score)
	assert.Equal(t, 210, entries[1].Score)
	assert.Equal(t, 3, entries[0].LevelReached)

	entries = nil
	getJSON(t, srv.URL+"/api/leaderboard?limit=1", &entries)
	assert.Len(t, entries, 1)
}

func TestLeaderboardAPI_BadLimit(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, limit := range []string{"0", "-3", "ten"} {
		var body map[string]string
		status := getJSON(t, srv.URL+"/api/leaderboard?limit="+limit, &body)
		assert.Equal(t, http.StatusBadRequest, status, limit)
		assert.NotEmpty(t, body["error"])
	}
}

func TestLeaderboardAPI_EmptyIsArray(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/leaderboard")
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.JSONEq(t, `[]`, string(raw))
}

func TestLeaderboardAPI_SeesEntriesWrittenElsewhere(t *testing.T) {
	srv, path := newTestServer(t)

	// Another process (the game server) writes to the same file.
	writer := leaderboard.New(leaderboard.NewFileStore(path))
	writer.AddEntry(999, 42, 3)

	var entries []leaderboard.Entry
	getJSON(t, srv.URL+"/api/leaderboard", &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, 999, entries[0].Score)
}

func TestIndexPage(t *testing.T) {
	srv, _ := newTestServer(t, 150)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "ssh -t play.example -p 2222")
	assert.Contains(t, string(body), "<td class=\"score\">150</td>")
}

func TestIndexPage_Empty(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "No entries yet")
}
