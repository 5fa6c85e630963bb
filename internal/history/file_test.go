package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	logx "ahoy/pkg/logx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, max int) (Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.jsonl")
	s, err := Open(Config{Driver: "file", Path: path, MaxEntries: max}, logx.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestOpenDisabled(t *testing.T) {
	s, err := Open(Config{Driver: "none"}, logx.Nop())
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = Open(Config{}, logx.Nop())
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "cassandra", Path: "x"}, logx.Nop())
	require.Error(t, err)
}

func TestAppendAndRecentNewestFirst(t *testing.T) {
	s, _ := openTestStore(t, 10)
	ctx := context.Background()

	now := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Append(ctx, Entry{
			At:    now.Add(time.Duration(i) * time.Second),
			Title: "Ahoy",
			Body:  fmt.Sprintf("msg %d", i),
			OK:    true,
		}))
	}

	got, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "msg 2", got[0].Body)
	assert.Equal(t, "msg 1", got[1].Body)
}

func TestTailIsBounded(t *testing.T) {
	s, _ := openTestStore(t, 5)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		require.NoError(t, s.Append(ctx, Entry{At: time.Now(), Title: "t", Body: fmt.Sprintf("%d", i), OK: true}))
	}

	got, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, "19", got[0].Body)
	assert.Equal(t, "15", got[4].Body)
}

func TestReopenLoadsTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	cfg := Config{Driver: "file", Path: path, MaxEntries: 10}

	s, err := Open(cfg, logx.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Append(context.Background(), Entry{At: time.Now(), Title: "Ahoy", Body: "persisted", OK: true}))
	require.NoError(t, s.Close())

	s2, err := Open(cfg, logx.Nop())
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "persisted", got[0].Body)
	assert.True(t, got[0].OK)
}

func TestAppendAfterClose(t *testing.T) {
	s, _ := openTestStore(t, 5)
	require.NoError(t, s.Close())
	assert.Error(t, s.Append(context.Background(), Entry{Title: "x"}))
}
