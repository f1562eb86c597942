package badger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/poiesic/docrag/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userMessage(text string) *core.Message {
	return &core.Message{Sender: core.SenderUser, Text: text, Timestamp: time.Now().UTC()}
}

func TestHistoryAppendAndRead(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	require.NoError(t, repos.History.Append(ctx, "thread-1", userMessage("first")))
	require.NoError(t, repos.History.Append(ctx, "thread-1", &core.Message{
		Sender: core.SenderAgent, Text: "second", Timestamp: time.Now().UTC(),
	}))
	require.NoError(t, repos.History.Append(ctx, "thread-1", userMessage("third")))

	messages, err := repos.History.Read(ctx, "thread-1")
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[0].Text)
	assert.Equal(t, core.SenderAgent, messages[1].Sender)
	assert.Equal(t, "third", messages[2].Text)
}

func TestHistoryRead_EmptyThread(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	messages, err := repos.History.Read(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestHistory_ThreadsIsolated(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	require.NoError(t, repos.History.Append(ctx, "thread-a", userMessage("for a")))
	require.NoError(t, repos.History.Append(ctx, "thread-b", userMessage("for b")))

	a, err := repos.History.Read(ctx, "thread-a")
	require.NoError(t, err)
	require.Len(t, a, 1)
	assert.Equal(t, "for a", a[0].Text)

	b, err := repos.History.Read(ctx, "thread-b")
	require.NoError(t, err)
	require.Len(t, b, 1)
	assert.Equal(t, "for b", b[0].Text)
}

func TestHistory_OrderSurvivesManyAppends(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	const n = 300
	for i := 0; i < n; i++ {
		require.NoError(t, repos.History.Append(ctx, "thread-1", userMessage(fmt.Sprintf("msg %d", i))))
	}

	messages, err := repos.History.Read(ctx, "thread-1")
	require.NoError(t, err)
	require.Len(t, messages, n)
	for i, msg := range messages {
		assert.Equal(t, fmt.Sprintf("msg %d", i), msg.Text)
	}
}
