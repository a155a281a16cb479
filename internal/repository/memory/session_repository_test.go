package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"insightsmith-be/internal/constant"
	"insightsmith-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCreateAndGet(t *testing.T) {
	repo := NewSessionRepository()

	created := repo.Create(constant.ModeGuide)
	assert.NotEqual(t, "", created.Id.String())
	assert.Equal(t, constant.ModeGuide, created.CurrentMode)
	assert.Empty(t, created.Messages)

	got, found := repo.Get(created.Id)
	assert.True(t, found)
	assert.Equal(t, created.Id, got.Id)
}

func TestAppendMessageKeepsInsertionOrder(t *testing.T) {
	repo := NewSessionRepository()
	session := repo.Create(constant.ModeGuide)

	_, ok := repo.AppendMessage(session.Id, entity.ChatMessage{Role: constant.ChatMessageRoleUser, Content: "hello"})
	assert.True(t, ok)
	updated, ok := repo.AppendMessage(session.Id, entity.ChatMessage{Role: constant.ChatMessageRoleAssistant, Content: "hi there"})
	assert.True(t, ok)

	assert.Len(t, updated.Messages, 2)
	assert.Equal(t, constant.ChatMessageRoleUser, updated.Messages[0].Role)
	assert.Equal(t, "hello", updated.Messages[0].Content)
	assert.Equal(t, constant.ChatMessageRoleAssistant, updated.Messages[1].Role)
}

func TestAppendMessageUnknownSession(t *testing.T) {
	repo := NewSessionRepository()
	session := repo.Create(constant.ModeGuide)
	repo.Delete(session.Id)

	_, ok := repo.AppendMessage(session.Id, entity.ChatMessage{Role: constant.ChatMessageRoleUser, Content: "late"})
	assert.False(t, ok)
}

func TestClearMessagesKeepsIdentityAndMode(t *testing.T) {
	repo := NewSessionRepository()
	session := repo.Create(constant.ModeHard)

	for i := 0; i < 5; i++ {
		repo.AppendMessage(session.Id, entity.ChatMessage{Role: constant.ChatMessageRoleUser, Content: fmt.Sprintf("msg %d", i)})
	}

	assert.True(t, repo.ClearMessages(session.Id))

	got, found := repo.Get(session.Id)
	assert.True(t, found)
	assert.Empty(t, got.Messages)
	assert.Equal(t, session.Id, got.Id)
	assert.Equal(t, constant.ModeHard, got.CurrentMode)
}

func TestUpdateMode(t *testing.T) {
	repo := NewSessionRepository()
	session := repo.Create(constant.ModeGuide)

	updated, ok := repo.UpdateMode(session.Id, constant.ModeSocrates)
	assert.True(t, ok)
	assert.Equal(t, constant.ModeSocrates, updated.CurrentMode)

	_, ok = repo.UpdateMode(uuid.New(), constant.ModeHard)
	assert.False(t, ok)
}

func TestSweepExpiredRemovesOnlyStaleSessions(t *testing.T) {
	repo := NewSessionRepository()
	current := time.Now()
	repo.now = func() time.Time { return current }

	stale := repo.Create(constant.ModeGuide)
	repo.AppendMessage(stale.Id, entity.ChatMessage{Role: constant.ChatMessageRoleUser, Content: "old"})

	current = current.Add(2 * time.Hour)
	fresh := repo.Create(constant.ModeSocrates)
	repo.AppendMessage(fresh.Id, entity.ChatMessage{Role: constant.ChatMessageRoleUser, Content: "new"})

	removed := repo.SweepExpired(time.Hour)
	assert.Equal(t, 1, removed)

	_, found := repo.Get(stale.Id)
	assert.False(t, found)

	kept, found := repo.Get(fresh.Id)
	assert.True(t, found)
	assert.Len(t, kept.Messages, 1)
	assert.Equal(t, "new", kept.Messages[0].Content)
}

func TestStats(t *testing.T) {
	repo := NewSessionRepository()
	current := time.Now()
	repo.now = func() time.Time { return current }

	stale := repo.Create(constant.ModeGuide)
	repo.AppendMessage(stale.Id, entity.ChatMessage{Role: constant.ChatMessageRoleUser, Content: "a"})

	current = current.Add(2 * time.Hour)
	active := repo.Create(constant.ModeGuide)
	repo.AppendMessage(active.Id, entity.ChatMessage{Role: constant.ChatMessageRoleUser, Content: "b"})
	repo.AppendMessage(active.Id, entity.ChatMessage{Role: constant.ChatMessageRoleAssistant, Content: "c"})

	stats := repo.Stats(time.Hour)
	assert.Equal(t, 2, stats.TotalSessions)
	assert.Equal(t, 1, stats.ActiveSessions)
	assert.Equal(t, 3, stats.TotalMessages)
}

func TestConcurrentAppendsNoLostUpdate(t *testing.T) {
	repo := NewSessionRepository()
	session := repo.Create(constant.ModeGuide)

	const writers = 50
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(n int) {
			defer wg.Done()
			repo.AppendMessage(session.Id, entity.ChatMessage{
				Role:    constant.ChatMessageRoleUser,
				Content: fmt.Sprintf("concurrent %d", n),
			})
		}(i)
	}
	wg.Wait()

	got, found := repo.Get(session.Id)
	assert.True(t, found)
	assert.Len(t, got.Messages, writers)
}

func TestSnapshotIsolation(t *testing.T) {
	repo := NewSessionRepository()
	session := repo.Create(constant.ModeGuide)
	repo.AppendMessage(session.Id, entity.ChatMessage{Role: constant.ChatMessageRoleUser, Content: "original"})

	got, _ := repo.Get(session.Id)
	got.Messages[0].Content = "mutated"

	again, _ := repo.Get(session.Id)
	assert.Equal(t, "original", again.Messages[0].Content)
}
