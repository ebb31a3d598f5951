package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duochat-server/internal/domain/conversation"
)

// mockConversationRepo is an in-memory conversation.Repository.
type mockConversationRepo struct {
	byPublicID  map[string]*conversation.Conversation
	nextID      uint
	appendCalls int
	appendErrOn map[int]error
}

func newMockConversationRepo() *mockConversationRepo {
	return &mockConversationRepo{
		byPublicID:  make(map[string]*conversation.Conversation),
		appendErrOn: make(map[int]error),
	}
}

func (m *mockConversationRepo) Create(_ context.Context, conv *conversation.Conversation) error {
	m.nextID++
	conv.ID = m.nextID
	m.byPublicID[conv.PublicID] = conv
	return nil
}

func (m *mockConversationRepo) FindByPublicID(_ context.Context, publicID string) (*conversation.Conversation, error) {
	conv, ok := m.byPublicID[publicID]
	if !ok {
		return nil, conversation.ErrNotFound
	}
	return conv, nil
}

func (m *mockConversationRepo) FindByFilter(_ context.Context, _ conversation.Filter) ([]*conversation.Conversation, error) {
	return nil, nil
}

func (m *mockConversationRepo) Delete(_ context.Context, _ uint) error { return nil }

func (m *mockConversationRepo) AppendTurn(_ context.Context, conversationID uint, turn *conversation.Turn) error {
	m.appendCalls++
	if err := m.appendErrOn[m.appendCalls]; err != nil {
		return err
	}
	for _, conv := range m.byPublicID {
		if conv.ID == conversationID {
			conv.Turns = append(conv.Turns, *turn)
			return nil
		}
	}
	return conversation.ErrNotFound
}

func newTestChatService(repo *mockConversationRepo) (*Service, *stubAdapter, *stubAdapter, *SessionStore) {
	hosted := &stubAdapter{model: "gemini-2.0-flash", backend: "Gemini API", result: Result{Text: "hosted answer"}}
	local := &stubAdapter{model: "llama3.2:latest", backend: "Ollama API", result: Result{Text: "local answer"}}
	dispatcher := NewDispatcher(hosted, local, &stubClassifier{}, &recorderSpy{}, 0, zerolog.Nop())
	conversations := conversation.NewService(repo, zerolog.Nop())
	sessions := NewSessionStore(time.Hour)
	return NewService(sessions, conversations, dispatcher, zerolog.Nop()), hosted, local, sessions
}

func TestSubmitTurnCreatesConversationWhenNoID(t *testing.T) {
	repo := newMockConversationRepo()
	svc, _, _, _ := newTestChatService(repo)

	resp, err := svc.SubmitTurn(context.Background(), TurnRequest{
		UserID: "user-1",
		Model:  "gemini-2.0-flash",
		Prompt: "hello",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ConversationID)
	require.Len(t, resp.Fragments, 1)

	// Both sides of the exchange were persisted.
	conv := repo.byPublicID[resp.ConversationID]
	require.NotNil(t, conv)
	require.Len(t, conv.Turns, 2)
	assert.Equal(t, conversation.RoleUser, conv.Turns[0].Role)
	assert.Equal(t, conversation.RoleAssistant, conv.Turns[1].Role)
	assert.Equal(t, "hello", conv.Turns[0].Fragments[0].Text)
}

func TestSubmitTurnSameIDKeepsHistory(t *testing.T) {
	repo := newMockConversationRepo()
	svc, hosted, _, sessions := newTestChatService(repo)

	first, err := svc.SubmitTurn(context.Background(), TurnRequest{
		UserID: "user-1",
		Model:  "gemini-2.0-flash",
		Prompt: "first",
	})
	require.NoError(t, err)

	_, err = svc.SubmitTurn(context.Background(), TurnRequest{
		UserID:         "user-1",
		ConversationID: first.ConversationID,
		Model:          "gemini-2.0-flash",
		Prompt:         "second",
	})
	require.NoError(t, err)

	// The second dispatch saw the accumulated history: first user entry,
	// first reply, second user entry.
	require.Len(t, hosted.lastHistory, 3)
	assert.Equal(t, []string{"second"}, hosted.lastHistory[2].Parts)

	sess := sessions.Acquire("user-1")
	assert.Equal(t, first.ConversationID, sess.ConversationID)
	assert.Len(t, sess.History, 4)
}

func TestSubmitTurnSwitchReloadsFromStorage(t *testing.T) {
	repo := newMockConversationRepo()
	svc, hosted, _, _ := newTestChatService(repo)

	stored := conversation.New("conv_stored", "user-1")
	stored.Turns = []conversation.Turn{
		{Role: conversation.RoleUser, Fragments: []conversation.Fragment{{Model: "gemini-2.0-flash", Text: "old question"}}},
		{Role: conversation.RoleAssistant, Fragments: []conversation.Fragment{{Model: "gemini-2.0-flash", Text: "old answer"}}},
	}
	require.NoError(t, repo.Create(context.Background(), stored))

	// Establish a session on a different conversation first.
	_, err := svc.SubmitTurn(context.Background(), TurnRequest{
		UserID: "user-1",
		Model:  "gemini-2.0-flash",
		Prompt: "unrelated",
	})
	require.NoError(t, err)

	resp, err := svc.SubmitTurn(context.Background(), TurnRequest{
		UserID:         "user-1",
		ConversationID: "conv_stored",
		Model:          "gemini-2.0-flash",
		Prompt:         "follow up",
	})
	require.NoError(t, err)
	assert.Equal(t, "conv_stored", resp.ConversationID)

	// Dispatched history is the stored conversation plus the new entry,
	// not the previous session's history.
	require.Len(t, hosted.lastHistory, 3)
	assert.Equal(t, []string{"old question"}, hosted.lastHistory[0].Parts)
	assert.Equal(t, []string{"old answer"}, hosted.lastHistory[1].Parts)
	assert.Equal(t, []string{"follow up"}, hosted.lastHistory[2].Parts)
}

func TestSubmitTurnForeignConversationStartsFresh(t *testing.T) {
	repo := newMockConversationRepo()
	svc, hosted, _, _ := newTestChatService(repo)

	foreign := conversation.New("conv_foreign", "someone-else")
	foreign.Turns = []conversation.Turn{
		{Role: conversation.RoleUser, Fragments: []conversation.Fragment{{Model: "gemini-2.0-flash", Text: "secret"}}},
	}
	require.NoError(t, repo.Create(context.Background(), foreign))

	resp, err := svc.SubmitTurn(context.Background(), TurnRequest{
		UserID:         "user-1",
		ConversationID: "conv_foreign",
		Model:          "gemini-2.0-flash",
		Prompt:         "hello",
	})

	require.NoError(t, err)
	assert.NotEqual(t, "conv_foreign", resp.ConversationID)
	// No foreign history leaked into the dispatch.
	require.Len(t, hosted.lastHistory, 1)
	assert.Equal(t, []string{"hello"}, hosted.lastHistory[0].Parts)
}

func TestSubmitTurnUserTurnWriteFailureRollsBack(t *testing.T) {
	repo := newMockConversationRepo()
	repo.appendErrOn[1] = errors.New("db down")
	svc, _, _, sessions := newTestChatService(repo)

	_, err := svc.SubmitTurn(context.Background(), TurnRequest{
		UserID: "user-1",
		Model:  "gemini-2.0-flash",
		Prompt: "hello",
	})

	require.Error(t, err)

	// The uncommitted entry was rolled back so a retry does not duplicate it.
	sess := sessions.Acquire("user-1")
	assert.Empty(t, sess.History)
}

func TestSubmitTurnAssistantWriteFailureDegrades(t *testing.T) {
	repo := newMockConversationRepo()
	repo.appendErrOn[2] = errors.New("db down")
	svc, _, _, _ := newTestChatService(repo)

	resp, err := svc.SubmitTurn(context.Background(), TurnRequest{
		UserID: "user-1",
		Model:  "gemini-2.0-flash",
		Prompt: "hello",
	})

	require.NoError(t, err)
	require.Len(t, resp.Fragments, 1)

	// Only the user turn is durable.
	conv := repo.byPublicID[resp.ConversationID]
	require.Len(t, conv.Turns, 1)
	assert.Equal(t, conversation.RoleUser, conv.Turns[0].Role)
}

func TestSubmitTurnUnknownModel(t *testing.T) {
	repo := newMockConversationRepo()
	svc, _, _, sessions := newTestChatService(repo)

	_, err := svc.SubmitTurn(context.Background(), TurnRequest{
		UserID: "user-1",
		Model:  "gpt-99",
		Prompt: "hello",
	})

	require.ErrorIs(t, err, ErrUnknownModel)
	sess := sessions.Acquire("user-1")
	assert.Empty(t, sess.History)
}

func TestFlattenRoundTrip(t *testing.T) {
	turns := []conversation.Turn{
		{Role: conversation.RoleUser, Fragments: []conversation.Fragment{{Model: "gemini-2.0-flash", Text: "q"}}},
		{Role: conversation.RoleAssistant, Fragments: []conversation.Fragment{
			{Model: "gemini-2.0-flash", Text: "a1"},
			{Model: "llama3.2:latest", Text: "a2"},
		}},
	}

	entries := Flatten(turns)

	require.Len(t, entries, 3)
	assert.Equal(t, conversation.RoleUser, entries[0].Role)
	assert.Equal(t, conversation.RoleAssistant, entries[1].Role)
	assert.Equal(t, []string{"a1"}, entries[1].Parts)
	assert.Equal(t, []string{"a2"}, entries[2].Parts)
}

func TestSessionStoreEvictsStaleSessions(t *testing.T) {
	store := NewSessionStore(time.Millisecond)

	stale := store.Acquire("stale-user")
	stale.ConversationID = "conv_old"

	time.Sleep(5 * time.Millisecond)
	store.Acquire("other-user")

	fresh := store.Acquire("stale-user")
	assert.Empty(t, fresh.ConversationID)
}
