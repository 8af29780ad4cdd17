package conversation

import (
	"context"
	"errors"
	"testing"

	"shopfront/app/config"
	"shopfront/app/service/cart"
	"shopfront/app/service/catalog"
	"shopfront/app/service/llm"
	"shopfront/app/service/relevance"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	name  string
	reply string
	err   error
	calls int
}

func (f *fakeBackend) Name() string {
	return f.name
}

func (f *fakeBackend) Complete(_ context.Context, _ string) (string, error) {
	f.calls++

	if f.err != nil {
		return "", f.err
	}

	return f.reply, nil
}

func newTestService(t *testing.T, backends ...llm.Backend) *Service {
	t.Helper()
	t.Chdir(t.TempDir())

	cfg := &config.Config{}
	cfg.ApplyDefaults()

	catalogSvc, err := catalog.New(nil)
	require.NoError(t, err)

	cartSvc, err := cart.New(nil)
	require.NoError(t, err)

	return &Service{
		cfg:        cfg,
		catalogSvc: catalogSvc,
		cartSvc:    cartSvc,
		invoker:    llm.NewWithBackends(backends...),
		scorer: relevance.Scorer{
			Threshold: cfg.Assistant.RelevanceThreshold,
			Limit:     cfg.Assistant.MaxSuggestions,
		},
		sessions: make(map[string]*Session),
	}
}

func TestProductSeekingTurnAttachesSuggestions(t *testing.T) {
	backend := &fakeBackend{name: "primary", reply: "We have great sneakers!"}
	svc := newTestService(t, backend)
	session := svc.NewSession()

	reply, err := svc.ProcessMessage(context.Background(), session, "Do you have any shoes?")

	require.NoError(t, err)
	assert.Equal(t, RoleAssistant, reply.Role)
	assert.Equal(t, "We have great sneakers!", reply.Content)
	assert.True(t, reply.Suggested)

	require.NotEmpty(t, reply.Suggestions)
	assert.Equal(t, "Running Sneakers", reply.Suggestions[0].Name)

	// The suggestion set becomes the new referent window and feeds interests.
	assert.Equal(t, reply.Suggestions, session.LastSuggested())
	assert.Contains(t, session.Profile().Interests, "Fashion")
}

func TestAddItAfterSuggestionSkipsProvider(t *testing.T) {
	backend := &fakeBackend{name: "primary", reply: "We have great sneakers!"}
	svc := newTestService(t, backend)
	session := svc.NewSession()

	_, err := svc.ProcessMessage(context.Background(), session, "Do you have any shoes?")
	require.NoError(t, err)

	callsBefore := backend.calls

	reply, err := svc.ProcessMessage(context.Background(), session, "add it")

	require.NoError(t, err)
	assert.Equal(t, RoleAssistant, reply.Role)
	assert.Contains(t, reply.Content, "Running Sneakers")
	assert.Contains(t, reply.Content, "1 item")
	assert.Empty(t, reply.Suggestions)

	// Cart mutation must not touch the model.
	assert.Equal(t, callsBefore, backend.calls)

	snapshot := svc.cartSvc.Snapshot(session.ID)
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, "Running Sneakers", snapshot.Items[0].Product.Name)
}

func TestReferentWindowSurvivesConversationalTurns(t *testing.T) {
	backend := &fakeBackend{name: "primary", reply: "Sure!"}
	svc := newTestService(t, backend)
	session := svc.NewSession()

	_, err := svc.ProcessMessage(context.Background(), session, "Do you have any shoes?")
	require.NoError(t, err)

	suggested := session.LastSuggested()
	require.NotEmpty(t, suggested)

	// Purely conversational turn, no new suggestions.
	_, err = svc.ProcessMessage(context.Background(), session, "thanks, sounds great")
	require.NoError(t, err)

	assert.Equal(t, suggested, session.LastSuggested())

	reply, err := svc.ProcessMessage(context.Background(), session, "add it")
	require.NoError(t, err)

	assert.Contains(t, reply.Content, suggested[0].Name)
}

func TestRemoveFlow(t *testing.T) {
	backend := &fakeBackend{name: "primary", reply: "Sure!"}
	svc := newTestService(t, backend)
	session := svc.NewSession()

	_, err := svc.ProcessMessage(context.Background(), session, "Do you have any shoes?")
	require.NoError(t, err)

	_, err = svc.ProcessMessage(context.Background(), session, "add it")
	require.NoError(t, err)

	reply, err := svc.ProcessMessage(context.Background(), session, "remove it")
	require.NoError(t, err)

	assert.Contains(t, reply.Content, "Removed")
	assert.Empty(t, svc.cartSvc.Snapshot(session.ID).Items)
}

func TestAddWithoutReferentAsksForClarification(t *testing.T) {
	backend := &fakeBackend{name: "primary", reply: "Sure!"}
	svc := newTestService(t, backend)
	session := svc.NewSession()

	reply, err := svc.ProcessMessage(context.Background(), session, "add it")

	require.NoError(t, err)
	assert.Equal(t, RoleAssistant, reply.Role)
	assert.Equal(t, clarifyReply, reply.Content)
	assert.Zero(t, backend.calls)
	assert.Empty(t, svc.cartSvc.Snapshot(session.ID).Items)
}

func TestDoubleProviderFailureYieldsErrorTurn(t *testing.T) {
	primary := &fakeBackend{name: "primary", err: errors.New("network down")}
	fallback := &fakeBackend{name: "fallback", err: errors.New("quota exceeded")}
	svc := newTestService(t, primary, fallback)
	session := svc.NewSession()

	reply, err := svc.ProcessMessage(context.Background(), session, "hello there")

	require.NoError(t, err)
	assert.Equal(t, RoleError, reply.Role)
	assert.Equal(t, apologyReply, reply.Content)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)

	turns := session.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, RoleError, turns[1].Role)
}

func TestCartMutationPartialSuccess(t *testing.T) {
	backend := &fakeBackend{name: "primary", reply: "Sure!"}
	svc := newTestService(t, backend)
	session := svc.NewSession()

	real, err := svc.catalogSvc.GetByID("p-001")
	require.NoError(t, err)

	ghost := catalog.Product{ID: "gone-1", Name: "Discontinued Widget"}
	session.lastSuggested = []catalog.Product{ghost, real}

	reply, err := svc.ProcessMessage(context.Background(), session, "add both")

	require.NoError(t, err)
	assert.Contains(t, reply.Content, real.Name)
	assert.NotContains(t, reply.Content, ghost.Name)

	snapshot := svc.cartSvc.Snapshot(session.ID)
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, real.ID, snapshot.Items[0].Product.ID)
}

func TestNonSeekingTurnLeavesWindowUntouched(t *testing.T) {
	backend := &fakeBackend{name: "primary", reply: "We're open 24/7."}
	svc := newTestService(t, backend)
	session := svc.NewSession()

	reply, err := svc.ProcessMessage(context.Background(), session, "what are your opening hours")

	require.NoError(t, err)
	assert.False(t, reply.Suggested)
	assert.Empty(t, reply.Suggestions)
	assert.Empty(t, session.LastSuggested())
}

func TestTurnInFlightRejected(t *testing.T) {
	backend := &fakeBackend{name: "primary", reply: "Sure!"}
	svc := newTestService(t, backend)
	session := svc.NewSession()

	session.mu.Lock()
	defer session.mu.Unlock()

	_, err := svc.ProcessMessage(context.Background(), session, "hello")

	assert.ErrorIs(t, err, ErrTurnInFlight)
}

func TestEveryTurnRecordsSearch(t *testing.T) {
	backend := &fakeBackend{name: "primary", reply: "Sure!"}
	svc := newTestService(t, backend)
	session := svc.NewSession()

	for range 15 {
		_, err := svc.ProcessMessage(context.Background(), session, "hello there")
		require.NoError(t, err)
	}

	profile := session.Profile()
	assert.Len(t, profile.RecentSearches, svc.cfg.Assistant.SearchWindow)
}
