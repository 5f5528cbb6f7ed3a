package client

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/stackysides/internal/apperror"
	"github.com/rocketscienceinc/stackysides/internal/controller"
	"github.com/rocketscienceinc/stackysides/internal/entity"
	"github.com/rocketscienceinc/stackysides/internal/usecase"
	"github.com/rocketscienceinc/stackysides/testing/memstore"
	"github.com/rocketscienceinc/stackysides/transport/rest"
	"github.com/rocketscienceinc/stackysides/transport/websocket"
)

// newBackend serves the HTTP API and the WebSocket endpoint over an in-memory game manager.
func newBackend(t *testing.T) string {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	manager := usecase.NewGameManager(logger, memstore.NewGames(), memstore.NewBoards())

	wsSrv := httptest.NewServer(websocket.New(logger, manager).Handler())
	t.Cleanup(wsSrv.Close)

	wsURL, err := url.Parse(wsSrv.URL)
	require.NoError(t, err)

	// The listener exists before Start, so the base URL is known when the router is built.
	restSrv := httptest.NewUnstartedServer(nil)
	baseURL := "http://" + restSrv.Listener.Addr().String() + "/"

	server, err := rest.New(logger, manager, baseURL, wsURL.Port())
	require.NoError(t, err)

	restSrv.Config.Handler = server.Handler()
	restSrv.Start()
	t.Cleanup(restSrv.Close)

	return baseURL
}

type player struct {
	play    *rest.PlayResponse
	session *Session
	updates chan controller.View
}

func join(t *testing.T, httpClient *http.Client, baseURL, gameID string) *player {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	play, err := Bootstrap(ctx, httpClient, baseURL, gameID)
	require.NoError(t, err)

	conn, err := Dial(ctx, httpClient, play.WSURL)
	require.NoError(t, err)

	updates := make(chan controller.View, 16)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	session, err := NewSession(logger, conn, play, WithOnUpdate(func(view controller.View) { updates <- view }))
	require.NoError(t, err)

	go func() { _ = session.Run(ctx) }()

	return &player{play: play, session: session, updates: updates}
}

func (that *player) next(t *testing.T) controller.View {
	t.Helper()

	select {
	case view := <-that.updates:
		return view
	case <-time.After(waitTimeout):
		t.Fatal("no update from server")
		return controller.View{}
	}
}

func TestCreateGameAndBootstrap(t *testing.T) {
	baseURL := newBackend(t)
	ctx := context.Background()

	// Given: alice's client creates a game
	aliceHTTP, err := NewHTTPClient()
	require.NoError(t, err)

	share, err := CreateGame(ctx, aliceHTTP, baseURL, true)
	require.NoError(t, err)
	assert.Equal(t, baseURL+"game/"+share.GameID+"/play", share.GameURL)
	assert.True(t, share.IsAgainstAI)

	// When: alice and bob bootstrap the game
	alice, err := Bootstrap(ctx, aliceHTTP, baseURL, share.GameID)
	require.NoError(t, err)

	bobHTTP, err := NewHTTPClient()
	require.NoError(t, err)
	bob, err := Bootstrap(ctx, bobHTTP, baseURL, share.GameID)
	require.NoError(t, err)

	// Then: the creator keeps the first seat through the cookie jar and bob gets the second
	assert.Equal(t, entity.First, alice.PlayerNum)
	assert.Equal(t, entity.Second, bob.PlayerNum)
	assert.True(t, alice.IsAgainstAI)
	assert.Len(t, alice.Board, entity.DefaultBoardSize)
}

func TestBootstrap_UnknownGame(t *testing.T) {
	baseURL := newBackend(t)

	httpClient, err := NewHTTPClient()
	require.NoError(t, err)

	// When: an unknown game is bootstrapped
	_, err = Bootstrap(context.Background(), httpClient, baseURL, "missing")

	// Then: ErrGameNotFound is returned
	require.ErrorIs(t, err, apperror.ErrGameNotFound)
}

func TestSessions_PlayAgainstEachOther(t *testing.T) {
	baseURL := newBackend(t)

	aliceHTTP, err := NewHTTPClient()
	require.NoError(t, err)
	bobHTTP, err := NewHTTPClient()
	require.NoError(t, err)

	share, err := CreateGame(context.Background(), aliceHTTP, baseURL, false)
	require.NoError(t, err)

	// Given: the creator and a guest connected to the same game
	alice := join(t, aliceHTTP, baseURL, share.GameID)
	bob := join(t, bobHTTP, baseURL, share.GameID)
	require.Equal(t, entity.First, alice.play.PlayerNum)
	require.Equal(t, entity.Second, bob.play.PlayerNum)

	// Then: both receive the starting snapshot and only alice may move
	aliceView := alice.next(t)
	bobView := bob.next(t)
	assert.True(t, aliceView.CanPlay)
	assert.False(t, bobView.CanPlay)

	// When: the player to move selects the left edge of the top row
	ok, err := alice.session.Select(context.Background(), 0, 0)
	require.NoError(t, err)
	require.True(t, ok)

	// Then: both sessions receive the authoritative board and the turn passes
	aliceView = alice.next(t)
	bobView = bob.next(t)
	assert.Equal(t, 1, aliceView.Board[0][0])
	assert.Equal(t, 1, bobView.Board[0][0])
	assert.False(t, aliceView.CanPlay)
	assert.True(t, bobView.CanPlay)
}
