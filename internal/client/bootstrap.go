package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/stackysides/internal/apperror"
	"github.com/rocketscienceinc/stackysides/transport/rest"
)

const requestTimeout = 10 * time.Second

// NewHTTPClient returns a client that keeps the session cookie between requests.
func NewHTTPClient() (*http.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &http.Client{
		Jar:     jar,
		Timeout: requestTimeout,
	}, nil
}

// CreateGame asks the server for a new game; the session behind httpClient takes the first seat.
func CreateGame(ctx context.Context, httpClient *http.Client, baseURL string, isAgainstAI bool) (*rest.ShareResponse, error) {
	endpoint, err := url.JoinPath(baseURL, "game")
	if err != nil {
		return nil, fmt.Errorf("failed to build url: %w", err)
	}

	form := url.Values{"is_against_ai": {strconv.FormatBool(isAgainstAI)}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var share rest.ShareResponse
	if err = doJSON(httpClient, req, &share); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return &share, nil
}

// Bootstrap fetches the seat, board and WebSocket address for a game.
func Bootstrap(ctx context.Context, httpClient *http.Client, baseURL, gameID string) (*rest.PlayResponse, error) {
	endpoint, err := url.JoinPath(baseURL, "game", gameID, "play")
	if err != nil {
		return nil, fmt.Errorf("failed to build url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	var play rest.PlayResponse
	if err = doJSON(httpClient, req, &play); err != nil {
		return nil, fmt.Errorf("failed to bootstrap game: %w", err)
	}

	return &play, nil
}

// Dial opens the game's WebSocket with the cookies httpClient collected.
func Dial(ctx context.Context, httpClient *http.Client, wsURL string) (*websocket.Conn, error) {
	dialer := websocket.Dialer{
		Jar:              httpClient.Jar,
		HandshakeTimeout: requestTimeout,
	}

	conn, resp, err := dialer.DialContext(ctx, wsURL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, apperror.ErrGameNotFound
		}

		return nil, fmt.Errorf("failed to dial %s: %w", wsURL, err)
	}

	return conn, nil
}

func doJSON(httpClient *http.Client, req *http.Request, out any) error {
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperror.ErrGameNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
