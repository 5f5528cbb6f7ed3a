package rest

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/rocketscienceinc/stackysides/internal/apperror"
	"github.com/rocketscienceinc/stackysides/internal/entity"
	"github.com/rocketscienceinc/stackysides/pkg/session"
	"github.com/skip2/go-qrcode"
)

const qrSize = 320

type ShareResponse struct {
	GameID      string `json:"game_id"`
	GameURL     string `json:"game_url"`
	QRURL       string `json:"qr_url"`
	IsAgainstAI bool   `json:"is_against_ai"`
}

// PlayResponse is everything a client needs to start playing.
type PlayResponse struct {
	GameID      string           `json:"game_id"`
	PlayerNum   entity.PlayerNum `json:"player_num"`
	IsAgainstAI bool             `json:"is_against_ai"`
	Status      string           `json:"status"`
	Outcome     *entity.Outcome  `json:"outcome,omitempty"`
	Board       [][]int          `json:"board"`
	WSURL       string           `json:"ws_url"`
}

func (that *Server) createGame(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	log := that.logger.With("method", "createGame")

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	isAgainstAI, err := parseFlag(r.PostForm.Get("is_against_ai"))
	if err != nil {
		http.Error(w, "is_against_ai must be a boolean", http.StatusBadRequest)
		return
	}

	sessionKey := session.GetOrSet(w, r)

	game, err := that.game.CreateGame(r.Context(), sessionKey, isAgainstAI)
	if err != nil {
		log.Error("failed to create game", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/game/"+game.ID+"/share", http.StatusSeeOther)
}

func (that *Server) shareGame(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	game, ok := that.lookupGame(w, r, ps.ByName("id"))
	if !ok {
		return
	}

	that.writeJSON(w, ShareResponse{
		GameID:      game.ID,
		GameURL:     that.gameURL(game.ID),
		QRURL:       that.baseURL.JoinPath("game", game.ID, "qr").String(),
		IsAgainstAI: game.IsAgainstAI,
	})
}

func (that *Server) qrCode(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	log := that.logger.With("method", "qrCode")

	game, ok := that.lookupGame(w, r, ps.ByName("id"))
	if !ok {
		return
	}

	png, err := qrcode.Encode(that.gameURL(game.ID), qrcode.Medium, qrSize)
	if err != nil {
		log.Error("failed to encode qr code", "error", err)
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func (that *Server) playGame(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	log := that.logger.With("method", "playGame")

	sessionKey := session.GetOrSet(w, r)

	seat, game, err := that.game.JoinGame(r.Context(), ps.ByName("id"), sessionKey)
	if errors.Is(err, apperror.ErrGameNotFound) {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error("failed to join game", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, PlayResponse{
		GameID:      game.ID,
		PlayerNum:   seat,
		IsAgainstAI: game.IsAgainstAI,
		Status:      game.Status,
		Outcome:     game.Outcome,
		Board:       game.Board.IntRows(),
		WSURL:       that.wsURL(game.ID),
	})
}

func (that *Server) lookupGame(w http.ResponseWriter, r *http.Request, id string) (*entity.Game, bool) {
	game, err := that.game.Game(r.Context(), id)
	if errors.Is(err, apperror.ErrGameNotFound) {
		http.Error(w, "game not found", http.StatusNotFound)
		return nil, false
	}

	if err != nil {
		that.logger.Error("failed to get game", "error", err, "game_id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}

	return game, true
}

func (that *Server) writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *Server) gameURL(id string) string {
	return that.baseURL.JoinPath("game", id, "play").String()
}

// wsURL points at the WebSocket server: same host as the base URL, ws scheme, socket port.
func (that *Server) wsURL(id string) string {
	wsURL := *that.baseURL

	wsURL.Scheme = "ws"
	if that.baseURL.Scheme == "https" {
		wsURL.Scheme = "wss"
	}

	if that.socketPort != "" {
		wsURL.Host = net.JoinHostPort(wsURL.Hostname(), that.socketPort)
	}

	return wsURL.JoinPath("game", id, "ws").String()
}

// parseFlag accepts anything strconv.ParseBool does plus the "on" a checkbox posts.
func parseFlag(value string) (bool, error) {
	switch value {
	case "":
		return false, nil
	case "on":
		return true, nil
	default:
		return strconv.ParseBool(value)
	}
}
