package service

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/twipi/tateti/game"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 500
	maxBodySize        = 1 << 16
)

type moveRequest struct {
	Board json.RawMessage `json:"board"`
}

type moveResponse struct {
	Movimiento int `json:"movimiento"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Handler returns the HTTP routes of the service.
func (s *Service) Handler() http.Handler {
	r := http.NewServeMux()
	r.HandleFunc("GET /health", healthCheck)
	r.HandleFunc("POST /move", s.postMove)
	r.HandleFunc("GET /move", s.getMove)
	r.HandleFunc("GET /stats", s.getStats)
	r.HandleFunc("GET /moves/recent", s.getRecentMoves)
	r.HandleFunc("GET /ws", s.serveWS)
	return logRequests(s.logger.With("component", "http"), r)
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (s *Service) postMove(w http.ResponseWriter, r *http.Request) {
	var body json.RawMessage
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, ErrInvalidBody)
		return
	}

	// A body that is valid JSON but not an object carries no board.
	var req moveRequest
	if body = bytes.TrimSpace(body); len(body) > 0 && body[0] == '{' {
		if err := json.Unmarshal(body, &req); err != nil {
			s.writeError(w, ErrInvalidBody)
			return
		}
	}

	board, err := ParseBoard(req.Board)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.respondMove(w, r, board)
}

func (s *Service) getMove(w http.ResponseWriter, r *http.Request) {
	board, err := ParseBoardParam(r.URL.Query().Get("board"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.respondMove(w, r, board)
}

func (s *Service) respondMove(w http.ResponseWriter, r *http.Request, board game.Board) {
	decision, err := s.Move(r.Context(), SourceHTTP, board)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, moveResponse{Movimiento: int(decision.Position)})
}

func (s *Service) getStats(w http.ResponseWriter, r *http.Request) {
	stats := s.Stats()
	if stats == nil {
		stats = []Stat{}
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Service) getRecentMoves(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, errorResponse{"Invalid limit parameter"})
			return
		}
		limit = min(n, maxRecentLimit)
	}

	entries, ok, err := s.RecentMoves(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{"Move journal is disabled"})
		return
	}
	if entries == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Service) writeError(w http.ResponseWriter, err error) {
	if isClientError(err) {
		writeJSON(w, http.StatusBadRequest, errorResponse{errorMessage(err)})
		return
	}

	s.logger.Error(
		"failed to serve request",
		"err", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{errorMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

const requestIDHeader = "X-Request-Id"

// logRequests tags every request with an id and logs it once served.
func logRequests(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		logger.Debug(
			"served request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Hijack lets websocket upgrades through the recorder.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	r.status = http.StatusSwitchingProtocols
	return http.NewResponseController(r.ResponseWriter).Hijack()
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
