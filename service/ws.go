package service

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsIdlePingInterval = 30 * time.Second
	wsWriteTimeout     = 10 * time.Second
	wsSendBuffer       = 16
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// wsMessage is the reply to a board sent over the websocket. Exactly one of
// its fields is set.
type wsMessage struct {
	Movimiento *int   `json:"movimiento,omitempty"`
	Error      string `json:"error,omitempty"`
}

// serveWS answers every board received over the connection with a move.
func (s *Service) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug(
			"failed to upgrade websocket",
			"err", err)
		return
	}

	logger := s.logger.With("component", "ws", "remote_addr", r.RemoteAddr)
	logger.Debug("websocket connected")

	send := make(chan []byte, wsSendBuffer)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, send); err != nil {
			logger.Debug(
				"websocket write failed",
				"err", err)
		}
	}()

	defer func() {
		close(send)
		<-done
		logger.Debug("websocket disconnected")
	}()

	ctx := r.Context()
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var reply wsMessage

		var req moveRequest
		if err := json.Unmarshal(message, &req); err != nil {
			reply.Error = errorMessage(ErrInvalidBody)
		} else if board, err := ParseBoard(req.Board); err != nil {
			reply.Error = errorMessage(err)
		} else if decision, err := s.Move(ctx, SourceWebsocket, board); err != nil {
			reply.Error = errorMessage(err)
		} else {
			p := int(decision.Position)
			reply.Movimiento = &p
		}

		b, err := json.Marshal(reply)
		if err != nil {
			logger.Error(
				"failed to marshal websocket reply",
				"err", err)
			return
		}

		select {
		case send <- b:
		case <-done:
			return
		}
	}
}

// writeWSWithHeartbeat writes every message from send to conn, pinging the
// peer when the connection has been idle for a while. It returns nil once send
// is closed.
func writeWSWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				conn.WriteControl(
					websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(wsWriteTimeout))
				return nil
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout)); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
