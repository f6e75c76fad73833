package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/san-kum/warpsim/internal/config"
	"github.com/san-kum/warpsim/internal/metric"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 1024
	// Frames queued for a slow client before new ones are dropped.
	sendBuffer = 8
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// Request is a client message. Every request replaces the session state.
type Request struct {
	Mode    metric.Mode   `json:"mode"`
	View    metric.View   `json:"view"`
	Params  metric.Params `json:"params"`
	Animate bool          `json:"animate"`
}

type incoming struct {
	req Request
	err error
}

// session drives one websocket client: readPump decodes requests, run owns
// the state and animation ticker, writePump delivers frames and pings.
type session struct {
	conn     *websocket.Conn
	send     chan []byte
	requests chan incoming
	fps      int
	log      *slog.Logger
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "err", err)
		return
	}
	sess := &session{
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		requests: make(chan incoming),
		fps:      s.fps,
		log:      s.log.With("remote", r.RemoteAddr),
	}
	sess.log.Info("client connected")

	done := make(chan struct{})
	go sess.writePump()
	go sess.readPump(done)
	sess.run(r.Context(), done)
	sess.log.Info("client disconnected")
}

func (s *session) readPump(done <-chan struct{}) {
	defer close(s.requests)
	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("read failed", "err", err)
			}
			return
		}

		var in incoming
		if err := json.Unmarshal(message, &in.req); err != nil {
			in.err = err
		}
		select {
		case s.requests <- in:
		case <-done:
			return
		}
	}
}

func (s *session) run(ctx context.Context, done chan struct{}) {
	defer close(s.send)
	defer close(done)

	var (
		state  Request
		ticker *time.Ticker
		tick   <-chan time.Time
	)
	stop := func() {
		if ticker != nil {
			ticker.Stop()
			ticker, tick = nil, nil
		}
	}
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-s.requests:
			if !ok {
				return
			}
			if in.err != nil {
				s.push(Frame{Error: in.err.Error()})
				continue
			}
			state = in.req
			state.Params = config.Clamp(state.Params)
			s.push(NewFrame(state.Mode, state.View, state.Params))
			switch {
			case state.Animate && ticker == nil:
				ticker = time.NewTicker(time.Second / time.Duration(s.fps))
				tick = ticker.C
			case !state.Animate:
				stop()
			}
		case <-tick:
			state.Params = config.Tick(state.Params)
			s.push(NewFrame(state.Mode, state.View, state.Params))
		}
	}
}

// push queues a frame, dropping it when the client is too slow to keep up.
func (s *session) push(f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		s.log.Error("encode frame", "err", err)
		return
	}
	select {
	case s.send <- data:
	default:
		s.log.Debug("frame dropped", "rotation", f.Params.RotationDeg)
	}
}

func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()
	for {
		select {
		case message, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
