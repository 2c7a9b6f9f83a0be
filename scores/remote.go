package scores

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// RemoteStore talks to a score server. Each call runs on its own goroutine
// and completes its Request when the server answers or the timeout expires.
type RemoteStore struct {
	url     string
	player  string
	timeout time.Duration
	dialer  *websocket.Dialer
	seq     atomic.Uint64
}

// NewRemoteStore creates a client for the server at url (ws://host/path).
func NewRemoteStore(url, player string, timeout time.Duration) *RemoteStore {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RemoteStore{
		url:     url,
		player:  player,
		timeout: timeout,
		dialer:  &websocket.Dialer{HandshakeTimeout: timeout},
	}
}

func (s *RemoteStore) Submit(category string, sc Score) *Request {
	e := NewEntry(category, s.player, sc)
	return s.do(Message{Type: MsgSubmit, Category: category, Entry: &e})
}

func (s *RemoteStore) Fetch(category string) *Request {
	return s.do(Message{Type: MsgFetch, Category: category})
}

func (s *RemoteStore) do(msg Message) *Request {
	msg.ID = fmt.Sprintf("%s-%d", s.player, s.seq.Add(1))
	r := newRequest()
	go func() {
		entries, err := s.roundTrip(msg)
		if err != nil {
			slog.Warn("score request failed", "type", msg.Type, "category", msg.Category, "error", err)
		}
		r.resolve(entries, err)
	}()
	return r
}

func (s *RemoteStore) roundTrip(msg Message) ([]Entry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial score server: %w", err)
	}
	defer conn.Close()

	deadline, _ := ctx.Deadline()
	conn.SetReadDeadline(deadline)
	conn.SetWriteDeadline(deadline)

	if err := conn.WriteJSON(msg); err != nil {
		return nil, fmt.Errorf("send %s: %w", msg.Type, err)
	}
	for {
		var resp Message
		if err := conn.ReadJSON(&resp); err != nil {
			return nil, fmt.Errorf("read reply: %w", err)
		}
		if resp.ID != msg.ID {
			continue
		}
		if resp.Type == MsgError {
			return nil, errors.New(resp.Error)
		}
		return resp.Entries, nil
	}
}
