package scores

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// Message types exchanged with the score server.
const (
	MsgSubmit = "submit"
	MsgFetch  = "fetch"
	MsgBoard  = "board"
	MsgError  = "error"
)

// Message is the JSON envelope for every frame on the score socket.
// Replies carry the ID of the request they answer; board updates pushed
// after another player's submit carry no ID.
type Message struct {
	Type     string  `json:"type"`
	ID       string  `json:"id,omitempty"`
	Category string  `json:"category"`
	Entry    *Entry  `json:"entry,omitempty"`
	Entries  []Entry `json:"entries,omitempty"`
	Error    string  `json:"error,omitempty"`
}

type reply struct {
	client *client
	data   []byte
}

type client struct {
	srv  *Server
	conn *websocket.Conn
	send chan []byte
}

// Server shares one board between connected players.
type Server struct {
	store *FileStore

	clients    map[*client]bool
	broadcast  chan []byte
	direct     chan reply
	register   chan *client
	unregister chan *client
	done       chan struct{}
}

// NewServer creates a server over a file-backed board. Call Run before
// serving connections.
func NewServer(store *FileStore) *Server {
	return &Server{
		store:      store,
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte),
		direct:     make(chan reply),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
}

// Run owns the client registry until ctx is done.
func (s *Server) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(s.done)
			for c := range s.clients {
				close(c.send)
				delete(s.clients, c)
			}
			return

		case c := <-s.register:
			s.clients[c] = true
			slog.Debug("score client connected", "clients", len(s.clients))

		case c := <-s.unregister:
			if _, ok := s.clients[c]; ok {
				delete(s.clients, c)
				close(c.send)
			}

		case r := <-s.direct:
			if _, ok := s.clients[r.client]; ok {
				s.deliver(r.client, r.data)
			}

		case msg := <-s.broadcast:
			for c := range s.clients {
				s.deliver(c, msg)
			}
		}
	}
}

// deliver queues a frame, dropping clients whose buffer is full.
func (s *Server) deliver(c *client, data []byte) {
	select {
	case c.send <- data:
	default:
		close(c.send)
		delete(s.clients, c)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeHTTP upgrades the request to a websocket and serves it.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	c := &client{srv: s, conn: conn, send: make(chan []byte, 16)}
	select {
	case s.register <- c:
	case <-s.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

func (c *client) readPump() {
	defer func() {
		select {
		case c.srv.unregister <- c:
		case <-c.srv.done:
		}
		c.conn.Close()
	}()
	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("score client read failed", "error", err)
			}
			return
		}
		c.srv.handle(c, msg)
	}
}

func (c *client) writePump() {
	defer c.conn.Close()
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

func (s *Server) handle(c *client, msg Message) {
	resp := Message{Type: MsgBoard, ID: msg.ID, Category: msg.Category}

	switch msg.Type {
	case MsgFetch:
		resp.Entries = s.store.Board().Top(msg.Category)

	case MsgSubmit:
		if msg.Entry == nil {
			resp.Type, resp.Error = MsgError, "submit without entry"
			break
		}
		e := *msg.Entry
		e.Category = msg.Category
		entries, err := s.store.Put(e)
		if err != nil {
			slog.Error("save board failed", "error", err)
		}
		resp.Entries = entries
		slog.Info("score submitted", "entry", e)

		update, _ := json.Marshal(Message{Type: MsgBoard, Category: msg.Category, Entries: entries})
		defer func() {
			select {
			case s.broadcast <- update:
			case <-s.done:
			}
		}()

	default:
		resp.Type, resp.Error = MsgError, "unknown message type "+msg.Type
	}

	data, err := json.Marshal(resp)
	if err != nil {
		slog.Error("encode reply failed", "error", err)
		return
	}
	select {
	case s.direct <- reply{client: c, data: data}:
	case <-s.done:
	}
}
