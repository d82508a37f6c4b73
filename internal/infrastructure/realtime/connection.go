package realtime

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

var (
	// ErrConnectionClosed is returned by Send once the connection is closed
	ErrConnectionClosed = errors.New("connection closed")

	// ErrSendBufferFull is returned when a slow client could not keep up
	ErrSendBufferFull = errors.New("connection send buffer exceeded")
)

// Close reasons recorded on the connection
const (
	CloseReasonSlowConsumer = "send buffer full"
	CloseReasonShutdown     = "server shutdown"
	CloseReasonSession      = "session closed"
)

type frame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// Connection wraps a websocket and serialises outbound writes through a bounded buffer.
// Send never blocks; a full buffer closes the connection.
type Connection struct {
	id     string
	userID string

	ws     *websocket.Conn
	send   chan []byte
	once   sync.Once
	closed chan struct{}

	mu     sync.Mutex
	reason string
}

// NewConnection constructs a Connection for the authenticated user
func NewConnection(userID string, ws *websocket.Conn, buffer int) *Connection {
	if buffer <= 0 {
		buffer = 128
	}
	return &Connection{
		id:     uuid.NewString(),
		userID: userID,
		ws:     ws,
		send:   make(chan []byte, buffer),
		closed: make(chan struct{}),
	}
}

func (c *Connection) ID() string     { return c.id }
func (c *Connection) UserID() string { return c.userID }

// Start launches the write loop. It must be called exactly once.
func (c *Connection) Start() {
	go c.writeLoop()
}

// Send encodes an event frame and enqueues it for delivery
func (c *Connection) Send(event string, data interface{}) error {
	payload, err := json.Marshal(frame{Event: event, Data: data})
	if err != nil {
		return fmt.Errorf("encode %s frame: %w", event, err)
	}
	return c.enqueue(payload)
}

func (c *Connection) enqueue(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.closed:
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- payload:
		return nil
	default:
		c.closeLocked(websocket.ClosePolicyViolation, CloseReasonSlowConsumer)
		return ErrSendBufferFull
	}
}

// Close terminates the connection and stops the write loop
func (c *Connection) Close(code int, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked(code, reason)
}

func (c *Connection) closeLocked(code int, reason string) {
	c.once.Do(func() {
		c.reason = reason
		close(c.closed)
		// socket I/O may stall on a dead peer and callers include the hub
		go func() {
			_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(writeWait))
			_ = c.ws.Close()
		}()
	})
}

// CloseReason is the reason the server closed the connection, empty if it did not
func (c *Connection) CloseReason() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reason
}

// Closed is closed once the connection is closed
func (c *Connection) Closed() <-chan struct{} {
	return c.closed
}

func (c *Connection) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.closed:
			return
		case msg := <-c.send:
			if err := c.write(websocket.TextMessage, msg); err != nil {
				c.Close(websocket.CloseAbnormalClosure, err.Error())
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				c.Close(websocket.CloseAbnormalClosure, err.Error())
				return
			}
		}
	}
}

func (c *Connection) write(messageType int, payload []byte) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(messageType, payload)
}
