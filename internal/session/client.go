package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/inamate/sketchpad/internal/engine"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
)

type Client struct {
	hub     *Hub
	session *Session
	conn    *websocket.Conn

	send     chan []byte
	sendMu   sync.Mutex
	sendShut bool
	ClientID string
}

func NewClient(hub *Hub, session *Session, conn *websocket.Conn, clientID string) *Client {
	return &Client{
		hub:      hub,
		session:  session,
		conn:     conn,
		send:     make(chan []byte, 256),
		ClientID: clientID,
	}
}

func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			c.session.log.Debug("read error", "error", err, "client", c.ClientID)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.session.log.Warn("invalid message", "error", err, "client", c.ClientID)
			continue
		}

		msg.ClientID = c.ClientID
		msg.SessionID = c.session.ID

		if err := c.handleMessage(ctx, &msg); err != nil {
			if errors.Is(err, ErrClosed) {
				return
			}
			c.sendError(msg.Seq, err)
		}
	}
}

func (c *Client) handleMessage(ctx context.Context, msg *Message) error {
	switch msg.Type {
	case TypeInput:
		var ev engine.Event
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			return errors.New("invalid input payload")
		}
		return c.session.Handle(ctx, ev, msg.Seq)

	case TypeSettings:
		var p SettingsPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return errors.New("invalid settings payload")
		}
		return c.session.ApplySettings(ctx, p, msg.Seq)

	default:
		c.session.log.Warn("unknown message type", "type", msg.Type, "client", c.ClientID)
		return errors.New("unknown message type: " + msg.Type)
	}
}

func (c *Client) sendError(seq int64, err error) {
	msg, merr := newMessage(TypeError, seq, ErrorPayload{Message: err.Error()})
	if merr != nil {
		return
	}
	msg.SessionID = c.session.ID
	c.Send(msg)
}

func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				c.session.log.Debug("write error", "error", err, "client", c.ClientID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// Send queues a message without blocking; it is dropped when the buffer is
// full or the client has left.
func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.session.log.Error("marshal message", "error", err)
		return
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.sendShut {
		return
	}

	select {
	case c.send <- data:
	default:
		c.session.log.Warn("client send buffer full, dropping message", "client", c.ClientID)
	}
}

func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.sendShut {
		c.sendShut = true
		close(c.send)
	}
}
