package main

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufSize       = 256
	maxMessagesPerSec = 120
	maxNameLen        = 16
)

// Client represents a WebSocket connection
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	id         string
	matchID    string
	watching   bool
	remoteAddr string
	msgCount   int
	msgResetAt time.Time
}

// NewClient creates a new Client
func NewClient(hub *Hub, conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufSize),
		id:         GenerateID(4),
		remoteAddr: remoteAddr,
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer func() {
		c.hub.TrackDisconnect(c.remoteAddr)
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws error: %v", err)
			}
			break
		}

		// Rate limiting
		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			log.Printf("rate limit exceeded for %s, disconnecting", c.remoteAddr)
			break
		}

		c.handleMessage(message)
	}
}

// WritePump writes messages to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// Check for binary marker (0xFF prefix from SendBinary)
			var err error
			if len(message) > 0 && message[0] == 0xFF {
				err = c.conn.WriteMessage(websocket.BinaryMessage, message[1:])
			} else {
				err = c.conn.WriteMessage(websocket.TextMessage, message)
			}
			if err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendJSON sends a JSON message to the client
func (c *Client) SendJSON(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal error: %v", err)
		return
	}
	c.SendRaw(data)
}

// SendRaw sends pre-marshaled bytes as a text message to the client
func (c *Client) SendRaw(data []byte) {
	defer func() { recover() }()
	select {
	case c.send <- data:
	default:
		// Client too slow, drop message
	}
}

// SendBinary sends pre-marshaled bytes as a binary WebSocket message.
// Prefixes with 0xFF marker byte so WritePump can distinguish from text.
func (c *Client) SendBinary(data []byte) {
	defer func() { recover() }()
	msg := make([]byte, len(data)+1)
	msg[0] = 0xFF
	copy(msg[1:], data)
	select {
	case c.send <- msg:
	default:
	}
}

func (c *Client) sendError(msg string) {
	c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: msg}})
}

// handleMessage routes incoming messages (single-pass decode via InEnvelope)
func (c *Client) handleMessage(raw []byte) {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("unmarshal error: %v", err)
		return
	}

	switch env.T {
	case MsgStart:
		c.handleStart(env.D)
	case MsgResume:
		c.handleResume(env.D)
	case MsgWatch:
		c.handleWatch(env.D)
	case MsgInput:
		c.handleInput(env.D)
	case MsgLeave:
		c.handleLeave()
	}
}

func (c *Client) handleStart(data json.RawMessage) {
	if c.matchID != "" {
		c.sendError("already in a match")
		return
	}
	var msg StartMsg
	if len(data) > 0 {
		if err := json.Unmarshal(data, &msg); err != nil {
			return
		}
	}
	name := truncateName(strings.TrimSpace(msg.Name))

	m, err := c.hub.sessions.CreateMatch()
	if err != nil {
		c.sendError(err.Error())
		return
	}
	if err := m.Start(name); err != nil {
		log.Printf("start error: %v", err)
		c.hub.sessions.RemoveMatch(m.ID)
		c.sendError("could not start match")
		return
	}
	c.join(m)
}

func (c *Client) handleResume(data json.RawMessage) {
	var msg ResumeMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	mid, _, err := c.hub.tickets.Validate(msg.Ticket)
	if err != nil {
		c.sendError("invalid ticket")
		return
	}
	if c.matchID != "" && c.matchID != mid {
		c.sendError("already in a match")
		return
	}
	m := c.hub.sessions.GetMatch(mid)
	if m == nil {
		c.sendError("match not found")
		return
	}
	c.hub.sessions.analytics.Track(EvtResume, mid, 0, "")
	c.join(m)
}

// join attaches the client to m and sends the welcome with a fresh ticket
func (c *Client) join(m *Match) {
	name := m.PlayerName()
	ticket, err := c.hub.tickets.Issue(m.ID, name)
	if err != nil {
		log.Printf("ticket error: %v", err)
		c.sendError("internal error")
		return
	}
	c.matchID = m.ID
	c.watching = false
	c.SendJSON(Envelope{T: MsgWelcome, Data: WelcomeMsg{
		MatchID:   m.ID,
		Ticket:    ticket,
		Name:      name,
		Obstacles: obstacleStates(m.Obstacles()),
	}})
	m.Attach(c.id, c)
	if over, ok := m.Over(); ok {
		c.SendJSON(Envelope{T: MsgOver, Data: over})
	}
}

// handleWatch follows a match read-only; the match keeps its pause state
func (c *Client) handleWatch(data json.RawMessage) {
	if c.matchID != "" {
		c.sendError("already in a match")
		return
	}
	var msg WatchMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	m := c.hub.sessions.GetMatch(msg.MatchID)
	if m == nil {
		c.sendError("match not found")
		return
	}
	c.matchID = m.ID
	c.watching = true
	c.SendJSON(Envelope{T: MsgWatching, Data: WatchingMsg{
		MatchID:   m.ID,
		Name:      m.PlayerName(),
		Obstacles: obstacleStates(m.Obstacles()),
	}})
	m.Watch(c.id, c)
	if over, ok := m.Over(); ok {
		c.SendJSON(Envelope{T: MsgOver, Data: over})
	}
}

func (c *Client) handleInput(data json.RawMessage) {
	if c.matchID == "" {
		return
	}
	if c.watching {
		c.sendError("watchers cannot send input")
		return
	}
	var input InputMsg
	if err := json.Unmarshal(data, &input); err != nil {
		return
	}
	m := c.hub.sessions.GetMatch(c.matchID)
	if m == nil {
		return
	}
	m.HandleInput(input)
}

func (c *Client) handleLeave() {
	if c.matchID != "" {
		c.hub.sessions.Detach(c.matchID, c.id)
		c.matchID = ""
		c.watching = false
	}
}

// truncateName caps a display name at maxNameLen runes
func truncateName(name string) string {
	if r := []rune(name); len(r) > maxNameLen {
		return string(r[:maxNameLen])
	}
	return name
}
