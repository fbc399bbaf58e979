package room

import (
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	// Username identifies the seat this session plays
	Username string

	// BuyIn is the chip balance the seat is created with on first join
	BuyIn int

	roomID string
	room   *Room
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, roomID, username string, buyIn int) *Client {
	return &Client{
		Conn:     conn,
		send:     make(chan interface{}, 256),
		Close:    make(chan string),
		Username: username,
		BuyIn:    buyIn,
		roomID:   roomID,
	}
}

// Send sends a message to the web client.
// It returns false if the client's buffer is full and the message was dropped.
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel of outbound messages
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the session
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.Username, c.roomID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *PayloadIn) {
	if c.room == nil {
		logrus.WithField("msg", msg).Warn("received message, but client has no room")
		return
	}

	c.room.ReceivedCommand(c, msg)
}
