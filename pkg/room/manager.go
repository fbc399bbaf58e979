package room

import (
	"github.com/sirupsen/logrus"

	"pokerverse-server/pkg/holdem"
)

// Manager is responsible for dispatching sessions to rooms
type Manager struct {
	rooms      map[string]*Room
	options    holdem.Options
	connect    chan *Client
	disconnect chan *Client
}

// NewManager returns a new dispatch object
func NewManager(opts holdem.Options) *Manager {
	return &Manager{
		rooms:      make(map[string]*Room),
		options:    opts,
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
	}
}

// StartShift starts the Manager run loop
func (m *Manager) StartShift() {
	go m.runLoop()
}

func (m *Manager) runLoop() {
	for {
		select {
		case client := <-m.connect:
			logrus.WithField("client", client.String()).Debug("client connected")

			room, found := m.rooms[client.roomID]
			if !found {
				room = newRoom(client.roomID, m.options)
				room.StartShift()
				m.rooms[client.roomID] = room
			}

			room.AddClient(client)
		case client := <-m.disconnect:
			logrus.WithField("client", client.String()).Debug("client disconnected")

			room, found := m.rooms[client.roomID]
			if !found {
				logrus.WithField("room", client.roomID).WithField("type", "exception").Error("room not found")
				continue
			}

			// rooms live for the lifetime of the process; only the session goes
			room.RemoveClient(client)
		}
	}
}

// ClientConnected is called when a client connects to the server
func (m *Manager) ClientConnected(client *Client) {
	m.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (m *Manager) ClientDisconnected(client *Client) {
	m.disconnect <- client
}
