package room

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"pokerverse-server/pkg/deck"
	"pokerverse-server/pkg/holdem"
	"pokerverse-server/pkg/holdem/action"
)

// Room owns one game and the live sessions watching it. All game access
// happens on the room's run loop, so commands for a room apply strictly in
// arrival order; only the session set is guarded by a lock, since joins and
// leaves arrive from other goroutines.
type Room struct {
	id      string
	game    *holdem.Game
	clients map[*Client]bool
	lock    sync.RWMutex

	execInRunLoop chan func()
}

func newRoom(id string, opts holdem.Options) *Room {
	return &Room{
		id:            id,
		game:          holdem.NewGame(id, opts),
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
	}
}

// StartShift starts the run loop
func (r *Room) StartShift() {
	go r.runLoop()
}

func (r *Room) runLoop() {
	logrus.WithField("room", r.id).Debug("creating room run loop")

	for fn := range r.execInRunLoop {
		fn()
	}
}

// Clients will return a slice of connected (at the time) clients
func (r *Room) Clients() []*Client {
	r.lock.RLock()
	defer r.lock.RUnlock()

	clients := make([]*Client, 0, len(r.clients))
	for client := range r.clients {
		clients = append(clients, client)
	}

	return clients
}

// AddClient registers a session and seats its username.
// This method must return quickly.
func (r *Room) AddClient(client *Client) {
	r.lock.Lock()
	client.room = r
	r.clients[client] = true
	r.lock.Unlock()

	r.execInRunLoop <- func() {
		r.game.AddPlayer(client.Username, client.BuyIn)

		r.broadcast(&Response{
			Key:   "playerJoined",
			Value: client.Username,
			Data:  r.game.State(),
		})
	}
}

// RemoveClient drops only the session. The seat and its chip balance stay
// in the game; a later session for the same username picks them back up.
// This method must return quickly.
func (r *Room) RemoveClient(client *Client) {
	r.lock.Lock()
	delete(r.clients, client)
	r.lock.Unlock()

	r.execInRunLoop <- func() {
		r.broadcast(&Response{
			Key:   "playerLeft",
			Value: client.Username,
			Data:  r.game.State(),
		})
	}
}

// ReceivedCommand queues a client command for the run loop
func (r *Room) ReceivedCommand(client *Client, msg *PayloadIn) {
	r.execInRunLoop <- func() {
		r.handleCommand(client, msg)
	}
}

// handleCommand applies one command to the game.
// NOTE: must only be called from the run loop.
func (r *Room) handleCommand(client *Client, msg *PayloadIn) {
	switch msg.Action {
	case "start_game":
		if err := r.game.StartRound(); err != nil {
			r.commandFailed(client, msg, err)
			return
		}

	default:
		act, err := action.FromString(msg.Action)
		if err != nil {
			logrus.WithField("msg", msg).WithField("client", client.String()).Warn("unknown command")
			client.Send(newErrorResponse(msg.Context, err))
			return
		}

		if err := r.game.PlayerAction(client.Username, act, msg.Amount); err != nil {
			r.commandFailed(client, msg, err)
			return
		}
	}

	r.broadcast(&Response{
		Key:     "gameUpdate",
		Data:    r.game.State(),
		Context: msg.Context,
	})
}

// commandFailed routes a rejected command. Running out of cards voids the
// hand for the whole table, so every session gets the error and the
// post-abort state; any other rejection concerns only the acting session.
// NOTE: must only be called from the run loop.
func (r *Room) commandFailed(client *Client, msg *PayloadIn, err error) {
	if errors.Is(err, deck.ErrInsufficientCards) {
		r.broadcast(newErrorResponse(msg.Context, err))
		r.broadcast(&Response{
			Key:     "gameUpdate",
			Data:    r.game.State(),
			Context: msg.Context,
		})
		return
	}

	client.Send(newErrorResponse(msg.Context, err))
}

// broadcast delivers a message to every registered session. A session that
// cannot accept the message is treated as disconnected and dropped; the
// remaining sessions still get their copy.
// NOTE: must only be called from the run loop.
func (r *Room) broadcast(msg interface{}) {
	for _, client := range r.Clients() {
		if client.Send(msg) {
			continue
		}

		logrus.WithField("client", client.String()).Warn("send buffer full, disconnecting client")

		r.lock.Lock()
		delete(r.clients, client)
		r.lock.Unlock()

		select {
		case client.Close <- "connection too slow":
		default:
		}
	}
}
