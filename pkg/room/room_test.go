package room

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pokerverse-server/pkg/holdem"
)

func receive(t *testing.T, c *Client) *Response {
	t.Helper()

	select {
	case msg := <-c.SendChan():
		resp, ok := msg.(*Response)
		if !ok {
			t.Fatalf("expected *Response, got %T", msg)
		}
		return resp
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}

	return nil
}

func gameState(t *testing.T, resp *Response) *holdem.State {
	t.Helper()

	state, ok := resp.Data.(*holdem.State)
	if !ok {
		t.Fatalf("expected *holdem.State, got %T", resp.Data)
	}

	return state
}

func joinedClient(t *testing.T, m *Manager, roomID, username string) *Client {
	t.Helper()

	client := NewClient(nil, roomID, username, 1000)
	m.ClientConnected(client)

	resp := receive(t, client)
	assert.Equal(t, "playerJoined", resp.Key)

	return client
}

func TestManager_JoinSeatsPlayer(t *testing.T) {
	a := assert.New(t)

	m := NewManager(holdem.DefaultOptions())
	m.StartShift()

	alice := joinedClient(t, m, "room-1", "alice")

	bob := NewClient(nil, "room-1", "bob", 1000)
	m.ClientConnected(bob)

	// everyone in the room hears about the new seat
	resp := receive(t, alice)
	a.Equal("playerJoined", resp.Key)
	a.Equal("bob", resp.Value)

	state := gameState(t, receive(t, bob))
	a.Equal("room-1", state.RoomID)
	a.Equal(2, len(state.Players))
	a.Equal(1000, state.Players[0].Chips)
	a.False(state.Active)
}

func TestManager_RoomsAreIndependent(t *testing.T) {
	a := assert.New(t)

	m := NewManager(holdem.DefaultOptions())
	m.StartShift()

	alice := joinedClient(t, m, "room-1", "alice")
	carol := joinedClient(t, m, "room-2", "carol")

	dave := NewClient(nil, "room-2", "dave", 1000)
	m.ClientConnected(dave)

	resp := receive(t, dave)
	a.Equal("playerJoined", resp.Key)

	state := gameState(t, resp)
	a.Equal("room-2", state.RoomID)
	a.Equal(2, len(state.Players))

	// carol heard about dave; alice did not
	a.Equal("playerJoined", receive(t, carol).Key)
	select {
	case msg := <-alice.SendChan():
		t.Fatalf("unexpected message for alice: %v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRoom_StartGameRequiresTwoPlayers(t *testing.T) {
	a := assert.New(t)

	m := NewManager(holdem.DefaultOptions())
	m.StartShift()

	alice := joinedClient(t, m, "room-1", "alice")
	alice.ReceivedMessage(&PayloadIn{Action: "start_game", Context: "c1"})

	resp := receive(t, alice)
	a.Equal("error", resp.Key)
	a.Equal("at least two players are required", resp.Value)
	a.Equal("c1", resp.Context)
}

func TestRoom_PlayHand(t *testing.T) {
	a := assert.New(t)

	m := NewManager(holdem.DefaultOptions())
	m.StartShift()

	alice := joinedClient(t, m, "room-1", "alice")
	bob := NewClient(nil, "room-1", "bob", 1000)
	m.ClientConnected(bob)
	receive(t, alice) // bob joined
	receive(t, bob)

	alice.ReceivedMessage(&PayloadIn{Action: "start_game"})

	state := gameState(t, receive(t, alice))
	a.True(state.Active)
	a.Equal(30, state.Pot)
	a.Equal(20, state.CurrentBet)
	a.True(state.Players[0].IsTurn)
	receive(t, bob)

	alice.ReceivedMessage(&PayloadIn{Action: "call"})
	state = gameState(t, receive(t, alice))
	a.Equal(40, state.Pot)
	a.True(state.Players[1].IsTurn)
	receive(t, bob)

	bob.ReceivedMessage(&PayloadIn{Action: "check"})
	state = gameState(t, receive(t, alice))
	a.Equal(3, len(state.Community))
	a.Equal(0, state.CurrentBet)
	receive(t, bob)
}

func TestRoom_ErrorGoesToActingSessionOnly(t *testing.T) {
	a := assert.New(t)

	m := NewManager(holdem.DefaultOptions())
	m.StartShift()

	alice := joinedClient(t, m, "room-1", "alice")
	bob := NewClient(nil, "room-1", "bob", 1000)
	m.ClientConnected(bob)
	receive(t, alice)
	receive(t, bob)

	alice.ReceivedMessage(&PayloadIn{Action: "start_game"})
	receive(t, alice)
	receive(t, bob)

	// bob acts out of turn
	bob.ReceivedMessage(&PayloadIn{Action: "call", Context: "c7"})

	resp := receive(t, bob)
	a.Equal("error", resp.Key)
	a.Equal("not your turn", resp.Value)
	a.Equal("c7", resp.Context)

	select {
	case msg := <-alice.SendChan():
		t.Fatalf("unexpected message for alice: %v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRoom_UnknownCommand(t *testing.T) {
	a := assert.New(t)

	m := NewManager(holdem.DefaultOptions())
	m.StartShift()

	alice := joinedClient(t, m, "room-1", "alice")
	alice.ReceivedMessage(&PayloadIn{Action: "bet"})

	resp := receive(t, alice)
	a.Equal("error", resp.Key)
	a.Equal("unknown action for identifier: bet", resp.Value)
}

func TestRoom_DeckExhaustionAbortsForEveryone(t *testing.T) {
	a := assert.New(t)

	m := NewManager(holdem.DefaultOptions())
	m.StartShift()

	// 27 seats want 54 hole cards, more than the deck holds
	clients := make([]*Client, 27)
	for i := range clients {
		clients[i] = joinedClient(t, m, "room-1", fmt.Sprintf("player-%d", i))
	}

	clients[0].ReceivedMessage(&PayloadIn{Action: "start_game", Context: "c9"})

	// the voided hand reaches every session, not just the one that started it
	for _, c := range clients {
		resp := receive(t, c)
		for resp.Key == "playerJoined" {
			resp = receive(t, c)
		}

		a.Equal("error", resp.Key)
		a.Equal("hand aborted: not enough cards in deck", resp.Value)
		a.Equal("c9", resp.Context)

		state := gameState(t, receive(t, c))
		a.False(state.Active)
		a.Equal(0, state.Pot)
	}
}

func TestRoom_LeaveKeepsSeat(t *testing.T) {
	a := assert.New(t)

	m := NewManager(holdem.DefaultOptions())
	m.StartShift()

	alice := joinedClient(t, m, "room-1", "alice")
	bob := NewClient(nil, "room-1", "bob", 1000)
	m.ClientConnected(bob)
	receive(t, alice)
	receive(t, bob)

	m.ClientDisconnected(bob)

	resp := receive(t, alice)
	a.Equal("playerLeft", resp.Key)
	a.Equal("bob", resp.Value)

	// the seat and its chips survive the disconnect
	state := gameState(t, resp)
	a.Equal(2, len(state.Players))
	a.Equal("bob", state.Players[1].Username)
	a.Equal(1000, state.Players[1].Chips)
}

func TestClient_ReceivedMessageWithoutRoom(t *testing.T) {
	client := NewClient(nil, "room-1", "alice", 1000)

	// must not panic before the client is attached to a room
	client.ReceivedMessage(&PayloadIn{Action: "call"})
	assert.Equal(t, "alice:room-1", client.String())
}
