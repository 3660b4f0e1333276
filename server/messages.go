package server

import (
	"encoding/json"

	"github.com/texasholdem/holdem/cards"
	"github.com/texasholdem/holdem/game"
	"github.com/texasholdem/holdem/hands"
)

// Envelope is the wire format for every websocket message in both
// directions: {"event": "...", "data": {...}}.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func encodeEvent(event string, data any) []byte {
	msg, err := json.Marshal(struct {
		Event string `json:"event"`
		Data  any    `json:"data,omitempty"`
	}{Event: event, Data: data})
	if err != nil {
		// Outbound payloads are our own structs; a marshal failure is a bug
		panic(err)
	}
	return msg
}

// Inbound payloads

type createRoomPayload struct {
	Nickname string `json:"nickname"`
}

type joinRoomPayload struct {
	RoomCode    string `json:"roomCode"`
	Nickname    string `json:"nickname"`
	AsSpectator bool   `json:"asSpectator"`
}

type playerActionPayload struct {
	Action string `json:"action"`
	Amount int    `json:"amount"`
}

type sendMessagePayload struct {
	Message string `json:"message"`
}

type attemptReconnectPayload struct {
	RoomCode    string `json:"roomCode"`
	OldPlayerID string `json:"oldPlayerId"`
}

type updateRoomSettingsPayload struct {
	ShowAllHands bool `json:"showAllHands"`
}

type updateInitialChipsPayload struct {
	InitialChips int `json:"initialChips"`
}

type switchToPlayerPayload struct {
	Nickname string `json:"nickname"`
}

// Outbound payloads

type errorPayload struct {
	Message string `json:"message"`
}

type chatMessagePayload struct {
	From    string `json:"from"`
	Message string `json:"message"`
}

type leaderboardEntry struct {
	PlayerID string `json:"playerId"`
	Nickname string `json:"nickname"`
	Chips    int    `json:"chips"`
}

type roomInfoPayload struct {
	RoomCode  string        `json:"roomCode"`
	PlayerID  string        `json:"playerId"`
	Creator   string        `json:"creator"`
	Settings  Settings      `json:"settings"`
	Spectator bool          `json:"spectator"`
	State     game.Snapshot `json:"state"`
}

type participantPayload struct {
	PlayerID string `json:"playerId"`
	Nickname string `json:"nickname"`
	Reason   string `json:"reason,omitempty"`
}

type disconnectPayload struct {
	PlayerID     string `json:"playerId"`
	Nickname     string `json:"nickname"`
	GraceSeconds int    `json:"graceSeconds"`
}

type privateCardsPayload struct {
	Cards cards.Stack `json:"cards"`
}

type handResultPayload struct {
	Winners        []game.Winner                `json:"winners"`
	Uncontested    bool                         `json:"uncontested"`
	CommunityCards cards.Stack                  `json:"communityCards"`
	PlayersHands   map[string]cards.Stack       `json:"playersHands,omitempty"`
	Comparison     []hands.HandComparisonResult `json:"comparison,omitempty"`
}

type gameOverPayload struct {
	Leaderboard []leaderboardEntry `json:"leaderboard"`
}

type settingsPayload struct {
	Creator  string   `json:"creator"`
	Settings Settings `json:"settings"`
}
