package server

import (
	"context"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sanity-io/litter"

	"github.com/texasholdem/holdem/cards"
	"github.com/texasholdem/holdem/config"
	"github.com/texasholdem/holdem/game"
	"github.com/texasholdem/holdem/server/session"
)

const (
	minInitialChips = 500
	maxInitialChips = 50000
)

// sender is the outbound half of a connection. Clients implement it; tests
// substitute fakes.
type sender interface {
	sendEvent(event string, data any)
}

// Settings are the creator-adjustable room options
type Settings struct {
	ShowAllHands bool `json:"showAllHands"`
	InitialChips int  `json:"initialChips"`
}

type seat struct {
	nickname string
	conn     sender // nil while the player is disconnected
}

// Room owns one table: the game engine, the participants and the room
// settings. All mutations run on the room's own goroutine; entry points go
// through do, so the engine never sees concurrent access.
type Room struct {
	code       string
	creator    string
	settings   Settings
	maxPlayers int
	game       *game.Game
	players    map[string]*seat
	spectators map[string]*seat
	pending    map[string]*time.Timer
	sessions   session.Repo
	grace      time.Duration
	log        *log.Logger
	onEmpty    func(code string)

	ops    chan func()
	done   chan struct{}
	closed bool
}

func newRoom(code string, cfg *config.Config, sessions session.Repo, logger *log.Logger, onEmpty func(string)) *Room {
	return &Room{
		code:       code,
		settings:   Settings{InitialChips: cfg.Game.InitialChips},
		maxPlayers: cfg.Game.MaxPlayers,
		game:       game.NewGame(cfg.Game.SmallBlind, cfg.Game.BigBlind),
		players:    make(map[string]*seat),
		spectators: make(map[string]*seat),
		pending:    make(map[string]*time.Timer),
		sessions:   sessions,
		grace:      cfg.Session.ReconnectGrace,
		log:        logger.With("room", code),
		onEmpty:    onEmpty,
		ops:        make(chan func(), 64),
		done:       make(chan struct{}),
	}
}

func (r *Room) run() {
	for {
		select {
		case op := <-r.ops:
			op()
		case <-r.done:
			return
		}
	}
}

// do schedules an operation on the room goroutine. Operations sent to a
// closed room are dropped.
func (r *Room) do(op func()) {
	select {
	case r.ops <- op:
	case <-r.done:
	}
}

func (r *Room) broadcast(event string, data any) {
	for _, s := range r.players {
		if s.conn != nil {
			s.conn.sendEvent(event, data)
		}
	}
	for _, s := range r.spectators {
		s.conn.sendEvent(event, data)
	}
}

func (r *Room) broadcastState() {
	r.broadcast("gameStateUpdate", r.game.Snapshot())
}

func (r *Room) sendError(to sender, message string) {
	if to != nil {
		to.sendEvent("error", errorPayload{Message: message})
	}
}

// senderOf finds the connection for a participant ID, player or spectator
func (r *Room) senderOf(id string) sender {
	if s, ok := r.players[id]; ok {
		return s.conn
	}
	if s, ok := r.spectators[id]; ok {
		return s.conn
	}
	return nil
}

func (r *Room) requireCreator(id string, from sender) bool {
	if id != r.creator {
		r.sendError(from, "only the room creator can do that")
		return false
	}
	return true
}

func (r *Room) roomInfo(id string, spectator bool) roomInfoPayload {
	return roomInfoPayload{
		RoomCode:  r.code,
		PlayerID:  id,
		Creator:   r.creator,
		Settings:  r.settings,
		Spectator: spectator,
		State:     r.game.Snapshot(),
	}
}

// joinAsPlayer seats a new player, or falls back to spectating when a hand is
// already running or the table is full.
func (r *Room) joinAsPlayer(id, nickname string, conn sender, joinEvent string) {
	if r.game.Phase() != game.PhaseWaiting {
		r.sendError(conn, "game in progress, joining as spectator")
		r.joinAsSpectator(id, nickname, conn, joinEvent)
		return
	}
	if r.game.PlayerCount() >= r.maxPlayers {
		r.sendError(conn, "table is full, joining as spectator")
		r.joinAsSpectator(id, nickname, conn, joinEvent)
		return
	}
	if err := r.game.AddPlayer(id, nickname, r.settings.InitialChips); err != nil {
		r.sendError(conn, err.Error())
		return
	}

	r.players[id] = &seat{nickname: nickname, conn: conn}
	if r.creator == "" {
		r.creator = id
	}
	conn.sendEvent(joinEvent, r.roomInfo(id, false))
	r.broadcast("playerJoined", participantPayload{PlayerID: id, Nickname: nickname})
	r.broadcastState()
	r.log.Info("player joined", "player", id, "nickname", nickname)
}

func (r *Room) joinAsSpectator(id, nickname string, conn sender, joinEvent string) {
	r.spectators[id] = &seat{nickname: nickname, conn: conn}
	conn.sendEvent(joinEvent, r.roomInfo(id, true))
	r.broadcast("spectatorJoined", participantPayload{PlayerID: id, Nickname: nickname})
}

func (r *Room) startGame(id string, from sender) {
	if !r.requireCreator(id, from) {
		return
	}
	result, err := r.game.StartGame()
	if err != nil {
		r.sendError(from, err.Error())
		return
	}
	r.log.Info("hand started", "players", r.game.PlayerCount())
	r.dealPrivateCards()
	r.broadcastState()
	if result != nil {
		r.finishHand(result)
	}
}

func (r *Room) dealPrivateCards() {
	for id, s := range r.players {
		if s.conn == nil {
			continue
		}
		if hole := r.game.HoleCards(id); len(hole) > 0 {
			s.conn.sendEvent("dealPrivateCards", privateCardsPayload{Cards: hole})
		}
	}
}

func (r *Room) playerAction(id string, from sender, action string, amount int) {
	result, err := r.game.PlayerAction(id, game.ActionType(action), amount)
	if err != nil {
		r.sendError(from, err.Error())
		return
	}
	r.broadcastState()
	if result != nil {
		r.finishHand(result)
	}
}

// finishHand broadcasts the result of a concluded hand. Winning hands are
// always revealed; losing hands only when the room opted into showAllHands.
// An uncontested pot reveals nothing.
func (r *Room) finishHand(result *game.HandResult) {
	payload := handResultPayload{
		Winners:        result.Winners,
		Uncontested:    result.Uncontested,
		CommunityCards: result.CommunityCards,
		Comparison:     result.Comparison,
	}
	if !result.Uncontested {
		winners := make(map[string]bool, len(result.Winners))
		for _, w := range result.Winners {
			winners[w.PlayerID] = true
		}
		payload.PlayersHands = make(map[string]cards.Stack)
		for id, hand := range result.PlayersHands {
			if winners[id] || r.settings.ShowAllHands {
				payload.PlayersHands[id] = hand
			}
		}
	}

	r.log.Debug("hand finished", "result", litter.Sdump(result))
	r.broadcast("handResult", payload)
	r.broadcastState()
}

func (r *Room) prepareNextHand(id string, from sender) {
	if !r.requireCreator(id, from) {
		return
	}
	started, result, err := r.game.PrepareNextHand()
	if err != nil {
		r.sendError(from, err.Error())
		return
	}
	if !started {
		r.broadcast("gameOver", gameOverPayload{Leaderboard: r.leaderboard()})
		r.broadcastState()
		return
	}
	r.dealPrivateCards()
	r.broadcastState()
	if result != nil {
		r.finishHand(result)
	}
}

// leaderboard lists players by chip count, richest first
func (r *Room) leaderboard() []leaderboardEntry {
	snapshot := r.game.Snapshot()
	entries := make([]leaderboardEntry, 0, len(snapshot.Players))
	for _, p := range snapshot.Players {
		entries = append(entries, leaderboardEntry{PlayerID: p.ID, Nickname: p.Nickname, Chips: p.Chips})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Chips > entries[j].Chips })
	return entries
}

func (r *Room) chat(id string, message string) {
	nickname := ""
	if s, ok := r.players[id]; ok {
		nickname = s.nickname
	} else if s, ok := r.spectators[id]; ok {
		nickname = s.nickname
	} else {
		return
	}
	r.broadcast("newMessage", chatMessagePayload{From: nickname, Message: message})
}

// handleDisconnect keeps a player's seat for the grace period before removing
// them; spectators are dropped immediately.
func (r *Room) handleDisconnect(id string) {
	if s, ok := r.spectators[id]; ok {
		delete(r.spectators, id)
		r.broadcast("spectatorLeft", participantPayload{PlayerID: id, Nickname: s.nickname})
		r.checkEmpty()
		return
	}

	s, ok := r.players[id]
	if !ok {
		return
	}
	s.conn = nil

	rec := session.Record{
		PlayerID:       id,
		RoomCode:       r.code,
		Nickname:       s.nickname,
		DisconnectedAt: time.Now(),
	}
	if err := r.sessions.Save(context.Background(), rec, r.grace); err != nil {
		r.log.Error("save disconnect record", "player", id, "err", err)
	}

	r.broadcast("playerDisconnected", disconnectPayload{
		PlayerID:     id,
		Nickname:     s.nickname,
		GraceSeconds: int(r.grace.Seconds()),
	})
	r.log.Info("player disconnected, holding seat", "player", id, "grace", r.grace)

	r.pending[id] = time.AfterFunc(r.grace, func() {
		r.do(func() { r.expireDisconnected(id) })
	})
}

func (r *Room) expireDisconnected(id string) {
	if _, ok := r.pending[id]; !ok {
		return
	}
	delete(r.pending, id)
	if err := r.sessions.Delete(context.Background(), id); err != nil {
		r.log.Error("delete disconnect record", "player", id, "err", err)
	}
	r.removePlayer(id, "disconnected")
}

// attemptReconnect rebinds a held seat to a fresh connection
func (r *Room) attemptReconnect(newID string, conn sender, oldID string) {
	rec, ok, err := r.sessions.Take(context.Background(), oldID)
	if err != nil {
		r.log.Error("load disconnect record", "player", oldID, "err", err)
	}

	s, seated := r.players[oldID]
	if !ok || !seated || rec.RoomCode != r.code {
		conn.sendEvent("reconnectFailed", errorPayload{Message: "seat no longer held"})
		return
	}

	if t, pending := r.pending[oldID]; pending {
		t.Stop()
		delete(r.pending, oldID)
	}

	r.game.UpdatePlayerID(oldID, newID)
	delete(r.players, oldID)
	s.conn = conn
	r.players[newID] = s

	conn.sendEvent("reconnectSuccess", r.roomInfo(newID, false))
	if hole := r.game.HoleCards(newID); len(hole) > 0 {
		conn.sendEvent("dealPrivateCards", privateCardsPayload{Cards: hole})
	}
	r.broadcastState()
	r.log.Info("player reconnected", "old", oldID, "new", newID)
}

func (r *Room) leave(id string) {
	if s, ok := r.spectators[id]; ok {
		delete(r.spectators, id)
		r.broadcast("spectatorLeft", participantPayload{PlayerID: id, Nickname: s.nickname})
		r.checkEmpty()
		return
	}
	r.removePlayer(id, "left")
}

func (r *Room) removePlayer(id, reason string) {
	s, ok := r.players[id]
	if !ok {
		return
	}
	delete(r.players, id)

	result, reset, err := r.game.RemovePlayer(id)
	if err != nil {
		r.log.Error("remove player from game", "player", id, "err", err)
	}

	r.broadcast("playerLeft", participantPayload{PlayerID: id, Nickname: s.nickname, Reason: reason})
	if r.creator == id {
		r.promoteCreator()
	}
	if result != nil {
		r.finishHand(result)
	}
	if reset {
		r.broadcast("gameReset", nil)
	}
	r.broadcastState()
	r.checkEmpty()
}

// promoteCreator hands creator rights to the earliest-seated remaining player
func (r *Room) promoteCreator() {
	r.creator = ""
	for _, p := range r.game.Snapshot().Players {
		if _, ok := r.players[p.ID]; ok {
			r.creator = p.ID
			if conn := r.senderOf(p.ID); conn != nil {
				conn.sendEvent("becameCreator", nil)
			}
			r.broadcast("roomSettingsUpdate", settingsPayload{Creator: r.creator, Settings: r.settings})
			return
		}
	}
}

func (r *Room) switchToSpectator(id string, from sender) {
	s, ok := r.players[id]
	if !ok {
		return
	}
	if r.game.Phase() != game.PhaseWaiting {
		r.sendError(from, "cannot switch to spectator while a game is running")
		return
	}
	if id == r.creator {
		r.sendError(from, "the room creator cannot switch to spectator")
		return
	}
	// Spectate first so removePlayer cannot observe an empty room
	r.spectators[id] = &seat{nickname: s.nickname, conn: s.conn}
	r.removePlayer(id, "switched to spectator")
	r.broadcast("spectatorJoined", participantPayload{PlayerID: id, Nickname: s.nickname})
}

func (r *Room) switchToPlayer(id, nickname string, from sender) {
	s, ok := r.spectators[id]
	if !ok {
		return
	}
	if nickname == "" {
		nickname = s.nickname
	}
	if r.game.Phase() != game.PhaseWaiting {
		r.sendError(from, "cannot sit down while a hand is running")
		return
	}
	if r.game.PlayerCount() >= r.maxPlayers {
		r.sendError(from, "table is full")
		return
	}
	if err := r.game.AddPlayer(id, nickname, r.settings.InitialChips); err != nil {
		r.sendError(from, err.Error())
		return
	}
	delete(r.spectators, id)
	s.nickname = nickname
	r.players[id] = s
	if r.creator == "" {
		r.creator = id
	}
	r.broadcast("playerJoined", participantPayload{PlayerID: id, Nickname: nickname})
	r.broadcastState()
}

func (r *Room) resetGame(id string, from sender) {
	if !r.requireCreator(id, from) {
		return
	}
	r.game.Reset(r.settings.InitialChips)
	r.broadcast("gameReset", nil)
	r.broadcastState()
}

func (r *Room) endGame(id string, from sender) {
	if !r.requireCreator(id, from) {
		return
	}
	r.broadcast("gameOver", gameOverPayload{Leaderboard: r.leaderboard()})
	r.game.Reset(r.settings.InitialChips)
	r.broadcastState()
}

func (r *Room) closeRoom(id string, from sender) {
	if !r.requireCreator(id, from) {
		return
	}
	r.broadcast("roomClosed", nil)
	r.close()
}

func (r *Room) updateSettings(id string, from sender, showAllHands bool) {
	if !r.requireCreator(id, from) {
		return
	}
	r.settings.ShowAllHands = showAllHands
	r.broadcast("roomSettingsUpdate", settingsPayload{Creator: r.creator, Settings: r.settings})
}

func (r *Room) updateInitialChips(id string, from sender, chips int) {
	if !r.requireCreator(id, from) {
		return
	}
	if r.game.Phase() != game.PhaseWaiting {
		r.sendError(from, "cannot change initial chips while a game is running")
		return
	}
	r.settings.InitialChips = clampChips(chips)
	r.game.Reset(r.settings.InitialChips)
	r.broadcast("roomSettingsUpdate", settingsPayload{Creator: r.creator, Settings: r.settings})
	r.broadcastState()
}

func clampChips(chips int) int {
	if chips < minInitialChips {
		return minInitialChips
	}
	if chips > maxInitialChips {
		return maxInitialChips
	}
	return chips
}

func (r *Room) checkEmpty() {
	if len(r.players) == 0 && len(r.spectators) == 0 {
		r.close()
	}
}

func (r *Room) close() {
	if r.closed {
		return
	}
	r.closed = true
	for _, t := range r.pending {
		t.Stop()
	}
	if r.onEmpty != nil {
		r.onEmpty(r.code)
	}
	close(r.done)
	r.log.Info("room closed")
}
