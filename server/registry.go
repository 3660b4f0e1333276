package server

import (
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/texasholdem/holdem/config"
	"github.com/texasholdem/holdem/server/session"
)

// Ambiguous characters (0/O, 1/I) are left out of room codes
const roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const roomCodeLength = 6

// Registry tracks live rooms by their join code
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	cfg      *config.Config
	sessions session.Repo
	log      *log.Logger
}

func NewRegistry(cfg *config.Config, sessions session.Repo, logger *log.Logger) *Registry {
	return &Registry{
		rooms:    make(map[string]*Room),
		cfg:      cfg,
		sessions: sessions,
		log:      logger,
	}
}

// CreateRoom builds a room under a fresh code and starts its goroutine
func (reg *Registry) CreateRoom() *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	code := generateRoomCode()
	for _, taken := reg.rooms[code]; taken; _, taken = reg.rooms[code] {
		code = generateRoomCode()
	}

	room := newRoom(code, reg.cfg, reg.sessions, reg.log, reg.remove)
	reg.rooms[code] = room
	go room.run()
	return room
}

// Get returns the room with the given code
func (reg *Registry) Get(code string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.rooms[code]
	return room, ok
}

// Count returns the number of live rooms
func (reg *Registry) Count() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

func (reg *Registry) remove(code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, code)
}

func generateRoomCode() string {
	code := make([]byte, roomCodeLength)
	for i := range code {
		code[i] = roomCodeAlphabet[rand.Intn(len(roomCodeAlphabet))]
	}
	return string(code)
}
