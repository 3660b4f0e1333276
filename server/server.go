package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/texasholdem/holdem/config"
	"github.com/texasholdem/holdem/server/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // rooms are join-code gated, not origin gated
	},
}

// Server is the websocket/HTTP surface. It owns the room registry and hands
// each connection off to its room's goroutine.
type Server struct {
	cfg   *config.Config
	log   *log.Logger
	rooms *Registry
}

func New(cfg *config.Config, logger *log.Logger, sessions session.Repo) *Server {
	return &Server{
		cfg:   cfg,
		log:   logger,
		rooms: NewRegistry(cfg, sessions, logger),
	}
}

// Router builds the gin engine with CORS, a health endpoint and the
// websocket route.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "rooms": s.rooms.Count()})
	})
	router.GET("/ws", s.handleWS)

	return router
}

// Run starts the HTTP server on the configured port
func (s *Server) Run() error {
	s.log.Info("server listening", "port", s.cfg.Server.Port)
	return s.Router().Run(":" + s.cfg.Server.Port)
}

func (s *Server) handleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Error("websocket upgrade", "err", err)
		return
	}

	client := &Client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, 256),
		srv:  s,
	}
	s.log.Info("client connected", "client", client.id, "remote", c.Request.RemoteAddr)

	go client.writePump()
	go client.readPump()
}

// handleMessage routes one inbound envelope. It runs on the client's read
// goroutine; anything touching a room is forwarded to the room's goroutine.
func (s *Server) handleMessage(c *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.sendEvent("error", errorPayload{Message: "malformed message"})
		return
	}

	switch env.Event {
	case "createRoom":
		s.handleCreateRoom(c, env.Data)
	case "joinRoom":
		s.handleJoinRoom(c, env.Data)
	case "attemptReconnect":
		s.handleReconnect(c, env.Data)
	default:
		s.handleRoomEvent(c, env)
	}
}

func (s *Server) handleCreateRoom(c *Client, data json.RawMessage) {
	var p createRoomPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Nickname == "" {
		c.sendEvent("error", errorPayload{Message: "createRoom requires a nickname"})
		return
	}
	if c.room != nil {
		c.sendEvent("error", errorPayload{Message: "already in a room"})
		return
	}

	room := s.rooms.CreateRoom()
	c.room = room
	room.do(func() { room.joinAsPlayer(c.id, p.Nickname, c, "roomCreated") })
	s.log.Info("room created", "room", room.code, "creator", c.id)
}

func (s *Server) handleJoinRoom(c *Client, data json.RawMessage) {
	var p joinRoomPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Nickname == "" || p.RoomCode == "" {
		c.sendEvent("error", errorPayload{Message: "joinRoom requires a room code and nickname"})
		return
	}
	if c.room != nil {
		c.sendEvent("error", errorPayload{Message: "already in a room"})
		return
	}

	room, ok := s.rooms.Get(p.RoomCode)
	if !ok {
		c.sendEvent("error", errorPayload{Message: "room not found"})
		return
	}
	c.room = room
	if p.AsSpectator {
		room.do(func() { room.joinAsSpectator(c.id, p.Nickname, c, "roomJoined") })
	} else {
		room.do(func() { room.joinAsPlayer(c.id, p.Nickname, c, "roomJoined") })
	}
}

func (s *Server) handleReconnect(c *Client, data json.RawMessage) {
	var p attemptReconnectPayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomCode == "" || p.OldPlayerID == "" {
		c.sendEvent("reconnectFailed", errorPayload{Message: "attemptReconnect requires a room code and the old player id"})
		return
	}

	room, ok := s.rooms.Get(p.RoomCode)
	if !ok {
		c.sendEvent("reconnectFailed", errorPayload{Message: "room not found"})
		return
	}
	c.room = room
	room.do(func() { room.attemptReconnect(c.id, c, p.OldPlayerID) })
}

// handleRoomEvent routes events that require room membership
func (s *Server) handleRoomEvent(c *Client, env Envelope) {
	room := c.room
	if room == nil {
		c.sendEvent("error", errorPayload{Message: "not in a room"})
		return
	}

	switch env.Event {
	case "startGame":
		room.do(func() { room.startGame(c.id, c) })
	case "playerAction":
		var p playerActionPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			c.sendEvent("error", errorPayload{Message: "malformed playerAction"})
			return
		}
		room.do(func() { room.playerAction(c.id, c, p.Action, p.Amount) })
	case "prepareNextHand":
		room.do(func() { room.prepareNextHand(c.id, c) })
	case "sendMessage":
		var p sendMessagePayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.Message == "" {
			return
		}
		room.do(func() { room.chat(c.id, p.Message) })
	case "leaveRoom":
		room.do(func() { room.leave(c.id) })
		c.room = nil
	case "switchToSpectator":
		room.do(func() { room.switchToSpectator(c.id, c) })
	case "switchToPlayer":
		var p switchToPlayerPayload
		_ = json.Unmarshal(env.Data, &p)
		room.do(func() { room.switchToPlayer(c.id, p.Nickname, c) })
	case "resetGame":
		room.do(func() { room.resetGame(c.id, c) })
	case "endGame":
		room.do(func() { room.endGame(c.id, c) })
	case "closeRoom":
		room.do(func() { room.closeRoom(c.id, c) })
		c.room = nil
	case "updateRoomSettings":
		var p updateRoomSettingsPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			c.sendEvent("error", errorPayload{Message: "malformed updateRoomSettings"})
			return
		}
		room.do(func() { room.updateSettings(c.id, c, p.ShowAllHands) })
	case "updateInitialChips":
		var p updateInitialChipsPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			c.sendEvent("error", errorPayload{Message: "malformed updateInitialChips"})
			return
		}
		room.do(func() { room.updateInitialChips(c.id, c, p.InitialChips) })
	default:
		c.sendEvent("error", errorPayload{Message: "unknown event " + env.Event})
	}
}

// handleDisconnect is called when a client's read pump exits
func (s *Server) handleDisconnect(c *Client) {
	s.log.Info("client disconnected", "client", c.id)
	if room := c.room; room != nil {
		room.do(func() { room.handleDisconnect(c.id) })
	}
}
