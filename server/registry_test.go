package server

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texasholdem/holdem/server/session"
)

func TestGenerateRoomCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := generateRoomCode()
		assert.Len(t, code, roomCodeLength)
		for _, ch := range code {
			assert.True(t, strings.ContainsRune(roomCodeAlphabet, ch), "unexpected character %q", ch)
		}
	}
}

func TestRegistry_CreateGetRemove(t *testing.T) {
	reg := NewRegistry(testConfig(), session.NewMemoryRepo(), log.New(io.Discard))

	room := reg.CreateRoom()
	require.NotNil(t, room)
	assert.Equal(t, 1, reg.Count())

	found, ok := reg.Get(room.code)
	require.True(t, ok)
	assert.Same(t, room, found)

	_, ok = reg.Get("NOPE99")
	assert.False(t, ok)

	// A player joining and leaving empties the room, which removes itself
	conn := &fakeConn{}
	room.do(func() { room.joinAsPlayer("p1", "Alice", conn, "roomCreated") })
	room.do(func() { room.leave("p1") })

	require.Eventually(t, func() bool { return reg.Count() == 0 }, time.Second, 10*time.Millisecond)
}
