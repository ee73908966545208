package pitch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnectionManager_AddAndRemove(t *testing.T) {
	manager := NewConnectionManager()

	require.False(t, manager.IsOnline("user1"))

	client := manager.AddClient("user1", nil)
	require.NotNil(t, client)
	require.True(t, manager.IsOnline("user1"))
	require.Equal(t, []string{"user1"}, manager.GetOnlineUsers())

	manager.RemoveClient("user1")
	require.False(t, manager.IsOnline("user1"))
	require.Empty(t, manager.GetOnlineUsers())

	// Done is closed on removal so pending writers unblock.
	select {
	case <-client.Done:
	default:
		t.Fatal("expected Done to be closed after removal")
	}
}

func TestConnectionManager_DeliverToOfflineUser(t *testing.T) {
	manager := NewConnectionManager()

	err := manager.DeliverToUser("ghost", Message{Content: "hi"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "not online")
}

func TestConnectionManager_DeliverQueueFull(t *testing.T) {
	manager := NewConnectionManager()
	client := manager.AddClient("user1", nil)

	for i := 0; i < cap(client.Send); i++ {
		require.NoError(t, manager.DeliverToUser("user1", Message{Content: "hi"}))
	}

	err := manager.DeliverToUser("user1", Message{Content: "one too many"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "queue full")
}

func TestConnectionManager_DeliverAfterDisconnect(t *testing.T) {
	manager := NewConnectionManager()
	manager.AddClient("user1", nil)
	manager.RemoveClient("user1")

	err := manager.DeliverToUser("user1", Message{Content: "hi"})
	require.Error(t, err)
}
