package pitch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// mockStore is a lightweight PitchStore double for unit testing handler logic.
type mockStore struct {
	saveCalls []struct {
		sender   string
		receiver string
		content  string
		deckURL  string
		ts       int64
	}
	saveErr      error
	updateErr    error
	updateCalls  []string
	senderUUIDs  []string
	threadResult []ThreadItem
	contactName  string
	contactEmail string
	contactErr   error
}

func (m *mockStore) SavePitch(ctx context.Context, senderUUID, receiverUUID, content, deckURL string, sentAt int64) (int64, error) {
	m.saveCalls = append(m.saveCalls, struct {
		sender   string
		receiver string
		content  string
		deckURL  string
		ts       int64
	}{senderUUID, receiverUUID, content, deckURL, sentAt})
	if m.saveErr != nil {
		return 0, m.saveErr
	}
	return 1, nil
}

func (m *mockStore) UpdateStatus(ctx context.Context, receiverUUID, status string, messageIDs []string) ([]string, error) {
	m.updateCalls = append(m.updateCalls, status)
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return m.senderUUIDs, nil
}

func (m *mockStore) GetThread(ctx context.Context, userUUID, peerUUID string, limit int, beforeEpoch int64) ([]ThreadItem, error) {
	return m.threadResult, nil
}

func (m *mockStore) GetUserContact(ctx context.Context, userUUID string) (string, string, error) {
	if m.contactErr != nil {
		return "", "", m.contactErr
	}
	return m.contactName, m.contactEmail, nil
}

// mockEmailService records pitch notifications on a channel so tests can
// wait for the async send.
type mockEmailService struct {
	sent chan string
}

func (m *mockEmailService) SendEmail(subject, toEmail, plainTextContent, htmlContent string) error {
	return nil
}

func (m *mockEmailService) SendPitchNotification(recipientName, toEmail, preview string) error {
	m.sent <- toEmail
	return nil
}

func TestValidateMessage(t *testing.T) {
	handler := NewHandler(NewConnectionManager())

	tests := []struct {
		name    string
		msg     Message
		sender  string
		wantErr bool
	}{
		{"empty content", Message{ReceiverID: "user2", Content: ""}, "user1", true},
		{"self pitch", Message{ReceiverID: "user1", Content: "hi"}, "user1", true},
		{"missing receiver", Message{ReceiverID: "", Content: "hi"}, "user1", true},
		{"valid pitch", Message{ReceiverID: "user2", Content: "hi"}, "user1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := handler.validateMessage(tt.msg, tt.sender)
			require.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestProcessMessage_OfflineQueuedAndNotified(t *testing.T) {
	manager := NewConnectionManager()
	store := &mockStore{contactName: "Ivy", contactEmail: "ivy@example.com"}
	emails := &mockEmailService{sent: make(chan string, 1)}
	handler := NewHandler(manager)
	handler.SetRepository(store)
	handler.SetEmailService(emails)

	client := &Client{UserID: "user1", Send: make(chan interface{}, 1), Done: make(chan struct{})}

	handler.processMessage(client, Message{ReceiverID: "offline", Content: "our seed pitch"})

	select {
	case raw := <-client.Send:
		ack, ok := raw.(Acknowledgement)
		require.True(t, ok)
		require.Equal(t, "queued", ack.Status)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for ack")
	}
	require.Len(t, store.saveCalls, 1)
	require.Equal(t, "user1", store.saveCalls[0].sender)
	require.Equal(t, "offline", store.saveCalls[0].receiver)

	select {
	case to := <-emails.sent:
		require.Equal(t, "ivy@example.com", to)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for offline notification")
	}
}

func TestProcessMessage_OnlineDelivered(t *testing.T) {
	manager := NewConnectionManager()
	receiver := manager.AddClient("user2", nil)
	store := &mockStore{}
	handler := NewHandler(manager)
	handler.SetRepository(store)

	client := &Client{UserID: "user1", Send: make(chan interface{}, 1), Done: make(chan struct{})}

	handler.processMessage(client, Message{ReceiverID: "user2", Content: "our seed pitch"})

	select {
	case raw := <-client.Send:
		ack, ok := raw.(Acknowledgement)
		require.True(t, ok)
		require.Equal(t, "sent", ack.Status)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for ack")
	}

	select {
	case raw := <-receiver.Send:
		msg, ok := raw.(Message)
		require.True(t, ok)
		require.Equal(t, "user1", msg.SenderID)
		require.Equal(t, StatusSent, msg.Status)
		require.Equal(t, "our seed pitch", msg.Content)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}
}

func TestProcessMessage_PersistFailure(t *testing.T) {
	manager := NewConnectionManager()
	store := &mockStore{saveErr: errors.New("db down")}
	handler := NewHandler(manager)
	handler.SetRepository(store)

	client := &Client{UserID: "user1", Send: make(chan interface{}, 1), Done: make(chan struct{})}

	handler.processMessage(client, Message{ReceiverID: "user2", Content: "hi"})

	select {
	case raw := <-client.Send:
		ack, ok := raw.(Acknowledgement)
		require.True(t, ok)
		require.Equal(t, "error", ack.Status)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for error ack")
	}
}

func TestProcessMessage_InvalidRejected(t *testing.T) {
	manager := NewConnectionManager()
	store := &mockStore{}
	handler := NewHandler(manager)
	handler.SetRepository(store)

	client := &Client{UserID: "user1", Send: make(chan interface{}, 1), Done: make(chan struct{})}

	handler.processMessage(client, Message{ReceiverID: "user1", Content: "hi"})

	select {
	case raw := <-client.Send:
		errResp, ok := raw.(ErrorResponse)
		require.True(t, ok)
		require.Contains(t, errResp.Error, "yourself")
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for error")
	}
	require.Empty(t, store.saveCalls)
}

func TestProcessStatusUpdate_NotifiesSenders(t *testing.T) {
	manager := NewConnectionManager()
	sender := manager.AddClient("sender-1", nil)
	store := &mockStore{senderUUIDs: []string{"sender-1"}}
	handler := NewHandler(manager)
	handler.SetRepository(store)

	client := &Client{UserID: "investor-1", Send: make(chan interface{}, 1), Done: make(chan struct{})}

	handler.processStatusUpdate(client, map[string]interface{}{
		"event_type":  "pitch_status",
		"status":      StatusViewed,
		"message_ids": []interface{}{"1", "2"},
	})

	require.Equal(t, []string{StatusViewed}, store.updateCalls)

	select {
	case raw := <-sender.Send:
		note, ok := raw.(StatusNotification)
		require.True(t, ok)
		require.Equal(t, "pitch_status", note.EventType)
		require.Equal(t, StatusViewed, note.Status)
		require.Equal(t, "investor-1", note.UpdatedBy)
		require.Equal(t, []string{"1", "2"}, note.MessageIDs)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for status notification")
	}
}

func TestProcessStatusUpdate_InvalidStatus(t *testing.T) {
	manager := NewConnectionManager()
	store := &mockStore{}
	handler := NewHandler(manager)
	handler.SetRepository(store)

	client := &Client{UserID: "investor-1", Send: make(chan interface{}, 1), Done: make(chan struct{})}

	handler.processStatusUpdate(client, map[string]interface{}{
		"event_type": "pitch_status",
		"status":     "sent", // not a valid transition target
		"message_ids": []interface{}{
			"1",
		},
	})

	select {
	case raw := <-client.Send:
		errResp, ok := raw.(ErrorResponse)
		require.True(t, ok)
		require.Contains(t, errResp.Error, "invalid pitch status")
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for error")
	}
	require.Empty(t, store.updateCalls)
}

func TestValidStatusTransition(t *testing.T) {
	require.True(t, validStatusTransition(StatusViewed))
	require.True(t, validStatusTransition(StatusResponded))
	require.True(t, validStatusTransition(StatusArchived))
	require.False(t, validStatusTransition(StatusSent))
	require.False(t, validStatusTransition("bogus"))
}
