package pitch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"venturelink/pkg/response"
	"venturelink/pkg/sendemail"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler wraps the connection manager and exposes the pitch endpoints.
type Handler struct {
	manager *ConnectionManager
	logger  interface {
		Printf(string, ...interface{})
	}
	repo   PitchStore             // optional; if nil, persistence is skipped
	emails sendemail.EmailService // optional; if nil, offline notifications are skipped
}

func NewHandler(manager *ConnectionManager) *Handler {
	return &Handler{
		manager: manager,
		logger:  log.New(log.Writer(), "[pitch] ", log.LstdFlags),
	}
}

// SetRepository injects the pitch store for persistence.
func (h *Handler) SetRepository(r PitchStore) {
	h.repo = r
}

// SetEmailService injects the email service used to notify offline
// recipients about new pitches.
func (h *Handler) SetEmailService(es sendemail.EmailService) {
	h.emails = es
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, validate origin properly
		return true
	},
}

// HandleWebSocket upgrades the connection for a user already resolved into
// the request context.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(string)
	if !ok || userID == "" {
		http.Error(w, "unauthorized: user_id not found", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("websocket upgrade error: %v", err)
		return
	}

	client := h.manager.AddClient(userID, conn)
	h.logger.Printf("user %s connected", userID)

	go h.readLoop(client)
	go h.writeLoop(client)
}

// HandleWebSocketGin validates user_id from query, injects it into the
// context, and upgrades to WebSocket.
func (h *Handler) HandleWebSocketGin(c *gin.Context) {
	uid := c.Query("user_id")
	if _, err := uuid.Parse(uid); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id, must be UUID"})
		return
	}

	ctx := context.WithValue(c.Request.Context(), "user_id", uid)
	req := c.Request.WithContext(ctx)
	h.HandleWebSocket(c.Writer, req)
}

func (h *Handler) readLoop(client *Client) {
	defer func() {
		h.manager.RemoveClient(client.UserID)
		client.Conn.Close()
		h.logger.Printf("user %s disconnected", client.UserID)
	}()

	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		select {
		case <-client.Done:
			return
		default:
		}

		var rawMsg map[string]interface{}
		err := client.Conn.ReadJSON(&rawMsg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Printf("websocket error for user %s: %v", client.UserID, err)
			}
			return
		}

		if eventType, ok := rawMsg["event_type"].(string); ok && eventType == "pitch_status" {
			go h.processStatusUpdate(client, rawMsg)
		} else {
			var msg Message
			msgBytes, _ := json.Marshal(rawMsg)
			if err := json.Unmarshal(msgBytes, &msg); err != nil {
				h.sendError(client, "invalid message format")
				continue
			}
			go h.processMessage(client, msg)
		}
	}
}

// IsUserOnline reports if a given user has an active WS connection.
func (h *Handler) IsUserOnline(userID string) bool {
	return h.manager.IsOnline(userID)
}

func (h *Handler) writeLoop(client *Client) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-client.Done:
			return

		case payload, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))

			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.Conn.WriteJSON(payload); err != nil {
				h.logger.Printf("write error for user %s: %v", client.UserID, err)
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.logger.Printf("ping error for user %s: %v", client.UserID, err)
				return
			}
		}
	}
}

// processMessage validates, persists and delivers an incoming pitch.
func (h *Handler) processMessage(client *Client, msg Message) {
	if err := h.validateMessage(msg, client.UserID); err != nil {
		h.sendError(client, err.Error())
		return
	}

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now().UTC()
	}

	// Sender is always the authenticated user on this connection.
	msg.SenderID = client.UserID
	msg.Status = StatusSent

	if h.repo != nil {
		epoch := msg.SentAt.Unix()
		if _, err := h.repo.SavePitch(context.Background(), msg.SenderID, msg.ReceiverID, msg.Content, msg.DeckURL, epoch); err != nil {
			h.logger.Printf("db insert failed for pitch %s -> %s: %v", msg.SenderID, msg.ReceiverID, err)
			ack := Acknowledgement{MessageID: msg.ID, Status: "error", Error: "failed to persist pitch"}
			select {
			case client.Send <- ack:
			case <-client.Done:
			}
			return
		}
	}

	if h.manager.IsOnline(msg.ReceiverID) {
		if err := h.manager.DeliverToUser(msg.ReceiverID, msg); err != nil {
			h.sendError(client, fmt.Sprintf("failed to deliver pitch: %v", err))
			return
		}
	}

	ack := Acknowledgement{
		MessageID: msg.ID,
		Status:    "sent",
	}
	if !h.manager.IsOnline(msg.ReceiverID) {
		ack.Status = "queued" // receiver offline but the pitch was recorded
		go h.notifyOffline(msg)
	}

	select {
	case client.Send <- ack:
	case <-client.Done:
	}
}

// notifyOffline emails the recipient about a pitch they missed.
func (h *Handler) notifyOffline(msg Message) {
	if h.emails == nil || h.repo == nil {
		return
	}

	name, email, err := h.repo.GetUserContact(context.Background(), msg.ReceiverID)
	if err != nil {
		h.logger.Printf("contact lookup failed for %s: %v", msg.ReceiverID, err)
		return
	}

	if err := h.emails.SendPitchNotification(name, email, msg.Content); err != nil {
		h.logger.Printf("pitch notification email to %s failed: %v", email, err)
	}
}

func (h *Handler) validateMessage(msg Message, senderID string) error {
	if msg.Content == "" {
		return fmt.Errorf("pitch content cannot be empty")
	}

	if len(msg.Content) > 10000 {
		return fmt.Errorf("pitch content too long (max 10000 characters)")
	}

	if msg.ReceiverID == "" {
		return fmt.Errorf("receiver_id is required")
	}

	if msg.ReceiverID == senderID {
		return fmt.Errorf("cannot send a pitch to yourself")
	}

	return nil
}

func (h *Handler) sendError(client *Client, errMsg string) {
	errResp := ErrorResponse{
		Error: errMsg,
	}

	select {
	case client.Send <- errResp:
	case <-client.Done:
	}
}

// processStatusUpdate advances pitch statuses on behalf of the receiver and
// notifies the original senders.
func (h *Handler) processStatusUpdate(client *Client, rawMsg map[string]interface{}) {
	if h.repo == nil {
		return
	}

	status, _ := rawMsg["status"].(string)
	if !validStatusTransition(status) {
		h.sendError(client, "invalid pitch status")
		return
	}

	messageIDsRaw, ok := rawMsg["message_ids"].([]interface{})
	if !ok || len(messageIDsRaw) == 0 {
		h.sendError(client, "message_ids required for status update")
		return
	}

	messageIDs := make([]string, 0, len(messageIDsRaw))
	for _, idRaw := range messageIDsRaw {
		if idStr, ok := idRaw.(string); ok {
			messageIDs = append(messageIDs, idStr)
		}
	}
	if len(messageIDs) == 0 {
		return
	}

	senderUUIDs, err := h.repo.UpdateStatus(context.Background(), client.UserID, status, messageIDs)
	if err != nil {
		h.logger.Printf("failed to update pitch status for %s: %v", client.UserID, err)
		h.sendError(client, "failed to update pitch status")
		return
	}

	notification := StatusNotification{
		EventType:  "pitch_status",
		Status:     status,
		MessageIDs: messageIDs,
		UpdatedBy:  client.UserID,
	}

	for _, senderUUID := range senderUUIDs {
		if h.manager.IsOnline(senderUUID) {
			if err := h.manager.DeliverToUser(senderUUID, notification); err != nil {
				h.logger.Printf("failed to send status notification to %s: %v", senderUUID, err)
			}
		}
	}
}

// GetStatusGin godoc
// @Summary Get online users
// @Description Returns the users currently connected to pitch messaging
// @Tags pitch
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /pitch/status [get]
func (h *Handler) GetStatusGin(c *gin.Context) {
	users := h.manager.GetOnlineUsers()
	response.SendAPIResponse(c, http.StatusOK, true, "online status", map[string]interface{}{
		"online_users": users,
		"count":        len(users),
	})
}

// GetThreadGin godoc
// @Summary Get pitch thread
// @Description Fetch the pitch history between the requesting user and a peer
// @Tags pitch
// @Param user_id query string true "Requesting user UUID"
// @Param peer_id query string true "Peer user UUID"
// @Param limit query int false "Maximum messages to return (max 100)"
// @Param before query int false "Epoch seconds cursor for pagination"
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /pitches [get]
func (h *Handler) GetThreadGin(c *gin.Context) {
	if h.repo == nil {
		response.SendAPIResponse(c, http.StatusServiceUnavailable, false, "pitch history not available", nil)
		return
	}

	userID := c.Query("user_id")
	if _, err := uuid.Parse(userID); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid user_id, must be UUID", nil)
		return
	}

	peerID := c.Query("peer_id")
	if peerID == "" {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "peer_id is required", nil)
		return
	}

	limit := 50
	if ls := c.Query("limit"); ls != "" {
		if _, err := fmt.Sscanf(ls, "%d", &limit); err != nil {
			response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid limit parameter", nil)
			return
		}
	}
	beforeEpoch := time.Now().Unix()
	if bs := c.Query("before"); bs != "" {
		if _, err := fmt.Sscanf(bs, "%d", &beforeEpoch); err != nil {
			response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid before parameter", nil)
			return
		}
	}

	messages, err := h.repo.GetThread(c.Request.Context(), userID, peerID, limit, beforeEpoch)
	if err != nil {
		h.logger.Printf("failed to fetch pitch thread for %s <-> %s: %v", userID, peerID, err)
		response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to fetch pitch thread", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "pitch thread", map[string]interface{}{
		"messages": messages,
		"count":    len(messages),
	})
}
