package handler

import (
	"net/http"
	"strconv"
	"strings"

	"guardian-portal-go/internal/model"
	"guardian-portal-go/internal/service"
	"guardian-portal-go/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// ConversationHandler exposes the conversation audit log to the dashboard.
type ConversationHandler struct {
	conversationService service.ConversationService
	feed                *service.Feed
	upgrader            websocket.Upgrader
}

// NewConversationHandler creates a new ConversationHandler.
func NewConversationHandler(conversationService service.ConversationService, feed *service.Feed) *ConversationHandler {
	return &ConversationHandler{
		conversationService: conversationService,
		feed:                feed,
		upgrader: websocket.Upgrader{
			// The dashboard is served from a different origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// List returns the account's recent conversations, newest first.
func (h *ConversationHandler) List(c *gin.Context) {
	caregiver := c.MustGet("caregiver").(*model.Caregiver)

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	conversations, err := h.conversationService.ListRecent(caregiver.ID, limit)
	if err != nil {
		log.Error("List: failed to list conversations", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "failed to list conversations", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": conversations})
}

// Search runs a full-text query over the conversation search index.
func (h *ConversationHandler) Search(c *gin.Context) {
	caregiver := c.MustGet("caregiver").(*model.Caregiver)

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "query parameter 'q' is required", "data": nil})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	results, err := h.conversationService.Search(c.Request.Context(), caregiver.ID, query, limit)
	if err != nil {
		log.Error("Search: conversation search failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "conversation search failed", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": results})
}

// Live upgrades to a websocket and streams newly logged conversations for the
// caregiver's account until the client disconnects.
func (h *ConversationHandler) Live(c *gin.Context) {
	caregiver := c.MustGet("caregiver").(*model.Caregiver)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warnf("failed to upgrade live feed connection: %v", err)
		return
	}

	h.feed.Add(conn, caregiver.ID)
	defer func() {
		h.feed.Remove(conn)
		_ = conn.Close()
	}()

	// Block reading until the client goes away; broadcasts happen from the
	// pipeline side.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
