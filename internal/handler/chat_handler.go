package handler

import (
	"log"
	"net/http"

	"seedy/internal/chat"
	"seedy/internal/middleware"
	"seedy/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type ChatHandler struct {
	hub *chat.Hub
	svc *service.ChatService
}

func NewChatHandler(hub *chat.Hub, svc *service.ChatService) *ChatHandler {
	return &ChatHandler{hub: hub, svc: svc}
}

func (h *ChatHandler) History(c *gin.Context) {
	messages, err := h.svc.History(c.Request.Context(), paramID(c, "community_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// Join upgrades to a websocket and ties the connection to one community
// room. Serve blocks until the peer disconnects.
func (h *ChatHandler) Join(c *gin.Context) {
	communityID := paramID(c, "community_id")
	if communityID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters missing: community_id not present"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("chat: upgrade failed: %v", err)
		return
	}
	h.hub.Serve(c.Request.Context(), conn, middleware.UserID(c), communityID)
}
