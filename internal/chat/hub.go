package chat

import (
	"context"
	"encoding/json"
	"log"

	"seedy/internal/service"
)

// inbound is the client frame for the relay. Only send_message is handled;
// unknown events are dropped.
type inbound struct {
	Event       string `json:"event"`
	CommunityID uint64 `json:"community_id"`
	Text        string `json:"text"`
}

type outbound struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

type roomMessage struct {
	communityID uint64
	data        []byte
}

// Hub relays chat messages between clients of the same community room.
// All room membership changes go through the run loop, so no locking.
type Hub struct {
	rooms      map[uint64]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan roomMessage

	chats *service.ChatService
}

func NewHub(chats *service.ChatService) *Hub {
	return &Hub{
		rooms:      make(map[uint64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roomMessage, 64),
		chats:      chats,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			room := h.rooms[c.communityID]
			if room == nil {
				room = make(map[*Client]bool)
				h.rooms[c.communityID] = room
			}
			room[c] = true
		case c := <-h.unregister:
			if room, ok := h.rooms[c.communityID]; ok {
				if _, ok := room[c]; ok {
					delete(room, c)
					close(c.send)
					if len(room) == 0 {
						delete(h.rooms, c.communityID)
					}
				}
			}
		case msg := <-h.broadcast:
			for c := range h.rooms[msg.communityID] {
				select {
				case c.send <- msg.data:
				default:
					// slow peer, drop it
					delete(h.rooms[msg.communityID], c)
					close(c.send)
				}
			}
		}
	}
}

// handleInbound persists a send_message frame and fans the stored row out to
// the sender's room as receive_message.
func (h *Hub) handleInbound(ctx context.Context, c *Client, raw []byte) {
	var in inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		log.Printf("chat: bad frame from user %d: %v", c.userID, err)
		return
	}
	if in.Event != "send_message" {
		return
	}
	msg, err := h.chats.SaveMessage(ctx, c.userID, c.communityID, in.Text)
	if err != nil {
		log.Printf("chat: save message failed for user %d: %v", c.userID, err)
		return
	}
	data, err := json.Marshal(outbound{Event: "receive_message", Payload: msg})
	if err != nil {
		return
	}
	h.broadcast <- roomMessage{communityID: c.communityID, data: data}
}
