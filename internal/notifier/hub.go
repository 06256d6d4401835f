package notifier

import (
	"encoding/json"
	"log/slog"
)

// Hub は接続中の全クライアントへ注文イベントをブロードキャストする。
// register/unregister/broadcast はすべてRunのループで直列に処理する。
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
	}
}

// Run はハブのメインループ。goroutineで起動する。
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			slog.Info("ws client connected", "clients", len(h.clients))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				slog.Info("ws client disconnected", "clients", len(h.clients))
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					//詰まっているクライアントは切る
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// BroadcastJSON はイベントをJSONにして全クライアントへ送る。
// usecase.OrderNotifier へはmain.goの小さなアダプタで適合させる。
func (h *Hub) BroadcastJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("ws broadcast marshal failed", "err", err)
		return
	}
	h.broadcast <- data
}
