package admin

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"maktaba_back_end/internal/database"
	"maktaba_back_end/internal/handlers/payment"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// ================== LIVE ORDER FEED ==================
//
// The back office keeps a websocket open; every placed order is fanned
// out from the Redis channel the verify leg publishes on.

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || origin == os.Getenv("FRONTEND_URL") || origin == os.Getenv("ADMIN_URL")
	},
}

// OrderFeed upgrades the connection and streams placed orders until the
// client goes away.
func OrderFeed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sub := database.Redis.Subscribe(ctx, payment.OrderFeedChannel)
	defer sub.Close()

	// drain client frames so pings and closes are seen
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	log.Println("🔔 Back-office order feed connected")
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		}
	}
}
