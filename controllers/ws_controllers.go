package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/dinehall/restaurant-foh/realtime"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// FOHStreamHandler -> endpoint WebSocket untuk live feed order/meja
func FOHStreamHandler(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	switch sess.Role {
	case "admin", "staff", "kitchen":
	default:
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	realtime.RegisterClient(ws, sess.Role)
	defer realtime.UnregisterClient(ws)

	// Tahan connection sampai client menutup
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
}
