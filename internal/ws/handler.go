package ws

import (
	"net/http"

	"github.com/gorilla/websocket"

	"softphonix/internal/auth"
	"softphonix/pkg/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades the connection, pushes the active-calls snapshot and then
// streams hub events until the client goes away. The browser cannot set an
// Authorization header on a websocket, so the JWT rides the query string.
func Handler(hub *Hub, snapshot func() any, jwtSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "token required", http.StatusUnauthorized)
			return
		}
		if _, err := auth.ParseJWT(token, jwtSecret); err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		logger.Infof("🔌 WS connect %s", r.RemoteAddr)

		// =======================
		// SNAPSHOT
		// =======================
		if err := conn.WriteJSON(Event{
			Type: "active-calls",
			Data: snapshot(),
		}); err != nil {
			return
		}

		// =======================
		// SUBSCRIBE + LOOP
		// =======================
		sub := hub.Subscribe()
		defer hub.Unsubscribe(sub)

		// drain reads so close frames are seen
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := conn.WriteJSON(ev); err != nil {
					logger.Infof("🔌 WS disconnect %s", r.RemoteAddr)
					return
				}
			case <-done:
				logger.Infof("🔌 WS disconnect %s", r.RemoteAddr)
				return
			}
		}
	}
}
