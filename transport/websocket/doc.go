// Package websocket pushes board updates to browser clients.
//
// A Hub groups connections by session ID. Clients connect with
// ?session=<id>; every terrain change, reset or knight move on that session
// is sent to them as a JSON Message:
//
//	{"session_id": "ab12", "event": "state_update", "state": {...}}
//
// Path results and move replays are sent as "path" and "move" events with
// the result in "data". Incoming client messages are read only to keep the
// connection alive.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
// Clients whose send buffer fills up are dropped. Cancelling the context
// passed to Run closes every connection.
package websocket
