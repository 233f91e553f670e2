// Package ws provides the WebSocket terminal.
//
// A connection is bound to one game session: either the one named by the
// ?session= query parameter or a fresh one created on connect. Every
// message is a JSON object with a type field.
//
// Message Types (Client → Server):
//   - exec: Run {"command": "..."}
//   - complete: Complete {"input": "..."}
//   - ping: Keep-alive ping
//
// Message Types (Server → Client):
//   - system: Connected, carries the session id and prompt
//   - result: Command result plus the next prompt
//   - completion: Tab completion answer
//   - pong: Keep-alive reply
//   - error: Error occurred
//
// Example Usage:
//
//	handler := ws.NewHandler(manager, metrics, logger)
//	router.GET("/terminal", handler.HandleConnection)
package ws
