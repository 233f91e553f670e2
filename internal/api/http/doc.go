// Package http provides the REST handlers of the TermQuest service.
//
// A browser terminal creates a session, sends each command line to Exec
// and renders the returned Result. Tab presses go to Complete. Save and
// Load move the session in and out of a save slot.
//
// Routes:
//   - POST   /sessions                create a machine
//   - GET    /sessions/:id            user, cwd, prompt and history
//   - DELETE /sessions/:id            close a machine
//   - POST   /sessions/:id/exec       run {"command": "..."}
//   - GET    /sessions/:id/complete   complete ?input=
//   - PUT    /sessions/:id/files      nano save {"path", "content"}
//   - POST   /sessions/:id/save       store {"slot", "progress"}
//   - POST   /sessions/:id/load       restore ?slot=
//   - DELETE /saves                   clear ?slot=
//   - GET    /commands                list builtins
//   - GET    /commands/discover       search builtins by ?q=
//   - POST   /logs                    forward front-end logs
package http
