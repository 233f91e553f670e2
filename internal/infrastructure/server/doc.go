// Package server wires the TermQuest service together: configuration,
// logging, metrics, the save store, the session manager and the gin router
// with its REST and WebSocket routes.
//
// Saves go to badger behind a circuit breaker (see OpenSaveStore); every
// request is traced and the trace id is returned in X-Trace-ID.
//
// Example Usage:
//
//	srv, err := server.NewServer(config.LoadOrDefault())
//	if err != nil {
//		return err
//	}
//	defer srv.Close(context.Background())
//	return srv.Run()
package server
