// Package server wires the shell host together.
//
// NewServer builds every collaborator from config.Config:
//   - logger and a per-instance metrics registry
//   - the font fetcher (rate limited, retried, circuit broken per origin)
//   - the font preloader bound to the configured capability
//   - the media player resolved for that capability
//   - the headless render surface and container
//   - the shell and the hosted application catalog
//   - the control API (gin) and the transition stream (WebSocket)
//
// Lifecycle:
//  1. NewServer seeds the catalog and activates the shell
//  2. Run serves the control API
//  3. Done fires when a top level back asks the host to exit
//  4. Shutdown stops the hosted app, detaches media and drains connections
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.NewServer(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	go srv.Run()
//	<-srv.Done()
//	srv.Shutdown(context.Background())
package server
