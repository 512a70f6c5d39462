// Package ws streams shell lifecycle transitions over WebSocket.
//
// Every client receives a system message with the current state on connect,
// then one transition message per accepted state change, in order. Clients
// may send {"type":"ping"} or {"type":"state"}. A client that cannot keep
// up is disconnected rather than allowed to stall the shell.
package ws
