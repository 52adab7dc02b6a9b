// Package `chatcli` implements interactive terminal client for the chat
// server. It relays typed lines to the server and prints lines broadcast
// by other clients. Type `quit` on its own line to end the session.
//
// Launch:
//
//	go run . -host 127.0.0.1 -port 20000
package main
