// Package `chatsrv` implements relay server application for chat over TCP.
//
// Configuration is read from environment variables (a local .env file is
// honored when present), see Config for the full list. To compile the
// server locally, run from package directory:
//
//	go install .
//
// Or quickly launch it with command:
//
//	go run .
package main
