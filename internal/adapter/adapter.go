// Package adapter provides the I/O capability the engine drives
// against: send (non-blocking) and receive (blocking), with a console
// implementation for synchronous single-session runs and a web
// implementation built on cross-goroutine message queues.
package adapter

// Exit is the sentinel Listen recognizes as an immediate session
// termination signal, whether it was typed by the user or synthesized
// when a web session's inbound queue is closed out from under it.
const Exit = "EXIT"

// Adapter is the capability both the console and web collaborators
// implement.
type Adapter interface {
	Send(text string)
	Receive() string
}
