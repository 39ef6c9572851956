// Package server runs the local API the GUI talks to.
//
// The server starts listening when Run is called and shuts down gracefully
// once the run context is cancelled.
package server
