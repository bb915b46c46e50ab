// Package app contains the core application logic. It defines the main App
// struct, its configuration and the write, show and configure flows,
// decoupled from any specific entrypoint like a CLI.
package app
