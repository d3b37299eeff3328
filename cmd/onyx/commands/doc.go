// Package commands defines the onyx CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - chat    Generate a session identity, connect to the relay, and chat
//
// # Implementation
//
// The root command loads the TOML configuration and builds the logging
// backend before any subcommand runs. The chat command owns the terminal:
// inbound messages and notices print to stdout, local lines read from stdin
// are encrypted and broadcast, and /quit ends the session. Identity and keys
// live only for the lifetime of the process.
package commands
