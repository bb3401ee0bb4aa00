// Package commands defines the warikan CLI.
//
// # Commands
//
//   - serve   Run the HTTP API and, when DISCORD_TOKEN is set, the Discord bot
//   - split   Settle a shared expense from the command line
//
// # Configuration
//
// serve reads its settings from the environment (and an optional .env file);
// see internal/config. split needs no configuration.
package commands
