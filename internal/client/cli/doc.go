// Package cli implements the interactive CityReport shell and the command
// handlers shared with the one-shot cobra commands.
//
// The App wires the session store, the API client and the photo uploader
// together. Every handler prompts on the App's reader, prints to its writer
// and returns an error instead of exiting, so the REPL can report the
// problem and keep going.
package cli
