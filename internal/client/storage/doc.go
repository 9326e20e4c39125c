// Package storage is the durable local store of the CLI: a SQLite database
// (pure-Go driver) whose schema is managed by embedded goose migrations, and
// a small key/value repository on top of it. It plays the role browser local
// storage plays for a web client.
package storage
