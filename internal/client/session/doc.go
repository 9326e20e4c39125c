// Package session keeps the authenticated identity and bearer token of the
// CLI user, persists them to local storage, and restores them on start.
package session
