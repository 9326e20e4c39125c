// Package common contains constants shared by the CityReport client packages.
package common

// AppName is used for XDG directory names and the User-Agent header.
const AppName = "cityreport"

// HTTP header names used on outbound requests.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerPrefix            = "Bearer "
)

// Keys of the persisted session values.
const (
	TokenStorageKey = "token"
	UserStorageKey  = "user"
)
