// Package api is the HTTP client of the CityReport backend. Every outbound
// call goes through HTTPClient, whose transport attaches the bearer token of
// the current session and a request id, and whose error mapping turns HTTP
// statuses into the package's sentinel errors.
package api
