package session

import (
	"github.com/dmitrijs2005/cityreport/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

// RoleResolver derives the client-side role from an access token.
//
// The server does not return the role on login. When the token is a JWT
// with a known "role" claim that claim wins, otherwise Default is used. The
// signature is not checked: the client has no key, and the role only drives
// which commands are offered. The server authorizes every request itself.
type RoleResolver struct {
	Default models.Role
}

func (r RoleResolver) Resolve(token string) models.Role {
	def := r.Default
	if !def.Valid() {
		def = models.RoleCitizen
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return def
	}

	s, ok := claims["role"].(string)
	if !ok {
		return def
	}
	if role := models.Role(s); role.Valid() {
		return role
	}
	return def
}
