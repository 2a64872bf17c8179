// Package token decodes JWT claims without verifying signatures. The upstream
// Zabava backend is the sole authority on token validity; decoded claims are
// only a client-side hint used to discard an obviously expired local session
// before bothering the network.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// DecodeClaims extracts the payload of a compact header.payload.signature
// token. Returns nil for malformed tokens; never panics and never surfaces
// an error to callers.
func DecodeClaims(tokenString string) jwt.MapClaims {
	if tokenString == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		log.Debug().Err(err).Msg("token decode failed")
		return nil
	}

	return claims
}

// ExpiresAt returns the exp claim as a time, or the zero time when the claims
// are nil or carry no usable exp. Tokens without exp are treated as valid
// indefinitely on the client side.
func ExpiresAt(claims jwt.MapClaims) time.Time {
	if claims == nil {
		return time.Time{}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}

	return exp.Time
}
