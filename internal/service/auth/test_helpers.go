package auth

import "time"

// NewTestJWTService creates a JWT service with an injectable clock for
// predictable expiry testing. The refresh lifetime is fixed at seven times
// the access lifetime, which is ample for the scenarios tests exercise.
func NewTestJWTService(
	secret string,
	tokenLifetime time.Duration,
	timeFunc func() time.Time,
) JWTService {
	return &hmacJWTService{
		signingKey:           []byte(secret),
		tokenLifetime:        tokenLifetime,
		refreshTokenLifetime: 7 * tokenLifetime,
		timeFunc:             timeFunc,
		clockSkew:            0,
	}
}
