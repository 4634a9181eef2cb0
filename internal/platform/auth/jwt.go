package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JobClaims binds a signed token to a single job id.
type JobClaims struct {
	JobID string `json:"job_id"`
	jwt.RegisteredClaims
}

// JobTokenManager mints and validates the bearer tokens returned alongside
// an async job id. Holding the token is what authorizes polling that job's
// status and result — there is no user/session concept in this service.
type JobTokenManager struct {
	secret string
	expiry time.Duration
}

// NewJobTokenManager creates a new job-token manager
func NewJobTokenManager(secret string, expiry time.Duration) *JobTokenManager {
	return &JobTokenManager{secret: secret, expiry: expiry}
}

// Generate mints a token scoped to a single job id
func (m *JobTokenManager) Generate(jobID string) (string, error) {
	now := time.Now()
	claims := &JobClaims{
		JobID: jobID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

// Validate parses a token and returns the claims if it is well-formed,
// unexpired, and signed with this manager's secret.
func (m *JobTokenManager) Validate(tokenString string) (*JobClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JobClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JobClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
