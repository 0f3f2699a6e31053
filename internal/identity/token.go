package identity

import (
	"errors"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrTokenExpired marks an access token whose signature is valid but whose
// lifetime has elapsed; callers may attempt a refresh.
var ErrTokenExpired = errors.New("access token expired")

// sessionClaims mirrors the provider's access token payload.
type sessionClaims struct {
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
	jwt.RegisteredClaims
}

// VerifyAccessToken validates the session JWT against the provider secret
// and decodes the carried identity, including the typed role.
func (c *Client) VerifyAccessToken(tokenStr string) (*User, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(c.cfg.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, err
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Subject == "" {
		return nil, errors.New("token missing subject")
	}

	return &User{
		ID:       claims.Subject,
		Email:    claims.Email,
		Role:     RoleFromMetadata(claims.UserMetadata),
		Metadata: claims.UserMetadata,
	}, nil
}
