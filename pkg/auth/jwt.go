package auth

import (
	stderrors "errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// JWT validation errors
var (
	ErrExpiredToken     = stderrors.New("token has expired")
	ErrInvalidSignature = stderrors.New("invalid token signature")
	ErrInvalidToken     = stderrors.New("invalid token")
)

// TokenClaims are the user-pool claims the application reads. The claim
// names follow the identity service's convention.
type TokenClaims struct {
	Username string `json:"cognito:username"`
	Groups   string `json:"cognito:groups"`
	jwt.RegisteredClaims
}

// JWTValidator validates bearer tokens in server mode. In Lambda mode the
// gateway authorizer has already validated the token and the validator is
// never consulted.
type JWTValidator struct {
	secret []byte
	issuer string
}

// NewJWTValidator creates a validator for HS256 tokens
func NewJWTValidator(secret, issuer string) (*JWTValidator, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	return &JWTValidator{secret: []byte(secret), issuer: issuer}, nil
}

// ValidateToken parses and verifies a token, returning the caller identity.
func (v *JWTValidator) ValidateToken(tokenString string) (*UserContext, error) {
	claims := &TokenClaims{}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)

	switch {
	case err == nil && token.Valid:
		if claims.Username == "" {
			return nil, ErrInvalidToken
		}
		return &UserContext{
			Username: claims.Username,
			Groups:   ParseGroups(claims.Groups),
		}, nil
	case stderrors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case stderrors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrInvalidSignature
	default:
		return nil, ErrInvalidToken
	}
}
