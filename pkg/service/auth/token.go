package auth

import (
	"time"

	"github.com/demipay/demipay/pkg/config"
	"github.com/demipay/demipay/pkg/domain/user"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenSource mints the opaque bearer tokens sessions are identified by.
type TokenSource interface {
	Token(u *user.User) (string, error)
}

// OpaqueTokenSource mints unguessable random tokens. The default.
type OpaqueTokenSource struct{}

// Token returns a fresh opaque token.
func (OpaqueTokenSource) Token(_ *user.User) (string, error) {
	return "token-" + uuid.NewString(), nil
}

// JWTTokenSource mints HS256-signed JWTs carrying the user's identity. The
// ledger still treats the result as an opaque string; nothing validates
// claims on the way back in.
type JWTTokenSource struct {
	Cfg *config.Jwt
}

// Token signs a JWT for the given user.
func (s JWTTokenSource) Token(u *user.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = u.ID
	claims["email"] = u.Email
	claims["exp"] = time.Now().Add(s.Cfg.Expiry).Unix()
	// jti keeps two logins in the same second from minting identical tokens.
	claims["jti"] = uuid.NewString()
	return token.SignedString([]byte(s.Cfg.Secret))
}
