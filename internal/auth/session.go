// internal/auth/session.go
package auth

import (
	"crypto/ed25519"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Service mints and verifies per-player session tokens. Tokens are scoped to
// one game: the subject is the player ID and the "gid" claim is the game the
// token was issued for, so a token for one table cannot move on another.
type Service struct {
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey
	expire     time.Duration // 0 => tokens never expire
}

// Claims is the verified identity carried by a token.
type Claims struct {
	PlayerID string
	GameID   string
}

// NewService generates a fresh ed25519 key pair. Tokens minted by one process
// are not valid in another; pass key files through NewServiceFromPath when
// that matters.
func NewService(expire time.Duration) (*Service, error) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, fmt.Errorf("generate ed25519 key pair: %w", err)
	}
	return &Service{privateKey: priv, publicKey: pub, expire: expire}, nil
}

// NewServiceFromPath loads an ed25519 key pair from files.
func NewServiceFromPath(privatePath, publicPath string, expire time.Duration) (*Service, error) {
	priv, err := os.ReadFile(privatePath)
	if err != nil {
		return nil, fmt.Errorf("read private key file: %w", err)
	}
	pub, err := os.ReadFile(publicPath)
	if err != nil {
		return nil, fmt.Errorf("read public key file: %w", err)
	}
	return &Service{
		privateKey: ed25519.PrivateKey(priv),
		publicKey:  ed25519.PublicKey(pub),
		expire:     expire,
	}, nil
}

// Mint signs a token for playerID on gameID.
func (s *Service) Mint(playerID, gameID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": playerID,
		"gid": gameID,
	}
	if s.expire > 0 {
		claims["exp"] = time.Now().Add(s.expire).Unix()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	return token.SignedString(s.privateKey)
}

// Verify parses and validates a token, returning its claims.
func (s *Service) Verify(tokenString string) (Claims, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.publicKey, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("jwt parse error: %w", err)
	}
	if !t.Valid {
		return Claims{}, fmt.Errorf("invalid token")
	}
	mc, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, fmt.Errorf("invalid jwt claims")
	}
	sub, ok := mc["sub"].(string)
	if !ok {
		return Claims{}, fmt.Errorf("missing sub in jwt")
	}
	gid, ok := mc["gid"].(string)
	if !ok {
		return Claims{}, fmt.Errorf("missing gid in jwt")
	}
	return Claims{PlayerID: sub, GameID: gid}, nil
}
