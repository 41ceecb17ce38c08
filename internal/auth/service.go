// Package auth provides credential verification and JWT token management
// for the directory API.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/peopleops-tools/staffdir/internal/records"
	"github.com/peopleops-tools/staffdir/pkg/common/structs"
)

// DefaultTokenExpiry is used when the config does not set one.
const DefaultTokenExpiry = 12 * time.Hour

// ErrInvalidCredentials is returned when the username is unknown or the
// password does not match. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken is returned when token validation fails.
var ErrInvalidToken = errors.New("invalid token")

// Claims represents the JWT claims issued for an authenticated employee.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
	Name string `json:"name"`
}

// Service verifies credentials against the record store and issues HS256
// tokens.
type Service struct {
	repo       records.Repository
	secret     []byte
	expiry     time.Duration
	bcryptCost int
}

// NewService creates an auth service. A non-positive expiry falls back to
// DefaultTokenExpiry; a non-positive bcrypt cost falls back to the library
// default.
func NewService(repo records.Repository, secret string, expiry time.Duration, bcryptCost int) *Service {
	if expiry <= 0 {
		expiry = DefaultTokenExpiry
	}
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		secret:     []byte(secret),
		expiry:     expiry,
		bcryptCost: bcryptCost,
	}
}

// HashPassword hashes a plaintext password for storage.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyCredentials checks username/password against the authoritative
// store and returns the matching record on success.
func (s *Service) VerifyCredentials(ctx context.Context, username, password string) (structs.Record, error) {
	rec, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, records.ErrRecordNotFound) {
			return structs.Record{}, ErrInvalidCredentials
		}
		return structs.Record{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.Password), []byte(password)); err != nil {
		return structs.Record{}, ErrInvalidCredentials
	}
	return rec, nil
}

// IssueToken creates a bearer token payload for the given record.
func (s *Service) IssueToken(rec structs.Record) (structs.Token, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   rec.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
		Role: rec.Role,
		Name: rec.Name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return structs.Token{}, err
	}

	return structs.Token{
		AccessToken: signed,
		TokenType:   "bearer",
		Username:    rec.Username,
		Role:        rec.Role,
		Name:        rec.Name,
	}, nil
}

// ValidateToken parses and validates a bearer token, returning its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
