package jwt

import (
	"errors"
	"fmt"
	"time"

	"Recipe-Box-Backend/domain"

	"github.com/golang-jwt/jwt/v4"
)

const defaultIssuer = "RECIPE-BOX"

type (
	JWTService interface {
		GenerateToken(subject string, ttl time.Duration) (string, error)
		ValidateToken(token string) (string, error)
	}

	Config struct {
		Secret    string
		Algorithm string
		TTL       time.Duration
		Issuer    string
	}

	jwtService struct {
		secretKey []byte
		method    jwt.SigningMethod
		ttl       time.Duration
		issuer    string
	}
)

func NewJWTService(config Config) (JWTService, error) {
	if config.Secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if config.Algorithm == "" {
		config.Algorithm = jwt.SigningMethodHS256.Alg()
	}

	method, ok := jwt.GetSigningMethod(config.Algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported jwt algorithm %q", config.Algorithm)
	}
	if config.TTL <= 0 {
		config.TTL = 120 * time.Minute
	}
	if config.Issuer == "" {
		config.Issuer = defaultIssuer
	}

	return &jwtService{
		secretKey: []byte(config.Secret),
		method:    method,
		ttl:       config.TTL,
		issuer:    config.Issuer,
	}, nil
}

// GenerateToken signs a token for subject. A non-positive ttl means the
// configured default; every token carries an expiry.
func (j *jwtService) GenerateToken(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("token subject is empty")
	}
	if ttl <= 0 {
		ttl = j.ttl
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    j.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	return jwt.NewWithClaims(j.method, claims).SignedString(j.secretKey)
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if t_.Method.Alg() != j.method.Alg() {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return j.secretKey, nil
}

// ValidateToken returns the subject of a valid token.
func (j *jwtService) ValidateToken(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	t_, err := jwt.ParseWithClaims(token, claims, j.parseToken, jwt.WithValidMethods([]string{j.method.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !t_.Valid || claims.ExpiresAt == nil || claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}

	return claims.Subject, nil
}
