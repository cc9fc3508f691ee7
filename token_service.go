package accounts

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// TokenPair is the result of a successful login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenService issues and validates the signed tokens used by the API
// boundary.
type TokenService interface {
	IssuePair(identity Identity) (*TokenPair, error)
	Refresh(refreshToken string) (string, error)
	Validate(tokenString string) (AuthClaims, error)
}

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey []byte
	issuer     string
	audience   jwt.ClaimStrings
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     Logger
}

// NewTokenService creates a new TokenService instance
func NewTokenService(cfg TokenConfig, logger Logger) TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenServiceImpl{
		signingKey: []byte(cfg.GetSigningKey()),
		issuer:     cfg.GetIssuer(),
		audience:   cfg.GetAudience(),
		accessTTL:  cfg.GetAccessTokenTTL(),
		refreshTTL: cfg.GetRefreshTokenTTL(),
		logger:     logger,
	}
}

// IssuePair signs an access/refresh token pair for the identity. The subject
// claim is the normalized email.
func (ts *TokenServiceImpl) IssuePair(identity Identity) (*TokenPair, error) {
	access, err := ts.sign(identity, TokenUseAccess, ts.accessTTL)
	if err != nil {
		return nil, err
	}

	refresh, err := ts.sign(identity, TokenUseRefresh, ts.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh validates a refresh token and mints a new access token for the same
// identity claims.
func (ts *TokenServiceImpl) Refresh(refreshToken string) (string, error) {
	claims, err := ts.Validate(refreshToken)
	if err != nil {
		return "", err
	}

	if claims.Use() != TokenUseRefresh {
		return "", ErrWrongTokenUse
	}

	return ts.sign(claimsIdentity{claims}, TokenUseAccess, ts.accessTTL)
}

// Validate parses and validates a token string, returning structured claims
func (ts *TokenServiceImpl) Validate(tokenString string) (AuthClaims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 2)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}
	if len(ts.audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(ts.audience...))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if goerrors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, goerrors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).WithTextCode(ErrTokenMalformed.TextCode)
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService validate could not decode or validate claims")
	return nil, ErrTokenMalformed
}

func (ts *TokenServiceImpl) sign(identity Identity, use TokenUse, ttl time.Duration) (string, error) {
	now := time.Now()

	var aud jwt.ClaimStrings
	if len(ts.audience) > 0 {
		aud = make(jwt.ClaimStrings, len(ts.audience))
		copy(aud, ts.audience)
	}

	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    ts.issuer,
			Subject:   identity.Email(),
			Audience:  aud,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UID:         identity.ID(),
		TokenUse:    use,
		IsStaff:     identity.IsStaff(),
		IsSuperuser: identity.IsSuperuser(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign JWT")
	}

	return signed, nil
}

// claimsIdentity adapts validated claims back into an Identity so refresh can
// reuse the signing path.
type claimsIdentity struct {
	claims AuthClaims
}

func (c claimsIdentity) ID() string        { return c.claims.AccountID() }
func (c claimsIdentity) Email() string     { return c.claims.Subject() }
func (c claimsIdentity) IsStaff() bool     { return c.claims.Staff() }
func (c claimsIdentity) IsSuperuser() bool { return c.claims.Superuser() }
