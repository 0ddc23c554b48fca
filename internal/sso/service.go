// Package sso exchanges a partner's SSO handoff for a session token so the
// journey starts already authenticated.
package sso

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "prequal/pkg/domain"
	dErrors "prequal/pkg/domain-errors"
	"prequal/pkg/requestcontext"
)

// tokenTTL is the session token lifetime.
const tokenTTL = 24 * time.Hour

const issuer = "prequal"

// Claims are the session token claims. BKUserID is the stable internal user
// id minted for the partner user.
type Claims struct {
	BKUserID string `json:"bk_user_id"`
	Partner  string `json:"partner"`
	Phone    string `json:"phone"`
	jwt.RegisteredClaims
}

// ExchangeRequest is the partner handoff payload.
type ExchangeRequest struct {
	Partner       string `json:"partner"`
	PartnerSecret string `json:"partner_secret"`
	PartnerUserID string `json:"partner_user_id"`
	Phone         string `json:"telephone"`
	Name          string `json:"name"`
}

func (r *ExchangeRequest) Validate() error {
	var missing []string
	if r.Partner == "" {
		missing = append(missing, "partner")
	}
	if r.PartnerUserID == "" {
		missing = append(missing, "partner_user_id")
	}
	if r.Phone == "" {
		missing = append(missing, "telephone")
	}
	if len(missing) > 0 {
		err := dErrors.New(dErrors.CodeIncompleteInputs, "sso exchange payload is missing mandatory fields")
		return dErrors.Add(err, "missing_fields", missing)
	}
	return nil
}

// Session is a successful exchange result.
type Session struct {
	BKUserID  string     `json:"bk_user_id"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	Phone     id.Phone   `json:"telephone"`
	Name      string     `json:"name,omitempty"`
	Device    DeviceInfo `json:"device"`
}

// DeviceInfo is parsed from the User-Agent header at exchange time and kept
// with the session for support and analytics.
type DeviceInfo struct {
	Platform string `json:"platform,omitempty"`
	OS       string `json:"os,omitempty"`
	Browser  string `json:"browser,omitempty"`
	Mobile   bool   `json:"mobile"`
	Bot      bool   `json:"bot"`
}

// Service mints and validates session tokens.
type Service struct {
	signingKey        []byte
	partnerSecretHash string
	logger            *slog.Logger
}

// NewService constructs the SSO service. An empty partner secret hash
// disables secret verification, which is the open demo mode.
func NewService(signingKey, partnerSecretHash string, logger *slog.Logger) (*Service, error) {
	if signingKey == "" {
		return nil, fmt.Errorf("sso service requires a signing key")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		signingKey:        []byte(signingKey),
		partnerSecretHash: partnerSecretHash,
		logger:            logger,
	}, nil
}

// Exchange verifies the partner handoff and mints a 24 hour session token.
// The internal user id is derived deterministically from partner and partner
// user id, so repeat logins resolve to the same user.
func (s *Service) Exchange(ctx context.Context, req ExchangeRequest, device DeviceInfo) (*Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	phone, err := id.ParsePhone(req.Phone)
	if err != nil {
		return nil, err
	}
	if s.partnerSecretHash != "" {
		if err := verifySecret(req.PartnerSecret, s.partnerSecretHash); err != nil {
			s.logger.WarnContext(ctx, "partner secret rejected",
				"request_id", requestcontext.RequestID(ctx),
				"partner", req.Partner,
			)
			return nil, err
		}
	}

	now := requestcontext.Now(ctx)
	bkUserID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(req.Partner+":"+req.PartnerUserID)).String()
	expiresAt := now.Add(tokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		BKUserID: bkUserID,
		Partner:  req.Partner,
		Phone:    phone.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   bkUserID,
			ID:        uuid.NewString(),
		},
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	s.logger.InfoContext(ctx, "sso exchange complete",
		"request_id", requestcontext.RequestID(ctx),
		"partner", req.Partner,
		"bk_user_id", bkUserID,
		"mobile", device.Mobile,
	)
	return &Session{
		BKUserID:  bkUserID,
		Token:     signed,
		ExpiresAt: expiresAt,
		Phone:     phone,
		Name:      req.Name,
		Device:    device,
	}, nil
}

// ValidateToken parses and verifies a session token.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return claims, nil
}
