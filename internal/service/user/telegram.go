package user

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/wordflow/wordflow-backend/internal/domain"
)

// LoginResult is the outcome of a verified Telegram login.
type LoginResult struct {
	User  *domain.User
	IsNew bool
}

// CreateOrUpdateFromTelegram verifies the payload signature and freshness,
// then creates the user or refreshes their profile fields.
func (s *Service) CreateOrUpdateFromTelegram(ctx context.Context, p TelegramProfile) (*LoginResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if !s.verifySignature(p) {
		return nil, fmt.Errorf("telegram payload signature mismatch: %w", domain.ErrUnauthorized)
	}

	authDate := time.Unix(p.AuthDate, 0).UTC()
	if s.now().UTC().Sub(authDate) > s.authDateMaxAge {
		return nil, fmt.Errorf("telegram payload expired: %w", domain.ErrUnauthorized)
	}

	u := domain.User{
		TelegramID: p.ID,
		FirstName:  p.FirstName,
		LastName:   optional(p.LastName),
		Username:   optional(p.Username),
		PhotoURL:   optional(p.PhotoURL),
		AuthDate:   authDate,
	}

	created, err := s.users.Upsert(ctx, &u)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	s.log.InfoContext(ctx, "telegram login",
		"telegram_id", p.ID,
		"user_id", u.ID,
		"is_new", created,
	)

	return &LoginResult{User: &u, IsNew: created}, nil
}

// verifySignature checks the payload HMAC the way the Telegram login widget
// signs it: the data-check string is every non-empty field except hash as
// "key=value" lines, sorted by key and joined with newlines; the key is
// SHA-256 of the bot token.
func (s *Service) verifySignature(p TelegramProfile) bool {
	fields := map[string]string{
		"id":         strconv.FormatInt(p.ID, 10),
		"first_name": p.FirstName,
		"auth_date":  strconv.FormatInt(p.AuthDate, 10),
	}
	if p.LastName != "" {
		fields["last_name"] = p.LastName
	}
	if p.Username != "" {
		fields["username"] = p.Username
	}
	if p.PhotoURL != "" {
		fields["photo_url"] = p.PhotoURL
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+fields[k])
	}
	checkString := strings.Join(lines, "\n")

	secret := sha256.Sum256([]byte(s.botToken))

	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(checkString))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(p.Hash))
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
