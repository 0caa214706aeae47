// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth verifies the administrator's credentials on the server. The
// console has exactly one account, configured through the environment: an
// email, a bcrypt password hash and an optional TOTP secret.
package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/crypto/bcrypt"
)

// Issuer is the name shown by authenticator apps.
const Issuer = "Folio Admin"

// BcryptCost is used by HashPassword.
const BcryptCost = 12

// ErrNoTOTP is returned when a second factor is requested but none is
// configured.
var ErrNoTOTP = errors.New("totp is not configured")

// Verifier checks login attempts against the configured account.
type Verifier struct {
	email        string
	passwordHash []byte
	totpSecret   string
}

// NewVerifier creates a Verifier. An empty totpSecret disables the second
// factor.
func NewVerifier(email, passwordHash, totpSecret string) *Verifier {
	return &Verifier{
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: []byte(passwordHash),
		totpSecret:   strings.TrimSpace(totpSecret),
	}
}

// Email is the configured account email.
func (v *Verifier) Email() string {
	return v.email
}

// CheckPassword reports whether email and password match the account. The
// email comparison is case-insensitive. The bcrypt comparison always runs
// so a wrong email costs the same time as a wrong password.
func (v *Verifier) CheckPassword(email, password string) bool {
	given := strings.ToLower(strings.TrimSpace(email))
	emailOK := v.email != "" && subtle.ConstantTimeCompare([]byte(given), []byte(v.email)) == 1

	hash := v.passwordHash
	if len(hash) == 0 {
		// Compare against a throwaway hash so timing does not reveal an
		// unconfigured account.
		hash = dummyHash
	}
	passOK := bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil

	return emailOK && passOK && len(v.passwordHash) > 0
}

// TOTPEnabled reports whether logins need a second factor.
func (v *Verifier) TOTPEnabled() bool {
	return v.totpSecret != ""
}

// ValidateCode checks a 6-digit TOTP code with one step of clock skew.
func (v *Verifier) ValidateCode(code string) bool {
	return v.validateCodeAt(code, time.Now())
}

func (v *Verifier) validateCodeAt(code string, at time.Time) bool {
	if !v.TOTPEnabled() {
		return false
	}
	ok, err := totp.ValidateCustom(strings.TrimSpace(code), v.totpSecret, at, totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}

// Enrollment is what an authenticator app needs to add the account.
type Enrollment struct {
	Secret string
	URL    string
	// QRCode is a base64-encoded PNG of URL.
	QRCode string
}

// Enrollment renders the configured secret as an otpauth URL and QR code.
func (v *Verifier) Enrollment() (*Enrollment, error) {
	if !v.TOTPEnabled() {
		return nil, ErrNoTOTP
	}
	return enrollmentFor(v.email, v.totpSecret)
}

// GenerateTOTP creates a fresh secret for account, for provisioning a new
// ADMIN_TOTP_SECRET.
func GenerateTOTP(account string) (*Enrollment, []byte, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      Issuer,
		AccountName: account,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("totp generate: %w", err)
	}
	png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		return nil, nil, fmt.Errorf("qr encode: %w", err)
	}
	return &Enrollment{
		Secret: key.Secret(),
		URL:    key.URL(),
		QRCode: base64.StdEncoding.EncodeToString(png),
	}, png, nil
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

func enrollmentFor(account, secret string) (*Enrollment, error) {
	q := url.Values{}
	q.Set("secret", secret)
	q.Set("issuer", Issuer)
	u := url.URL{
		Scheme:   "otpauth",
		Host:     "totp",
		Path:     "/" + Issuer + ":" + account,
		RawQuery: q.Encode(),
	}
	key, err := otp.NewKeyFromURL(u.String())
	if err != nil {
		return nil, fmt.Errorf("totp key: %w", err)
	}
	png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	return &Enrollment{
		Secret: secret,
		URL:    key.URL(),
		QRCode: base64.StdEncoding.EncodeToString(png),
	}, nil
}

// dummyHash is bcrypt("unused") at MinCost.
var dummyHash = func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("unused"), bcrypt.MinCost)
	return h
}()
