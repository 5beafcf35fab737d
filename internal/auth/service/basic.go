package service

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"github.com/driftmail/newsletter-backend/internal/auth/domain"
	commoncrypto "github.com/driftmail/newsletter-backend/internal/common/crypto"
	commonerrors "github.com/driftmail/newsletter-backend/internal/common/errors"
)

const basicScheme = "Basic "

// ExtractBasicCredentials parses a raw Authorization header value into a
// username/password pair. Pure function, no side effects. Every failure
// class (missing header, wrong scheme, bad base64, bad UTF-8, missing
// separator) collapses into ErrMalformedAuthHeader with the detail kept in
// the cause chain for server-side logs.
func ExtractBasicCredentials(header string) (domain.Credentials, error) {
	if header == "" {
		return domain.Credentials{}, commonerrors.ErrMalformedAuthHeader.WithCause(
			errMissingHeader)
	}
	if !utf8.ValidString(header) {
		return domain.Credentials{}, commonerrors.ErrMalformedAuthHeader.WithCause(
			errHeaderNotUTF8)
	}

	encoded, ok := strings.CutPrefix(header, basicScheme)
	if !ok {
		return domain.Credentials{}, commonerrors.ErrMalformedAuthHeader.WithCause(
			errNotBasicScheme)
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return domain.Credentials{}, commonerrors.ErrMalformedAuthHeader.WithCause(err)
	}
	if !utf8.Valid(decoded) {
		return domain.Credentials{}, commonerrors.ErrMalformedAuthHeader.WithCause(
			errCredentialsNotUTF8)
	}

	// Only the first colon separates; passwords may contain colons.
	username, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return domain.Credentials{}, commonerrors.ErrMalformedAuthHeader.WithCause(
			errMissingSeparator)
	}

	return domain.Credentials{
		Username: username,
		Password: commoncrypto.NewSecret(password),
	}, nil
}
