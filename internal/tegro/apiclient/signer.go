package apiclient

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var ErrMissingCredential = errors.New("authenticated endpoints require a secret key")

// Sign returns the lowercase hex HMAC-SHA256 of body keyed with secretKey.
func Sign(secretKey string, body []byte) (string, error) {
	if secretKey == "" {
		return "", ErrMissingCredential
	}
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil)), nil
}
