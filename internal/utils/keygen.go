package utils

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// GenerateVerifyCode generates a random 6-digit numeric code used to link a
// LINE chat account to an application user. Leading zeros are preserved.
func GenerateVerifyCode() (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	n := binary.BigEndian.Uint64(b[:]) % 1000000
	return fmt.Sprintf("%06d", n), nil
}
