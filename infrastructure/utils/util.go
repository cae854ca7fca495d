package utils

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"tubelens/infrastructure/logger"
)

func GetCurrentTime() time.Time {
	return time.Now().UTC()
}

// couponAlphabet excludes ambiguous characters (0/O, 1/I/L) so codes survive
// being read aloud or retyped.
const couponAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GenerateCouponCode returns a random code in XXXX-XXXX-XXXX form.
func GenerateCouponCode() string {
	buf := make([]byte, 12)
	_, _ = rand.Read(buf)
	var sb strings.Builder
	for i, b := range buf {
		if i > 0 && i%4 == 0 {
			sb.WriteByte('-')
		}
		sb.WriteByte(couponAlphabet[int(b)%len(couponAlphabet)])
	}
	return sb.String()
}

func GenerateToken(payload map[string]interface{}, secretKey string) (string, error) {
	var claims jwt.MapClaims = payload
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while generate token")
		return "", err
	}
	return tokenString, nil
}
