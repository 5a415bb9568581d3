// Package jwt реализует выпуск и проверку подписанных JWT с данными пользователя.
//
// Maker создаётся один раз при старте из неизменяемого секрета и TTL и затем
// разделяется всеми запросами без дополнительной синхронизации.
package jwt

import (
	"errors"
	"time"
)

// ErrEmptySecret возвращается при попытке создать Maker без секрета.
var ErrEmptySecret = errors.New("jwt: signing secret is empty")

// Maker описывает выпуск и разбор токенов.
type Maker interface {
	// GenerateToken подписывает набор claims пользователя.
	GenerateToken(user UserClaims) (string, error)
	// ParseToken проверяет подпись и срок действия и возвращает claims.
	ParseToken(tokenStr string) (*Claims, error)
}

// MakerImpl подписывает токены алгоритмом HS256.
type MakerImpl struct {
	secretKey []byte        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена, при 0 токен бессрочный.
	now       func() time.Time
}

// NewJWTMaker создаёт Maker. Пустой секрет считается фатальной ошибкой конфигурации.
func NewJWTMaker(secretKey string, ttl time.Duration) (*MakerImpl, error) {
	if secretKey == "" {
		return nil, ErrEmptySecret
	}
	return &MakerImpl{
		secretKey: []byte(secretKey),
		tokenTTL:  ttl,
		now:       time.Now,
	}, nil
}
