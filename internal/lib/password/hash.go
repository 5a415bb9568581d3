// Package password реализует хеширование и проверку паролей через bcrypt.
//
// Каждый вызов Hash генерирует новую соль, поэтому два хеша одного и того же
// пароля различаются, но оба успешно проходят Verify.
package password

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost: стоимость bcrypt по умолчанию.
const DefaultCost = 10

// maxBcryptLen: предел длины входа bcrypt в байтах.
const maxBcryptLen = 72

// Hasher хеширует пароли с заданной стоимостью.
type Hasher struct {
	cost int
}

// NewHasher создаёт Hasher. Стоимость вне допустимого диапазона bcrypt
// заменяется на DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Cost возвращает используемую стоимость.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash возвращает bcrypt-хеш пароля.
func (h *Hasher) Hash(plain string) (string, error) {
	const op = "password.Hash"
	hashed, err := bcrypt.GenerateFromPassword(prepare(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Verify сообщает, соответствует ли пароль хешу.
func (h *Hasher) Verify(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), prepare(plain)) == nil
}

// prepare сворачивает пароли длиннее 72 байт в base64(sha256), иначе bcrypt
// отказывается их хешировать.
func prepare(plain string) []byte {
	if len(plain) <= maxBcryptLen {
		return []byte(plain)
	}
	sum := sha256.Sum256([]byte(plain))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
