package jwt

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/sheets-api/internal/common"
)

// UserClaims: данные пользователя, которые кладутся в токен.
type UserClaims struct {
	UserUID string `json:"uid"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
}

// Claims описывает полный набор claims токена.
type Claims struct {
	UserClaims
	jwt.RegisteredClaims
}

// GenerateToken создаёт токен для пользователя. Если tokenTTL равен нулю,
// exp не выставляется и токен действует бессрочно.
func (j *MakerImpl) GenerateToken(user UserClaims) (string, error) {
	const op = "jwt.GenerateToken"
	now := j.now()
	claims := Claims{
		UserClaims: user,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  user.UserUID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if j.tokenTTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(j.tokenTTL))
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// ParseToken проверяет подпись и срок действия токена.
// Любая ошибка оборачивает common.ErrInvalidToken.
func (j *MakerImpl) ParseToken(tokenStr string) (*Claims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, common.ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserUID == "" {
		return nil, fmt.Errorf("%s: %w", op, common.ErrInvalidToken)
	}
	return claims, nil
}
