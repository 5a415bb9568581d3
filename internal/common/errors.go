// Package common содержит сентинел-ошибки, общие для сервисов, хранилища и HTTP-слоя.
// Сравнивать их нужно через errors.Is, так как по пути наверх они оборачиваются.
package common

import "errors"

var (
	// ошибки входных данных
	ErrValidation = errors.New("validation error")

	// ошибки учётных записей
	ErrDuplicateAccount   = errors.New("user is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ошибки аутентификации
	ErrUnauthenticated = errors.New("no token provided")
	ErrInvalidToken    = errors.New("invalid token")

	// ошибки хранилища
	ErrNotFound    = errors.New("not found")
	ErrPersistence = errors.New("persistence error")
)
