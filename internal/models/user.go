// Package models содержит доменные структуры пользователя и документов
// (листов и отчётов), которые используются в бизнес-логике и хранилище.
package models

import "time"

// PasswordPlaceholder подставляется вместо пароля в ответах API.
const PasswordPlaceholder = "********"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UUID         string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта (уникальная)
	Name         string    // Отображаемое имя
	BusinessName string    // Название компании, может быть пустым
	PasswordHash string    // bcrypt-хеш пароля
	CreatedAt    time.Time // Дата регистрации
}

// Profile: представление пользователя для ответов API. Вместо пароля
// допускается только PasswordPlaceholder.
type Profile struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	BusinessName string   `json:"businessName,omitempty"`
	Password     string   `json:"password,omitempty"`
	Sheets       []string `json:"sheets,omitempty"`
	Reports      []string `json:"reports,omitempty"`
}

// ProfileOf строит Profile по пользователю.
func ProfileOf(u *User) Profile {
	return Profile{
		ID:           u.UUID,
		Name:         u.Name,
		Email:        u.Email,
		BusinessName: u.BusinessName,
	}
}
