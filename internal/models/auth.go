package models

import "strings"

// RegisterRequest: данные для регистрации.
type RegisterRequest struct {
	Email        string `json:"email" validate:"required,min=5,max=255,email"`
	Name         string `json:"name" validate:"required,min=5,max=50"`
	Password     string `json:"password" validate:"required,min=5,max=1024"`
	BusinessName string `json:"businessName,omitempty" validate:"omitempty,min=5,max=50"`
}

// LoginRequest: учётные данные для входа.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=5,max=1024"`
}

// ProfileRequest: изменяемые поля профиля.
type ProfileRequest struct {
	Name         string `json:"name" validate:"required,min=5,max=50"`
	BusinessName string `json:"businessName,omitempty" validate:"omitempty,min=5,max=50"`
}

// Session: результат успешной регистрации или входа.
type Session struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// Normalize убирает пробелы по краям полей до валидации.
func (r *RegisterRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	r.BusinessName = strings.TrimSpace(r.BusinessName)
}

// Normalize убирает пробелы по краям полей до валидации.
func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

// Normalize убирает пробелы по краям полей до валидации.
func (r *ProfileRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.BusinessName = strings.TrimSpace(r.BusinessName)
}
