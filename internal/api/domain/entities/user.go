// Package entities определяет доменные сущности API сервиса.
package entities

import (
	"errors"
	"time"
)

// Ограничения на поля пользователя.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MaxFullNameLength = 100
)

// Определяем ошибки домена пользователя.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameTaken   = errors.New("username already exists")
	ErrEmailTaken      = errors.New("email already registered")
	ErrInvalidUsername = errors.New("username must be between 3 and 50 characters")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrFullNameTooLong = errors.New("full name must not exceed 100 characters")
	ErrInvalidPaging   = errors.New("skip and limit must not be negative")
)

// User представляет основную сущность домена пользователя.
type User struct {
	ID        int64
	Username  string
	Email     string
	FullName  *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OptionalString представляет необязательное строковое поле частичного
// обновления: Set=false означает "не менять", Set=true с nil Value — сброс в NULL.
type OptionalString struct {
	Set   bool
	Value *string
}

// UserPatch описывает частичное обновление пользователя.
// Поле nil означает "не менять", в отличие от пустого значения.
// FullName допускает NULL, поэтому несет отдельный признак присутствия.
type UserPatch struct {
	Username *string
	Email    *string
	FullName OptionalString
	IsActive *bool
}

// IsEmpty сообщает, что ни одно поле не задано.
func (p *UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Email == nil && !p.FullName.Set && p.IsActive == nil
}
