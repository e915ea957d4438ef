// Package dto содержит структуры запросов и ответов HTTP API.
package dto

import (
	"encoding/json"
	"time"

	"pitlane/internal/api/domain/entities"
)

// CreateUserRequest содержит данные для создания пользователя.
type CreateUserRequest struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
}

// UpdateUserRequest содержит данные для частичного обновления пользователя.
// Отсутствующее поле остается без изменений; явный null в full_name
// означает сброс значения.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	IsActive *bool   `json:"is_active"`

	fullNameSet bool
}

// UnmarshalJSON запоминает присутствие поля full_name в теле запроса,
// иначе явный null неотличим от отсутствующего поля.
func (r *UpdateUserRequest) UnmarshalJSON(data []byte) error {
	type updateUserRequest UpdateUserRequest
	if err := json.Unmarshal(data, (*updateUserRequest)(r)); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	_, r.fullNameSet = fields["full_name"]

	return nil
}

// ToPatch преобразует запрос в доменное описание частичного обновления.
func (r *UpdateUserRequest) ToPatch() *entities.UserPatch {
	return &entities.UserPatch{
		Username: r.Username,
		Email:    r.Email,
		FullName: entities.OptionalString{Set: r.fullNameSet, Value: r.FullName},
		IsActive: r.IsActive,
	}
}

// UserResponse содержит информацию о пользователе для ответа.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse преобразует доменную сущность в ответ API.
func NewUserResponse(user *entities.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewUserListResponse преобразует список сущностей в список ответов.
func NewUserListResponse(users []*entities.User) []*UserResponse {
	responses := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}
	return responses
}

// MessageResponse содержит текстовое сообщение об успешной операции.
type MessageResponse struct {
	Message string `json:"message"`
}
