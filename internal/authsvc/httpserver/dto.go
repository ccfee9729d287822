package httpserver

import "github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/models"

type userResponse struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
	Enabled  bool     `json:"enabled"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Roles:    u.RoleList(),
		Enabled:  u.Enabled,
	}
}

type pageResponse struct {
	Content       []userResponse `json:"content"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int64          `json:"totalPages"`
}

type loginResponse struct {
	Message   string `json:"message"`
	Token     string `json:"token"`
	Type      string `json:"type"`
	ExpiresIn int64  `json:"expiresIn"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}
