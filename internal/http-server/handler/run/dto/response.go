package dto

import (
	"logo-applier/internal/domain"
	"logo-applier/internal/usecase/apply"
)

type SessionResponse struct {
	Session apply.SessionState  `json:"session"`
	Report  *domain.BatchReport `json:"report,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
