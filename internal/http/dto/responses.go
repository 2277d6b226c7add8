package dto

import "github.com/pagetrail/backend/internal/models"

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type ConsentResponse struct {
	OK        bool `json:"ok"`
	Consented bool `json:"consented"`
}

type LogListResponse struct {
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
	Logs   []models.Visit `json:"logs"`
}
