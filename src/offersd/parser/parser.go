package parser

import "context"

// ExtractedOffer is the structured result the AI collaborator pulls out of a
// raw post.
type ExtractedOffer struct {
	Location         *string  `json:"location"`           // sąd / policja / prokuratura
	LocationFullName *string  `json:"location_full_name"`
	Dates            []string `json:"date"` // YYYY-MM-DD
	Times            []string `json:"time"` // HH:MM
	Description      *string  `json:"description"`
	LegalRoles       []string `json:"legal_roles"`
	Email            *string  `json:"email"`
}

type UsageDetails struct {
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	ElapsedSeconds   float64 `json:"elapsed_time"`
}

// ParseResult is a structured outcome, never a raw provider error: callers
// need to distinguish "no data yet" from "system down".
type ParseResult struct {
	Success bool            `json:"success"`
	Data    *ExtractedOffer `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Usage   *UsageDetails   `json:"usage,omitempty"`
}

// Client is the AI text-extraction collaborator. Called on demand only.
type Client interface {
	ParseOffer(ctx context.Context, rawData string) ParseResult
}
