package constants

import "errors"

// Configuration errors.
var (
	ErrUnknownConfigKey = errors.New("unknown configuration key")
	ErrEmptyAPIKey      = errors.New("API key must not be empty")
)

// Validation errors.
var (
	ErrInvalidKeyValue    = errors.New("invalid field, expected KEY=VALUE or KEY:=JSON")
	ErrInvalidDataPayload = errors.New("--data must be a JSON object")
	ErrInvalidOutput      = errors.New("invalid output format, expected table, json or yaml")
	ErrEmailFlagRequired  = errors.New("--email flag is required")
	ErrListIDFlagRequired = errors.New("--list-id flag is required")
	ErrEventRequired      = errors.New("either --data or --type is required")
	ErrListNameRequired   = errors.New("list name is required")
)
