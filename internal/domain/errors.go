package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrRateLimited         = errors.New("rate limit exceeded")
	ErrNotImplemented      = errors.New("not implemented")
	ErrValidation          = errors.New("invoice validation failed")
	ErrMissingField        = errors.New("required field is missing or empty")
	ErrInvalidFormat       = errors.New("invalid format")
	ErrDuplicateIRN        = errors.New("invoice with this IRN already exists")
	ErrFileNotFound        = errors.New("file not found")
	ErrInvalidDownloadType = errors.New("invalid download type")
	ErrKeyLoad             = errors.New("crypto key bundle could not be loaded")
	ErrEncryption          = errors.New("encryption failed")
	ErrQRGeneration        = errors.New("QR code generation failed")
	ErrStorage             = errors.New("artifact storage failed")
)
