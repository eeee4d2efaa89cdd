package domain

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrUserNotFound        = errors.New("user not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrEmptyFile           = errors.New("uploaded file is empty")
	ErrEmptyTranscription  = errors.New("no transcription received from audio")
	ErrUnparsableResponse  = errors.New("unable to parse structured data from model response")
	ErrInvalidExtraction   = errors.New("extracted data does not match expected format")
)
