package service

import "errors"

var (
	// ErrInvalidRequest is returned when request data is invalid or incomplete
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidImage is returned when the strip image data cannot be decoded
	ErrInvalidImage = errors.New("invalid strip image data")

	// ErrSigningFailed is returned when the signing collaborator rejects the manifest
	ErrSigningFailed = errors.New("pass signing failed")
)
