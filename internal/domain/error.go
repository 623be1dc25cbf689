package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidArgument = errors.New("invalid argument")

	// Simulated generation failures, recovered by the response pipeline
	ErrSynthesisFailed = errors.New("response synthesis failed")
	ErrResponseTimeout = errors.New("response generation timed out")
	ErrImageFailed     = errors.New("image generation failed")
)
