package utils

import "errors"

var (
	ErrCityNotFound       = errors.New("city could not be resolved")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDatabaseError      = errors.New("database error")
	ErrItineraryNotFound  = errors.New("itinerary not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrGenerationFailed   = errors.New("itinerary generation failed")
)
