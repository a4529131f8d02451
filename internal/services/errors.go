package services

import "errors"

// Dashboard service errors
var (
	ErrInvalidTrendMode = errors.New("invalid trend mode")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDatasetNotLoaded = errors.New("dataset not loaded")
)
