package config

import "errors"

// Sentinel errors for package config.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrDuplicateSite  = errors.New("duplicate entry site")
	ErrConfigExists   = errors.New("config file already exists")
)
