package model

import "errors"

// Common errors used across the application
var (
	// Run errors
	ErrRunNotFound    = errors.New("run not found")
	ErrRunOver        = errors.New("run is already over")
	ErrUnknownPerk    = errors.New("unknown perk")
	ErrPerkNotOffered = errors.New("perk is not in the current offer")
	ErrNoPerkOffer    = errors.New("no perk choice is pending")

	// Configuration errors
	ErrInvalidRules = errors.New("invalid rules")
)
