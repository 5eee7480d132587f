package service

import "errors"

var (
	// ErrSeasonAlreadySimulated is returned when a season tick is replayed.
	ErrSeasonAlreadySimulated = errors.New("season already simulated")
	// ErrAthleteRetired is returned when a retired athlete is asked to play or move.
	ErrAthleteRetired = errors.New("athlete retired")
	// ErrNoStats is returned when a season has neither supplied nor generated stats.
	ErrNoStats = errors.New("no season stats")
	// ErrInvalidOffer is returned for malformed offers or offers from the athlete's own club.
	ErrInvalidOffer = errors.New("invalid offer")
	// ErrNotStarted is returned when the worker pipeline is used before Start.
	ErrNotStarted = errors.New("service not started")
	// ErrQueueFull is returned when a cohort job could not be queued.
	ErrQueueFull = errors.New("season queue full")
)
