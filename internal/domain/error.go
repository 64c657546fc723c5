package domain

import "errors"

var (
	// Common domain errors
	ErrJobNotFound     = errors.New("job not found")
	ErrJobFinished     = errors.New("job already finished")
	ErrJobExists       = errors.New("job already exists")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrBusy            = errors.New("worker queue full")
	ErrNoPlanner       = errors.New("no planner configured")
	ErrEmptyItinerary  = errors.New("planner returned empty itinerary")
)
