package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCityNotFound         = errors.New("city not found")
	ErrUnknownContinent     = errors.New("unknown continent")
	ErrUnknownContinentPair = errors.New("unknown continent pair")
	ErrInvalidCoordinates   = errors.New("invalid coordinates")
	ErrDegenerateLoadFactor = errors.New("degenerate load factor")
)

// Pipeline stage a journey computation failed in.
type Stage string

const (
	StageGeocode    Stage = "geocode"
	StageContinent  Stage = "continent"
	StageDistance   Stage = "distance"
	StageFuel       Stage = "fuel"
	StageLoadFactor Stage = "load_factor"
	StageEmission   Stage = "emission"
)

// StageError tells the caller which stage failed and for which input.
type StageError struct {
	Stage Stage
	Input string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Stage, e.Input, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
