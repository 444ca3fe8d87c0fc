package tui

import (
	"github.com/mmcdole/cinewave/internal/browse"
	"github.com/mmcdole/cinewave/internal/connectivity"
	"github.com/mmcdole/cinewave/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ListingLoadedMsg carries the result of a fetch cycle
type ListingLoadedMsg struct {
	Result browse.Result
}

// ListingFailedMsg signals that a fetch cycle failed
type ListingFailedMsg struct {
	Generation uint64
	Err        error
}

// DetailLoadedMsg carries a movie's detail record
type DetailLoadedMsg struct {
	ID     int
	Detail domain.MovieDetail
}

// DetailFailedMsg signals that a detail fetch failed
type DetailFailedMsg struct {
	ID  int
	Err error
}

// ConnectivityMsg carries the result of a reachability probe
type ConnectivityMsg struct {
	Status connectivity.Status
}

// ProbeTickMsg schedules the next reachability probe
type ProbeTickMsg struct{}

// TrailerOpenedMsg signals that the trailer was handed to the launcher
type TrailerOpenedMsg struct {
	URL string
}
