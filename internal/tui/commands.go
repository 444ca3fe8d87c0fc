package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/cinewave/internal/browse"
	"github.com/mmcdole/cinewave/internal/connectivity"
	"github.com/mmcdole/cinewave/internal/domain"
	"github.com/mmcdole/cinewave/internal/launcher"
)

// Command factories for async operations

// detailTimeout bounds a detail fetch
const detailTimeout = 30 * time.Second

// LoadListingCmd runs one fetch cycle. ctx is cancelled when a newer cycle
// supersedes this one.
func LoadListingCmd(ctx context.Context, loader *browse.Loader, req browse.Request) tea.Cmd {
	return func() tea.Msg {
		res, err := loader.Load(ctx, req)
		if err != nil {
			return ListingFailedMsg{Generation: req.Generation, Err: err}
		}
		return ListingLoadedMsg{Result: res}
	}
}

// LoadDetailCmd fetches one movie's detail record
func LoadDetailCmd(catalog domain.Catalog, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), detailTimeout)
		defer cancel()

		detail, err := catalog.Detail(ctx, id)
		if err != nil {
			return DetailFailedMsg{ID: id, Err: err}
		}
		return DetailLoadedMsg{ID: id, Detail: detail}
	}
}

// ProbeCmd checks whether the catalog host is reachable
func ProbeCmd(monitor *connectivity.Monitor) tea.Cmd {
	return func() tea.Msg {
		return ConnectivityMsg{Status: monitor.Probe(context.Background())}
	}
}

// ScheduleProbeCmd sends a ProbeTickMsg after delay
func ScheduleProbeCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ProbeTickMsg{}
	})
}

// OpenTrailerCmd hands a trailer URL to the launcher
func OpenTrailerCmd(l *launcher.Launcher, url string) tea.Cmd {
	return func() tea.Msg {
		if err := l.Open(url); err != nil {
			return ErrMsg{Err: err, Context: "opening trailer"}
		}
		return TrailerOpenedMsg{URL: url}
	}
}
