// Package connectivity tracks whether the catalog host is reachable.
package connectivity

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"time"
)

// DefaultDialTimeout bounds a single probe
const DefaultDialTimeout = 3 * time.Second

// DialFunc opens a connection; net.Dialer.DialContext satisfies it
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Status is the outcome of one probe
type Status struct {
	Online bool

	// Changed is true when Online differs from the previous probe. The
	// first probe only reports a change when it finds the host offline.
	Changed bool
}

// Monitor probes a host:port with a TCP dial and remembers the last result
type Monitor struct {
	address string
	timeout time.Duration
	dial    DialFunc
	logger  *slog.Logger

	mu     sync.Mutex
	online bool
}

// NewMonitor creates a monitor for address. It starts out online.
func NewMonitor(address string, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	d := &net.Dialer{}
	return &Monitor{
		address: address,
		timeout: DefaultDialTimeout,
		dial:    d.DialContext,
		logger:  logger,
		online:  true,
	}
}

// WithDialer replaces the dial function
func (m *Monitor) WithDialer(dial DialFunc) *Monitor {
	m.dial = dial
	return m
}

// Online returns the result of the last probe
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Probe dials the host once and records the result
func (m *Monitor) Probe(ctx context.Context) Status {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	online := true
	conn, err := m.dial(ctx, "tcp", m.address)
	if err != nil {
		online = false
	} else {
		conn.Close()
	}

	m.mu.Lock()
	changed := online != m.online
	m.online = online
	m.mu.Unlock()

	if changed {
		m.logger.Info("connectivity changed", "online", online, "address", m.address, "error", err)
	}
	return Status{Online: online, Changed: changed}
}
