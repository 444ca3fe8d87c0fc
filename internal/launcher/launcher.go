// Package launcher opens URLs, such as trailers, in an external program.
package launcher

import (
	"errors"
	"log/slog"
	"os/exec"
	"runtime"
)

// ErrNoURL is returned when there is nothing to open
var ErrNoURL = errors.New("no url to open")

// Launcher opens a URL with the configured command or the system default
type Launcher struct {
	command string   // configured program, empty for system default
	args    []string // extra arguments placed before the URL
	logger  *slog.Logger

	// start runs the command without waiting for it
	start func(name string, args ...string) error
}

// New creates a Launcher. An empty command uses the platform opener.
func New(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: command,
		args:    args,
		logger:  logger,
		start:   startDetached,
	}
}

// Open launches url
func (l *Launcher) Open(url string) error {
	if url == "" {
		return ErrNoURL
	}
	name, args := l.Command(url)
	l.logger.Info("launching", "command", name, "args", args)
	return l.start(name, args...)
}

// Command returns the program and arguments Open would run for url
func (l *Launcher) Command(url string) (string, []string) {
	if l.command != "" {
		args := append(append([]string{}, l.args...), url)
		return l.command, args
	}
	return defaultOpener(runtime.GOOS, url)
}

// defaultOpener returns the system default handler for goos
func defaultOpener(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

func startDetached(name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	return exec.Command(name, args...).Start()
}
