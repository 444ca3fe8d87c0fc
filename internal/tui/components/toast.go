package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mmcdole/cinewave/internal/domain"
	"github.com/mmcdole/cinewave/internal/tui/styles"
)

// DefaultToastDuration is how long a toast stays on screen
const DefaultToastDuration = 3200 * time.Millisecond

// ToastKind selects a toast's styling
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastWarning
	ToastError
)

// Toast is one transient notification
type Toast struct {
	ID      string
	Message string
	Kind    ToastKind
}

// ToastExpiredMsg removes the toast with ID
type ToastExpiredMsg struct {
	ID string
}

// Toaster is the app-wide notification service. It is created once with the
// program and shared by pointer with everything that raises toasts.
type Toaster struct {
	toasts   []Toast
	duration time.Duration
}

// NewToaster creates a Toaster whose toasts last d
func NewToaster(d time.Duration) *Toaster {
	if d <= 0 {
		d = DefaultToastDuration
	}
	return &Toaster{duration: d}
}

// Add shows msg and returns the command that expires it. Calling Add on a
// nil Toaster panics.
func (t *Toaster) Add(msg string, kind ToastKind) tea.Cmd {
	if t == nil {
		panic(domain.ErrNilNotifier)
	}
	id := uuid.NewString()
	t.toasts = append(t.toasts, Toast{ID: id, Message: msg, Kind: kind})
	return tea.Tick(t.duration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// Expire removes a toast; unknown ids are ignored
func (t *Toaster) Expire(id string) {
	for i, toast := range t.toasts {
		if toast.ID == id {
			t.toasts = append(t.toasts[:i], t.toasts[i+1:]...)
			return
		}
	}
}

// Active returns the toasts currently shown, oldest first
func (t *Toaster) Active() []Toast {
	return append([]Toast(nil), t.toasts...)
}

// View stacks the active toasts, right aligned to width
func (t *Toaster) View(width int) string {
	if len(t.toasts) == 0 {
		return ""
	}
	var rows []string
	for _, toast := range t.toasts {
		rows = append(rows, toastStyle(toast.Kind).Render(toast.Message))
	}
	block := lipgloss.JoinVertical(lipgloss.Right, rows...)
	if width <= 0 {
		return block
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
}

func toastStyle(kind ToastKind) lipgloss.Style {
	switch kind {
	case ToastWarning:
		return styles.WarningToastStyle
	case ToastError:
		return styles.ErrorToastStyle
	default:
		return styles.InfoToastStyle
	}
}
