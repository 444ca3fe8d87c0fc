package components

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/cinewave/internal/domain"
	"github.com/mmcdole/cinewave/internal/format"
	"github.com/mmcdole/cinewave/internal/tui/styles"
)

// DefaultSlideInterval is the banner auto-advance period
const DefaultSlideInterval = 5 * time.Second

// overview lines shown under the featured title
const bannerOverviewLines = 2

// BannerTickMsg advances the banner. Ticks from an older slideshow are ignored.
type BannerTickMsg struct {
	Generation int
}

// Banner rotates through the featured movies
type Banner struct {
	movies     []domain.Movie
	index      int
	generation int
	interval   time.Duration
	width      int
}

func NewBanner(interval time.Duration) Banner {
	if interval <= 0 {
		interval = DefaultSlideInterval
	}
	return Banner{interval: interval}
}

// SetMovies restarts the slideshow on movies. The returned command is the
// first tick, or nil when there is nothing to rotate.
func (b *Banner) SetMovies(movies []domain.Movie) tea.Cmd {
	b.movies = movies
	b.index = 0
	b.generation++
	if len(movies) == 0 {
		return nil
	}
	return b.tick()
}

// Stop cancels the slideshow; pending ticks become stale
func (b *Banner) Stop() {
	b.movies = nil
	b.index = 0
	b.generation++
}

func (b *Banner) SetWidth(width int) {
	b.width = width
}

// Generation identifies the running slideshow
func (b Banner) Generation() int {
	return b.generation
}

// Index returns the position of the featured movie on display
func (b Banner) Index() int {
	return b.index
}

// Current returns the featured movie on display
func (b Banner) Current() (domain.Movie, bool) {
	if len(b.movies) == 0 {
		return domain.Movie{}, false
	}
	return b.movies[b.index], true
}

// Next steps forward, wrapping around
func (b *Banner) Next() {
	if n := len(b.movies); n > 0 {
		b.index = (b.index + 1) % n
	}
}

// Prev steps back, wrapping around
func (b *Banner) Prev() {
	if n := len(b.movies); n > 0 {
		b.index = (b.index - 1 + n) % n
	}
}

func (b Banner) tick() tea.Cmd {
	gen := b.generation
	return tea.Tick(b.interval, func(time.Time) tea.Msg {
		return BannerTickMsg{Generation: gen}
	})
}

// Update handles messages
func (b Banner) Update(msg tea.Msg) (Banner, tea.Cmd) {
	tick, ok := msg.(BannerTickMsg)
	if !ok || tick.Generation != b.generation || len(b.movies) == 0 {
		return b, nil
	}
	b.Next()
	return b, b.tick()
}

// View renders the featured movie; isFavorite drives the heart
func (b Banner) View(isFavorite func(int) bool) string {
	m, ok := b.Current()
	if !ok {
		return ""
	}

	inner := max(20, b.width-6)

	badge := styles.BadgeStyle.Render("★ " + format.Rating(m.Rating) + " / 10")
	title := styles.TitleStyle.Render(format.Truncate(m.Title, inner-8))
	heading := lipgloss.JoinHorizontal(lipgloss.Top, badge, " ", title, "  ", styles.Heart(isFavorite(m.ID)))

	meta := styles.DimStyle.Render(m.Year)

	overview := lipgloss.NewStyle().Width(inner).Render(m.Overview)
	if lines := strings.Split(overview, "\n"); len(lines) > bannerOverviewLines {
		lines = lines[:bannerOverviewLines]
		lines[len(lines)-1] = strings.TrimRight(lines[len(lines)-1], " ") + "…"
		overview = strings.Join(lines, "\n")
	}
	overview = styles.SubtitleStyle.Render(overview)

	dots := make([]string, len(b.movies))
	for i := range b.movies {
		if i == b.index {
			dots[i] = styles.ActiveDotStyle.Render("●")
		} else {
			dots[i] = styles.DotStyle.Render("○")
		}
	}
	nav := styles.DimStyle.Render("[ ") + strings.Join(dots, " ") + styles.DimStyle.Render(" ]")

	body := strings.Join([]string{heading, meta, overview, nav}, "\n")
	return styles.BannerStyle.Width(inner + 4).Render(body)
}
