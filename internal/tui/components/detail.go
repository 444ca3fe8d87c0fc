package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/cinewave/internal/domain"
	"github.com/mmcdole/cinewave/internal/format"
	"github.com/mmcdole/cinewave/internal/tui/styles"
)

// DetailState is the overlay's lifecycle
type DetailState int

const (
	DetailClosed DetailState = iota
	DetailLoading
	DetailError
	DetailReady
)

// Detail is the movie detail overlay
type Detail struct {
	state  DetailState
	id     int
	detail domain.MovieDetail

	viewport viewport.Model
	spinner  spinner.Model
	fmt      *format.Formatter

	width  int
	height int
}

func NewDetail(f *format.Formatter) Detail {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	return Detail{
		viewport: viewport.New(0, 0),
		spinner:  s,
		fmt:      f,
	}
}

// Open shows the overlay for id in the loading state
func (d *Detail) Open(id int) tea.Cmd {
	d.state = DetailLoading
	d.id = id
	d.detail = domain.MovieDetail{}
	d.viewport.SetContent("")
	d.viewport.GotoTop()
	return d.spinner.Tick
}

func (d *Detail) Close() {
	d.state = DetailClosed
	d.id = 0
}

// Visible reports whether the overlay is open
func (d Detail) Visible() bool {
	return d.state != DetailClosed
}

func (d Detail) State() DetailState {
	return d.state
}

// ID returns the movie the overlay was opened for
func (d Detail) ID() int {
	return d.id
}

// Loaded returns the detail record once it has arrived
func (d Detail) Loaded() (domain.MovieDetail, bool) {
	return d.detail, d.state == DetailReady
}

// SetDetail fills the overlay. Responses for another movie are ignored.
func (d *Detail) SetDetail(id int, detail domain.MovieDetail) bool {
	if d.state != DetailLoading || id != d.id {
		return false
	}
	d.detail = detail
	d.state = DetailReady
	d.viewport.SetContent(d.renderBody())
	d.viewport.GotoTop()
	return true
}

// SetError switches to the error state. Errors for another movie are ignored.
func (d *Detail) SetError(id int) bool {
	if d.state != DetailLoading || id != d.id {
		return false
	}
	d.state = DetailError
	return true
}

// SetSize sizes the overlay to the terminal
func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height

	frameW, frameH := styles.ModalStyle.GetFrameSize()
	d.viewport.Width = max(20, width-frameW-4)
	// title line and footer hint
	d.viewport.Height = max(3, height-frameH-4)

	if d.state == DetailReady {
		d.viewport.SetContent(d.renderBody())
	}
}

// Update handles scrolling and the spinner
func (d Detail) Update(msg tea.Msg) (Detail, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if d.state != DetailLoading {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd
	case tea.KeyMsg:
		if d.state != DetailReady {
			return d, nil
		}
		var cmd tea.Cmd
		d.viewport, cmd = d.viewport.Update(msg)
		return d, cmd
	}
	return d, nil
}

// View renders the overlay; favorite drives the heart
func (d Detail) View(favorite bool) string {
	var body string
	switch d.state {
	case DetailLoading:
		body = d.spinner.View() + " Loading..."
	case DetailError:
		body = styles.ErrorStyle.Render("Couldn't load this movie") + "\n\n" +
			styles.DimStyle.Render("esc close")
	case DetailReady:
		header := styles.ModalTitleStyle.Render(d.detail.Title) + "  " + styles.Heart(favorite)
		hint := styles.DimStyle.Render("space favorite • t trailer • ↑/↓ scroll • esc close")
		body = header + "\n\n" + d.viewport.View() + "\n" + hint
	default:
		return ""
	}

	frameW, _ := styles.ModalStyle.GetFrameSize()
	return styles.ModalStyle.Width(max(20, d.width-frameW)).Render(body)
}

// renderBody lays out the scrollable detail text
func (d Detail) renderBody() string {
	m := d.detail
	width := max(20, d.viewport.Width)
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	line := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(styles.LabelStyle.Render(label) + value + "\n")
	}

	if m.Tagline != nil {
		b.WriteString(styles.SubtitleStyle.Italic(true).Render(*m.Tagline) + "\n\n")
	}

	line("Rating", styles.RatingStyle.Render("★ "+format.Rating(m.Rating))+
		styles.DimStyle.Render(" ("+d.fmt.Count(m.Votes)+" votes)"))
	line("Runtime", format.Runtime(m.Runtime))
	line("Released", m.ReleaseDate)
	line("Genres", strings.Join(m.Genres, ", "))
	line("Budget", d.fmt.Money(m.Budget))
	line("Revenue", d.fmt.Money(m.Revenue))
	if m.Trailer != nil {
		line("Trailer", *m.Trailer)
	}

	b.WriteString("\n" + wrap.Render(m.Overview) + "\n")

	if len(m.Cast) > 0 {
		b.WriteString("\n" + styles.TitleStyle.Render("Cast") + "\n")
		for _, c := range m.Cast {
			entry := c.Name
			if c.Character != "" {
				entry += styles.DimStyle.Render(" as " + c.Character)
			}
			b.WriteString("  " + entry + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
