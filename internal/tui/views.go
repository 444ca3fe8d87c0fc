package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/cinewave/internal/tui/styles"
)

const offlineText = "Offline, showing cached content"

// footerLines is the single help line at the bottom
const footerLines = 1

// layout sizes the grid to whatever the chrome leaves over
func (m *Model) layout() {
	used := footerLines
	used += lipgloss.Height(m.header.View())
	used += lipgloss.Height(m.renderTitle())
	if !m.online {
		used++
	}
	if toasts := m.toaster.View(m.Width); toasts != "" {
		used += lipgloss.Height(toasts)
	}
	if m.state.ShowBanner() {
		used += lipgloss.Height(m.banner.View(m.favorites.IsFavorite))
	}
	if m.showPagination() {
		used++
	}
	m.grid.SetSize(m.Width, max(0, m.Height-used))
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var sections []string

	if !m.online {
		sections = append(sections, styles.OfflineBannerStyle.Width(m.Width).Render(offlineText))
	}
	sections = append(sections, m.header.View())
	if toasts := m.toaster.View(m.Width); toasts != "" {
		sections = append(sections, toasts)
	}

	if m.detail.Visible() {
		var fav bool
		if d, ok := m.detail.Loaded(); ok {
			fav = m.favorites.IsFavorite(d.ID)
		}
		sections = append(sections, m.detail.View(fav))
		return strings.Join(sections, "\n")
	}

	if m.state.ShowBanner() {
		sections = append(sections, m.banner.View(m.favorites.IsFavorite))
	}

	sections = append(sections, m.renderTitle())

	if m.state.Loading {
		sections = append(sections, m.spinner.View()+" Loading...")
	} else {
		sections = append(sections, m.grid.View())
	}

	if m.showPagination() {
		sections = append(sections, m.renderPagination())
	}

	body := strings.Join(sections, "\n")

	// Pin the footer to the last line
	gap := m.Height - lipgloss.Height(body) - footerLines
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return body + "\n" + m.renderFooter()
}

func (m Model) showPagination() bool {
	return m.state.HasPagination() && !m.state.Loading
}

func (m Model) renderTitle() string {
	return styles.SectionTitleStyle.Render(m.state.Title(m.favorites.Len()))
}

// renderPagination renders "Page X of Y" with the available directions
func (m Model) renderPagination() string {
	prev := "      "
	if m.state.CanPrev() {
		prev = styles.HelpKeyStyle.Render("← p") + "   "
	}
	next := ""
	if m.state.CanNext() {
		next = "   " + styles.HelpKeyStyle.Render("n →")
	}
	info := styles.SubtitleStyle.Render(fmt.Sprintf("Page %d of %d", m.state.Page, m.state.TotalPages))
	return lipgloss.PlaceHorizontal(m.Width, lipgloss.Center, prev+info+next)
}

// renderFooter renders the key hint line
func (m Model) renderFooter() string {
	hints := [][2]string{
		{"1-4", "sections"},
		{"/", "search"},
		{"f", "filter"},
		{"enter", "details"},
		{"space", "favorite"},
		{"?", "help"},
		{"q", "quit"},
	}
	if m.detail.Visible() {
		hints = [][2]string{
			{"space", "favorite"},
			{"t", "trailer"},
			{"esc", "close"},
		}
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = styles.HelpKeyStyle.Render(h[0]) + " " + styles.HelpDescStyle.Render(h[1])
	}
	return strings.Join(parts, styles.HelpDescStyle.Render(" • "))
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
SECTIONS                        LISTING
  1          Trending              h/j/k/l  Move
  2          Popular               Enter    Details
  3          Top rated             Space    Toggle favorite
  4          Favorites             f        Filter loaded movies
  Tab/S-Tab  Cycle sections        n/p      Next/previous page
                                   r        Reload
SEARCH                          FEATURED
  /          Search the catalog    [ / ]    Previous/next
  Esc        Leave search          b        Details

DETAILS                         OTHER
  t          Open trailer          ?        This help
  Esc        Close                 q        Quit

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}
