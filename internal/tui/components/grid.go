package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/cinewave/internal/domain"
	"github.com/mmcdole/cinewave/internal/format"
	"github.com/mmcdole/cinewave/internal/tui/styles"
)

// Layout constants for grid cards
const (
	// CardWidth is the text width inside a card
	CardWidth = 24

	// Border (1 each side) plus Padding(0,1)
	cardFrameWidth = 4

	// Space between cards in a row
	cardGap = 1

	// Three text lines plus top and bottom border
	cardHeight = 5

	// Scroll indicators and the filter bar each take one line
	indicatorLines = 2
	filterBarLines = 1
)

// Grid shows movies as cards and tracks the selected one
type Grid struct {
	movies []domain.Movie

	// Selection, as an index into the visible (filtered) list
	cursor    int
	offsetRow int

	width  int
	height int

	isFavorite func(id int) bool
	emptyMsg   string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into movies
}

// NewGrid creates a new grid component
func NewGrid() Grid {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "f "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return Grid{
		filterInput: ti,
		isFavorite:  func(int) bool { return false },
		emptyMsg:    "No movies to show",
	}
}

// SetMovies replaces the content and resets selection and filter
func (g *Grid) SetMovies(movies []domain.Movie) {
	g.movies = movies
	g.cursor = 0
	g.offsetRow = 0
	g.clearFilter()
}

// Refresh replaces the content but keeps the cursor where it can
func (g *Grid) Refresh(movies []domain.Movie) {
	g.movies = movies
	if g.filterActive {
		g.applyFilter()
	}
	if n := g.Len(); g.cursor >= n {
		g.cursor = max(n-1, 0)
	}
	g.ensureVisible()
}

// SetFavoriteFunc sets the lookup used for the heart marker
func (g *Grid) SetFavoriteFunc(fn func(id int) bool) {
	g.isFavorite = fn
}

// SetEmptyMessage sets the text shown when there is nothing to list
func (g *Grid) SetEmptyMessage(msg string) {
	g.emptyMsg = msg
}

// SetSize sets the grid dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.ensureVisible()
}

// Columns returns how many cards fit in one row
func (g Grid) Columns() int {
	return max(1, (g.width+cardGap)/(CardWidth+cardFrameWidth+cardGap))
}

// visibleRows returns how many card rows fit
func (g Grid) visibleRows() int {
	h := g.height - indicatorLines
	if g.filterActive {
		h -= filterBarLines
	}
	return max(1, h/cardHeight)
}

// Len returns the number of movies currently listed (after filtering)
func (g Grid) Len() int {
	if g.filteredIdx != nil {
		return len(g.filteredIdx)
	}
	return len(g.movies)
}

// Cursor returns the selected position in the listed movies
func (g Grid) Cursor() int {
	return g.cursor
}

// Selected returns the movie under the cursor
func (g Grid) Selected() (domain.Movie, bool) {
	if g.cursor >= g.Len() {
		return domain.Movie{}, false
	}
	return g.movies[g.mapIndex(g.cursor)], true
}

func (g Grid) mapIndex(i int) int {
	if g.filteredIdx != nil && i < len(g.filteredIdx) {
		return g.filteredIdx[i]
	}
	return i
}

// ensureVisible scrolls so the cursor's row is on screen
func (g *Grid) ensureVisible() {
	cols := g.Columns()
	row := g.cursor / cols
	rows := g.visibleRows()
	if row < g.offsetRow {
		g.offsetRow = row
	}
	if row >= g.offsetRow+rows {
		g.offsetRow = row - rows + 1
	}
}

// ToggleFilter activates the filter input
func (g *Grid) ToggleFilter() tea.Cmd {
	g.filterActive = true
	return g.filterInput.Focus()
}

// IsFiltering returns true if filter mode is active (showing filtered results)
func (g Grid) IsFiltering() bool {
	return g.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused (typing mode)
func (g Grid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (g *Grid) ClearFilter() {
	g.clearFilter()
}

func (g *Grid) clearFilter() {
	g.filterActive = false
	g.filterQuery = ""
	g.filteredIdx = nil
	g.filterInput.SetValue("")
	g.filterInput.Blur()
}

// applyFilter matches the query against accent-folded titles
func (g *Grid) applyFilter() {
	query := g.filterInput.Value()
	g.filterQuery = query

	if query == "" {
		g.filteredIdx = nil
		return
	}

	titles := make([]string, len(g.movies))
	for i, m := range g.movies {
		titles[i] = format.Fold(m.Title)
	}

	matches := fuzzy.Find(format.Fold(query), titles)

	g.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		g.filteredIdx[i] = match.Index
	}

	g.cursor = 0
	g.offsetRow = 0
}

// Update handles messages
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	if g.IsFilterTyping() {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "esc":
				g.clearFilter()
				return g, nil
			case "enter":
				// Accept filter, blur input to allow navigation
				g.filterInput.Blur()
				return g, nil
			case "backspace":
				if g.filterInput.Value() == "" {
					g.clearFilter()
					return g, nil
				}
			}
		}

		var cmd tea.Cmd
		g.filterInput, cmd = g.filterInput.Update(msg)
		g.applyFilter()
		return g, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}

	if g.filterActive && key.String() == "esc" {
		g.clearFilter()
		return g, nil
	}

	count := g.Len()
	if count == 0 {
		return g, nil
	}
	cols := g.Columns()

	switch key.String() {
	case "l", "right":
		if g.cursor < count-1 {
			g.cursor++
		}
	case "h", "left":
		if g.cursor > 0 {
			g.cursor--
		}
	case "j", "down":
		if g.cursor+cols < count {
			g.cursor += cols
		}
	case "k", "up":
		if g.cursor-cols >= 0 {
			g.cursor -= cols
		}
	case "g", "home":
		g.cursor = 0
	case "G", "end":
		g.cursor = count - 1
	}
	g.ensureVisible()

	return g, nil
}

// View renders the component
func (g Grid) View() string {
	count := g.Len()
	if count == 0 {
		msg := g.emptyMsg
		if g.filterActive && g.filterQuery != "" {
			msg = "No matches"
		}
		content := styles.DimStyle.Render(msg)
		if g.filterActive {
			content += "\n\n" + g.renderFilterBar()
		}
		return content
	}

	cols := g.Columns()
	rows := g.visibleRows()
	totalRows := (count + cols - 1) / cols
	endRow := min(g.offsetRow+rows, totalRows)

	var lines []string

	// Always reserve the indicator lines to prevent layout shifts
	header := " "
	if g.offsetRow > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	lines = append(lines, header)

	for row := g.offsetRow; row < endRow; row++ {
		var cards []string
		for col := 0; col < cols; col++ {
			i := row*cols + col
			if i >= count {
				break
			}
			if col > 0 {
				cards = append(cards, strings.Repeat(" ", cardGap))
			}
			cards = append(cards, g.renderCard(g.movies[g.mapIndex(i)], i == g.cursor))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	footer := " "
	if endRow < totalRows {
		footer = styles.DimStyle.Render("↓ more")
	}
	lines = append(lines, footer)

	if g.filterActive {
		lines = append(lines, g.renderFilterBar())
	}

	return strings.Join(lines, "\n")
}

// renderCard renders one movie card
func (g Grid) renderCard(m domain.Movie, selected bool) string {
	style := styles.GridCellStyle
	titleStyle := styles.SubtitleStyle
	if selected {
		style = styles.GridCellSelectedStyle
		titleStyle = styles.TitleStyle
	}

	title := titleStyle.Render(format.Truncate(m.Title, CardWidth))

	year := m.Year
	if year == "" {
		year = "----"
	}
	meta := styles.DimStyle.Render(year) + "  " + styles.RatingStyle.Render("★ "+format.Rating(m.Rating))

	heart := styles.Heart(g.isFavorite(m.ID))

	return style.Width(CardWidth + 2).Render(strings.Join([]string{title, meta, heart}, "\n"))
}

// renderFilterBar renders the filter input bar
func (g Grid) renderFilterBar() string {
	input := g.filterInput.View()

	countStr := ""
	if g.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", g.Len(), len(g.movies)))
	}

	return input + countStr
}
