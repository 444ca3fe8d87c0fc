package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Crimson    = lipgloss.Color("#E11D48")
	Gold       = lipgloss.Color("#F5C518")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Amber      = lipgloss.Color("#F59E0B")
	Red        = lipgloss.Color("#EF4444")
	Blue       = lipgloss.Color("#3B82F6")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Crimson)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Crimson)

	RatingStyle = lipgloss.NewStyle().
			Foreground(Gold)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(White).
				Bold(true).
				MarginBottom(1)
)

// Favorite markers
const (
	HeartFull  = "♥"
	HeartEmpty = "♡"
)

var (
	FavoriteStyle    = lipgloss.NewStyle().Foreground(Crimson)
	NotFavoriteStyle = lipgloss.NewStyle().Foreground(DimGray)
)

// Heart renders the favorite marker
func Heart(favorite bool) string {
	if favorite {
		return FavoriteStyle.Render(HeartFull)
	}
	return NotFavoriteStyle.Render(HeartEmpty)
}

// Header styles
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(Crimson).
			Bold(true).
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Crimson).
			Bold(true).
			Padding(0, 1)

	OfflineBannerStyle = lipgloss.NewStyle().
				Foreground(SlateDark).
				Background(Amber).
				Bold(true).
				Padding(0, 1)
)

// Banner styles
var (
	BannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Gold).
			Padding(0, 2)

	BadgeStyle = lipgloss.NewStyle().
			Foreground(SlateDark).
			Background(Gold).
			Padding(0, 1)

	DotStyle       = lipgloss.NewStyle().Foreground(DimGray)
	ActiveDotStyle = lipgloss.NewStyle().Foreground(Gold)
)

// Grid cell style
var (
	GridCellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)

	GridCellSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Crimson).
				Padding(0, 1)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Crimson).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(DimGray).
			Width(10)
)

// Toast styles
var (
	InfoToastStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Blue).
			Padding(0, 1)

	WarningToastStyle = lipgloss.NewStyle().
				Foreground(SlateDark).
				Background(Amber).
				Padding(0, 1)

	ErrorToastStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Red).
			Padding(0, 1)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Crimson)
)

// Filter styles
var (
	FilterStyle = lipgloss.NewStyle().
			Foreground(Crimson)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(Crimson).
				Bold(true)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Crimson)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Pad pads a string with spaces to the given display width
func Pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + spaces(width-w)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
