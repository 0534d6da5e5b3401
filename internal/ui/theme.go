package ui

import "charm.land/lipgloss/v2"

// Theme defines a complete color palette for the application.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (used for focus, highlights, headers)
	Primary string
	// Secondary is the secondary accent color (used for assistant messages, info)
	Secondary string

	Bg         string // Main background
	BgSelected string // Selected item background

	Text        string // Primary text
	TextMuted   string // Secondary/muted text
	TextInverse string // Text on colored backgrounds

	User      string // User message labels
	Assistant string // Assistant message labels
	Warning   string
	Error     string
	Info      string
	Success   string

	Border      string
	BorderFocus string

	MarkdownH1       string
	MarkdownH2       string
	MarkdownH3       string
	MarkdownCode     string // Inline code
	MarkdownCodeBg   string
	MarkdownLink     string
	MarkdownListItem string

	// CodeStyle names the chroma style for fenced code blocks
	CodeStyle string
}

// ThemeName is a type for theme identifiers. The string form is what gets
// persisted under the "theme" key.
type ThemeName string

const (
	ThemeDark  ThemeName = "dark"
	ThemeLight ThemeName = "light"

	DefaultTheme = ThemeDark
)

// BuiltinThemes contains the two available themes.
var BuiltinThemes = map[ThemeName]Theme{
	ThemeDark: {
		Name:             "Dark",
		Primary:          "#14B8A6",
		Secondary:        "#F59E0B",
		Bg:               "#0F172A",
		BgSelected:       "#134E4A",
		Text:             "#E2E8F0",
		TextMuted:        "#94A3B8",
		TextInverse:      "#0F172A",
		User:             "#5EEAD4",
		Assistant:        "#FCD34D",
		Warning:          "#FB923C",
		Error:            "#F87171",
		Info:             "#38BDF8",
		Success:          "#4ADE80",
		Border:           "#334155",
		BorderFocus:      "#14B8A6",
		MarkdownH1:       "#5EEAD4",
		MarkdownH2:       "#99F6E4",
		MarkdownH3:       "#FCD34D",
		MarkdownCode:     "#FDE68A",
		MarkdownCodeBg:   "#1E293B",
		MarkdownLink:     "#38BDF8",
		MarkdownListItem: "#F59E0B",
		CodeStyle:        "dracula",
	},
	ThemeLight: {
		Name:             "Light",
		Primary:          "#0F766E",
		Secondary:        "#B45309",
		Bg:               "#F8FAFC",
		BgSelected:       "#CCFBF1",
		Text:             "#0F172A",
		TextMuted:        "#64748B",
		TextInverse:      "#F8FAFC",
		User:             "#0F766E",
		Assistant:        "#B45309",
		Warning:          "#C2410C",
		Error:            "#B91C1C",
		Info:             "#0369A1",
		Success:          "#15803D",
		Border:           "#CBD5E1",
		BorderFocus:      "#0F766E",
		MarkdownH1:       "#0F766E",
		MarkdownH2:       "#115E59",
		MarkdownH3:       "#B45309",
		MarkdownCode:     "#9A3412",
		MarkdownCodeBg:   "#F1F5F9",
		MarkdownLink:     "#0369A1",
		MarkdownListItem: "#0F766E",
		CodeStyle:        "friendly",
	},
}

var (
	currentTheme     = BuiltinThemes[DefaultTheme]
	currentThemeName = DefaultTheme
)

func init() {
	regenerateStyles()
}

// GetTheme returns a theme by name, defaulting to the dark theme if not found
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// CurrentThemeName returns the name of the current theme
func CurrentThemeName() ThemeName {
	return currentThemeName
}

// SetTheme sets the active theme and regenerates all styles. Unknown names
// fall back to the default theme.
func SetTheme(name ThemeName) {
	if _, ok := BuiltinThemes[name]; !ok {
		name = DefaultTheme
	}
	currentThemeName = name
	currentTheme = BuiltinThemes[name]
	regenerateStyles()
}

// SetThemeByName sets the active theme from its persisted string form.
func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}

// ToggleTheme flips between dark and light and returns the new theme name.
func ToggleTheme() ThemeName {
	if currentThemeName == ThemeLight {
		SetTheme(ThemeDark)
	} else {
		SetTheme(ThemeLight)
	}
	return currentThemeName
}

// regenerateStyles updates all style variables based on the current theme
func regenerateStyles() {
	t := currentTheme

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.BorderFocus)
	ColorBg = lipgloss.Color(t.Bg)
	ColorBgSelected = lipgloss.Color(t.BgSelected)
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorUser = lipgloss.Color(t.User)
	ColorAssistant = lipgloss.Color(t.Assistant)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorInfo = lipgloss.Color(t.Info)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorPrimary).
		Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	SidebarItemStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Padding(0, 1)

	SidebarSelectedStyle = lipgloss.NewStyle().
		Background(ColorBgSelected).
		Foreground(ColorText).
		Bold(true).
		Padding(0, 1)

	SidebarActiveMarkerStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	SidebarEmptyStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	ChatUserStyle = lipgloss.NewStyle().
		Foreground(ColorUser).
		Bold(true)

	ChatAssistantStyle = lipgloss.NewStyle().
		Foreground(ColorAssistant).
		Bold(true)

	ChatMessageStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	ChatWelcomeStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	ChatNoticeStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Italic(true)

	ChatInputStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	ChatInputFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus).
		Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Width(ModalWidth)

	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		MarginTop(1)

	StatusLoadingStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	MarkdownH1Style = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownH1)).
		Bold(true).
		Underline(true)

	MarkdownH2Style = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownH2)).
		Bold(true)

	MarkdownH3Style = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownH3)).
		Bold(true)

	MarkdownH4Style = lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true)

	MarkdownBoldStyle = lipgloss.NewStyle().
		Bold(true)

	MarkdownItalicStyle = lipgloss.NewStyle().
		Italic(true)

	MarkdownInlineCodeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownCode)).
		Background(lipgloss.Color(t.MarkdownCodeBg))

	MarkdownLinkStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownLink)).
		Underline(true)

	MarkdownListBulletStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownListItem))

	MarkdownBlockquoteStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		BorderLeft(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		PaddingLeft(1)

	MarkdownHRStyle = lipgloss.NewStyle().
		Foreground(ColorBorder)

	TextSelectionStyle = lipgloss.NewStyle().
		Background(ColorBgSelected).
		Foreground(ColorText)

	TextSelectionFlashStyle = lipgloss.NewStyle().
		Background(ColorSuccess).
		Foreground(ColorTextInverse)
}
