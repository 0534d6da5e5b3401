package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette. Populated from the current theme by regenerateStyles.
var (
	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorBorder      color.Color
	ColorBorderFocus color.Color
	ColorBg          color.Color
	ColorBgSelected  color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorUser        color.Color
	ColorAssistant   color.Color
	ColorWarning     color.Color
	ColorInfo        color.Color
	ColorError       color.Color
	ColorSuccess     color.Color
)

// Header and footer styles
var (
	HeaderStyle     lipgloss.Style
	FooterStyle     lipgloss.Style
	FooterKeyStyle  lipgloss.Style
	FooterDescStyle lipgloss.Style
)

// Panel styles
var (
	PanelStyle        lipgloss.Style
	PanelFocusedStyle lipgloss.Style
)

// Sidebar styles
var (
	SidebarItemStyle         lipgloss.Style
	SidebarSelectedStyle     lipgloss.Style
	SidebarActiveMarkerStyle lipgloss.Style
	SidebarEmptyStyle        lipgloss.Style
)

// Chat styles
var (
	ChatUserStyle         lipgloss.Style
	ChatAssistantStyle    lipgloss.Style
	ChatMessageStyle      lipgloss.Style
	ChatWelcomeStyle      lipgloss.Style
	ChatNoticeStyle       lipgloss.Style
	ChatInputStyle        lipgloss.Style
	ChatInputFocusedStyle lipgloss.Style
)

// Modal styles
var (
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style
)

// Status styles
var (
	StatusLoadingStyle lipgloss.Style
	StatusErrorStyle   lipgloss.Style
)

// Markdown styles
var (
	MarkdownH1Style         lipgloss.Style
	MarkdownH2Style         lipgloss.Style
	MarkdownH3Style         lipgloss.Style
	MarkdownH4Style         lipgloss.Style
	MarkdownBoldStyle       lipgloss.Style
	MarkdownItalicStyle     lipgloss.Style
	MarkdownInlineCodeStyle lipgloss.Style
	MarkdownLinkStyle       lipgloss.Style
	MarkdownListBulletStyle lipgloss.Style
	MarkdownBlockquoteStyle lipgloss.Style
	MarkdownHRStyle         lipgloss.Style
)

// Text selection styles
var (
	TextSelectionStyle      lipgloss.Style
	TextSelectionFlashStyle lipgloss.Style
)
