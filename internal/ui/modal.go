package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// ModalState is a discriminated union interface for modal-specific state.
type ModalState interface {
	modalState() // marker method to restrict implementations
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// Modal represents a popup dialog. State is nil when no modal is visible.
type Modal struct {
	State ModalState
	error string
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error message
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current error message
func (m *Modal) GetError() string {
	return m.error
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View renders the modal centered on the screen
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	content := m.State.Render()
	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		ModalStyle.Render(content),
	)
}

// =============================================================================
// ConfirmDeleteState - two-button confirmation before deleting a conversation
// =============================================================================

type ConfirmDeleteState struct {
	ThreadID          string
	ConversationTitle string

	confirmed bool
	form      *huh.Form
}

func (*ConfirmDeleteState) modalState() {}

func (s *ConfirmDeleteState) Title() string { return "Delete Conversation" }

func (s *ConfirmDeleteState) Help() string {
	return "←/→ to choose, Enter to confirm, Esc to cancel"
}

func (s *ConfirmDeleteState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *ConfirmDeleteState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Confirmed reports whether the Delete button is chosen.
func (s *ConfirmDeleteState) Confirmed() bool {
	return s.confirmed
}

// Completed reports whether the form was answered with a shortcut key (y/n).
func (s *ConfirmDeleteState) Completed() bool {
	return s.form.State == huh.StateCompleted
}

// NewConfirmDeleteState builds the confirmation with Cancel preselected.
func NewConfirmDeleteState(threadID, title string) *ConfirmDeleteState {
	s := &ConfirmDeleteState{ThreadID: threadID, ConversationTitle: title}
	s.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Delete this conversation?").
			Description(title).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&s.confirmed),
	)).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalWidth - 8)
	initHuhForm(s.form)
	return s
}

// =============================================================================
// AlertState - blocking message acknowledged with Enter or Esc
// =============================================================================

type AlertState struct {
	Heading string
	Message string
}

func (*AlertState) modalState() {}

func (s *AlertState) Title() string { return s.Heading }

func (s *AlertState) Help() string { return "Enter or Esc to dismiss" }

func (s *AlertState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	body := lipgloss.NewStyle().Foreground(ColorText).Render(s.Message)
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, body, help)
}

func (s *AlertState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// NewAlertState creates an alert with the given heading and message.
func NewAlertState(heading, message string) *AlertState {
	return &AlertState{Heading: heading, Message: message}
}

// =============================================================================
// OptionsState - per-conversation menu (rename / delete)
// =============================================================================

// Conversation menu actions.
const (
	OptionRename = "rename"
	OptionDelete = "delete"
)

type OptionsState struct {
	ThreadID          string
	ConversationTitle string

	choice string
	form   *huh.Form
}

func (*OptionsState) modalState() {}

func (s *OptionsState) Title() string { return "Conversation" }

func (s *OptionsState) Help() string { return "↑/↓ to choose, Enter to select, Esc to close" }

func (s *OptionsState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *OptionsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Choice returns the highlighted action.
func (s *OptionsState) Choice() string {
	return s.choice
}

// NewOptionsState creates the menu for one conversation.
func NewOptionsState(threadID, title string) *OptionsState {
	s := &OptionsState{ThreadID: threadID, ConversationTitle: title, choice: OptionRename}
	s.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(title).
			Options(
				huh.NewOption("Rename", OptionRename),
				huh.NewOption("Delete", OptionDelete),
			).
			Value(&s.choice),
	)).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalWidth - 8)
	initHuhForm(s.form)
	return s
}

// =============================================================================
// HelpState - key reference
// =============================================================================

type HelpState struct {
	Sections []HelpSection
}

// HelpSection groups related bindings.
type HelpSection struct {
	Title    string
	Bindings []KeyBinding
}

func (*HelpState) modalState() {}

func (s *HelpState) Title() string { return "Keyboard Shortcuts" }

func (s *HelpState) Help() string { return "Enter or Esc to close" }

func (s *HelpState) Render() string {
	var sb strings.Builder
	sb.WriteString(ModalTitleStyle.Render(s.Title()))
	keyStyle := lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true).Width(10)
	descStyle := lipgloss.NewStyle().Foreground(ColorText)
	sectionStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	for i, section := range s.Sections {
		sb.WriteString("\n")
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(sectionStyle.Render(section.Title))
		for _, b := range section.Bindings {
			sb.WriteString("\n  ")
			sb.WriteString(keyStyle.Render(b.Key))
			sb.WriteString(descStyle.Render(b.Desc))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(ModalHelpStyle.Render(s.Help()))
	return sb.String()
}

func (s *HelpState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// NewHelpStateFromSections creates the help modal from grouped bindings.
func NewHelpStateFromSections(sections []HelpSection) *HelpState {
	return &HelpState{Sections: sections}
}
