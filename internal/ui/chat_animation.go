package ui

import (
	"fmt"
	"math/rand"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// StopwatchTickMsg is sent to update the animated waiting display
type StopwatchTickMsg time.Time

// CompletionFlashTickMsg is sent to animate the completion checkmark flash
type CompletionFlashTickMsg time.Time

// SpinnerState tracks the waiting animation.
type SpinnerState struct {
	Verb string
	Idx  int
}

// waitingVerbs cycle while a reply is pending
var waitingVerbs = []string{
	"Thinking",
	"Looking it up",
	"Checking the records",
	"Reading",
	"Composing",
	"Considering",
	"Drafting",
}

func randomWaitingVerb() string {
	return waitingVerbs[rand.Intn(len(waitingVerbs))]
}

var spinnerFrames = []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"}

// StopwatchTick returns a command that sends a tick message after a delay
func StopwatchTick() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return StopwatchTickMsg(t)
	})
}

// CompletionFlashTick returns a command that sends a completion flash tick
func CompletionFlashTick() tea.Cmd {
	return tea.Tick(160*time.Millisecond, func(t time.Time) tea.Msg {
		return CompletionFlashTickMsg(t)
	})
}

// renderWaiting renders the spinner, verb and elapsed time.
// Format: ✺ Thinking... (12s)
func renderWaiting(verb string, frameIdx int, elapsed time.Duration) string {
	frame := spinnerFrames[frameIdx%len(spinnerFrames)]

	spinnerStyle := lipgloss.NewStyle().Foreground(ColorUser).Bold(true)
	verbStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Italic(true)
	metaStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)

	return spinnerStyle.Render(frame) + " " +
		verbStyle.Render(verb+"...") + " " +
		metaStyle.Render(fmt.Sprintf("(%s)", formatElapsed(elapsed)))
}

// renderCompletionFlash renders the checkmark shown briefly after a reply.
func renderCompletionFlash(frame int) string {
	style := lipgloss.NewStyle().Foreground(ColorSuccess).Bold(frame%2 == 0)
	return style.Render("✓ Done")
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}

// SetWaiting shows or hides the waiting indicator. Returns the tick command
// that drives the animation when waiting starts.
func (c *Chat) SetWaiting(waiting bool) tea.Cmd {
	wasWaiting := c.waiting
	c.waiting = waiting
	if waiting && !wasWaiting {
		c.spinner = SpinnerState{Verb: randomWaitingVerb()}
		c.waitStart = time.Now()
		c.completion = -1
		c.updateContent()
		c.viewport.GotoBottom()
		return StopwatchTick()
	}
	c.updateContent()
	return nil
}

// IsWaiting returns whether we're waiting for a response
func (c *Chat) IsWaiting() bool {
	return c.waiting
}

// StartCompletionFlash starts the completion checkmark flash animation
func (c *Chat) StartCompletionFlash() tea.Cmd {
	c.completion = 0
	c.updateContent()
	return CompletionFlashTick()
}

// IsCompletionFlashing returns whether the completion flash animation is active
func (c *Chat) IsCompletionFlashing() bool {
	return c.completion >= 0
}

func (c *Chat) handleStopwatchTick() tea.Cmd {
	if !c.waiting {
		return nil
	}
	c.spinner.Idx = (c.spinner.Idx + 1) % len(spinnerFrames)
	c.updateContent()
	return StopwatchTick()
}

func (c *Chat) handleCompletionFlashTick() tea.Cmd {
	if c.completion < 0 {
		return nil
	}
	c.completion++
	if c.completion >= 3 {
		c.completion = -1
	}
	c.updateContent()
	if c.completion >= 0 {
		return CompletionFlashTick()
	}
	return nil
}
