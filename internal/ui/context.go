package ui

import (
	"sync"

	"github.com/zhubert/threadchat/internal/logger"
)

// ViewContext holds centralized layout calculations.
// All size calculations should go through this to avoid duplication.
type ViewContext struct {
	TerminalWidth  int
	TerminalHeight int

	HeaderHeight  int
	FooterHeight  int
	ContentHeight int
	SidebarWidth  int
	ChatWidth     int

	SidebarCollapsed bool

	mu sync.Mutex
}

var ctx *ViewContext
var ctxOnce sync.Once

// GetViewContext returns the singleton ViewContext instance
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		ctx = &ViewContext{
			HeaderHeight: HeaderHeight,
			FooterHeight: FooterHeight,
		}
	})
	return ctx
}

// UpdateTerminalSize recalculates all dimensions when terminal size changes.
func (v *ViewContext) UpdateTerminalSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height < MinTerminalHeight {
		height = MinTerminalHeight
	}

	v.TerminalWidth = width
	v.TerminalHeight = height
	v.recalculateLocked()
}

// SetSidebarCollapsed hides or shows the sidebar and recalculates widths.
func (v *ViewContext) SetSidebarCollapsed(collapsed bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.SidebarCollapsed = collapsed
	v.recalculateLocked()
}

func (v *ViewContext) recalculateLocked() {
	v.HeaderHeight = HeaderHeight
	v.FooterHeight = FooterHeight
	v.ContentHeight = v.TerminalHeight - v.HeaderHeight - v.FooterHeight

	if v.SidebarCollapsed {
		v.SidebarWidth = 0
	} else {
		v.SidebarWidth = v.TerminalWidth / SidebarWidthRatio
	}
	v.ChatWidth = v.TerminalWidth - v.SidebarWidth

	logger.WithComponent("ui").Debug("Layout recalculated",
		"width", v.TerminalWidth,
		"height", v.TerminalHeight,
		"contentHeight", v.ContentHeight,
		"sidebarWidth", v.SidebarWidth,
		"chatWidth", v.ChatWidth,
		"collapsed", v.SidebarCollapsed,
	)
}

// InnerWidth returns the usable width inside a panel with borders
func (v *ViewContext) InnerWidth(panelWidth int) int {
	return panelWidth - BorderSize
}

// InnerHeight returns the usable height inside a panel with borders
func (v *ViewContext) InnerHeight(panelHeight int) int {
	return panelHeight - BorderSize
}
