package ui

import "testing"

func TestViewContext_UpdateTerminalSize(t *testing.T) {
	ctx := GetViewContext()
	ctx.SetSidebarCollapsed(false)
	ctx.UpdateTerminalSize(120, 40)

	if ctx.ContentHeight != 40-HeaderHeight-FooterHeight {
		t.Errorf("ContentHeight = %d", ctx.ContentHeight)
	}
	if ctx.SidebarWidth != 120/SidebarWidthRatio {
		t.Errorf("SidebarWidth = %d, want %d", ctx.SidebarWidth, 120/SidebarWidthRatio)
	}
	if ctx.SidebarWidth+ctx.ChatWidth != 120 {
		t.Error("sidebar and chat should fill the width")
	}
}

func TestViewContext_MinimumSize(t *testing.T) {
	ctx := GetViewContext()
	ctx.UpdateTerminalSize(5, 2)

	if ctx.TerminalWidth != MinTerminalWidth || ctx.TerminalHeight != MinTerminalHeight {
		t.Errorf("size = %dx%d, want minimum %dx%d", ctx.TerminalWidth, ctx.TerminalHeight, MinTerminalWidth, MinTerminalHeight)
	}
}

func TestViewContext_CollapsedSidebar(t *testing.T) {
	ctx := GetViewContext()
	ctx.UpdateTerminalSize(100, 30)
	ctx.SetSidebarCollapsed(true)
	t.Cleanup(func() { ctx.SetSidebarCollapsed(false) })

	if ctx.SidebarWidth != 0 {
		t.Errorf("collapsed SidebarWidth = %d, want 0", ctx.SidebarWidth)
	}
	if ctx.ChatWidth != 100 {
		t.Errorf("collapsed ChatWidth = %d, want 100", ctx.ChatWidth)
	}
}

func TestViewContext_Inner(t *testing.T) {
	ctx := GetViewContext()
	if ctx.InnerWidth(30) != 28 || ctx.InnerHeight(10) != 8 {
		t.Error("inner sizes should subtract the border")
	}
}
