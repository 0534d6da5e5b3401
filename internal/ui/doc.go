// Package ui provides the user interface components for the threadchat TUI.
//
// # Layout System
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────────┬───────────────────────────────────┤
//	│                 │                                   │
//	│   Sidebar       │         Chat Panel                │
//	│   (1/3 width)   │         (2/3 width)               │
//	│                 │                                   │
//	├─────────────────┴───────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// When the sidebar is collapsed the chat panel takes the full width.
//
// # Components
//
// ViewContext: Singleton that manages centralized layout calculations.
//
// Header: Application title plus the active conversation title, or "New Chat".
//
// Footer: Context-aware keyboard shortcuts, replaced by a flash message when one
// is set.
//
// Sidebar: The conversation list. Holds at most one active item, an optional
// inline rename editor and a "/" filter.
//
// Chat: Message history in a viewport plus a textarea for input. Assistant
// replies are rendered as markdown with chroma-highlighted code blocks.
//
// Modal: Popup dialogs (delete confirmation, alert, options, help).
//
// # Text Selection Coordinate System
//
// Mouse events arrive in panel coordinates. The chat subtracts 1 from X and Y
// for the panel border, giving viewport-relative coordinates. Those coordinates
// index the viewport's ANSI-stripped lines when extracting text and address
// cells of the ultraviolet screen buffer when painting the highlight.
package ui
