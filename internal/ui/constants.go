package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// SidebarWidthRatio is the denominator for sidebar width (1/3 of total width)
	SidebarWidthRatio = 3

	// TextareaHeight is the number of lines for the chat input textarea
	TextareaHeight = 3

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the input area
	InputPaddingWidth = 2

	// InputTotalHeight is the total height of the input area (textarea + borders)
	InputTotalHeight = TextareaHeight + TextareaBorderHeight

	// DefaultWrapWidth is used when the viewport width is not known yet
	DefaultWrapWidth = 80

	MinTerminalWidth  = 40
	MinTerminalHeight = 10
)

// Modal dimensions
const (
	ModalWidth = 60

	// ModalInputCharLimit caps conversation titles typed into the rename editor
	ModalInputCharLimit = 256

	ModalInputWidth = 50
)

// SidebarSearchCharLimit caps the sidebar filter query.
const SidebarSearchCharLimit = 64
