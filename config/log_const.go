package config

import "github.com/logrusorgru/aurora"

// Color constants for logger prefixes
const (
	ColorGreen   = aurora.GreenFg
	ColorYellow  = aurora.YellowFg
	ColorBlue    = aurora.BlueFg
	ColorMagenta = aurora.MagentaFg
	ColorPurple  = ColorMagenta
	ColorCyan    = aurora.CyanFg
)
