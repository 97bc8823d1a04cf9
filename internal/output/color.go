package output

import "github.com/fatih/color"

// Shared color printers for terminal output.
var (
	colorRed   = color.New(color.FgRed)
	colorGreen = color.New(color.FgGreen)
	colorBold  = color.New(color.Bold)
)

// ColorCompletion colors a Yes/No completion cell using the dashboard's
// slice colors: completed red, pending green.
func ColorCompletion(val string) string {
	switch val {
	case "Yes":
		return colorRed.Sprint(val)
	case "No":
		return colorGreen.Sprint(val)
	default:
		return val
	}
}

// SectionTitle renders a bold section title.
func SectionTitle(title string) string {
	return colorBold.Sprint(title)
}
