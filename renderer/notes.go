package renderer

// NoteLineHeight is the world-unit spacing between notification lines.
const NoteLineHeight = 14.0

// NotesHeight is the height of the strip below the world that holds lines
// notifications. Backends size their viewport to Height+NotesHeight.
func NotesHeight(lines int) float64 {
	if lines <= 0 {
		return 0
	}
	return float64(lines)*NoteLineHeight + NoteLineHeight/2
}

// DrawNotifications writes one line per note starting at (x, y), top to
// bottom in the order given. Notes arrive newest first.
func DrawNotifications(c Canvas, x, y float64, notes []string) {
	for i, n := range notes {
		c.Text(x, y+float64(i+1)*NoteLineHeight, 10, n, LabelColor)
	}
}
