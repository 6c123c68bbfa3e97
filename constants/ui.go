package constants

// Overlay geometry in virtual pixels
const (
	// CameraMarkerSize is the side of the square drawn at the camera position
	CameraMarkerSize = 4

	// HeadingLineLength is the length of the heading indicator
	HeadingLineLength = 8
)

// Terminal layout
const (
	// StatusRows is reserved at the bottom of the terminal for the status line
	StatusRows = 1

	// MinCanvasRows below this the frame is skipped and only the status line is drawn
	MinCanvasRows = 4
)

// Glyphs
const (
	GlyphGridLine = '·'
	GlyphWall     = '█'
	GlyphCamera   = '@'
	GlyphHeading  = '*'
	GlyphRay      = '.'
	GlyphGoal     = 'X'
)

// ShadeGlyphs are wall glyphs from nearest to farthest
var ShadeGlyphs = [...]rune{'█', '▓', '▒', '░'}

// ShadeDistanceCells is the distance in cells covered by each shade glyph
const ShadeDistanceCells = 2.0
