package core

// Color is the semantic color of a screen cell. The platform decides how
// each one looks in the terminal.
type Color uint8

const (
	ColorDefault Color = iota
	ColorGrid          // background meter grid
	ColorWall
	ColorPillar
	ColorCrate
	ColorGhost // drawn bodies that do not collide
	ColorPlayer
	ColorContact // player while touching a surface
	ColorOverlay // debug overlay text
	ColorTitle
	ColorWarning
)
