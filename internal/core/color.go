package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Palette entries used by the renderer.
const (
	ColorDefault Color = iota
	ColorSky
	ColorCloud
	ColorGround
	ColorGrass
	ColorBird
	ColorWindowLit
	ColorWindowDark
	ColorBrick
	ColorSienna
	ColorSlate
	ColorUmber
	ColorSand
	ColorSteel
	ColorTaupe
	ColorBark
	ColorTitle
	ColorGold
	ColorMuted
)

// BuildingColors are the tints a building (obstacle pair) can be drawn with.
var BuildingColors = []Color{
	ColorBrick, ColorSienna, ColorSlate, ColorUmber,
	ColorSand, ColorSteel, ColorTaupe, ColorBark,
}
