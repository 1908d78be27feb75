package tui

import (
	"fmt"
	"math"

	"github.com/vovakirdan/skyflap/internal/config"
	"github.com/vovakirdan/skyflap/internal/core"
	"github.com/vovakirdan/skyflap/internal/games/flappy"
	"github.com/vovakirdan/skyflap/internal/i18n"
)

// Visual characters for rendering
const (
	BuildingChar = '█'
	WindowChar   = '▪'
	LedgeTopChar = '▀'
	LedgeBotChar = '▄'
	GrassChar    = '▀'
	GroundChar   = '▒'
	BirdChar     = '▆'
	BeakChar     = '▶'
	CloudChar    = '░'
)

// cellAspect is how many terminal columns match the height of one row.
const cellAspect = 2.0

// viewport maps world units onto a block of screen cells.
type viewport struct {
	ox, oy int // Top-left cell of the playfield
	w, h   int // Playfield size in cells
	sx, sy float64
}

// fitViewport fits the world into cols x rows keeping its aspect ratio.
func fitViewport(world config.WorldConfig, cols, rows int) viewport {
	if cols <= 0 || rows <= 0 {
		return viewport{}
	}
	h := rows
	w := int(math.Round(float64(h) * world.Width / world.Height * cellAspect))
	if w > cols {
		w = cols
		h = core.Clamp(int(math.Round(float64(w)/cellAspect*world.Height/world.Width)), 1, rows)
	}
	w = core.Max(w, 1)
	return viewport{
		ox: (cols - w) / 2,
		oy: (rows - h) / 2,
		w:  w,
		h:  h,
		sx: float64(w) / world.Width,
		sy: float64(h) / world.Height,
	}
}

func (v viewport) col(x float64) int { return v.ox + int(math.Floor(x*v.sx)) }
func (v viewport) row(y float64) int { return v.oy + int(math.Floor(y*v.sy)) }

// rect converts a world box to cells, clipped to the playfield. Every box
// that is at least partly inside covers one cell or more.
func (v viewport) rect(b core.Box) core.Rect {
	x0 := v.col(b.Left())
	x1 := int(math.Ceil(b.Right()*v.sx)) + v.ox
	y0 := v.row(b.Top())
	y1 := int(math.Ceil(b.Bottom()*v.sy)) + v.oy

	x0 = core.Clamp(x0, v.ox, v.ox+v.w)
	x1 = core.Clamp(x1, v.ox, v.ox+v.w)
	y0 = core.Clamp(y0, v.oy, v.oy+v.h)
	y1 = core.Clamp(y1, v.oy, v.oy+v.h)
	if x1 == x0 && x0 < v.ox+v.w && b.Right() > 0 && b.Left() < v.w2world() {
		x1 = x0 + 1
	}
	if y1 == y0 && y0 < v.oy+v.h {
		y1 = y0 + 1
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

func (v viewport) w2world() float64 {
	if v.sx == 0 {
		return 0
	}
	return float64(v.w) / v.sx
}

// Scene draws game snapshots onto a screen.
type Scene struct {
	loc    *i18n.Localizer
	clouds []cloud
}

type cloud struct {
	x, y, speed float64
	width       int
}

// NewScene creates a scene that labels the HUD through loc.
func NewScene(loc *i18n.Localizer) *Scene {
	return &Scene{
		loc: loc,
		clouds: []cloud{
			{x: 40, y: 70, speed: 12, width: 6},
			{x: 200, y: 140, speed: 8, width: 9},
			{x: 310, y: 40, speed: 15, width: 5},
		},
	}
}

// Drift moves the clouds by elapsed seconds. Clouds drift in every phase.
func (s *Scene) Drift(secs, worldWidth float64) {
	for i := range s.clouds {
		c := &s.clouds[i]
		c.x -= c.speed * secs
		if c.x < -60 {
			c.x = worldWidth + 60
		}
	}
}

// Draw renders snap onto dst.
func (s *Scene) Draw(dst *core.Screen, snap flappy.Snapshot) {
	dst.Clear()
	v := fitViewport(snap.World, dst.Width(), dst.Height())
	if v.w == 0 {
		return
	}

	s.drawSky(dst, v)
	for _, o := range snap.Obstacles {
		s.drawBuilding(dst, v, o)
	}
	s.drawGround(dst, v, snap.World)
	s.drawBird(dst, v, snap.Player)
	s.drawHUD(dst, v, snap)
}

func (s *Scene) drawSky(dst *core.Screen, v viewport) {
	for _, c := range s.clouds {
		x := v.col(c.x)
		y := v.row(c.y)
		for i := 0; i < c.width; i++ {
			if x+i >= v.ox && x+i < v.ox+v.w {
				dst.SetColored(x+i, y, CloudChar, core.ColorCloud)
			}
		}
	}
}

func (s *Scene) drawBuilding(dst *core.Screen, v viewport, o flappy.Obstacle) {
	r := v.rect(o.Box())
	if r.W <= 0 || r.H <= 0 {
		return
	}
	tint := core.BuildingColors[o.Pair%len(core.BuildingColors)]
	dst.DrawRect(r, BuildingChar, tint)

	// Lit and dark windows, stable per building
	for y := r.Y + 1; y < r.Bottom()-1; y += 2 {
		for x := r.X + 1; x < r.Right()-1; x += 2 {
			c := core.ColorWindowDark
			if windowLit(o.Pair, x-r.X, y-r.Y) {
				c = core.ColorWindowLit
			}
			dst.SetColored(x, y, WindowChar, c)
		}
	}

	// The ledge faces the gap
	if o.Role == flappy.RoleTop {
		dst.DrawHLine(r.X, r.Bottom()-1, r.W, LedgeTopChar, core.ColorMuted)
	} else {
		dst.DrawHLine(r.X, r.Y, r.W, LedgeBotChar, core.ColorMuted)
	}
}

// windowLit decides from a small hash whether a window is lit; about 60%
// of them are.
func windowLit(pair, x, y int) bool {
	h := uint32(pair*73856093) ^ uint32(x*19349663) ^ uint32(y*83492791)
	return h%10 < 6
}

func (s *Scene) drawGround(dst *core.Screen, v viewport, world config.WorldConfig) {
	top := v.row(world.GroundTop())
	bottom := v.oy + v.h
	dst.DrawHLine(v.ox, top, v.w, GrassChar, core.ColorGrass)
	for y := top + 1; y < bottom; y++ {
		dst.DrawHLine(v.ox, y, v.w, GroundChar, core.ColorGround)
	}
}

func (s *Scene) drawBird(dst *core.Screen, v viewport, p flappy.Player) {
	r := v.rect(p.Box())
	dst.DrawRect(r, BirdChar, core.ColorBird)
	dst.SetColored(r.Right(), r.Y+r.H/2, BeakChar, core.ColorGold)
}

func (s *Scene) drawHUD(dst *core.Screen, v viewport, snap flappy.Snapshot) {
	best := fmt.Sprintf("%s: %d", s.loc.T(i18n.KeyBest), snap.BestScore)
	dst.DrawTextColored(v.ox+1, v.oy, best, core.ColorMuted)

	switch snap.Phase {
	case flappy.PhaseIdle:
		dst.DrawTextCentered(v.oy+v.h/2+v.h/6, s.loc.T(i18n.KeyTapToStart), core.ColorTitle)
	case flappy.PhasePlaying:
		dst.DrawTextCentered(v.oy+1, fmt.Sprintf("%d", snap.Score), core.ColorTitle)
		if snap.Paused {
			s.drawPanel(dst, v, []panelLine{{s.loc.T(i18n.KeyPaused), core.ColorTitle}})
		}
	case flappy.PhaseGameOver:
		lines := []panelLine{
			{s.loc.T(i18n.KeyGameOver), core.ColorTitle},
			{"", core.ColorDefault},
			{fmt.Sprintf("%s: %d", s.loc.T(i18n.KeyYourScore), snap.Score), core.ColorDefault},
			{fmt.Sprintf("%s: %d", s.loc.T(i18n.KeyBestScore), snap.BestScore), core.ColorDefault},
		}
		if snap.NewRecord {
			lines = append(lines, panelLine{s.loc.T(i18n.KeyNewRecord), core.ColorGold})
		}
		lines = append(lines, panelLine{"", core.ColorDefault})
		if snap.RestartPending {
			lines = append(lines, panelLine{s.loc.T(i18n.KeyLoading), core.ColorMuted})
		} else {
			lines = append(lines, panelLine{"[enter] " + s.loc.T(i18n.KeyPlayAgain), core.ColorBird})
		}
		s.drawPanel(dst, v, lines)
	}
}

type panelLine struct {
	text  string
	color core.Color
}

// drawPanel draws a framed box of centered lines in the middle of the playfield.
func (s *Scene) drawPanel(dst *core.Screen, v viewport, lines []panelLine) {
	width := 0
	for _, l := range lines {
		width = core.Max(width, core.TextWidth(l.text))
	}
	boxW := width + 4
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := v.oy + (v.h-boxH)/2

	r := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, core.ColorMuted)
	for i, l := range lines {
		dst.DrawTextCentered(boxY+1+i, l.text, l.color)
	}
}
