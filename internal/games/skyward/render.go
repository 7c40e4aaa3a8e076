package skyward

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/skyward/internal/core"
)

// Visual characters for rendering
const (
	PipeChar      = '█'
	PipeCapTop    = '▀'
	PipeCapBottom = '▄'
	CoinChar      = '●'
	CloudChar     = '░'
	BirdRising    = '▲'
	BirdLevel     = '►'
	BirdDiving    = '▼'
	WingUp        = '^'
	WingDown      = '~'
)

// projection maps simulation pixels onto screen cells.
type projection struct {
	sx, sy float64
}

func newProjection(vp core.Viewport, dst *core.Screen) projection {
	return projection{
		sx: float64(dst.Width()) / vp.W,
		sy: float64(dst.Height()) / vp.H,
	}
}

func (p projection) col(x float64) int { return int(math.Floor(x * p.sx)) }
func (p projection) row(y float64) int { return int(math.Floor(y * p.sy)) }

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	vp := g.tuning.Viewport
	if vp.Empty() || dst.Width() == 0 || dst.Height() == 0 {
		return
	}
	pr := newProjection(vp, dst)
	t := g.tuning

	for _, c := range g.world.Clouds {
		color := core.ColorGray
		if c.Opacity >= 0.5 {
			color = core.ColorWhite
		}
		w := max(1, pr.col(t.Clouds.Width*c.Scale)/2)
		row := pr.row(c.Y)
		x0 := pr.col(c.X)
		for dx := range w {
			dst.SetColored(x0+dx, row, CloudChar, color)
		}
	}

	if g.phase == PhaseLoading {
		return
	}

	for _, p := range g.world.Pipes {
		g.drawPipe(dst, pr, p)
	}

	for _, c := range g.world.Coins {
		dst.SetColored(pr.col(c.X), pr.row(c.Y), CoinChar, core.ColorBrightYellow)
	}

	g.drawPlayer(dst, pr)

	dst.DrawTextColored(1, 0, fmt.Sprintf(" Points: %s ", humanize.Comma(int64(g.ledger.Balance()))), core.ColorBrightWhite)

	switch g.phase {
	case PhaseIdle:
		drawCenteredMessage(dst, "SKYWARD", "Press SPACE to fly")
	case PhaseTerminated:
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("+%d this run  |  R restart  A bonus  $ redeem", g.run.Points))
	}
}

// drawPipe renders both halves of a pipe with caps facing the gap.
func (g *Game) drawPipe(dst *core.Screen, pr projection, p Pipe) {
	t := g.tuning
	x0 := pr.col(p.X)
	x1 := max(x0+1, pr.col(p.Right(t)))
	top := pr.row(p.GapTop(t))
	bottom := pr.row(p.GapBottom(t))
	for x := x0; x < x1; x++ {
		for y := 0; y < top; y++ {
			dst.SetColored(x, y, PipeChar, core.ColorGreen)
		}
		if top > 0 {
			dst.SetColored(x, top-1, PipeCapTop, core.ColorBrightGreen)
		}
		for y := bottom; y < dst.Height(); y++ {
			dst.SetColored(x, y, PipeChar, core.ColorGreen)
		}
		if bottom < dst.Height() {
			dst.SetColored(x, bottom, PipeCapBottom, core.ColorBrightGreen)
		}
	}
}

func (g *Game) drawPlayer(dst *core.Screen, pr projection) {
	t := g.tuning
	p := g.world.Player
	box := t.PlayerBox(p.Y)

	body := BirdLevel
	switch {
	case p.Rotation < -10:
		body = BirdRising
	case p.Rotation > 45:
		body = BirdDiving
	}
	wing := WingDown
	if p.FlapTicks > 0 {
		wing = WingUp
	}

	x := pr.col(box.X + box.W/2)
	y := pr.row(box.Y + box.H/2)
	color := core.ColorYellow
	if g.phase == PhaseTerminated {
		color = core.ColorRed
	}
	dst.SetColored(x-1, y, wing, color)
	dst.SetColored(x, y, body, color)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := min(max(len([]rune(title)), len([]rune(subtitle)))+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len([]rune(title)))/2
	dst.DrawTextColored(titleX, boxY+1, title, core.ColorBrightWhite)

	subtitleX := boxX + (boxW-len([]rune(subtitle)))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
