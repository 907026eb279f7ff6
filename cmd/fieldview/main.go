// Fieldview is an interactive viewer for the sampling pipeline. Type to
// change the text, move the mouse to distort the field, and switch
// between pointer and auto cursor modes to watch the synthetic
// trajectories.
//
// Keys:
//
//	typing     edit the text (backspace deletes)
//	Tab        toggle animation
//	F1         toggle hover
//	F2         toggle pointer/auto interaction mode
//	1-5        auto pattern: sine, infinity, circle, random, trace
//	F3         toggle auto cursor debug marker
//	F12        save a snapshot to fieldview.png
package main

import (
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/gogpu/shapefield"
)

const (
	screenW = 800
	screenH = 600
)

type game struct {
	scene *shapefield.SceneState
	start time.Time

	// settle scales instances in after every rebuild.
	settle    *gween.Tween
	settleMul float32
	lastCount int

	text     string
	snapshot bool
}

func newGame() *game {
	cfg := shapefield.DefaultConfig()
	cfg.Text = "GO"
	cfg.Mode = shapefield.ModeAuto
	cfg.AutoPattern = shapefield.AutoCircle
	cfg.AutoDebug = true

	g := &game{
		scene:     shapefield.NewScene(screenW, screenH, shapefield.WithConfig(cfg)),
		start:     time.Now(),
		text:      cfg.Text,
		settleMul: 1,
	}
	return g
}

func (g *game) Update() error {
	g.handleInput()

	nowMs := float64(time.Since(g.start)) / float64(time.Millisecond)
	g.scene.Step(nowMs)

	// A particle-count change means the field was rebuilt; restart the
	// settle tween.
	if n := g.scene.Field().Len(); n != g.lastCount {
		g.lastCount = n
		g.settle = gween.New(0, 1, 0.6, ease.OutBack)
	}
	if g.settle != nil {
		v, done := g.settle.Update(float32(1.0 / float64(ebiten.TPS())))
		g.settleMul = v
		if done {
			g.settle = nil
			g.settleMul = 1
		}
	}
	return nil
}

func (g *game) handleInput() {
	// Text editing.
	for _, r := range ebiten.AppendInputChars(nil) {
		if r >= ' ' {
			g.text += string(r)
			g.scene.SetText(g.text)
		}
	}
	if repeated(ebiten.KeyBackspace) && len(g.text) > 0 {
		runes := []rune(g.text)
		g.text = string(runes[:len(runes)-1])
		g.scene.SetText(g.text)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.text += "\n"
		g.scene.SetText(g.text)
	}

	cfg := g.scene.Config()
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.scene.SetAnimationEnabled(!cfg.AnimationEnabled)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.scene.SetHoverEnabled(!cfg.HoverEnabled)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		if cfg.Mode == shapefield.ModeAuto {
			g.scene.SetInteractionMode(shapefield.ModePointer)
		} else {
			g.scene.SetInteractionMode(shapefield.ModeAuto)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.scene.SetAutoDebug(!cfg.AutoDebug)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.snapshot = true
	}

	patterns := map[ebiten.Key]shapefield.AutoPattern{
		ebiten.Key1: shapefield.AutoSine,
		ebiten.Key2: shapefield.AutoInfinity,
		ebiten.Key3: shapefield.AutoCircle,
		ebiten.Key4: shapefield.AutoRandom,
		ebiten.Key5: shapefield.AutoTrace,
	}
	for key, p := range patterns {
		if inpututil.IsKeyJustPressed(key) {
			g.scene.SetAutoPattern(p)
		}
	}

	if cfg.Mode == shapefield.ModePointer {
		mx, my := ebiten.CursorPosition()
		if mx >= 0 && my >= 0 && mx < screenW && my < screenH {
			g.scene.SetPointer(float64(mx), float64(my))
		} else {
			g.scene.ClearPointer()
		}
	}
}

func repeated(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= 20 && d%3 == 0)
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 18, G: 18, B: 26, A: 255})

	for _, m := range g.scene.Instances() {
		// Column-major: translation in the fourth column, uniform
		// scale recoverable from the first column length.
		x := float32(screenW/2 + m[12])
		y := float32(screenH/2 - m[13])
		s := float32(colLen(m)) * g.settleMul
		r := 2 * s
		if r < 0.5 {
			r = 0.5
		}
		vector.DrawFilledCircle(screen, x, y, r, color.RGBA{R: 220, G: 220, B: 235, A: 255}, true)
	}

	if cx, cy, ok := g.scene.AutoCursor(); ok {
		drawCrosshair(screen, float32(cx), float32(cy))
	}

	ebitenutil.DebugPrint(screen, "type to edit | Tab anim | F1 hover | F2 mode | 1-5 pattern | F12 snapshot")

	if g.snapshot {
		g.snapshot = false
		g.saveSnapshot(screen)
	}
}

func colLen(m shapefield.Mat4) float64 {
	v := shapefield.Vec3{X: m[0], Y: m[1], Z: m[2]}
	return v.Length()
}

func drawCrosshair(dst *ebiten.Image, x, y float32) {
	c := color.RGBA{R: 255, G: 90, B: 90, A: 255}
	vector.StrokeLine(dst, x-8, y, x+8, y, 1, c, true)
	vector.StrokeLine(dst, x, y-8, x, y+8, 1, c, true)
	vector.StrokeCircle(dst, x, y, 5, 1, c, true)
}

func (g *game) saveSnapshot(screen *ebiten.Image) {
	f, err := os.Create("fieldview.png")
	if err != nil {
		log.Printf("snapshot: %v", err)
		return
	}
	defer f.Close()

	if err := png.Encode(f, screen); err != nil {
		log.Printf("snapshot: %v", err)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return screenW, screenH
}

func main() {
	shapefield.SetLogger(slog.Default())

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("shapefield - fieldview")

	if err := ebiten.RunGame(newGame()); err != nil {
		log.Fatal(err)
	}
}
