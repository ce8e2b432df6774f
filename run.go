package willowxr

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the desktop window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool

	// PixelsPerMeter scales the top-down view. Zero means 400.
	PixelsPerMeter float64
	// Start is the initial pose of the keyboard controller. The zero value
	// means Identity.
	Start Mat4
	// Update, when set, runs every tick before the scene updates. A non-nil
	// error ends the loop.
	Update func() error
}

// Keyboard controller tuning, per tick.
const (
	keyboardStep = 0.005             // metres
	keyboardTurn = math.Pi / 180 * 2 // radians
)

// keyboardController emulates a tracked right-hand controller from the
// keyboard. The left hand stays where it started.
type keyboardController struct {
	right, left Mat4
	play        bool
}

func newKeyboardController(start Mat4) *keyboardController {
	if start == (Mat4{}) {
		start = Identity
	}
	return &keyboardController{
		right: start,
		left:  Compose(Translate(Vec3{-0.3, 0, 0}), start),
	}
}

// sample reads the keyboard and returns a frame shaped for profile.
func (k *keyboardController) sample(p Profile) FrameInput {
	var d Vec3
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		d[0] -= keyboardStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		d[0] += keyboardStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		d[2] -= keyboardStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		d[2] += keyboardStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyPageUp) {
		d[1] += keyboardStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyPageDown) {
		d[1] -= keyboardStep
	}
	k.right = Compose(Translate(d), k.right)
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		k.right = Compose(k.right, RotateAxis(AxisZ, keyboardTurn))
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		k.right = Compose(k.right, RotateAxis(AxisZ, -keyboardTurn))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		k.play = !k.play
	}
	return keyboardFrame(p, k.left, k.right,
		ebiten.IsKeyPressed(ebiten.KeySpace),
		ebiten.IsKeyPressed(ebiten.KeyR),
		k.play)
}

// keyboardFrame lays out the trigger states on the buttons profile expects.
func keyboardFrame(p Profile, left, right Mat4, move, rotate, play bool) FrameInput {
	n := max(p.MoveButton, p.RotateButton, p.PlayButton) + 1
	buttons := make(Buttons, n)
	if p.MoveButton >= 0 {
		buttons[p.MoveButton].Pressed = move
	}
	if p.RotateButton >= 0 {
		buttons[p.RotateButton].Pressed = rotate
	}
	if p.PlayButton >= 0 {
		buttons[p.PlayButton].Touched = play
	}
	return FrameInput{Left: left, Right: right, RightButtons: buttons, Tracked: true}
}

// runner adapts a Scene to ebiten.Game.
type runner struct {
	scene *Scene
	cfg   RunConfig
	keys  *keyboardController
	pixel *ebiten.Image
}

func (g *runner) Update() error {
	if g.cfg.Update != nil {
		if err := g.cfg.Update(); err != nil {
			return err
		}
	}
	in := g.keys.sample(g.scene.cfg.Profile)
	if g.scene.cfg.Profile.PlayButton < 0 && g.keys.play != g.scene.PlayMode() {
		g.scene.SetPlayMode(g.keys.play)
	}
	g.scene.Update(in)
	return nil
}

var (
	colorProp      = color.RGBA{R: 90, G: 160, B: 220, A: 255}
	colorTarget    = color.RGBA{R: 240, G: 200, B: 80, A: 255}
	colorImplement = color.RGBA{R: 220, G: 90, B: 90, A: 255}
	colorCursor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Draw renders a top-down view: world X across, world Z down the screen,
// centred on the window. Leaves are drawn as their X/Z footprint.
func (g *runner) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 30, G: 30, B: 40, A: 255})
	ppm := g.cfg.PixelsPerMeter
	if ppm == 0 {
		ppm = 400
	}
	cx, cy := float64(g.cfg.Width)/2, float64(g.cfg.Height)/2

	implements := make(map[*Node]bool)
	for _, im := range g.scene.implements {
		if im != nil {
			implements[im.Node] = true
		}
	}
	target := g.scene.session.TargetRoot

	g.walk(g.scene.root, Identity, func(n *Node, world Mat4) {
		c := colorProp
		switch top := n.TopAncestorUnder(g.scene.root); {
		case implements[top]:
			c = colorImplement
		case top != nil && top == target:
			c = colorTarget
		}
		p := Position(world)
		w := world.Col(0).Vec3().Len() * ppm
		h := world.Col(2).Vec3().Len() * ppm
		g.rect(screen, cx+p[0]*ppm-w/2, cy+p[2]*ppm-h/2, max(w, 2), max(h, 2), c)
	})

	p := Position(g.scene.Calibrated(g.scene.last, manipulationHand))
	g.rect(screen, cx+p[0]*ppm-3, cy+p[2]*ppm-3, 6, 6, colorCursor)

	msg := fmt.Sprintf("mode: %s  y: %.3f  play: %v", g.scene.session.Mode, p[1], g.scene.PlayMode())
	if g.cfg.ShowFPS {
		msg += fmt.Sprintf("\nFPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (g *runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// walk visits every leaf with its world transform.
func (g *runner) walk(n *Node, parent Mat4, fn func(*Node, Mat4)) {
	world := Compose(parent, n.local)
	if n.IsLeaf() {
		fn(n, world)
		return
	}
	for _, c := range n.children {
		g.walk(c, world, fn)
	}
}

func (g *runner) rect(dst *ebiten.Image, x, y, w, h float64, c color.RGBA) {
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(g.pixel, &op)
}

// Run opens a window and drives scene from the keyboard until the window is
// closed. Arrow keys move the right controller across the floor plane,
// PageUp/PageDown raise and lower it, Q and E roll it, Space holds the move
// trigger, R holds the rotate trigger and P toggles play mode.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&runner{
		scene: scene,
		cfg:   cfg,
		keys:  newKeyboardController(cfg.Start),
		pixel: pixel,
	})
}
