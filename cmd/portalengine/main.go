// Command portalengine is the terminal driver for the portal engine core:
// it owns the window, decodes keyboard input into a per-tick snapshot,
// and blits the core's RGBA framebuffer to terminal cells.
//
// Faithful in spirit to the teacher maxwelbm-fpscli's single tcell loop
// (screen init, a fixed-rate ticker, SetContent per cell), generalized
// from a hard-coded ASCII grid raycaster to a driver over this repo's
// portal-engine core.
package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli/v2"

	"portalengine/internal/engine"
	"portalengine/internal/input"
	"portalengine/internal/render"
	"portalengine/internal/world"
)

// textureTable is the fixed ordered list of texture files loaded at init,
// each with its own world-units-per-tile scale, configured in code per
// spec.md §6 ("xscale/yscale is configured per-texture in code").
var textureTable = []world.TextureSpec{
	{Path: "assets/wall.png", XScale: 4, YScale: 4},
	{Path: "assets/floor.png", XScale: 4, YScale: 4},
	{Path: "assets/ceiling.png", XScale: 4, YScale: 4},
	{Path: "assets/step.bmp", XScale: 2, YScale: 2},
}

var skySpec = world.TextureSpec{Path: "assets/sky.png", XScale: 1, YScale: 1}

func main() {
	app := &cli.App{
		Name:      "portalengine",
		Usage:     "run the portal engine over a text level file",
		ArgsUsage: "<levelfile> [fullscreen]",
		Action:    run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	log := engine.NewDefaultLogger()

	levelPath := c.Args().Get(0)
	if levelPath == "" {
		return cli.Exit("missing <levelfile> argument", -1)
	}
	fullscreen := c.Args().Get(1) == "fullscreen"

	f, err := os.Open(levelPath)
	if err != nil {
		return cli.Exit(fmt.Errorf("opening level: %w", err), -1)
	}
	defer f.Close()

	w, err := world.Load(f)
	if err != nil {
		return cli.Exit(fmt.Errorf("loading level: %w", err), -1)
	}

	textures, err := world.LoadTextures(textureTable)
	if err != nil {
		return cli.Exit(fmt.Errorf("loading textures: %w", err), -1)
	}
	w.Textures = textures

	skyTextures, err := world.LoadTextures([]world.TextureSpec{skySpec})
	if err != nil {
		return cli.Exit(fmt.Errorf("loading sky texture: %w", err), -1)
	}
	sky := skyTextures[0]

	screen, err := tcell.NewScreen()
	if err != nil {
		return cli.Exit(fmt.Errorf("starting terminal: %w", err), -1)
	}
	if err := screen.Init(); err != nil {
		return cli.Exit(fmt.Errorf("initializing terminal: %w", err), -1)
	}
	defer screen.Fini()

	if fullscreen {
		screen.EnableMouse()
	}
	screen.HideCursor()

	scrW, scrH := screen.Size()
	r := render.NewRenderer(scrW, scrH)
	eng := engine.New(w, r, sky, log)
	defer eng.Teardown()

	ticker := time.NewTicker(engine.TickDuration)
	defer ticker.Stop()

	quit := false
	for !quit {
		var snap input.Snapshot
		for screen.HasPendingEvent() {
			switch ev := screen.PollEvent().(type) {
			case *tcell.EventKey:
				applyKey(ev, &snap)
			case *tcell.EventResize:
				scrW, scrH = screen.Size()
				r = render.NewRenderer(scrW, scrH)
				eng.Renderer = r
				screen.Sync()
			}
		}
		if snap.Quit {
			quit = true
			break
		}

		eng.Advance(engine.TickDuration, snap)
		fb := eng.Render()
		blit(screen, fb, scrW, scrH)
		screen.Show()

		<-ticker.C
	}

	return nil
}

// applyKey maps one terminal key event onto the input snapshot's boolean
// fields. Because terminals don't deliver key-release events, each
// snapshot reflects only the keys pressed during the current tick's
// polling window — a coarser approximation of "currently held" than a
// native keyboard driver, but sufficient for this boundary contract
// (spec.md §1 treats input decoding as an out-of-scope collaborator).
func applyKey(ev *tcell.EventKey, snap *input.Snapshot) {
	switch ev.Key() {
	case tcell.KeyEscape:
		snap.Quit = true
	case tcell.KeyUp:
		snap.Forward = true
	case tcell.KeyDown:
		snap.Back = true
	case tcell.KeyLeft:
		snap.LookLeft = true
	case tcell.KeyRight:
		snap.LookRight = true
	case tcell.KeyCtrlC:
		snap.Quit = true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			snap.StrafeLeft = true
		case 'd', 'D':
			snap.StrafeRight = true
		case 'w', 'W':
			snap.Forward = true
		case 's', 'S':
			snap.Back = true
		case ' ':
			snap.Jump = true
		case 'c', 'C':
			snap.Crouch = true
		case 'x', 'X':
			snap.Sprint = true
		case 'm', 'M':
			snap.ToggleMouselook = true
		case 'f', 'F':
			snap.ToggleFullscreen = true
		case 'q', 'Q':
			snap.Quit = true
		}
	}
}

// luminanceRamp mirrors the teacher's four-tier shading ramp
// ('█','▓','░',' ') but picks the rune from the sampled pixel's actual
// luminance instead of raw wall distance, since this driver renders a
// full RGBA framebuffer rather than a single per-column distance.
var luminanceRamp = []rune{' ', '░', '▓', '█'}

func runeForLuminance(l float64) rune {
	idx := int(l * float64(len(luminanceRamp)))
	if idx >= len(luminanceRamp) {
		idx = len(luminanceRamp) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return luminanceRamp[idx]
}

// blit copies the core's RGBA framebuffer to terminal cells: the pixel's
// luminance picks a rune from luminanceRamp, and its color is carried
// through as the cell's truecolor foreground, so the teacher's
// distance-shaded ASCII look is preserved while still showing texture
// color.
func blit(screen tcell.Screen, fb []byte, w, h int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			rr, gg, bb := fb[i], fb[i+1], fb[i+2]
			l := (0.2126*float64(rr) + 0.7152*float64(gg) + 0.0722*float64(bb)) / 255.0
			l = math.Max(0, math.Min(1, l))

			style := tcell.StyleDefault.
				Background(tcell.ColorBlack).
				Foreground(tcell.NewRGBColor(int32(rr), int32(gg), int32(bb)))
			screen.SetContent(x, y, runeForLuminance(l), nil, style)
		}
	}
}
