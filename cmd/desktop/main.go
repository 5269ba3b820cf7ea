package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"gotranslator/pkg/compiler"
	"gotranslator/pkg/interp"
	"gotranslator/pkg/utils"
)

const (
	screenWidth  = 512
	screenHeight = 512
	charWidth    = 7
	charHeight   = 14
	statusHeight = 16
	cols         = screenWidth / charWidth
	rows         = (screenHeight - statusHeight) / charHeight
)

var cursorColor = color.RGBA{0x80, 0xff, 0x80, 0xff}

type Game struct {
	term      *screenTerminal
	canvas    *image.RGBA   // text is rasterised here every frame
	canvasImg *ebiten.Image // reused upload target for canvas
	status    atomic.Value  // string
}

func newGame(term *screenTerminal) *Game {
	g := &Game{term: term, canvas: image.NewRGBA(image.Rect(0, 0, screenWidth, screenHeight-statusHeight))}
	g.status.Store("running")
	return g
}

// run interprets the program on the game's terminal and records how it ended.
func (g *Game) run(vm *interp.Machine) {
	if err := vm.Run(); err != nil {
		g.term.Write(fmt.Sprintf("error: %v", err))
		g.status.Store("stopped")
		return
	}
	g.status.Store(fmt.Sprintf("finished after %d steps", vm.Steps))
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.term.Type(ebiten.AppendInputChars(nil))
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.term.Submit()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.term.Backspace()
	}
	return nil
}

// renderText draws the visible terminal rows and the cursor onto canvas.
func (g *Game) renderText() {
	draw.Draw(g.canvas, g.canvas.Bounds(), image.Black, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	d := &font.Drawer{Dst: g.canvas, Src: image.White, Face: face}
	lines, cx, cy := g.term.View(cols, rows)
	for i, line := range lines {
		d.Dot = fixed.P(0, i*charHeight+face.Ascent)
		d.DrawString(line)
	}

	d.Src = image.NewUniform(cursorColor)
	d.Dot = fixed.P(cx*charWidth, cy*charHeight+face.Ascent)
	d.DrawString("_")
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.canvasImg == nil {
		b := g.canvas.Bounds()
		g.canvasImg = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.renderText()
	g.canvasImg.WritePixels(g.canvas.Pix)
	screen.DrawImage(g.canvasImg, nil)

	status := g.status.Load().(string)
	if status == "running" && g.term.Waiting() {
		status = "waiting for input"
	}
	ebitenutil.DebugPrintAt(screen, status, 0, screenHeight-statusHeight)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// windowTitle names the program by its file and the directory holding it.
func windowTitle(fullPath, baseDir string) string {
	return "gotranslator: " + filepath.Join(filepath.Base(baseDir), filepath.Base(fullPath))
}

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <source> [--show-ir]", os.Args[0])
	}
	filename := os.Args[1]
	showIR := false
	for _, arg := range os.Args[2:] {
		if arg == "--show-ir" {
			showIR = true
		}
	}

	fullPath, baseDir, err := utils.GetPathInfo(filename)
	if err != nil {
		log.Fatalf("Failed to resolve source path: %v", err)
	}
	source, err := utils.ReadSource(fullPath)
	if err != nil {
		log.Fatalf("Failed to read source file: %v", err)
	}

	irText, program, err := compiler.Compile(source)
	if err != nil {
		log.Fatalf("Translation failed: %v", err)
	}
	if showIR {
		fmt.Print("Generated IR:\n", irText, "\n")
	}

	term := newScreenTerminal()
	vm := interp.NewMachine(term)
	if err := vm.Load(program); err != nil {
		log.Fatalf("Failed to load program: %v", err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle(windowTitle(fullPath, baseDir))

	game := newGame(term)
	go game.run(vm)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}

	term.Shutdown()
}
