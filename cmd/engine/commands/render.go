package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/lightsnake/engine/controller"
	"github.com/lightsnake/engine/rules"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
	termbox "github.com/nsf/termbox-go"
)

const (
	defaultColor = termbox.ColorDefault
	bgColor      = termbox.ColorDefault

	// cellWidth is how many terminal columns one grid cell takes, so cells
	// look roughly square.
	cellWidth = 2

	arrowsSource = "keyboard-arrows"
	wasdSource   = "keyboard-wasd"
)

// terminal draws frames with termbox in 256 color mode.
type terminal struct{}

func (t *terminal) PutFrame(ctx context.Context, f *rules.Frame) error {
	return render(f)
}

func render(f *rules.Frame) error {
	if f == nil {
		return errors.New("received nil frame")
	}
	err := termbox.Clear(defaultColor, defaultColor)
	if err != nil {
		return err
	}

	left, top := 2, 2
	renderTitle(left, top, f.Turn, f.Snakes)
	renderBoard(left, top, f.Width, f.Height)

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := color256(f.At(rules.Point{X: x, Y: y}))
			for i := 0; i < cellWidth; i++ {
				termbox.SetCell(left+x*cellWidth+i, top+y+1, ' ', c, c)
			}
		}
	}

	tbprint(left, top+f.Height+3, defaultColor, defaultColor, "arrows and wasd steer, esc quits")
	return termbox.Flush()
}

// color256 maps c onto the 6x6x6 color cube of a 256 color terminal.
func color256(c rules.Color) termbox.Attribute {
	scale := func(v uint8) int {
		return (int(v)*5 + 127) / 255
	}
	idx := 16 + 36*scale(c.R) + 6*scale(c.G) + scale(c.B)
	// termbox attributes in 256 color mode are offset by one.
	return termbox.Attribute(idx + 1)
}

func renderTitle(left, top int, turn int64, snakes int) {
	tbprint(left, top-1, defaultColor, defaultColor, fmt.Sprintf("Snake! - Turn %d - %d snakes", turn, snakes))
}

func renderBoard(left, top, width, height int) {
	right := left + width*cellWidth
	bottom := top + height + 1
	for i := top + 1; i < bottom; i++ {
		termbox.SetCell(left-1, i, '│', defaultColor, bgColor)
		termbox.SetCell(right, i, '│', defaultColor, bgColor)
	}

	termbox.SetCell(left-1, top, '┌', defaultColor, bgColor)
	termbox.SetCell(left-1, bottom, '└', defaultColor, bgColor)
	termbox.SetCell(right, top, '┐', defaultColor, bgColor)
	termbox.SetCell(right, bottom, '┘', defaultColor, bgColor)

	fill(left, top, width*cellWidth, 1, termbox.Cell{Ch: '─'})
	fill(left, bottom, width*cellWidth, 1, termbox.Cell{Ch: '─'})
}

func fill(x, y, w, h int, cell termbox.Cell) {
	for ly := 0; ly < h; ly++ {
		for lx := 0; lx < w; lx++ {
			termbox.SetCell(x+lx, y+ly, cell.Ch, cell.Fg, cell.Bg)
		}
	}
}

func tbprint(x, y int, fg, bg termbox.Attribute, msg string) {
	for _, c := range msg {
		termbox.SetCell(x, y, c, fg, bg)
		x += runewidth.RuneWidth(c)
	}
}

// keyboard is an input source reading termbox key events. The arrow keys and
// WASD are two separate players.
type keyboard struct {
	events <-chan termbox.Event
	quit   func()
}

func (k *keyboard) Next(ctx context.Context) (controller.Event, error) {
	for {
		select {
		case ev := <-k.events:
			e, ok, quit := keyEvent(ev)
			if quit {
				k.quit()
				return controller.Event{}, io.EOF
			}
			if ok {
				return e, nil
			}
		case <-ctx.Done():
			return controller.Event{}, ctx.Err()
		}
	}
}

// keyEvent translates a termbox event. quit is set for Esc and Ctrl-C.
func keyEvent(ev termbox.Event) (e controller.Event, ok bool, quit bool) {
	if ev.Type != termbox.EventKey {
		return e, false, false
	}

	switch ev.Key {
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return e, false, true
	case termbox.KeyArrowUp:
		return controller.Event{Source: arrowsSource, Intent: controller.KeyIntent("ArrowUp")}, true, false
	case termbox.KeyArrowDown:
		return controller.Event{Source: arrowsSource, Intent: controller.KeyIntent("ArrowDown")}, true, false
	case termbox.KeyArrowLeft:
		return controller.Event{Source: arrowsSource, Intent: controller.KeyIntent("ArrowLeft")}, true, false
	case termbox.KeyArrowRight:
		return controller.Event{Source: arrowsSource, Intent: controller.KeyIntent("ArrowRight")}, true, false
	}

	if intent := controller.KeyIntent(string(ev.Ch)); intent != controller.IntentNone {
		return controller.Event{Source: wasdSource, Intent: intent}, true, false
	}
	return e, false, false
}

func setupEventQueue() <-chan termbox.Event {
	eventQueue := make(chan termbox.Event)
	go func() {
		for {
			ev := termbox.PollEvent()
			if ev.Type == termbox.EventInterrupt {
				return
			}
			eventQueue <- ev
		}
	}()
	return eventQueue
}
