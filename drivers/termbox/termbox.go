/*
	Copyright 2015 Franc[e]sco (lolisamurai@tfwno.gf)
	This file is part of go-hachi.
	go-hachi is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.
	go-hachi is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.
	You should have received a copy of the GNU General Public License
	along with go-hachi. If not, see <http://www.gnu.org/licenses/>.
*/

// Package termbox implements a terminal driver on top of termbox-go.
//
// The screen is drawn with half block characters, two CHIP-8 rows per
// terminal row, followed by a status line. The hex keypad is mapped onto the
// left side of a QWERTY keyboard:
//
//	1 2 3 4        1 2 3 C
//	q w e r   ->   4 5 6 D
//	a s d f        7 8 9 E
//	z x c v        A 0 B F
//
// Esc or Ctrl-C quits.
package termbox

import (
	"fmt"
	"os"
	"sync"
	"time"
	"unicode"

	"github.com/ashwingur/chip8-emulator/chip8"
	tb "github.com/nsf/termbox-go"
)

// DefaultKeyMap maps typed characters to logical keys.
var DefaultKeyMap = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// since termbox only reports key down events, keys are released
// automatically after this long without a repeat
const holdTime = 100 * time.Millisecond

const beepInterval = time.Second

// A Driver is a terminal-based chip8.Driver.
type Driver struct {
	KeyMap map[rune]uint8

	c      *chip8.Chip8
	events chan tb.Event
	done   chan struct{}
	wg     sync.WaitGroup

	held     [16]time.Time
	quit     bool
	err      error
	lastBeep time.Time
	now      func() time.Time
}

// New returns a driver using DefaultKeyMap.
func New() *Driver {
	return &Driver{
		KeyMap: DefaultKeyMap,
		now:    time.Now,
	}
}

// Init switches the terminal into termbox mode and starts reading input.
func (d *Driver) Init(c *chip8.Chip8) error {
	if err := tb.Init(); err != nil {
		return fmt.Errorf("initializing termbox: %w", err)
	}
	tb.SetInputMode(tb.InputEsc)
	if err := tb.Clear(tb.ColorDefault, tb.ColorDefault); err != nil {
		tb.Close()
		return fmt.Errorf("clearing terminal: %w", err)
	}

	d.c = c
	d.quit = false
	d.err = nil
	d.held = [16]time.Time{}
	d.events = make(chan tb.Event, 64)
	d.done = make(chan struct{})

	d.wg.Add(1)
	go d.pollEvents()
	return nil
}

// pollEvents forwards termbox events until Close interrupts it.
func (d *Driver) pollEvents() {
	defer d.wg.Done()
	for {
		ev := tb.PollEvent()
		if ev.Type == tb.EventInterrupt {
			return
		}
		select {
		case d.events <- ev:
		case <-d.done:
			return
		}
	}
}

// Poll drains pending input and returns the keys held right now.
func (d *Driver) Poll() (uint16, bool) {
	for {
		select {
		case ev := <-d.events:
			d.handle(ev)
		default:
			return d.keys(), d.quit
		}
	}
}

func (d *Driver) handle(ev tb.Event) {
	switch ev.Type {
	case tb.EventKey:
		if ev.Key == tb.KeyEsc || ev.Key == tb.KeyCtrlC {
			d.quit = true
			return
		}
		if key, ok := d.KeyMap[unicode.ToLower(ev.Ch)]; ok {
			d.held[key] = d.now()
		}
	case tb.EventError:
		d.fail(fmt.Errorf("reading terminal input: %w", ev.Err))
	}
}

// fail records the first terminal error and asks the runner to quit.
func (d *Driver) fail(err error) {
	if d.err == nil {
		d.err = err
	}
	d.quit = true
}

// keys builds the Keyboard bitfield from the keys seen within holdTime.
func (d *Driver) keys() (keys uint16) {
	now := d.now()
	for key, t := range d.held {
		if !t.IsZero() && now.Sub(t) < holdTime {
			keys |= chip8.KeyFlags[key]
		}
	}
	return
}

// Draw renders the screen and the status line.
func (d *Driver) Draw(s *chip8.Screen) {
	for y := 0; y < chip8.Height; y += 2 {
		for x := 0; x < chip8.Width; x++ {
			tb.SetCell(x, y/2, cell(s[y][x], s[y+1][x]),
				tb.ColorWhite, tb.ColorDefault)
		}
	}

	if d.c != nil {
		status := fmt.Sprintf("PC %04X  I %04X  DT %02X  ST %02X  [esc] quit",
			d.c.PC, d.c.I, d.c.DT, d.c.ST)
		for i, ch := range status {
			tb.SetCell(i, chip8.Height/2, ch, tb.ColorDefault, tb.ColorDefault)
		}
	}
	if err := tb.Flush(); err != nil {
		d.fail(fmt.Errorf("flushing terminal: %w", err))
	}
}

// cell returns the half block character for two vertically stacked pixels.
func cell(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	}
	return ' '
}

// Beep rings the terminal bell, at most once per second.
func (d *Driver) Beep() {
	now := d.now()
	if now.Sub(d.lastBeep) < beepInterval {
		return
	}
	d.lastBeep = now
	_, _ = os.Stdout.WriteString("\a")
}

// Close stops the input reader and restores the terminal. Returns the
// terminal error that stopped the driver, if any.
func (d *Driver) Close() error {
	close(d.done)
	tb.Interrupt()
	d.wg.Wait()
	tb.Close()
	return d.err
}

// -----------------------------------------------------------------------------

func init() {
	if err := chip8.RegisterDriver("termbox", New()); err != nil {
		panic(err)
	}
}
