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

// Package chip8 implements a CHIP-8 virtual machine: the machine state, the
// instruction engine, a frame runner for platform drivers and a disassembler.
package chip8

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// Memory layout and machine dimensions.
const (
	MemorySize     = 0x1000
	ProgramStart   = 0x200
	MaxProgramSize = MemorySize - ProgramStart
	StackSize      = 16
	Width          = 64
	Height         = 32

	// fonts are stored starting at 0x0000
	fontStart = 0x000
	glyphSize = 5

	instructionSize = 2
)

// -----------------------------------------------------------------------------

// Key flags for the Keyboard bitfield.
const (
	Key0 = 1 << iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
)

// KeyFlags maps key numbers to their flag in the Keyboard bitfield.
var KeyFlags = [16]uint16{Key0, Key1, Key2, Key3, Key4, Key5, Key6, Key7,
	Key8, Key9, KeyA, KeyB, KeyC, KeyD, KeyE, KeyF}

var font = [16 * glyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// -----------------------------------------------------------------------------

// Chip8 holds the state of the virtual machine. Step is the only mutator of
// the exported fields besides the timer and keyboard setters, and none of it
// is safe for concurrent use.
type Chip8 struct {
	// The memory where programs are loaded and executed.
	// Programs start at 0x200 because the original interpreter occupied
	// the first 512 bytes. The font lives at the bottom of that area.
	Memory [MemorySize]byte
	// V[0x0]~V[0xF] are 8-bit registers. V[0xF] doubles as the carry,
	// borrow and collision flag.
	V [16]uint8
	// 16-bit address register. Used for memory operations.
	// It wraps at 0xFFFF and is only checked against the memory size when
	// an instruction accesses memory through it.
	I uint16
	// The call stack, which holds return addresses.
	Stack [StackSize]uint16
	// The stack pointer. Number of return addresses on the stack.
	SP int
	// Program counter. Holds the address of the next instruction.
	PC uint16
	// Timers. The driver counts them down at 60hz while they are non-zero.
	// DT/DelayTimer is intended to be used for timing events in games, while
	// ST/SoundTimer makes a beeping sound as long as its value is non-zero.
	DT uint8
	ST uint8
	// Keyboard is a hex keyboard with 16 keys.
	// This is a bitfield, see the constants for the flags.
	Keyboard uint16
	// Screen buffer. Monochrome, 64x32.
	Screen Screen

	settings Settings
	logger   *log.Logger
	rng      *rand.Rand

	loaded  bool
	waiting bool
	dirty   bool
	fault   error
}

// New initializes a new instance of Chip8 with the given settings. If
// settings is nil, DefaultSettings will be used.
func New(s *Settings) (*Chip8, error) {
	if s == nil {
		s = DefaultSettings
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	c := &Chip8{settings: *s}
	c.logger = c.settings.logger()

	seed := c.settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	c.rng = rand.New(rand.NewSource(seed))

	c.Reset()
	return c, nil
}

// Reset puts the machine back into its power-on state: memory, registers,
// stack, timers and screen are zeroed, the font is loaded and PC points at
// the program start. A loaded program is discarded.
func (c *Chip8) Reset() {
	c.Memory = [MemorySize]byte{}
	copy(c.Memory[fontStart:], font[:])

	c.V = [16]uint8{}
	c.I = 0
	c.Stack = [StackSize]uint16{}
	c.SP = 0
	c.PC = ProgramStart
	c.DT, c.ST = 0, 0
	c.Keyboard = 0
	c.Screen.Clear()

	c.loaded = false
	c.waiting = false
	c.dirty = true
	c.fault = nil
}

// LoadProgram copies a CHIP-8 binary into memory at ProgramStart.
// It must be called once before the first Step; loading again requires a
// Reset.
func (c *Chip8) LoadProgram(program []byte) error {
	if c.loaded {
		return &LoadErr{ProgramSize: len(program), Free: MaxProgramSize,
			Loaded: true}
	}
	if len(program) > MaxProgramSize {
		return &LoadErr{ProgramSize: len(program), Free: MaxProgramSize}
	}

	copy(c.Memory[ProgramStart:], program)
	c.loaded = true
	c.logger.Debug("Loaded program", log.Int("size", len(program)))
	return nil
}

// SetKeys replaces the input latch with a Keyboard bitfield.
func (c *Chip8) SetKeys(keys uint16) { c.Keyboard = keys }

// KeyDown reports whether the key numbered key is currently held.
func (c *Chip8) KeyDown(key uint8) bool {
	return c.Keyboard&KeyFlags[key&0x0F] != 0
}

// TickTimers decrements both timers by one, stopping at zero. The driver
// calls it at 60hz, independently of the number of executed instructions.
func (c *Chip8) TickTimers() {
	if c.DT > 0 {
		c.DT--
	}
	if c.ST > 0 {
		c.ST--
	}
}

// Waiting reports whether the machine is suspended on LD VX,K.
func (c *Chip8) Waiting() bool { return c.waiting }

// Fault returns the fatal error that halted the machine, if any.
func (c *Chip8) Fault() error { return c.fault }

// String returns formatted information about the state of the machine.
func (c *Chip8) String() string {
	return fmt.Sprintf("Chip8{Registers: [% 02X] I: %04X, "+
		"Stack: %04X, SP: %v, PC: %04X, DT: %02X, ST: %02X, "+
		"Keyboard: %016b}",
		c.V, c.I, c.Stack[:c.SP], c.SP, c.PC, c.DT, c.ST, c.Keyboard)
}

// DumpMemory writes a hex dump of memory in the range [from, to) to w,
// 16 bytes per line.
func (c *Chip8) DumpMemory(w io.Writer, from, to uint16) error {
	if int(to) > MemorySize || from > to {
		return &AccessErr{Address: int(from), Size: int(to) - int(from),
			PC: c.PC}
	}

	for line := from; line < to; line += 16 {
		end := line + 16
		if end > to {
			end = to
		}
		if _, err := fmt.Fprintf(w, "%04X: % 02X\n", line,
			c.Memory[line:end]); err != nil {
			return err
		}
	}
	return nil
}

// consumeRedraw reports whether the screen changed since the last call.
func (c *Chip8) consumeRedraw() bool {
	dirty := c.dirty
	c.dirty = false
	return dirty
}
