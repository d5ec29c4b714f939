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

package chip8

import (
	"github.com/retroenv/retrogolib/log"
)

// opcode is a fetched instruction word. Field names follow the usual CHIP-8
// notation: 0xFXYN, with NNN the low 12 bits and KK the low byte.
type opcode uint16

func (o opcode) family() uint8 { return uint8(o >> 12) }
func (o opcode) x() uint8      { return uint8(o>>8) & 0x0F }
func (o opcode) y() uint8      { return uint8(o>>4) & 0x0F }
func (o opcode) n() uint8      { return uint8(o) & 0x0F }
func (o opcode) kk() uint8     { return uint8(o) }
func (o opcode) nnn() uint16   { return uint16(o) & 0x0FFF }

// A handler executes one instruction and is responsible for moving PC.
type handler func(c *Chip8, op opcode) error

// -----------------------------------------------------------------------------

// handlers by top nibble. Families 0, 8, E and F are resolved through the
// sub-tables below, 5 and 9 additionally require a zero low nibble.
var families = [16]handler{
	0x1: jp,
	0x2: call,
	0x3: seImm,
	0x4: sneImm,
	0x5: seReg,
	0x6: ldImm,
	0x7: addImm,
	0x9: sneReg,
	0xA: ldI,
	0xB: jpV0,
	0xC: rnd,
	0xD: drw,
}

// 00E0 and 00EE, keyed by the whole opcode. The rest of 0NNN (SYS) is
// ignored.
var sysOps = map[opcode]handler{
	0x00E0: cls,
	0x00EE: ret,
}

// 8XYN, keyed by N.
var aluOps = [16]handler{
	0x0: ldReg,
	0x1: or,
	0x2: and,
	0x3: xor,
	0x4: addReg,
	0x5: sub,
	0x6: shr,
	0x7: subn,
	0xE: shl,
}

// EXKK, keyed by KK.
var keyOps = map[uint8]handler{
	0x9E: skp,
	0xA1: sknp,
}

// FXKK, keyed by KK.
var miscOps = map[uint8]handler{
	0x07: ldVxDT,
	0x0A: ldKey,
	0x15: ldDT,
	0x18: ldST,
	0x1E: addI,
	0x29: ldFont,
	0x33: ldBCD,
	0x55: ldStore,
	0x65: ldLoad,
}

// lookup returns the handler for op or nil if op isn't a known instruction.
func lookup(op opcode) handler {
	switch op.family() {
	case 0x0:
		return sysOps[op]
	case 0x5, 0x9:
		if op.n() != 0 {
			return nil
		}
	case 0x8:
		return aluOps[op.n()]
	case 0xE:
		return keyOps[op.kk()]
	case 0xF:
		return miscOps[op.kk()]
	}
	return families[op.family()]
}

// -----------------------------------------------------------------------------

// Step fetches, decodes and executes exactly one instruction.
//
// Unknown opcodes are skipped. A *FetchErr, *StackOverflowErr,
// *StackUnderflowErr or *AccessErr halts the machine: the state is left as
// it was before the faulting instruction and every further call returns the
// same error until Reset.
func (c *Chip8) Step() error {
	if c.fault != nil {
		return c.fault
	}

	op, err := c.fetch()
	if err != nil {
		return c.halt(err)
	}

	if c.settings.Trace {
		c.logger.Debug("Step",
			log.Hex("pc", c.PC),
			log.String("instruction", Decode(uint16(op), c.PC).String()))
	}

	h := lookup(op)
	if h == nil {
		c.logger.Debug("Ignoring unknown opcode",
			log.Hex("address", c.PC),
			log.Hex("opcode", uint16(op)))
		c.PC += instructionSize
		return nil
	}

	if err := h(c, op); err != nil {
		return c.halt(err)
	}
	return nil
}

// fetch reads the big-endian instruction word at PC.
func (c *Chip8) fetch() (opcode, error) {
	if int(c.PC)+1 >= MemorySize {
		return 0, &FetchErr{PC: c.PC}
	}
	return opcode(c.Memory[c.PC])<<8 | opcode(c.Memory[c.PC+1]), nil
}

func (c *Chip8) halt(err error) error {
	c.fault = err
	c.logger.Debug("Machine halted", log.Err(err), log.String("state",
		c.String()))
	return err
}

// next advances PC past the current instruction.
func (c *Chip8) next() { c.PC += instructionSize }

// skipIf advances PC past the current instruction and, if cond holds, past
// the following one too.
func (c *Chip8) skipIf(cond bool) {
	c.PC += instructionSize
	if cond {
		c.PC += instructionSize
	}
}

// span checks that size bytes starting at I are inside memory and returns
// the start address.
func (c *Chip8) span(size int) (int, error) {
	addr := int(c.I)
	if addr+size > MemorySize {
		return 0, &AccessErr{Address: addr, Size: size, PC: c.PC}
	}
	return addr, nil
}
