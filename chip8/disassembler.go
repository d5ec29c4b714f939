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
	"fmt"
	"strings"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// rawName is the pseudo instruction used for words that don't decode.
const rawName = "DB"

// An Instruction is a disassembled CHIP-8 instruction, or 1 or 2 bytes of
// raw data.
type Instruction struct {
	Address uint16
	Opcode  uint16
	Data    []byte
	// Upper case mnemonic, DB for raw data.
	Name string
	// Formatted operands, empty if the instruction has none.
	Args string
}

// String returns a pseudo-asm representation of the instruction.
func (i Instruction) String() string {
	if i.Args == "" {
		return i.Name
	}
	return i.Name + " " + i.Args
}

// Size returns the size of the instruction in bytes.
func (i Instruction) Size() int { return len(i.Data) }

// Known reports whether the instruction is executed by the engine, as
// opposed to raw data or an ignored opcode.
func (i Instruction) Known() bool { return i.Name != rawName }

// ASCII returns the ASCII representation of the raw data for this
// instruction. Returns an empty string if the data is not printable ascii.
func (i Instruction) ASCII() (res string) {
	if isPrintableASCII(i.Data) {
		res = string(i.Data)
	}
	return
}

// -----------------------------------------------------------------------------

// Decode disassembles a single instruction word located at address.
func Decode(word, address uint16) Instruction {
	in := Instruction{
		Address: address,
		Opcode:  word,
		Data:    []byte{byte(word >> 8), byte(word)},
	}

	name := mnemonic(word)
	if name == "" || lookup(opcode(word)) == nil {
		return raw(in)
	}

	in.Name = name
	in.Args = operands(opcode(word))
	return in
}

// DisassembleSimple performs a linear sweep disassembly of b, which is
// expected to be loaded at base.
// It's fast but it cannot handle odd-aligned opcodes or recognize raw data
// memory regions, which come out as whatever they happen to decode to. A
// trailing odd byte is returned as 1 byte of raw data.
func DisassembleSimple(b []byte, base uint16) ([]Instruction, error) {
	if int(base)+len(b) > MemorySize {
		return nil, fmt.Errorf("program of %v bytes at %04X exceeds memory",
			len(b), base)
	}

	res := make([]Instruction, 0, (len(b)+1)/2)
	for i := 0; i < len(b); i += instructionSize {
		address := base + uint16(i)
		if i+1 == len(b) {
			res = append(res, raw(Instruction{
				Address: address,
				Opcode:  uint16(b[i]),
				Data:    []byte{b[i]},
			}))
			break
		}

		word := uint16(b[i])<<8 | uint16(b[i+1])
		res = append(res, Decode(word, address))
	}
	return res, nil
}

func raw(in Instruction) Instruction {
	args := make([]string, len(in.Data))
	for i, b := range in.Data {
		args[i] = fmt.Sprintf("$%02X", b)
	}
	in.Name = rawName
	in.Args = strings.Join(args, ", ")
	return in
}

// mnemonic looks the word up in the CHIP-8 opcode table of retrogolib.
func mnemonic(word uint16) string {
	for _, op := range chip8cpu.Opcodes[int(word>>12)] {
		if op.Instruction == nil {
			continue
		}
		if op.Info.Mask&word == op.Info.Value {
			return strings.ToUpper(op.Instruction.Name)
		}
	}
	return ""
}

// operands formats the operands of a known instruction.
func operands(op opcode) string {
	x, y := op.x(), op.y()

	switch op.family() {
	case 0x0:
		return ""
	case 0x1, 0x2:
		return fmt.Sprintf("$%03X", op.nnn())
	case 0x3, 0x4, 0x6, 0x7, 0xC:
		return fmt.Sprintf("V%X, $%02X", x, op.kk())
	case 0x5, 0x9:
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0x8:
		if n := op.n(); n == 0x6 || n == 0xE {
			return fmt.Sprintf("V%X", x)
		}
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0xA:
		return fmt.Sprintf("I, $%03X", op.nnn())
	case 0xB:
		return fmt.Sprintf("V0, $%03X", op.nnn())
	case 0xD:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, op.n())
	case 0xE:
		return fmt.Sprintf("V%X", x)
	}

	switch op.kk() {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x1E:
		return fmt.Sprintf("I, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	default: // 0x65
		return fmt.Sprintf("V%X, [I]", x)
	}
}
