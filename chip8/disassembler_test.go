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
	"strings"
	"testing"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		word uint16
		name string
		args string
	}{
		{0x00E0, chip8cpu.ClsInst.Name, ""},
		{0x00EE, chip8cpu.RetInst.Name, ""},
		{0x1234, chip8cpu.JpInst.Name, "$234"},
		{0x2ABC, chip8cpu.CallInst.Name, "$ABC"},
		{0x3A05, chip8cpu.SeInst.Name, "VA, $05"},
		{0x9120, chip8cpu.SneInst.Name, "V1, V2"},
		{0x6005, chip8cpu.LdInst.Name, "V0, $05"},
		{0x7003, chip8cpu.AddInst.Name, "V0, $03"},
		{0xA300, chip8cpu.LdInst.Name, "I, $300"},
		{0xD125, chip8cpu.DrwInst.Name, "V1, V2, $5"},
		{0xF355, chip8cpu.LdInst.Name, "[I], V3"},
		{0xF365, chip8cpu.LdInst.Name, "V3, [I]"},
		{0xF00A, chip8cpu.LdInst.Name, "V0, K"},
		{0xF11E, chip8cpu.AddInst.Name, "I, V1"},
	}

	for _, tt := range tests {
		in := Decode(tt.word, 0x200)
		assert.Equal(t, strings.ToUpper(tt.name), in.Name)
		assert.Equal(t, tt.args, in.Args)
		assert.True(t, in.Known())
		assert.Equal(t, 2, in.Size())
		assert.Equal(t, uint16(0x200), in.Address)
		assert.Equal(t, tt.word, in.Opcode)
	}
}

func TestDecode_Raw(t *testing.T) {
	for _, word := range []uint16{0x0123, 0x5121, 0x8008, 0xE000, 0xF0FF} {
		in := Decode(word, 0x300)
		assert.False(t, in.Known())
		assert.Equal(t, "DB", in.Name)
		assert.Equal(t, 2, in.Size())
	}

	in := Decode(0x5121, 0x300)
	assert.Equal(t, "DB $51, $21", in.String())
}

func TestDisassembleSimple(t *testing.T) {
	program := append(words(0x6005, 0x7003, 0x1200), 'A')

	res, err := DisassembleSimple(program, ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, 4, len(res))

	ld := strings.ToUpper(chip8cpu.LdInst.Name)
	assert.Equal(t, ld+" V0, $05", res[0].String())
	assert.Equal(t, uint16(0x202), res[1].Address)
	assert.Equal(t, strings.ToUpper(chip8cpu.JpInst.Name)+" $200", res[2].String())

	last := res[3]
	assert.Equal(t, uint16(0x206), last.Address)
	assert.Equal(t, 1, last.Size())
	assert.Equal(t, "DB $41", last.String())
	assert.Equal(t, "A", last.ASCII())
}

func TestDisassembleSimple_TooLarge(t *testing.T) {
	_, err := DisassembleSimple(make([]byte, MaxProgramSize+1), ProgramStart)
	assert.Error(t, err)

	res, err := DisassembleSimple(nil, ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(res))
}

func TestInstruction_ASCII(t *testing.T) {
	assert.Equal(t, "Hi", Decode(0x4869, 0).ASCII())
	assert.Equal(t, "", Decode(0x00E0, 0).ASCII())
	assert.Equal(t, "", Instruction{}.ASCII())
}

// Every opcode the engine executes must have a mnemonic.
func TestDecode_CoversEngine(t *testing.T) {
	for word := 0; word <= 0xFFFF; word++ {
		if lookup(opcode(word)) == nil {
			continue
		}
		assert.True(t, Decode(uint16(word), 0).Known(),
			"missing mnemonic for opcode")
	}
}
