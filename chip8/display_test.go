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

	"github.com/retroenv/retrogolib/assert"
)

func TestDraw_Font(t *testing.T) {
	// draw the glyph for 0 at 0,0
	c := newTestChip8(t, 0x6000, 0xF029, 0xD005)
	steps(t, c, 3)

	assert.Equal(t, uint8(0), c.V[0xF])
	assert.Equal(t, 14, c.Screen.Lit())
	for x := 0; x < 4; x++ {
		assert.True(t, c.Screen[0][x])
		assert.True(t, c.Screen[4][x])
	}
	assert.False(t, c.Screen[1][1])
	assert.True(t, c.Screen[1][3])
}

func TestDraw_HorizontalWrap(t *testing.T) {
	c := newTestChip8(t, 0xA300, 0x613C, 0x6200, 0xD121)
	c.Memory[0x300] = 0xFF
	steps(t, c, 4)

	for x := 60; x < Width; x++ {
		assert.True(t, c.Screen[0][x])
	}
	for x := 0; x < 4; x++ {
		assert.True(t, c.Screen[0][x])
	}
	assert.Equal(t, 8, c.Screen.Lit())
	assert.Equal(t, uint8(0), c.V[0xF])
}

func TestDraw_VerticalWrap(t *testing.T) {
	c := newTestChip8(t, 0xA300, 0x6100, 0x621F, 0xD122)
	c.Memory[0x300] = 0x80
	c.Memory[0x301] = 0x80
	steps(t, c, 4)

	assert.True(t, c.Screen[31][0])
	assert.True(t, c.Screen[0][0])
	assert.Equal(t, 2, c.Screen.Lit())
}

func TestDraw_CoordinatesWrapModulo(t *testing.T) {
	// X=0x41 and Y=0x21 start drawing at 1,1
	c := newTestChip8(t, 0xA300, 0x6141, 0x6221, 0xD121)
	c.Memory[0x300] = 0x80
	steps(t, c, 4)

	assert.True(t, c.Screen[1][1])
	assert.Equal(t, 1, c.Screen.Lit())
}

func TestDraw_Collision(t *testing.T) {
	c := newTestChip8(t, 0xA300, 0xD125, 0xD125)
	copy(c.Memory[0x300:], []byte{0xF0, 0x90, 0x90, 0x90, 0xF0})

	steps(t, c, 2)
	assert.Equal(t, uint8(0), c.V[0xF])
	assert.Equal(t, 14, c.Screen.Lit())

	steps(t, c, 1)
	assert.Equal(t, uint8(1), c.V[0xF])
	assert.Equal(t, 0, c.Screen.Lit())
}

func TestDraw_CollisionAcrossRows(t *testing.T) {
	// the first row collides, the second doesn't, the flag stays set
	c := newTestChip8(t, 0xA300, 0xD121, 0xA302, 0xD122)
	copy(c.Memory[0x300:], []byte{0x80, 0x00, 0x80, 0x40})

	steps(t, c, 4)
	assert.Equal(t, uint8(1), c.V[0xF])
	assert.False(t, c.Screen[0][0])
	assert.True(t, c.Screen[1][1])
}

func TestDraw_FlagRegisterAsCoordinate(t *testing.T) {
	c := newTestChip8(t, 0xA300, 0x6F05, 0xDFF1)
	c.Memory[0x300] = 0x80

	steps(t, c, 3)
	assert.True(t, c.Screen[5][5])
	assert.Equal(t, uint8(0), c.V[0xF])
}

func TestDraw_ZeroRows(t *testing.T) {
	c := newTestChip8(t, 0x6F01, 0xD120)
	steps(t, c, 2)

	assert.Equal(t, 0, c.Screen.Lit())
	assert.Equal(t, uint8(0), c.V[0xF])
	assert.Equal(t, uint16(0x204), c.PC)
}

func TestDraw_ZeroRowsIgnoresI(t *testing.T) {
	c := newTestChip8(t, 0x6F01, 0xD120)
	c.I = 0xFFFF
	steps(t, c, 2)

	assert.NoError(t, c.Fault())
	assert.Equal(t, uint8(0), c.V[0xF])
	assert.Equal(t, uint16(0x204), c.PC)
}

func TestClear(t *testing.T) {
	c := newTestChip8(t, 0xF029, 0xD005, 0x00E0)
	steps(t, c, 2)
	assert.True(t, c.Screen.Lit() > 0)
	assert.True(t, c.consumeRedraw())
	assert.False(t, c.consumeRedraw())

	steps(t, c, 1)
	assert.Equal(t, 0, c.Screen.Lit())
	assert.True(t, c.consumeRedraw())
	assert.Equal(t, uint16(0x206), c.PC)
}

func TestScreen_Pixel(t *testing.T) {
	var s Screen
	s[0][0] = true
	s[31][63] = true

	assert.True(t, s.Pixel(0, 0))
	assert.True(t, s.Pixel(64, 32))
	assert.True(t, s.Pixel(-1, -1))
	assert.True(t, s.Pixel(127, 63))
	assert.False(t, s.Pixel(1, 0))
}

func TestScreen_String(t *testing.T) {
	var s Screen
	s[0][0] = true
	s[1][63] = true

	rows := strings.Split(strings.TrimSuffix(s.String(), "\n"), "\n")
	assert.Equal(t, Height, len(rows))
	assert.Equal(t, "#"+strings.Repeat(".", Width-1), rows[0])
	assert.Equal(t, strings.Repeat(".", Width-1)+"#", rows[1])
	assert.Equal(t, strings.Repeat(".", Width), rows[2])

	s.Clear()
	assert.Equal(t, 0, s.Lit())
}
