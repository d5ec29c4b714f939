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

import "strings"

// Screen is the monochrome display, indexed as Screen[y][x].
type Screen [Height][Width]bool

// Pixel returns the cell at x, y. Coordinates wrap around the screen edges.
func (s *Screen) Pixel(x, y int) bool {
	return s[mod(y, Height)][mod(x, Width)]
}

// Clear turns every cell off.
func (s *Screen) Clear() {
	*s = Screen{}
}

// Lit returns the number of cells that are on.
func (s *Screen) Lit() (n int) {
	for y := range s {
		for x := range s[y] {
			if s[y][x] {
				n++
			}
		}
	}
	return
}

// String renders the screen as rows of '#' and '.'.
func (s *Screen) String() string {
	var b strings.Builder
	b.Grow(Height * (Width + 1))
	for y := range s {
		for x := range s[y] {
			if s[y][x] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// draw XORs sprite onto the screen with its top left corner at x, y.
// Each sprite byte is one row of 8 pixels, most significant bit first. Rows
// and columns wrap independently, so a sprite crossing an edge continues on
// the opposite side. Returns true if any lit cell was turned off.
func (s *Screen) draw(x, y uint8, sprite []byte) (collision bool) {
	for row, bits := range sprite {
		py := (int(y) + row) % Height
		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := (int(x) + col) % Width
			if s[py][px] {
				collision = true
			}
			s[py][px] = !s[py][px]
		}
	}
	return
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
