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

// CLS
func cls(c *Chip8, _ opcode) error {
	c.Screen.Clear()
	c.dirty = true
	c.next()
	return nil
}

// RET
func ret(c *Chip8, _ opcode) error {
	if c.SP == 0 {
		return &StackUnderflowErr{PC: c.PC}
	}
	// pop return address
	c.SP--
	c.PC = c.Stack[c.SP]
	return nil
}

// JP NNN
func jp(c *Chip8, op opcode) error {
	c.PC = op.nnn()
	return nil
}

// CALL NNN
func call(c *Chip8, op opcode) error {
	if c.SP >= len(c.Stack) {
		return &StackOverflowErr{PC: c.PC, Depth: c.SP}
	}
	// push return address
	c.Stack[c.SP] = c.PC + instructionSize
	c.SP++
	c.PC = op.nnn()
	return nil
}

// SE VX,KK
func seImm(c *Chip8, op opcode) error {
	c.skipIf(c.V[op.x()] == op.kk())
	return nil
}

// SNE VX,KK
func sneImm(c *Chip8, op opcode) error {
	c.skipIf(c.V[op.x()] != op.kk())
	return nil
}

// SE VX,VY
func seReg(c *Chip8, op opcode) error {
	c.skipIf(c.V[op.x()] == c.V[op.y()])
	return nil
}

// SNE VX,VY
func sneReg(c *Chip8, op opcode) error {
	c.skipIf(c.V[op.x()] != c.V[op.y()])
	return nil
}

// LD VX,KK
func ldImm(c *Chip8, op opcode) error {
	c.V[op.x()] = op.kk()
	c.next()
	return nil
}

// ADD VX,KK (no carry)
func addImm(c *Chip8, op opcode) error {
	c.V[op.x()] += op.kk()
	c.next()
	return nil
}

// -----------------------------------------------------------------------------

// LD VX,VY
func ldReg(c *Chip8, op opcode) error {
	c.V[op.x()] = c.V[op.y()]
	c.next()
	return nil
}

// OR VX,VY
func or(c *Chip8, op opcode) error {
	c.V[op.x()] |= c.V[op.y()]
	c.next()
	return nil
}

// AND VX,VY
func and(c *Chip8, op opcode) error {
	c.V[op.x()] &= c.V[op.y()]
	c.next()
	return nil
}

// XOR VX,VY
func xor(c *Chip8, op opcode) error {
	c.V[op.x()] ^= c.V[op.y()]
	c.next()
	return nil
}

// The flag is written after the result in all of the following, so VF ends
// up holding the flag when X is F.

// ADD VX,VY
func addReg(c *Chip8, op opcode) error {
	result := uint16(c.V[op.x()]) + uint16(c.V[op.y()])

	// only store the 8 least significant bits
	c.V[op.x()] = uint8(result)
	c.V[0xF] = flag(result > 0xFF)
	c.next()
	return nil
}

// SUB VX,VY
func sub(c *Chip8, op opcode) error {
	vx, vy := c.V[op.x()], c.V[op.y()]
	c.V[op.x()] = vx - vy
	c.V[0xF] = flag(vx > vy)
	c.next()
	return nil
}

// SHR VX
func shr(c *Chip8, op opcode) error {
	vx := c.V[op.x()]
	c.V[op.x()] = vx >> 1
	c.V[0xF] = vx & 0x01 // least significant bit
	c.next()
	return nil
}

// SUBN VX,VY
func subn(c *Chip8, op opcode) error {
	vx, vy := c.V[op.x()], c.V[op.y()]
	c.V[op.x()] = vy - vx
	c.V[0xF] = flag(vy > vx)
	c.next()
	return nil
}

// SHL VX
func shl(c *Chip8, op opcode) error {
	vx := c.V[op.x()]
	c.V[op.x()] = vx << 1
	c.V[0xF] = vx >> 7 // most significant bit
	c.next()
	return nil
}

// -----------------------------------------------------------------------------

// LD I,NNN
func ldI(c *Chip8, op opcode) error {
	c.I = op.nnn()
	c.next()
	return nil
}

// JP V0,NNN
func jpV0(c *Chip8, op opcode) error {
	c.PC = op.nnn() + uint16(c.V[0])
	return nil
}

// RND VX,KK (VX = rand() & KK)
func rnd(c *Chip8, op opcode) error {
	c.V[op.x()] = uint8(c.rng.Intn(0x100)) & op.kk()
	c.next()
	return nil
}

// DRW VX,VY,N
func drw(c *Chip8, op opcode) error {
	rows := int(op.n())
	if rows == 0 {
		// nothing is read, so I isn't checked
		c.V[0xF] = 0
		c.next()
		return nil
	}
	addr, err := c.span(rows)
	if err != nil {
		return err
	}

	// coordinates are latched before VF is overwritten
	x, y := c.V[op.x()], c.V[op.y()]
	collision := c.Screen.draw(x, y, c.Memory[addr:addr+rows])
	c.V[0xF] = flag(collision)
	c.dirty = true
	c.next()
	return nil
}

// SKP VX
func skp(c *Chip8, op opcode) error {
	c.skipIf(c.KeyDown(c.V[op.x()]))
	return nil
}

// SKNP VX
func sknp(c *Chip8, op opcode) error {
	c.skipIf(!c.KeyDown(c.V[op.x()]))
	return nil
}

// -----------------------------------------------------------------------------

// LD VX,DT
func ldVxDT(c *Chip8, op opcode) error {
	c.V[op.x()] = c.DT
	c.next()
	return nil
}

// LD VX,K
// PC stays on this instruction until a key is held, so the driver keeps
// re-executing it.
func ldKey(c *Chip8, op opcode) error {
	for key := uint8(0); key < 16; key++ {
		if c.KeyDown(key) {
			c.V[op.x()] = key
			c.waiting = false
			c.next()
			return nil
		}
	}
	c.waiting = true
	return nil
}

// LD DT,VX
func ldDT(c *Chip8, op opcode) error {
	c.DT = c.V[op.x()]
	c.next()
	return nil
}

// LD ST,VX
func ldST(c *Chip8, op opcode) error {
	c.ST = c.V[op.x()]
	c.next()
	return nil
}

// ADD I,VX
// I wraps at 16 bits, accesses through it are checked.
func addI(c *Chip8, op opcode) error {
	c.I += uint16(c.V[op.x()])
	c.next()
	return nil
}

// LD F,VX
func ldFont(c *Chip8, op opcode) error {
	c.I = fontStart + uint16(c.V[op.x()]&0x0F)*glyphSize
	c.next()
	return nil
}

// LD B,VX
func ldBCD(c *Chip8, op opcode) error {
	addr, err := c.span(3)
	if err != nil {
		return err
	}

	value := c.V[op.x()]
	c.Memory[addr+2] = value % 10 // ones
	value /= 10
	c.Memory[addr+1] = value % 10 // tens
	c.Memory[addr] = value / 10   // hundreds
	c.next()
	return nil
}

// LD [I],VX
func ldStore(c *Chip8, op opcode) error {
	count := int(op.x()) + 1
	addr, err := c.span(count)
	if err != nil {
		return err
	}

	copy(c.Memory[addr:addr+count], c.V[:count])
	c.next()
	return nil
}

// LD VX,[I]
func ldLoad(c *Chip8, op opcode) error {
	count := int(op.x()) + 1
	addr, err := c.span(count)
	if err != nil {
		return err
	}

	copy(c.V[:count], c.Memory[addr:addr+count])
	c.next()
	return nil
}

func flag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
