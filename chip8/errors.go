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
	"errors"
	"fmt"
)

// A LoadErr is returned upon attempting to load a program that exceeds the
// program area, or when a program has already been loaded.
type LoadErr struct {
	ProgramSize int
	Free        int
	Loaded      bool
}

func (e *LoadErr) Error() string {
	if e.Loaded {
		return "a program is already loaded, reset the machine first"
	}
	return fmt.Sprintf("not enough memory (program size: %v, free memory: %v)",
		e.ProgramSize, e.Free)
}

// A FetchErr is returned when the program counter points outside of memory.
type FetchErr struct {
	PC uint16
}

func (e *FetchErr) Error() string {
	return fmt.Sprintf("instruction fetch out of bounds at PC %04X", e.PC)
}

// A StackOverflowErr is returned when CALL is executed with a full stack.
type StackOverflowErr struct {
	PC    uint16
	Depth int
}

func (e *StackOverflowErr) Error() string {
	return fmt.Sprintf("stack overflow at PC %04X (depth %v)", e.PC, e.Depth)
}

// A StackUnderflowErr is returned when RET is executed with an empty stack.
type StackUnderflowErr struct {
	PC uint16
}

func (e *StackUnderflowErr) Error() string {
	return fmt.Sprintf("stack underflow at PC %04X", e.PC)
}

// An AccessErr is returned when an instruction tries to read or write memory
// outside of the address space.
type AccessErr struct {
	Address int
	Size    int
	PC      uint16
}

func (e *AccessErr) Error() string {
	return fmt.Sprintf("memory access out of bounds at PC %04X "+
		"(address: %04X, size: %v)", e.PC, e.Address, e.Size)
}

// IsFatal reports whether err halts the machine. Fatal errors are returned
// by Step and stay in effect until Reset.
func IsFatal(err error) bool {
	var (
		fe *FetchErr
		so *StackOverflowErr
		su *StackUnderflowErr
		ae *AccessErr
	)
	return errors.As(err, &fe) || errors.As(err, &so) ||
		errors.As(err, &su) || errors.As(err, &ae)
}
