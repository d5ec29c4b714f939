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
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// ErrQuit is returned by Frame when the driver asked to quit.
var ErrQuit = errors.New("quit requested by driver")

// A Runner drives a Chip8 in real time through a Driver. Every frame it
// polls input, executes StepsPerFrame instructions, ticks the timers once
// and hands the screen to the driver if it changed.
type Runner struct {
	c        *Chip8
	drv      Driver
	name     string
	settings Settings
	logger   *log.Logger
	frames   uint64
}

// NewRunner creates a Runner for c using the driver registered as
// driverName. If settings is nil, the settings of c are used.
func NewRunner(c *Chip8, driverName string, s *Settings) (*Runner, error) {
	drv, err := GetDriver(driverName)
	if err != nil {
		return nil, err
	}

	if s == nil {
		s = &c.settings
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	r := &Runner{
		c:        c,
		drv:      drv,
		name:     driverName,
		settings: *s,
	}
	r.logger = r.settings.logger()
	return r, nil
}

// Frames returns the number of frames executed so far.
func (r *Runner) Frames() uint64 { return r.frames }

// Frame executes a single frame without waiting.
// Returns ErrQuit if the driver asked to quit, or the fatal error that
// stopped the machine.
func (r *Runner) Frame() error {
	keys, quit := r.drv.Poll()
	if quit {
		return ErrQuit
	}
	r.c.SetKeys(keys)

	for i := 0; i < r.settings.StepsPerFrame; i++ {
		if err := r.c.Step(); err != nil {
			return fmt.Errorf("executing instruction at %04X: %w", r.c.PC, err)
		}
		if r.c.Waiting() {
			// no point spinning on LD VX,K until the next poll
			break
		}
	}

	r.c.TickTimers()
	if r.c.ST > 0 {
		r.drv.Beep()
	}

	if r.c.consumeRedraw() {
		r.drv.Draw(&r.c.Screen)
	}

	r.frames++
	return nil
}

// Run runs the emulator at TimerHz frames per second, blocking the thread
// until the driver quits, the context is cancelled or the machine halts.
// A quit request is not an error.
func (r *Runner) Run(ctx context.Context) (err error) {
	if err := r.drv.Init(r.c); err != nil {
		return fmt.Errorf("initializing driver %s: %w", r.name, err)
	}
	r.logger.Debug("Driver initialized", log.String("driver", r.name))

	defer func() {
		if cerr := r.drv.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing driver %s: %w", r.name, cerr)
		}
		r.logger.Debug("Runner stopped", log.Int("frames", int(r.frames)))
	}()

	ticker := time.NewTicker(time.Second / time.Duration(r.settings.TimerHz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if err := r.Frame(); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}
