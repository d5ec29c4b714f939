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

	"github.com/retroenv/retrogolib/log"
)

// Settings holds the configuration parameters for a Chip8 instance and the
// Runner that drives it.
type Settings struct {
	// Instructions executed per frame. The timers tick once per frame, so
	// the effective clock is StepsPerFrame*TimerHz.
	StepsPerFrame int
	// Frame and timer rate in hz. CHIP-8 timers count down at 60hz.
	TimerHz int
	// Seed for RND. Zero seeds from the wall clock.
	Seed int64
	// Trace logs every executed instruction at debug level.
	Trace bool
	// Logger receives all emulator output. A nil logger is replaced by a
	// default one.
	Logger *log.Logger
}

// Validate validates the settings.
// Returns an error when the settings aren't valid.
func (s *Settings) Validate() error {
	if s.StepsPerFrame < 1 || s.StepsPerFrame > 1000 {
		return fmt.Errorf("steps per frame must be in 1..1000, got %v",
			s.StepsPerFrame)
	}
	if s.TimerHz < 1 || s.TimerHz > 1000 {
		return fmt.Errorf("timer rate must be in 1..1000 hz, got %v",
			s.TimerHz)
	}
	return nil
}

// DefaultSettings runs about 600 instructions per second with 60hz timers.
var DefaultSettings = &Settings{
	StepsPerFrame: 10,
	TimerHz:       60,
}

func (s *Settings) logger() *log.Logger {
	if s.Logger == nil {
		s.Logger = log.NewWithConfig(log.DefaultConfig())
	}
	return s.Logger
}
