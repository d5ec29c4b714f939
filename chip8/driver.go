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
	"sort"
	"sync"
)

// A Driver is an interface through which the Runner performs platform
// specific calls: presenting the screen, reading input and beeping.
// Drivers should be registered by the RegisterDriver function in init().
type Driver interface {
	// Called before the first frame.
	Init(c *Chip8) error
	// Called once per frame. Returns the current Keyboard bitfield and
	// whether the user asked to quit.
	Poll() (keys uint16, quit bool)
	// Called at the end of a frame in which the screen buffer changed.
	// The screen must not be retained after the call returns.
	Draw(s *Screen)
	// Called once per frame while the sound timer is non-zero.
	Beep()
	// Called when the Runner stops.
	Close() error
}

// -----------------------------------------------------------------------------

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Driver)
)

// RegisterDriver registers a driver to a name. The driver can then be used
// by passing its name to NewRunner.
func RegisterDriver(name string, drv Driver) error {
	driversMu.Lock()
	defer driversMu.Unlock()

	if drivers[name] != nil {
		return fmt.Errorf("driver %s already exists", name)
	}
	drivers[name] = drv
	return nil
}

// UnregisterDriver unloads a previously registered driver.
func UnregisterDriver(name string) error {
	driversMu.Lock()
	defer driversMu.Unlock()

	if drivers[name] == nil {
		return fmt.Errorf("driver %s does not exist", name)
	}
	delete(drivers, name)
	return nil
}

// GetDriver returns the driver registered under name.
func GetDriver(name string) (Driver, error) {
	driversMu.RLock()
	defer driversMu.RUnlock()

	drv := drivers[name]
	if drv == nil {
		return nil, fmt.Errorf("driver %s not found", name)
	}
	return drv, nil
}

// Drivers returns the sorted names of all registered drivers.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// -----------------------------------------------------------------------------

// A NullDriver is the default driver, which ignores all calls.
type NullDriver struct{}

func (d NullDriver) Init(c *Chip8) error  { return nil }
func (d NullDriver) Poll() (uint16, bool) { return 0, false }
func (d NullDriver) Draw(s *Screen)       {}
func (d NullDriver) Beep()                {}
func (d NullDriver) Close() error         { return nil }

// -----------------------------------------------------------------------------

func init() {
	if err := RegisterDriver("null", NullDriver{}); err != nil {
		panic(err)
	}
}
