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

// Command tb-chip8 runs CHIP-8 programs in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ashwingur/chip8-emulator/chip8"
	_ "github.com/ashwingur/chip8-emulator/drivers"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

var errUsage = errors.New("usage: tb-chip8 [options] <rom>")

type optionFlags struct {
	input  string
	driver string
	speed  int
	seed   int64

	trace  bool
	debug  bool
	quiet  bool
	disasm bool
	dump   bool
}

func main() {
	options, err := readArguments(os.Args[1:], os.Stderr)
	logger := createLogger(options.debug, options.quiet)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	if !options.quiet && !options.disasm && !options.dump {
		printBanner()
	}

	if err := run(app.Context(), logger, options, os.Stdout); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Emulation cancelled")
			return
		}
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func readArguments(args []string, output io.Writer) (optionFlags, error) {
	flags := flag.NewFlagSet("tb-chip8", flag.ContinueOnError)
	flags.SetOutput(output)
	options := optionFlags{}

	flags.StringVar(&options.driver, "driver", "termbox",
		"platform driver, one of: "+strings.Join(chip8.Drivers(), ", "))
	flags.IntVar(&options.speed, "speed", chip8.DefaultSettings.StepsPerFrame,
		"instructions executed per 60hz frame")
	flags.Int64Var(&options.seed, "seed", 0,
		"seed for the random number generator, 0 uses the current time")
	flags.BoolVar(&options.trace, "trace", false,
		"log every executed instruction (needs -debug)")
	flags.BoolVar(&options.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&options.quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&options.disasm, "disasm", false,
		"print a disassembly listing of the program and exit")
	flags.BoolVar(&options.dump, "dump", false,
		"print a hex dump of the loaded program and exit")

	if err := flags.Parse(args); err != nil {
		return options, err
	}
	if flags.NArg() != 1 {
		fmt.Fprintf(output, "%v\n\n", errUsage)
		flags.PrintDefaults()
		return options, errUsage
	}
	options.input = flags.Arg(0)
	return options, nil
}

func printBanner() {
	fmt.Println("[-------------------------------------]")
	fmt.Println("[ tb-chip8 - terminal CHIP-8 emulator ]")
	fmt.Printf("[-------------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

func run(ctx context.Context, logger *log.Logger, options optionFlags,
	stdout io.Writer) error {

	program, err := os.ReadFile(options.input)
	if err != nil {
		return fmt.Errorf("reading program: %w", err)
	}

	if options.disasm {
		return printDisassembly(stdout, program)
	}

	c, err := chip8.New(&chip8.Settings{
		StepsPerFrame: options.speed,
		TimerHz:       chip8.DefaultSettings.TimerHz,
		Seed:          options.seed,
		Trace:         options.trace,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	if err := c.LoadProgram(program); err != nil {
		return fmt.Errorf("loading %s: %w", options.input, err)
	}
	logger.Info("Loaded program",
		log.String("file", options.input),
		log.Int("size", len(program)))

	if options.dump {
		end := chip8.ProgramStart + uint16(len(program))
		return c.DumpMemory(stdout, chip8.ProgramStart, end)
	}

	if options.driver == "termbox" && !isTerminal(os.Stdin) {
		return errors.New("the termbox driver needs a terminal, " +
			"use -driver null to run headless")
	}

	runner, err := chip8.NewRunner(c, options.driver, nil)
	if err != nil {
		return err
	}
	if err := runner.Run(ctx); err != nil {
		logger.Debug("Machine state", log.String("state", c.String()))
		return err
	}
	return nil
}

func printDisassembly(w io.Writer, program []byte) error {
	disassembly, err := chip8.DisassembleSimple(program, chip8.ProgramStart)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 8, 8, 0, '\t', 0)
	fmt.Fprintln(tw, "addr\topcode\tinstruction\tascii\t")

	for _, i := range disassembly {
		asciitext := ""
		if ascii := i.ASCII(); ascii != "" {
			asciitext = fmt.Sprintf("`%s`", ascii)
		}

		opcodeFormatter := "%04X"
		if i.Size() == 1 {
			opcodeFormatter = "%02X"
		}

		fmt.Fprintf(tw, "%04X\t"+opcodeFormatter+"\t%v\t%s\t\n",
			i.Address, i.Opcode, i, asciitext)
	}

	return tw.Flush()
}
