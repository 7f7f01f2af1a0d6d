// Command mos6502 is a small demo frontend over the cpu package: load a
// hex-encoded program and run it, single-step it with an optional trace, or
// dump a window of its memory.
package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/urfave/cli.v2"

	"github.com/kjellberg/mos6502/cpu"
	"github.com/kjellberg/mos6502/disassemble"
	"github.com/kjellberg/mos6502/internal/hexload"
	"github.com/kjellberg/mos6502/memory"
)

func main() {
	app := &cli.App{
		Name:    "mos6502",
		Usage:   "run and inspect small programs on a MOS 6502 interpreter",
		Version: "v0.1.0",
		Commands: []*cli.Command{
			runCommand(),
			stepCommand(),
			dumpCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func programFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "program",
			Aliases: []string{"p"},
			Usage:   "hex-encoded program bytes",
		},
		&cli.IntFlag{
			Name:  "offset",
			Usage: "offset from the heap base at which the program is loaded; PC starts there",
			Value: memory.HeapBase,
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "reject program loads that land outside the heap window",
		},
	}
}

func newLoadedVM(c *cli.Context) (*cpu.VM, error) {
	if c.String("program") == "" {
		cli.ShowSubcommandHelp(c)
		return nil, cli.Exit("a -program hex string is required", 86)
	}
	vm := cpu.New()
	vm.DefaultInterruptVectors()
	vm.Strict = c.Bool("strict")
	offset := uint16(c.Int("offset"))
	if err := hexload.Insert(vm, offset, c.String("program")); err != nil {
		return nil, err
	}
	vm.Reg.PC = memory.HeapBase + offset
	return vm, nil
}

func printRegisters(vm *cpu.VM) {
	fmt.Printf("PC=%.4X AC=%.2X X=%.2X Y=%.2X SP=%.2X SR=%.2X cycles=%d halted=%v\n",
		vm.Reg.PC, vm.Reg.AC, vm.Reg.X, vm.Reg.Y, vm.Reg.SP, vm.Reg.SR, vm.Cycles, vm.Halted)
}

func runCommand() *cli.Command {
	flags := append(programFlags(), &cli.DurationFlag{
		Name:  "budget",
		Usage: "wall-clock budget for execution",
		Value: time.Second,
	})
	return &cli.Command{
		Name:  "run",
		Usage: "load a program and execute it until it halts or the budget elapses",
		Flags: flags,
		Action: func(c *cli.Context) error {
			vm, err := newLoadedVM(c)
			if err != nil {
				return err
			}
			cycles, elapsed := vm.Run(c.Duration("budget"))
			fmt.Printf("executed %d cycles in %s\n", cycles, elapsed)
			printRegisters(vm)
			return nil
		},
	}
}

func stepCommand() *cli.Command {
	flags := append(programFlags(),
		&cli.IntFlag{Name: "steps", Usage: "number of instructions to execute", Value: 1},
		&cli.BoolFlag{Name: "trace", Usage: "print the instruction about to execute"},
	)
	return &cli.Command{
		Name:  "step",
		Usage: "single-step a program, optionally tracing each instruction",
		Flags: flags,
		Action: func(c *cli.Context) error {
			vm, err := newLoadedVM(c)
			if err != nil {
				return err
			}
			for i := 0; i < c.Int("steps") && !vm.Halted; i++ {
				if c.Bool("trace") {
					line, _ := disassemble.Step(vm.Reg.PC, vm)
					fmt.Println(line)
				}
				if _, err := vm.Step(); err != nil {
					return err
				}
			}
			printRegisters(vm)
			return nil
		},
	}
}

func dumpCommand() *cli.Command {
	flags := append(programFlags(),
		&cli.IntFlag{Name: "addr", Usage: "start address of the dump window", Value: memory.HeapBase},
		&cli.IntFlag{Name: "length", Usage: "number of bytes to dump", Value: 16},
	)
	return &cli.Command{
		Name:  "dump",
		Usage: "load a program and print a window of memory",
		Flags: flags,
		Action: func(c *cli.Context) error {
			vm, err := newLoadedVM(c)
			if err != nil {
				return err
			}
			window := vm.Window(uint16(c.Int("addr")), c.Int("length"))
			for i, b := range window {
				fmt.Printf("%.4X: %.2X\n", c.Int("addr")+i, b)
			}
			return nil
		},
	}
}
