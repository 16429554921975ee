// Command dmg is the CLI entry point for the LR35902 core: it loads a ROM
// image into a cartridge, wires it to a bus and CPU, and either runs it,
// single-steps it a fixed number of times, or drops into the interactive
// debugger, following the subcommand shape the pack's Z80 tooling uses.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dmg/cartridge"
	"dmg/cpu"
	"dmg/internal/dbg"
	"dmg/ioreg"
	"dmg/mem"
)

func newMachine(romPath string) (*cpu.CPU, error) {
	rom, err := os.ReadFile(romPath)
	if err != nil {
		return nil, fmt.Errorf("dmg: reading rom: %w", err)
	}

	bus := &mem.Bus{Cartridge: cartridge.New(rom)}
	ioreg.New().Attach(bus)
	return cpu.New(bus), nil
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <rom>",
		Short: "run a ROM image at native speed until it faults",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newMachine(args[0])
			if err != nil {
				return err
			}
			dbg.Printf("dmg: running %s", args[0])
			return c.Run()
		},
	}
}

func newStepCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "step <rom>",
		Short: "execute a fixed number of instructions and print the final state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newMachine(args[0])
			if err != nil {
				return err
			}
			for i := 0; i < count; i++ {
				if _, err := c.Step(); err != nil {
					return err
				}
			}
			fmt.Printf("AF=%04x BC=%04x DE=%04x HL=%04x SP=%04x PC=%04x IME=%v Halted=%v\n",
				c.AF(), c.BC(), c.DE(), c.HL(), c.SP, c.PC, c.IME, c.Halted)
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of instructions to execute")
	return cmd
}

func newDebugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debug <rom>",
		Short: "step a ROM interactively in the TUI debugger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newMachine(args[0])
			if err != nil {
				return err
			}
			c.Debug()
			return nil
		},
	}
}

func main() {
	root := &cobra.Command{
		Use:   "dmg",
		Short: "an LR35902 (Game Boy CPU) core",
	}
	root.AddCommand(newRunCmd(), newStepCmd(), newDebugCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
