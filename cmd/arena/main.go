// arena pits bot binaries against each other until one machine survives.
package main

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/urfave/cli.v2"

	"grind/arena"
	"grind/cpu"
	"grind/mem"
)

func main() {
	memoryFlag := &cli.UintFlag{
		Name:    "memory",
		Aliases: []string{"m"},
		Usage:   "memory words per machine",
		Value:   128,
	}
	creditFlag := &cli.UintFlag{
		Name:    "credit",
		Aliases: []string{"c"},
		Usage:   "starting credit per machine",
		Value:   80,
	}

	app := &cli.App{
		Name:  "arena",
		Usage: "run bot machines against a shared credit budget",
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "run a game; the last surviving bot wins",
				ArgsUsage: "bot-file...",
				Flags:     []cli.Flag{memoryFlag, creditFlag},
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						cli.ShowSubcommandHelp(c)
						return cli.Exit("no bot specified", 1)
					}

					winner, err := arena.Start(
						c.Args().Slice(),
						uint16(c.Uint("memory")),
						uint16(c.Uint("credit")))
					if err != nil {
						return cli.Exit(err.Error(), 2)
					}

					if winner == "" {
						log.Printf("the game finished with no winner.")
					} else {
						log.Printf("the game finished.")
					}
					return nil
				},
			},
			{
				Name:      "debug",
				Usage:     "step one bot interactively",
				ArgsUsage: "bot-file",
				Flags:     []cli.Flag{memoryFlag},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						cli.ShowSubcommandHelp(c)
						return cli.Exit("exactly one bot file is required", 1)
					}

					f, err := os.Open(c.Args().Get(0))
					if err != nil {
						return cli.Exit(fmt.Sprintf("could not open bot file: %v", err), 2)
					}
					defer f.Close()

					words, err := mem.ReadWords(f)
					if err != nil {
						return cli.Exit(fmt.Sprintf("could not read bot file: %v", err), 2)
					}

					machine := cpu.New(uint16(c.Uint("memory")))
					machine.Debug(words, 0)
					return nil
				},
			},
		},
	}

	app.Run(os.Args)
}
