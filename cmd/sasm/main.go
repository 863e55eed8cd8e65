// sasm translates an assembly source file into a bot binary. The output is
// written next to the input as <input>.bin.
//
// Exit codes: 0 on success, 1 on usage errors, 2 when a file cannot be read
// or written, 3 when the source does not translate.
package main

import (
	"bufio"
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v2"

	"grind/asm"
	"grind/mem"
)

func translateFile(input string) ([]uint16, error) {
	f, err := os.Open(input)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("could not open input file: %v", err), 2)
	}
	defer f.Close()

	translator := asm.NewTranslator()
	var words []uint16

	scanner := bufio.NewScanner(f)
	for line := 1; scanner.Scan(); line++ {
		word, ok, err := translator.TranslateLine(scanner.Text())
		if err != nil {
			return nil, cli.Exit(fmt.Sprintf("translation failed at line %d: %v", line, err), 3)
		}
		if !ok {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, cli.Exit(fmt.Sprintf("could not read input file: %v", err), 2)
	}

	return words, nil
}

func main() {
	app := &cli.App{
		Name:      "sasm",
		Usage:     "translate an assembly source file into a bot binary",
		ArgsUsage: "input-file",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				cli.ShowAppHelp(c)
				return cli.Exit("exactly one input file is required", 1)
			}
			input := c.Args().Get(0)

			words, err := translateFile(input)
			if err != nil {
				return err
			}

			output, err := os.Create(input + ".bin")
			if err != nil {
				return cli.Exit(fmt.Sprintf("could not create output file: %v", err), 2)
			}
			defer output.Close()

			if err := mem.WriteWords(output, words); err != nil {
				return cli.Exit(fmt.Sprintf("could not write output file: %v", err), 2)
			}
			return nil
		},
	}

	app.Run(os.Args)
}
