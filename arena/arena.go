// Package arena runs the game: several machines execute their bots against
// a shared credit economy, and the last machine standing wins.

package arena

import (
	"fmt"
	"log"
)

// Start creates a machine per bot binary, loads them, and round-robins
// clocks across the survivors. Every machine is clocked exactly once per
// tick. It returns the winner's name, or "" when the last machines died on
// the same tick.
func Start(bots []string, memorySize uint16, credit uint16) (string, error) {
	machines := make([]*Machine, 0, len(bots))
	for _, bot := range bots {
		m := NewMachine(bot, memorySize, credit)
		if err := m.LoadBot(bot); err != nil {
			return "", fmt.Errorf("could not load bot [%s]: %v", bot, err)
		}
		machines = append(machines, m)
	}

	for {
		alive := machines[:0]
		for _, m := range machines {
			if err := m.Clock(); err != nil {
				log.Printf("%v", err)
				log.Printf("let it die.")
				continue
			}
			alive = append(alive, m)
		}
		machines = alive

		if len(machines) == 0 {
			log.Printf("no bot remained alive!")
			return "", nil
		}

		if len(machines) == 1 {
			winner := machines[0].Name
			log.Printf("only one bot remained alive! our lucky winner: [%s]", winner)
			return winner, nil
		}
	}
}
