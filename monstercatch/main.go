// Command monstercatch is a terminal game: click the monsters before they
// escape.
package main

import "github.com/sarchlab/monstercatch/monstercatch/cmd"

func main() {
	cmd.Execute()
}
