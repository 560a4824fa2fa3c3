package main

import "github.com/IMvampireXD/MCBE-Storage-Database/cmd"

func main() {
	cmd.Execute()
}
