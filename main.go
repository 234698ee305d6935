package main

import (
	"github.com/findy-network/findy-mediator/cmd"
)

func main() {
	cmd.Execute()
}
