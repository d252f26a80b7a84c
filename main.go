package main

import (
	"fmt"
	"os"
	"strings"

	"blog/service"
)

const cliVersion = "1.0.0"

var exit = os.Exit

func main() {
	exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		service.PrintHelp()
		return 1
	}

	switch cmd := strings.ToLower(args[0]); cmd {
	case "version":
		fmt.Printf("blog version %s\n", cliVersion)
		return 0
	default:
		return service.HandleCommand(append([]string{cmd}, args[1:]...))
	}
}
