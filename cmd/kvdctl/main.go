package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	cli := NewCLI()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "kv":
		NewKVCommands(cli).Handle(args)
	case "version":
		fmt.Printf("kvdctl version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("kvdctl - kvd CLI Tool")
	fmt.Println()
	fmt.Println("Usage: kvdctl <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  kv <subcommand>            Key-value operations")
	fmt.Println("    get <key> [key...]       Get values by key")
	fmt.Println("    set <k=v> [k=v...]       Set key-value pairs")
	fmt.Println("    help                     Print the server's route listing")
	fmt.Println()
	fmt.Println("  version                    Show version")
	fmt.Println("  help                       Show this help")
	fmt.Println()
	fmt.Println("Global Options:")
	fmt.Println("  --server <addr>            kvd server address (default: 127.0.0.1:4000)")
}
