package main

import (
	"flag"
	"strings"
)

// KVCommands handles all KV store related commands
type KVCommands struct {
	cli *CLI
}

// NewKVCommands creates a new KV commands handler
func NewKVCommands(cli *CLI) *KVCommands {
	return &KVCommands{cli: cli}
}

// Handle routes KV subcommands
func (k *KVCommands) Handle(args []string) {
	if len(args) == 0 {
		k.cli.Errorln("KV subcommand required")
		k.cli.Errorln("Usage: kvdctl kv <get|set|help> [options]")
		k.cli.Exit(1)
		return
	}

	subcommand := args[0]
	subArgs := args[1:]

	switch subcommand {
	case "get":
		k.Get(subArgs)
	case "set":
		k.Set(subArgs)
	case "help":
		k.Help(subArgs)
	default:
		k.cli.Errorf("Unknown KV subcommand: %s\n", subcommand)
		k.cli.Errorln("Available: get, set, help")
		k.cli.Exit(1)
	}
}

// Get queries one or more keys
func (k *KVCommands) Get(args []string) {
	config, remaining, err := k.cli.ParseGlobalFlags(args, "get")
	if err == flag.ErrHelp {
		k.cli.Println("Usage: kvdctl kv get <key> [key...] [options]")
		return
	}
	k.cli.HandleError(err, "parsing flags")
	k.cli.ValidateMinArgs(remaining, 1, "Usage: kvdctl kv get <key> [key...]")

	for _, key := range remaining {
		k.cli.HandleError(ValidateToken(key), "validating key '"+key+"'")
	}

	client := k.cli.CreateClient(config)
	body, err := client.Get(remaining)
	k.cli.HandleError(err, "getting keys")

	k.cli.Printf("%s", body)
}

// Set stores one or more key=value pairs
func (k *KVCommands) Set(args []string) {
	config, remaining, err := k.cli.ParseGlobalFlags(args, "set")
	if err == flag.ErrHelp {
		k.cli.Println("Usage: kvdctl kv set <key=value> [key=value...] [options]")
		return
	}
	k.cli.HandleError(err, "parsing flags")
	k.cli.ValidateMinArgs(remaining, 1, "Usage: kvdctl kv set <key=value> [key=value...]")

	pairs := make([]Pair, 0, len(remaining))
	for _, arg := range remaining {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			k.cli.ExitError("Invalid pair %q: expected key=value\n", arg)
			return
		}
		k.cli.HandleError(ValidateToken(key), "validating key '"+key+"'")
		k.cli.HandleError(ValidateToken(value), "validating value '"+value+"'")
		pairs = append(pairs, Pair{Key: key, Value: value})
	}

	client := k.cli.CreateClient(config)
	body, err := client.Set(pairs)
	k.cli.HandleError(err, "setting keys")

	k.cli.Printf("%s", body)
}

// Help prints the server's route listing
func (k *KVCommands) Help(args []string) {
	config, remaining, err := k.cli.ParseGlobalFlags(args, "help")
	if err == flag.ErrHelp {
		k.cli.Println("Usage: kvdctl kv help [options]")
		return
	}
	k.cli.HandleError(err, "parsing flags")
	k.cli.ValidateExactArgs(remaining, 0, "Usage: kvdctl kv help")

	client := k.cli.CreateClient(config)
	body, err := client.Help()
	k.cli.HandleError(err, "requesting help")

	k.cli.Printf("%s", body)
}
