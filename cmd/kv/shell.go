package kv

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Starts an interactive shell on the database",
	Long:  "Starts an interactive shell. Lines are split with shell quoting rules, so quoted values may contain spaces.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("storedb shell - database %q in %s\n", cfg.DatabaseID, cfg.FilePath)
		fmt.Println("Type commands. 'help' for information or 'exit' to quit.")

		reader := bufio.NewReader(os.Stdin)

		for {
			fmt.Print("> ")

			line, err := reader.ReadString('\n')
			if err != nil {
				return nil // EOF ends the shell
			}

			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if line == "exit" || line == "quit" {
				return nil
			}
			if line == "help" {
				printShellHelp()
				continue
			}

			words, err := shellquote.Split(line)
			if err != nil {
				fmt.Println("parse error:", err)
				continue
			}

			if err := runShellCommand(words); err != nil {
				fmt.Println("error:", err)
			}

			// make every mutation durable immediately, the shell may be
			// killed without a clean exit
			if err := file.Flush(); err != nil {
				logger.Errorf("flushing property file: %v", err)
			}
		}
	},
}

func runShellCommand(words []string) error {
	command, args := words[0], words[1:]

	argc := func(want int) error {
		if len(args) != want {
			return fmt.Errorf("%s expects %d argument(s), got %d", command, want, len(args))
		}
		return nil
	}

	switch command {
	case "set":
		if err := argc(2); err != nil {
			return err
		}
		value, err := parseSetValue(args[1])
		if err != nil {
			return err
		}
		return store.Set(args[0], value)
	case "get":
		if err := argc(1); err != nil {
			return err
		}
		value, found, err := store.Get(args[0])
		if err != nil {
			return err
		}
		if !found {
			fmt.Println("key not found")
			return nil
		}
		printValue(value)
		return nil
	case "delete", "del":
		if err := argc(1); err != nil {
			return err
		}
		existed, err := store.Delete(args[0])
		if err != nil {
			return err
		}
		fmt.Println(existed)
		return nil
	case "has":
		if err := argc(1); err != nil {
			return err
		}
		found, err := store.Has(args[0])
		if err != nil {
			return err
		}
		fmt.Println(found)
		return nil
	case "keys":
		if err := argc(0); err != nil {
			return err
		}
		for key := range store.Keys() {
			fmt.Println(key)
		}
		return nil
	case "entries":
		if err := argc(0); err != nil {
			return err
		}
		for key, value := range store.Entries() {
			fmt.Printf("%s = ", key)
			printValue(value)
		}
		return nil
	case "size":
		if err := argc(0); err != nil {
			return err
		}
		fmt.Println(store.Size())
		return nil
	case "clear":
		if err := argc(0); err != nil {
			return err
		}
		return store.Clear()
	default:
		return fmt.Errorf("unknown command %q (try 'help')", command)
	}
}

func printShellHelp() {
	fmt.Println(`commands:
  set <key> <value>   store a value (JSON literal or plain text)
  get <key>           print the value of a key
  delete <key>        delete a key
  has <key>           check whether a key exists
  keys                list all keys
  entries             list all key-value pairs
  size                print the number of keys
  clear               remove all keys of this database
  exit                leave the shell`)
}
