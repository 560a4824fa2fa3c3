package kv

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/IMvampireXD/MCBE-Storage-Database/lib/chunkdb"
	"github.com/VictoriaMetrics/metrics"
	"github.com/spf13/cobra"
)

var (
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key",
		Long:  "Sets the value for a key. The value is parsed as a JSON literal; input that is not valid JSON is stored as plain text. 'null' is rejected, use 'delete' to remove a key.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseSetValue(args[1])
			if err != nil {
				return err
			}
			if err := store.Set(args[0], value); err != nil {
				return err
			}
			fmt.Println("set successfully")
			return nil
		},
	}

	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Gets the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
		},
	}

	deleteCmd = &cobra.Command{
		Use:     "delete [key]",
		Aliases: []string{"del"},
		Short:   "Deletes a key",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			existed, err := store.Delete(args[0])
			if err != nil {
				return err
			}
			if existed {
				fmt.Println("deleted")
			} else {
				fmt.Println("key not found")
			}
			return nil
		},
	}

	hasCmd = &cobra.Command{
		Use:   "has [key]",
		Short: "Checks whether a key exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := store.Has(args[0])
			if err != nil {
				return err
			}
			fmt.Println(found)
			return nil
		},
	}

	keysCmd = &cobra.Command{
		Use:   "keys",
		Short: "Lists all keys of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for key := range store.Keys() {
				fmt.Println(key)
			}
			return nil
		},
	}

	sizeCmd = &cobra.Command{
		Use:   "size",
		Short: "Prints the number of keys in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(store.Size())
			return nil
		},
	}

	clearCmd = &cobra.Command{
		Use:   "clear",
		Short: "Removes all keys of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Println("cleared")
			return nil
		},
	}

	infoCmd = &cobra.Command{
		Use:   "info",
		Short: "Prints information about the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("database : %s\n", store.DatabaseID())
			fmt.Printf("file     : %s\n", cfg.FilePath)
			fmt.Printf("keys     : %d\n", store.Size())
			fmt.Printf("entries  : %d\n", len(file.ListPropertyIDs()))

			if showMetrics, _ := cmd.Flags().GetBool("metrics"); showMetrics {
				fmt.Println()
				metrics.WritePrometheus(os.Stdout, false)
			}
			return nil
		},
	}
)

func init() {
	infoCmd.Flags().Bool("metrics", false, "Also print the operation counters in Prometheus text format")
}

// parseValue interprets a CLI argument as a JSON literal; anything that does
// not parse is treated as plain text. Objects with exactly the numeric
// fields x, y and z become native vectors.
func parseValue(arg string) chunkdb.Value {
	var decoded any
	if err := json.Unmarshal([]byte(arg), &decoded); err != nil {
		return chunkdb.NewText(arg)
	}
	return chunkdb.From(decoded)
}

// parseSetValue parses an argument for the set commands. The literal null
// would silently turn the set into a delete, so it is rejected here.
func parseSetValue(arg string) (chunkdb.Value, error) {
	value := parseValue(arg)
	if value.IsAbsent() {
		return chunkdb.Absent(), fmt.Errorf("null does not store a value, use 'delete' to remove a key")
	}
	return value, nil
}

// printValue renders a value the way set expects it back: JSON for
// everything except plain text.
func printValue(value chunkdb.Value) {
	switch value.Kind() {
	case chunkdb.KindText:
		fmt.Println(value.Text())
	default:
		b, err := json.Marshal(value.Any())
		if err != nil {
			fmt.Printf("%v\n", value.Any())
			return
		}
		fmt.Println(string(b))
	}
}
