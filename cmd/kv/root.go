package kv

import (
	"github.com/IMvampireXD/MCBE-Storage-Database/cmd/util"
	"github.com/IMvampireXD/MCBE-Storage-Database/lib/chunkdb"
	"github.com/IMvampireXD/MCBE-Storage-Database/lib/logging"
	"github.com/IMvampireXD/MCBE-Storage-Database/lib/substrate/flatfile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// KeyValueCommands groups all key-value subcommands. Every subcommand
	// operates on the store opened in the group's PersistentPreRunE.
	KeyValueCommands = &cobra.Command{
		Use:   "kv",
		Short: "Interact with a storedb database",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := viper.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			util.InitConfig()
			return openStore()
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return closeStore()
		},
	}

	// shared state for all kv subcommands
	cfg    *util.StoreConfig
	file   *flatfile.Store
	store  *chunkdb.Store
	logger *logging.Logger
)

func init() {
	util.SetupStoreFlags(KeyValueCommands)

	KeyValueCommands.AddCommand(setCmd)
	KeyValueCommands.AddCommand(getCmd)
	KeyValueCommands.AddCommand(deleteCmd)
	KeyValueCommands.AddCommand(hasCmd)
	KeyValueCommands.AddCommand(keysCmd)
	KeyValueCommands.AddCommand(sizeCmd)
	KeyValueCommands.AddCommand(clearCmd)
	KeyValueCommands.AddCommand(infoCmd)
	KeyValueCommands.AddCommand(shellCmd)
}

// openStore opens the flatfile substrate and the chunked store on top of it.
func openStore() error {
	var err error
	if cfg, err = util.GetStoreConfig(); err != nil {
		return err
	}

	logger = logging.New("kv", cfg.LogLevel)

	if file, err = flatfile.Open(cfg.FilePath); err != nil {
		return err
	}
	logger.Debugf("opened property file %s", cfg.FilePath)

	store, err = chunkdb.Open(file, cfg.DatabaseID, chunkdb.DefaultOptions())
	if err != nil {
		return err
	}
	logger.Debugf("opened database %q with %d keys", cfg.DatabaseID, store.Size())
	return nil
}

// closeStore flushes pending writes back to the property file.
func closeStore() error {
	if file == nil {
		return nil
	}
	return file.Close()
}
