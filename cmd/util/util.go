package util

import (
	"strings"

	"github.com/IMvampireXD/MCBE-Storage-Database/lib/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupStoreFlags adds the common store flags to a command.
func SetupStoreFlags(cmd *cobra.Command) {
	key := "file"
	cmd.PersistentFlags().String(key, "storedb.dat", WrapString("Path of the property file backing the store"))

	key = "db"
	cmd.PersistentFlags().String(key, "default", WrapString("Database id (namespace) to operate on"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "info", WrapString("Log level (debug, info, warn, error)"))
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("storedb")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// StoreConfig holds the resolved CLI configuration.
type StoreConfig struct {
	FilePath   string
	DatabaseID string
	LogLevel   logging.Level
}

// GetStoreConfig reads the store configuration from viper.
func GetStoreConfig() (*StoreConfig, error) {
	level, err := logging.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return nil, err
	}

	return &StoreConfig{
		FilePath:   viper.GetString("file"),
		DatabaseID: viper.GetString("db"),
		LogLevel:   level,
	}, nil
}
