package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mkotlyar/vidbrief/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write a config file with the default settings to edit by hand.

The file location is ~/.config/vidbrief/config.yml (or %APPDATA%\vidbrief\
on Windows). Existing files are left untouched.`,
	Run: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) {
	path, err := config.ConfigPath()
	if err != nil {
		errorExit("%v", err)
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config already exists: %s\n", path)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		errorExit("%v", err)
	}
	if err := cfg.Save(); err != nil {
		errorExit("%v", err)
	}

	color.New(color.FgGreen).Printf("Created %s\n", path)
}
