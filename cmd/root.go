package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/exodeck/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "exodeck",
	Short: "Convert meshing-session exports to solver input decks",
	Long: `
exodeck turns the output of a meshing session - an exchange file with the
mesh plus metadata describing element blocks and node sets - into a complete,
correctly ordered input deck for the 4C finite element solver.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.exodeck.yaml)")
	rootCmd.PersistentFlags().Bool("profile", false,
		"write a CPU profile for this run")
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".exodeck")
	}

	config.Defaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
