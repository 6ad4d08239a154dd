package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rexcraft",
	Short: "Build regular expressions from readable recipes",
	Long: `Rexcraft assembles regular-expression patterns from a sequence of
semantic operations instead of hand-written pattern syntax.

A recipe file holds one operation per line:

  start
  named-group area
  exactly 3
  digit
  end-group
  literal -
  exactly 4
  digit
  end

Commands:
  render    Render a recipe into a pattern string
  tui       Build and test a pattern interactively`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}
