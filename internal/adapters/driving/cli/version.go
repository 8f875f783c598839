package cli

import "github.com/spf13/cobra"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the datimex version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("datimex version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
