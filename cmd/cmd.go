package cmd

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "tripmate",
	Short: "trip companion backend",
	Long:  `tripmate is the backend for a group trip companion: itinerary, shared expenses, photos, planner, chat and reminders.`,
}

func init() {
	RootCmd.AddCommand(serverCommand())
	RootCmd.AddCommand(migrateCommand())
	RootCmd.AddCommand(settleCommand())
}
