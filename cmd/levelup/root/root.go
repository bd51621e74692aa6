package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"levelup/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "levelup",
	Short:         "Level up your life — habits, goals and streaks as an RPG",
	Long:          "LevelUp turns daily goals, habits and workouts into XP, levels, life points and achievements, with a local-first store and optional remote sync.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newStatusCmd(),
		newGoalsCmd(),
		newActionsCmd(),
		newSkipCmd(),
		newReviveCmd(),
		newAchievementsCmd(),
		newTasksCmd(),
		newTrainingCmd(),
		newNameCmd(),
		newDashboardCmd(),
		newResetCmd(),
		newServeCmd(),
		newAdminCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
