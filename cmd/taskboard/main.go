// Command taskboard runs the taskboard HTTP service and its operator tasks.
//
// @title                      Taskboard API
// @version                    1.0
// @description                Multi-tenant todo service with role-based administration.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/taskboard/taskboard/pkg/logger"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "taskboard",
	Short:         "Multi-tenant todo service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Overload(); err != nil && !os.IsNotExist(err) {
			cmd.PrintErrln("Error loading .env file, skipping:", err)
		}
	},
}

func main() {
	rootCmd.AddCommand(serveCmd(), superuserCmd())
	if err := rootCmd.Execute(); err != nil {
		log := logger.Init(logger.ForEnv(os.Getenv("ENV"), "error"))
		log.Fatal().Err(err).Msg("taskboard")
	}
}
