package advisor

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/opnlabs/advisor/pkg/analyzer"
	"github.com/opnlabs/advisor/pkg/devops"
	"github.com/opnlabs/advisor/pkg/server"
	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the advisor HTTP API",
	Long: `Serve exposes the analyzer and a mock pipeline listing over HTTP.
Credentials for the listing routes come from ADVISOR_USERNAME and
ADVISOR_PASSWORD, loaded from the environment or a .env file.`,

	Run: func(cmd *cobra.Command, args []string) {
		// A local .env file is optional.
		if err := godotenv.Load(); err == nil {
			log.Println("loaded settings from .env")
		}

		port := servePort
		if v := os.Getenv("PORT"); v != "" {
			port = v
		}

		cfg := server.Config{
			Addr:     ":" + port,
			Username: envOrDefault("ADVISOR_USERNAME", "admin"),
			Password: envOrDefault("ADVISOR_PASSWORD", "admin"),
		}

		srv, err := server.New(cfg, analyzer.New(), devops.NewMockProvider())
		if err != nil {
			log.Fatal(err)
		}
		if err := srv.ListenAndServe(); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "5000", "Port to listen on. The PORT environment variable takes precedence.")
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
