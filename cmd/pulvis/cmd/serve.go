package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/f3rmion/pulvis/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve lookups as a JSON API",
	Long: `Serve lookups over HTTP:

  GET /latin/:word?variant=N[&explain=1]   forward lookup
  GET /english/:term[?explain=1]           reverse lookup
  GET /healthz                             liveness

Ambiguous words answer 409 with the candidates, unknown words 404 and
failures of the dictionary site 502.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "", "listen address (default from config)")
	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !viper.GetBool("verbose") {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(newDictionary(cfg), newExplainer(cfg, false))
	return srv.Run(ctx, cfg.Server.Listen)
}
