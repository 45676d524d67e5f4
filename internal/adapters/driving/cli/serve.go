package cli

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driving/web"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/logger"
)

var (
	serveAddr        string
	serveSessionIdle time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server with the chat page and JSON API.

Routes:
  GET    /          chat page
  GET    /health    liveness probe
  POST   /upload    multipart PDF upload (field "file", max 30 MB)
  POST   /chat      {"message": "..."}
  GET    /history   conversation of the current session
  DELETE /session   forget the current session

The listen address defaults to server.addr (or PDA_ADDR).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from settings)")
	serveCmd.Flags().DurationVar(&serveSessionIdle, "session-idle", time.Hour,
		"drop sessions unused for this long (0 keeps them forever)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(cmd, RuntimeOptions{})
	if err != nil {
		return err
	}
	defer rt.Close()

	addr := serveAddr
	if addr == "" {
		addr = rt.Settings.Server.Addr
	}
	if !logger.IsVerbose() {
		gin.SetMode(gin.ReleaseMode)
	}

	var pruner web.Pruner
	if rt.Sessions != nil {
		pruner = rt.Sessions
	}

	srv := web.NewServer(rt.Assistant, pruner, web.Config{
		Addr:           addr,
		UploadDir:      rt.Settings.Storage.UploadDir,
		MaxUploadBytes: rt.Settings.Server.MaxUploadBytes,
		SessionIdle:    serveSessionIdle,
	})

	cmd.Printf("Serving on %s\n", addr)
	return srv.Run(cmd.Context())
}
