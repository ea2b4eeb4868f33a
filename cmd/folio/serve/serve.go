package servecmder

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/foliodev/folio/pkg/logger"
	"github.com/foliodev/folio/relay"
)

const serveLongDesc string = `Run the portfolio server.

Serves the static site shell, the profile and contact endpoints, and the
streaming chat relay. The upstream credential is read from the POE_API_KEY
environment variable.

Examples:
  folio serve
  folio serve --listen :3000 --profile ./profile.toml --db ./folio.db`

const serveShortDesc string = "Run the portfolio server"

type serveCommander struct {
	listenAddr  string
	upstreamURL string
	model       string
	profilePath string
	dbPath      string
	debug       bool
}

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run()
		},
	}

	cmd.Flags().StringVarP(&cmder.listenAddr, "listen", "l", ":8080", "Address to listen on")
	cmd.Flags().StringVar(&cmder.upstreamURL, "upstream", "https://api.poe.com/v1/chat/completions", "Upstream chat-completions URL")
	cmd.Flags().StringVar(&cmder.model, "model", "Claude-Sonnet-4.5", "Model identifier sent upstream")
	cmd.Flags().StringVarP(&cmder.profilePath, "profile", "p", "", "Path to profile TOML (default: built-in placeholder)")
	cmd.Flags().StringVar(&cmder.dbPath, "db", "", "Path to SQLite database for contact messages (default: in-memory)")
	cmd.Flags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")

	return cmd
}

func (c *serveCommander) run() error {
	log := logger.New(c.debug)
	defer log.Sync()

	log.Info("folio starting",
		zap.String("listen", c.listenAddr),
		zap.String("upstream", c.upstreamURL),
		zap.Bool("debug", c.debug),
	)

	r, err := relay.New(relay.Config{
		ListenAddr:  c.listenAddr,
		UpstreamURL: c.upstreamURL,
		Model:       c.model,
		ProfilePath: c.profilePath,
		DBPath:      c.dbPath,
	}, log)
	if err != nil {
		return err
	}
	defer r.Close()

	return r.Run()
}
