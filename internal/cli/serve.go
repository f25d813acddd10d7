package cli

import (
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/filehub/filehub-go/internal/server"
	"github.com/filehub/filehub-go/internal/version"
)

func cmdServe() *cobra.Command {
	var listen string
	var enableCORS bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the filehub HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps()
			if err != nil {
				return err
			}
			if listen == "" {
				listen = d.cfg.ListenAddr
			}

			router := server.BuildRouter(server.Deps{
				Files:  d.files,
				Access: d.access,
			}, server.Options{EnableCORS: enableCORS})

			slog.Info("filehub starting",
				"version", version.Get().Version,
				"addr", listen,
				"authz", d.cfg.AuthzMode,
				"data_dir", d.cfg.DataDir,
			)
			return http.ListenAndServe(listen, router)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&enableCORS, "cors", false, "enable permissive CORS for browser clients")
	return cmd
}
