// Package di wires process-wide dependencies from configuration.
package di

import (
	"fmt"
	"os"

	"github.com/filehub/filehub-go/internal/authz"
)

type Options struct {
	// Mode selects the tuple store backend: "fga" or "mock".
	Mode string
	FGA  authz.OpenFGAConfig
}

// FromEnv reads store options the way the deploy environment sets them.
// Values are overlaid on top of whatever the config file provided.
func FromEnv(base Options) Options {
	o := base
	if v := os.Getenv("FILEHUB_AUTHZ"); v != "" {
		o.Mode = v
	}
	o.FGA.APIURL = getenv("FGA_API_URL", o.FGA.APIURL)
	o.FGA.StoreID = getenv("FGA_STORE_ID", o.FGA.StoreID)
	o.FGA.ModelID = getenv("FGA_MODEL_ID", o.FGA.ModelID)
	o.FGA.APIToken = getenv("FGA_API_TOKEN", o.FGA.APIToken)

	if os.Getenv("FGA_CLIENT_ID") != "" {
		o.FGA.ClientCredentials = &authz.ClientCredentials{
			Issuer:       os.Getenv("FGA_API_TOKEN_ISSUER"),
			Audience:     os.Getenv("FGA_API_AUDIENCE"),
			ClientID:     os.Getenv("FGA_CLIENT_ID"),
			ClientSecret: os.Getenv("FGA_CLIENT_SECRET"),
		}
	}
	return o
}

// ProvideTupleStore builds the configured backend. The mock is the
// default so local development needs no running store.
func ProvideTupleStore(o Options) (authz.TupleStore, error) {
	switch o.Mode {
	case "fga":
		s, err := authz.NewOpenFGA(o.FGA)
		if err != nil {
			return nil, fmt.Errorf("provide tuple store: %w", err)
		}
		return s, nil
	case "mock", "":
		return authz.NewMock(), nil
	default:
		return nil, fmt.Errorf("provide tuple store: unknown mode %q", o.Mode)
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
