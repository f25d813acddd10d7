package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/filehub/filehub-go/internal/access"
	"github.com/filehub/filehub-go/internal/authz"
	"github.com/filehub/filehub-go/internal/di"
	"github.com/filehub/filehub-go/internal/files"
	"github.com/filehub/filehub-go/internal/users"
)

type deps struct {
	cfg    *Config
	access *access.Service
	files  *files.Service
}

// buildDeps turns the loaded config into the wired service graph every
// networked command shares.
func buildDeps() (*deps, error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, err
	}

	opts := di.FromEnv(di.Options{
		Mode: cfg.AuthzMode,
		FGA: authz.OpenFGAConfig{
			APIURL:   cfg.FGAAPIURL,
			StoreID:  cfg.FGAStoreID,
			ModelID:  cfg.FGAModelID,
			APIToken: cfg.FGAAPIToken,
		},
	})
	if cfg.FGAClientID != "" && opts.FGA.ClientCredentials == nil {
		opts.FGA.ClientCredentials = &authz.ClientCredentials{
			Issuer:       cfg.FGATokenIssuer,
			Audience:     cfg.FGAAudience,
			ClientID:     cfg.FGAClientID,
			ClientSecret: cfg.FGAClientSecret,
		}
	}

	store, err := di.ProvideTupleStore(opts)
	if err != nil {
		return nil, err
	}

	var dir users.Directory
	if cfg.UsersFile != "" {
		dir, err = users.LoadFile(cfg.UsersFile)
		if err != nil {
			return nil, err
		}
	} else {
		dir = users.NewMemoryDirectory()
	}

	acc := access.New(store, dir)

	fstore, err := files.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	return &deps{
		cfg:    cfg,
		access: acc,
		files:  files.NewService(fstore, acc),
	}, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResult(v any) error {
	switch output {
	case "json", "":
		return printJSON(v)
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}
