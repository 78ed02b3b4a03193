package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rootpatch/internal/app"
)

type catalogOptions struct {
	Catalog   string
	OSVersion string
}

func newCatalogCommand() *cobra.Command {
	opts := catalogOptions{}
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the active patch catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCatalog(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "Catalog override file (builtin when empty)")
	cmd.Flags().StringVar(&opts.OSVersion, "os-version", "", "Only list entries supporting this release")

	_ = viper.BindPFlag("catalog", cmd.Flags().Lookup("catalog"))
	_ = viper.BindPFlag("os_version", cmd.Flags().Lookup("os-version"))

	return cmd
}

func runCatalog(ctx context.Context, cmd *cobra.Command, opts catalogOptions) error {
	service := newAppService()
	result, err := service.Catalog(ctx, app.CatalogRequest{
		CatalogPath: resolveString(cmd, opts.Catalog, "catalog", "catalog"),
		OSVersion:   resolveString(cmd, opts.OSVersion, "os_version", "os-version"),
	})
	if err != nil {
		return err
	}
	for _, entry := range result.Entries {
		fmt.Printf("%s\t%s..%s\t%s\n",
			entry.Name, entry.Support.Min, entry.Support.Max, entry.DisplayName)
	}
	return nil
}
