package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rootpatch/internal/app"
)

type resolveOptions struct {
	Snapshot  string
	Catalog   string
	State     string
	KitDir    string
	OutputDir string
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve capability flags into a patch plan and gating report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Snapshot, "snapshot", "", "Probe snapshot file")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "Catalog override file (builtin when empty)")
	cmd.Flags().StringVar(&opts.State, "state", "", "Applied-patch manifest path")
	cmd.Flags().StringVar(&opts.KitDir, "kdk-dir", "", "Local kernel debug kit store")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")

	_ = viper.BindPFlag("snapshot", cmd.Flags().Lookup("snapshot"))
	_ = viper.BindPFlag("catalog", cmd.Flags().Lookup("catalog"))
	_ = viper.BindPFlag("state", cmd.Flags().Lookup("state"))
	_ = viper.BindPFlag("kdk_dir", cmd.Flags().Lookup("kdk-dir"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))

	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions) error {
	service := newAppService()
	result, err := service.Resolve(ctx, app.ResolveRequest{
		SnapshotPath:        resolveString(cmd, opts.Snapshot, "snapshot", "snapshot"),
		CatalogPath:         resolveString(cmd, opts.Catalog, "catalog", "catalog"),
		StatePath:           resolveString(cmd, opts.State, "state", "state"),
		KernelCollectionDir: resolveString(cmd, opts.KitDir, "kdk_dir", "kdk-dir"),
		OutputDir:           resolveString(cmd, opts.OutputDir, "output", "output"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("resolved: %d patches for %s (can_apply=%t can_revert=%t)\n",
		len(result.Plan.Patches), result.Plan.OSVersion, result.Report.CanApply, result.Report.CanRevert)
	for _, blocked := range result.Report.Blocking {
		fmt.Printf("blocked: %s\n", blocked)
	}
	return nil
}
