package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rootpatch/internal/app"
)

type detectOptions struct {
	Snapshot  string
	State     string
	KitDir    string
	OutputDir string
}

func newDetectCommand() *cobra.Command {
	opts := detectOptions{}
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Collapse a hardware probe snapshot into capability flags",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDetect(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Snapshot, "snapshot", "", "Probe snapshot file")
	cmd.Flags().StringVar(&opts.State, "state", "", "Applied-patch manifest path")
	cmd.Flags().StringVar(&opts.KitDir, "kdk-dir", "", "Local kernel debug kit store")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "", "Directory for the capabilities document (optional)")

	_ = viper.BindPFlag("snapshot", cmd.Flags().Lookup("snapshot"))
	_ = viper.BindPFlag("state", cmd.Flags().Lookup("state"))
	_ = viper.BindPFlag("kdk_dir", cmd.Flags().Lookup("kdk-dir"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))

	return cmd
}

func runDetect(ctx context.Context, cmd *cobra.Command, opts detectOptions) error {
	service := newAppService()
	result, err := service.Detect(ctx, app.DetectRequest{
		SnapshotPath:        resolveString(cmd, opts.Snapshot, "snapshot", "snapshot"),
		StatePath:           resolveString(cmd, opts.State, "state", "state"),
		KernelCollectionDir: resolveString(cmd, opts.KitDir, "kdk_dir", "kdk-dir"),
		OutputDir:           resolveString(cmd, opts.OutputDir, "output", "output"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("detected: patchable=%t graphics=%t network_required=%t\n",
		result.Flags.Any(), result.Flags.AnyGraphics(), result.Flags.NetworkRequired)
	return nil
}
