package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rootpatch/internal/app"
)

type recordOptions struct {
	Plan             string
	State            string
	OSBuild          string
	KernelCollection string
}

func newRecordCommand() *cobra.Command {
	opts := recordOptions{}
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Write the durable manifest for an applied patch plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecord(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Plan, "plan", "", "Resolved patch plan file")
	cmd.Flags().StringVar(&opts.State, "state", "", "Applied-patch manifest path")
	cmd.Flags().StringVar(&opts.OSBuild, "os-build", "", "Build the plan was applied on")
	cmd.Flags().StringVar(&opts.KernelCollection, "kernel-collection", "", "Kernel collection build used")

	_ = viper.BindPFlag("plan", cmd.Flags().Lookup("plan"))
	_ = viper.BindPFlag("state", cmd.Flags().Lookup("state"))
	_ = viper.BindPFlag("os_build", cmd.Flags().Lookup("os-build"))
	_ = viper.BindPFlag("kernel_collection", cmd.Flags().Lookup("kernel-collection"))

	return cmd
}

func runRecord(ctx context.Context, cmd *cobra.Command, opts recordOptions) error {
	service := newAppService()
	result, err := service.Record(ctx, app.RecordRequest{
		PlanPath:         resolveString(cmd, opts.Plan, "plan", "plan"),
		StatePath:        resolveString(cmd, opts.State, "state", "state"),
		OSBuild:          resolveString(cmd, opts.OSBuild, "os_build", "os-build"),
		KernelCollection: resolveString(cmd, opts.KernelCollection, "kernel_collection", "kernel-collection"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("recorded: %d patches at %s\n", len(result.Manifest.Patches), result.Manifest.PatchedAt)
	return nil
}
