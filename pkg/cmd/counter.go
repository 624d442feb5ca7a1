package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/photovault/pkg/configs"
	ctxPkg "github.com/yeisme/photovault/pkg/context"
	"github.com/yeisme/photovault/pkg/internal/service"
	"github.com/yeisme/photovault/pkg/internal/storage"
)

var (
	counterCmd = &cobra.Command{
		Use:   "counter",
		Short: "sequential photo counter maintenance",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return configs.InitConfig(configPath)
		},
	}

	counterResyncCmd = &cobra.Command{
		Use:   "resync <folder>",
		Short: "rebuild a folder counter from the photo files on disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, ctx, cleanup, err := counterService(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			resp := svc.ResyncCounter(ctx, args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "folder %s counter resynced to %d\n", resp.Folder, resp.Counter)

			return nil
		},
	}

	counterResetCmd = &cobra.Command{
		Use:   "reset <folder>",
		Short: "remove a folder counter so numbering restarts at 1",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, ctx, cleanup, err := counterService(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			svc.Naming().Reset(ctx, args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "folder %s counter reset\n", args[0])

			return nil
		},
	}
)

// counterService 初始化存储并构造带 manager 的服务与上下文.
func counterService(base context.Context) (*service.PhotoService, context.Context, func(), error) {
	mgr, err := storage.Init(base)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx := ctxPkg.WithStorageManager(base, mgr)
	cleanup := func() { _ = mgr.Close() }

	return service.NewPhotoService(ctx), ctx, cleanup, nil
}

// registerCounterCommands 注册计数器维护命令.
func registerCounterCommands() {
	counterCmd.AddCommand(counterResyncCmd)
	counterCmd.AddCommand(counterResetCmd)

	rootCmd.AddCommand(counterCmd)
}
