package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/photovault/pkg/configs"
	"github.com/yeisme/photovault/pkg/internal/storage"
)

var (
	vfsCmd = &cobra.Command{
		Use:   "vfs",
		Short: "virtual filesystem inspection commands",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return configs.InitConfig(configPath)
		},
	}

	vfsListCmd = &cobra.Command{
		Use:     "ls [path]",
		Short:   "list the direct children of a directory",
		Aliases: []string{"list", "l"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := storage.Init(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = mgr.Close() }()

			path := "/"
			if len(args) == 1 {
				path = args[0]
			}

			names, err := mgr.VFS.List(cmd.Context(), path)
			if err != nil {
				return fmt.Errorf("list %s: %w", path, err)
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}

			return nil
		},
	}

	vfsStatCmd = &cobra.Command{
		Use:   "stat <path>",
		Short: "show the status of a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := storage.Init(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = mgr.Close() }()

			info, err := mgr.VFS.Stat(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("stat %s: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exists: %t\ndirectory: %t\nsize: %d\nmodified: %s\n",
				info.Exists, info.IsDirectory, info.Size, info.ModificationTime)

			return nil
		},
	}

	vfsSelfTestCmd = &cobra.Command{
		Use:   "selftest",
		Short: "run the storage write-read-remove round trip",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, ctx, cleanup, err := counterService(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if !svc.SelfTest(ctx) {
				return fmt.Errorf("storage self test failed")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "storage self test passed")

			return nil
		},
	}
)

// registerVFSCommands 注册 VFS 巡检命令.
func registerVFSCommands() {
	vfsCmd.AddCommand(vfsListCmd)
	vfsCmd.AddCommand(vfsStatCmd)
	vfsCmd.AddCommand(vfsSelfTestCmd)

	rootCmd.AddCommand(vfsCmd)
}
