package jarreloc

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/jarreloc/pkg/config"
	"github.com/arthur-debert/jarreloc/pkg/errors"
	"github.com/arthur-debert/jarreloc/pkg/filesystem"
	"github.com/spf13/cobra"
)

func newGenConfigCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := config.GenerateConfigContent()
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "failed to render sample config")
			}

			if !write {
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			path := config.UserConfigPath()
			if _, err := os.Stat(path); err == nil {
				return errors.Newf(errors.ErrFileWrite, MsgConfigExists, path).WithDetail("path", path)
			}

			fsys := filesystem.NewOS()
			if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(path))
			}
			if err := filesystem.WriteBytesAtomic(fsys, path, []byte(content), filesystem.AtomicOptions{}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}
