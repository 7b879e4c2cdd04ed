package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ByLCY/lithos/design"
	"github.com/ByLCY/lithos/library"
	"github.com/ByLCY/lithos/options"
)

var (
	instanceName string
	assignments  []string
	outPath      string
)

var buildCmd = &cobra.Command{
	Use:   "build <Type>",
	Short: "Instantiate and build one component, then dump the design as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides, err := options.Overrides(assignments)
		if err != nil {
			return fmt.Errorf("解析 --set 失败: %w", err)
		}
		d, err := run(args[0], instanceName, overrides)
		if err != nil {
			return err
		}
		store := d.Store()
		fmt.Fprintf(cmd.ErrOrStderr(), "几何 %d 个（用于制造 %d 个），引脚 %d 个\n",
			len(store.Entries()), len(store.FabricationEntries()), len(store.Pins()))
		if outPath == "" {
			data, err := d.DebugDump()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		}
		if err := writeDebug(d, outPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "已写出设计快照：%s\n", outPath)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&instanceName, "name", "n", "", "实例名（为空时自动生成）")
	buildCmd.Flags().StringArrayVar(&assignments, "set", nil, "覆盖参数，形如 key=value，嵌套键用点号分隔")
	buildCmd.Flags().StringVarP(&outPath, "out", "o", "", "JSON 输出路径（为空时写到标准输出）")
	rootCmd.AddCommand(buildCmd)
}

// run 串联配置、实例化与构建。
func run(typeName, name string, overrides *options.Options) (*design.Design, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	c, err := library.Default().New(typeName)
	if err != nil {
		return nil, err
	}
	d := design.New(cfg.DesignOptions()...)
	inst, err := d.Add(name, c, overrides)
	if err != nil {
		return nil, fmt.Errorf("创建组件失败: %w", err)
	}
	if err := inst.Build(); err != nil {
		return nil, fmt.Errorf("构建组件失败: %w", err)
	}
	return d, nil
}

func writeDebug(d *design.Design, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	if err := design.WriteDebugJSON(d, path); err != nil {
		return fmt.Errorf("写出设计快照失败: %w", err)
	}
	return nil
}
