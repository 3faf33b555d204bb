package main

import (
	"os"
	"runtime/debug"

	"anchor-client-sol/internal/config"
	"anchor-client-sol/internal/svc"

	"github.com/spf13/cobra"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
)

var (
	flagConfig string
	flagOutput string
)

var rootCmd = &cobra.Command{
	Use:           "inspect",
	Short:         "Inspect Anchor program accounts and derived addresses",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "f", "etc/client.yaml", "the config file")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "text", "Output format: json|text")
}

func loadCfg() (config.ClientConfig, error) {
	var c config.ClientConfig
	err := conf.Load(flagConfig, &c)
	return c, err
}

// withService 需要访问网络的子命令共用
func withService(fn func(ctx *svc.ServiceContext) error) error {
	c, err := loadCfg()
	if err != nil {
		return err
	}
	ctx, err := svc.NewServiceContext(c)
	if err != nil {
		return err
	}
	defer ctx.Close()
	return fn(ctx)
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			logx.Errorf("panic: %+v\nstack: %s", r, debug.Stack())
			os.Exit(2)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
