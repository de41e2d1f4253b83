package main

import (
	"fmt"
	"os"
	"time"

	"github.com/grachmannico95/pix-relay/internal/config"
	"github.com/grachmannico95/pix-relay/pkg/logger"
	"github.com/spf13/cobra"
)

var Version = "dev"

type globalOptions struct {
	baseURL    string
	statusPath string
	interval   time.Duration
	timeout    time.Duration
	logLevel   string
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cfg := config.Load()
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "pixpoll",
		Short:         "Create PIX charges on a relay and poll them until paid",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", cfg.Poller.BaseURL, "Relay base URL")
	cmd.PersistentFlags().StringVar(&opts.statusPath, "status-path", cfg.Poller.StatusPath, "Status route, {id} is replaced by the transaction id")
	cmd.PersistentFlags().DurationVar(&opts.interval, "interval", cfg.Poller.Interval, "Polling interval")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", cfg.Poller.Timeout, "Polling budget")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", cfg.Logging.Level, "Log level")

	cmd.AddCommand(createCmd(opts))
	cmd.AddCommand(watchCmd(opts))
	cmd.AddCommand(cashoutCmd(opts))

	return cmd
}

func (o *globalOptions) logger() *logger.Logger {
	return logger.New(o.logLevel)
}
