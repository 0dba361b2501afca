package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/theirongolddev/loandash/internal/web"

	"github.com/spf13/cobra"
)

var flagServeAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard as a web page",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr := appCfg.Server.Addr
	if cmd.Flags().Changed("addr") {
		addr = flagServeAddr
	}

	log := newLogger()
	srv := web.New(web.Config{
		DatasetPath:      flagData,
		Addr:             addr,
		DefaultCondition: flagCondition,
	}, log)

	fmt.Printf("  loandash listening on http://%s\n", addr)
	fmt.Printf("  Reading %s on every request\n", flagData)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
