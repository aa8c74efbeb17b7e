// Package main starts the personnel board service process lifecycle.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	boardcmd "github.com/louisbranch/personnel.board/internal/cmd/board"
	"github.com/louisbranch/personnel.board/internal/platform/config"
)

func main() {
	cfg, err := boardcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("board: %v", err)
	}
	log.SetPrefix("[BOARD] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := boardcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
