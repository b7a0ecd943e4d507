package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/five82/gauge/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override pitstop config path (optional)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	logPath := flag.String("log", "", "override log file path (optional)")
	pollMS := flag.Int("poll", 0, "poll interval in milliseconds (optional, defaults to 1000)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		LogPath:    *logPath,
	}
	if poll := *pollMS; poll > 0 {
		opts.PollEvery = time.Duration(poll) * time.Millisecond
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "gauge: %v\n", err)
		return 1
	}
	return 0
}
