package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"onyx/internal/app"
	"onyx/internal/relay"
)

func main() {
	configPath := flag.String("f", "", "configuration file (TOML)")
	listen := flag.String("listen", "", "listen address (overrides config)")
	flag.Parse()

	wire, err := app.NewWire(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "relay: %v\n", err)
		os.Exit(1)
	}
	addr := wire.Cfg.Relay.Address
	if *listen != "" {
		addr = *listen
	}

	log := wire.LogBackend.GetLogger("relay")
	srv := relay.NewServer(log)
	if err := srv.Listen(addr); err != nil {
		log.Fatalf("listen: %v", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Notice("shutting down")
		srv.Halt()
	}()

	if err := srv.Serve(); err != nil {
		log.Errorf("serve: %v", err)
	}
	srv.Halt()
}
