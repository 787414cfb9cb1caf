// Command web runs the gin-based HTTP surface directly, without going
// through the cobra CLI, for deployments that only need the server.
package main

import (
	"flag"
	"log"

	"dsl-bot/internal/config"
	"dsl-bot/internal/logging"
	"dsl-bot/internal/webserver"
)

func main() {
	addr := flag.String("addr", "", "listen address (overrides BOTDSL_ADDR)")
	scriptsDir := flag.String("scripts-dir", "", "scripts directory (overrides BOTDSL_SCRIPTS_DIR)")
	flag.Parse()

	cfg := config.Load()
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *scriptsDir != "" {
		cfg.ScriptsDir = *scriptsDir
	}

	lg := logging.New("web")
	srv, err := webserver.NewServer(cfg, lg)
	if err != nil {
		log.Fatalf("failed to start web server: %v", err)
	}
	lg.Infof("listening on %s", cfg.Addr)
	if err := srv.Run(cfg.Addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
