package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/CodeStoryApp/ndx-serializable/api"
	"github.com/CodeStoryApp/ndx-serializable/config"
	"github.com/CodeStoryApp/ndx-serializable/internal/engine"
	"github.com/CodeStoryApp/ndx-serializable/internal/persistence"
)

func main() {
	var (
		help       = flag.Bool("help", false, "Show help message")
		version    = flag.Bool("version", false, "Show version information")
		configPath = flag.String("config", "ndx.yaml", "Path to YAML server configuration")
		port       = flag.String("port", "", "Port to run the server on (overrides config)")
		dataDir    = flag.String("data-dir", "", "Directory to store index data (overrides config)")
	)

	flag.Parse()

	if *help {
		fmt.Printf("ndx server - serializable trie-based inverted index\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                           # Start server with defaults\n", os.Args[0])
		fmt.Printf("  %s --port 9000               # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --config /etc/ndx.yaml    # Use a specific config file\n", os.Args[0])
		return
	}

	if *version {
		fmt.Printf("ndx server v1.0.0\n")
		return
	}

	cfg, err := config.LoadServer(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config from %s: %v", *configPath, err)
	}
	if *port != "" {
		cfg.Port = *port
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	log.Printf("Using data directory: %s", cfg.DataDir)
	eng := engine.NewEngine(cfg.DataDir)

	snapshots, err := persistence.OpenSnapshotStore(cfg.SnapshotDB)
	if err != nil {
		log.Printf("Warning: Failed to open snapshot store at %s: %v. Snapshot routes disabled.", cfg.SnapshotDB, err)
		snapshots = nil
	} else {
		defer func() {
			if closeErr := snapshots.Close(); closeErr != nil {
				log.Printf("Warning: failed to close snapshot store: %v", closeErr)
			}
		}()
	}

	if cfg.GinReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	api.SetupRoutes(router, eng, snapshots)

	log.Printf("Starting server on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
