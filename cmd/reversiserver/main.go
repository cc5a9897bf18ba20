// Command reversiserver runs the reversi engine REST API server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/yourusername/reversiengine/pkg/api"
	"github.com/yourusername/reversiengine/pkg/engine"
	"github.com/yourusername/reversiengine/pkg/external"
)

const version = "0.1.0"

func main() {
	def := api.DefaultConfig()

	// Command line flags
	host := flag.String("host", def.Host, "Host to bind to (use 0.0.0.0 for all interfaces)")
	port := flag.Int("port", def.Port, "Port to listen on")
	depth := flag.Int("depth", engine.DefaultDepth, "Default search depth")
	readTimeout := flag.Duration("read-timeout", def.ReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", def.WriteTimeout, "HTTP write timeout")
	searchWorkers := flag.Int("search-workers", def.MaxSearchWorkers, "Max concurrent searches")
	matchWorkers := flag.Int("match-workers", def.MaxMatchWorkers, "Max concurrent self-play matches")
	externalPort := flag.Int("external-port", 0, "Also serve the line protocol on this TCP port (0 = off)")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("Reversi API Server v%s\n", version)
		os.Exit(0)
	}

	log.Printf("Reversi API Server v%s", version)

	eng, err := engine.NewEngine(engine.Options{Depth: *depth})
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	log.Printf("Engine ready (depth %d)", eng.Depth())

	if *externalPort > 0 {
		opts := external.DefaultServerOptions()
		opts.Host = *host
		opts.Port = *externalPort
		opts.Depth = *depth

		ext := external.NewServer(opts)
		if err := ext.Start(); err != nil {
			log.Fatalf("External protocol server: %v", err)
		}
		defer ext.Stop()
		log.Printf("External protocol listening on %s", ext.Addr())
	}

	config := def
	config.Host = *host
	config.Port = *port
	config.ReadTimeout = *readTimeout
	config.WriteTimeout = *writeTimeout
	config.MaxSearchWorkers = *searchWorkers
	config.MaxMatchWorkers = *matchWorkers

	server := api.NewServer(eng, config, version)

	if err := server.ListenAndServeWithGracefulShutdown(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
