package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/icon-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("icon-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("icon-tools-mcp - MCP server for icon background removal")
			fmt.Println()
			fmt.Println("Usage: icon-tools-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  ICON_MCP_LOG_LEVEL=debug     Enable debug logging")
			fmt.Println("  ICON_MCP_OUTPUT_DIR=<dir>    Where stripped copies go (default: temp dir)")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// stdout carries the protocol
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := server.DefaultConfig()
	cfg.OutputDir = os.Getenv("ICON_MCP_OUTPUT_DIR")
	cfg.Debug = os.Getenv("ICON_MCP_LOG_LEVEL") == "debug"
	if cfg.Debug {
		log.Printf("Icon MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.NewWithConfig(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
