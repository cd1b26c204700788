package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/pjkaufman/obsidian-cursor-manager/internal/config"
	"github.com/pjkaufman/obsidian-cursor-manager/internal/lsp"
)

// Version will be set during the build process using ldflags
var Version = "(dev) v0.0.0"

func main() {
	versionFlag := flag.Bool("version", false, "Print the version of the program")
	logfileFlag := flag.String("logfile", "", "Path to log file")
	storeFlag := flag.String("store", "", "Persistence backend: file or sqlite (overridable by client options)")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("cursor-manager LSP server version %s\n", Version)
		return
	}

	// Logging
	if *logfileFlag != "" {
		logFile, err := os.OpenFile(*logfileFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
		log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
		log.Println("Starting cursor-manager LSP server...")
	} else {
		log.SetOutput(io.Discard)
	}
	commonlog.Configure(1, nil) // Logger used by glsp

	defaults := config.Default()
	if *storeFlag != "" {
		defaults.Store = *storeFlag
	}

	srv, err := lsp.NewServer(defaults)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if err := srv.RunStdio(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
