package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/user-none/padnav/gamepad"
	"github.com/user-none/padnav/standalone"
)

var version = "0.1.0"

func main() {
	backend := flag.String("backend", "", "gamepad backend: "+strings.Join(gamepad.BackendNames(), ", ")+" (default from config)")
	debug := flag.Bool("debug", false, "log every controller button")
	dataDir := flag.String("data-dir", "", "directory for config.json and packages.json")
	launcher := flag.String("launcher", "", "program run as <launcher> launch|patch <package id>")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	if *backend != "" && !slices.Contains(gamepad.BackendNames(), strings.ToLower(*backend)) {
		log.Fatalf("Invalid backend: %s (use %s)", *backend, strings.Join(gamepad.BackendNames(), ", "))
	}

	opts := standalone.Options{
		Version: version,
		Backend: strings.ToLower(*backend),
		Debug:   *debug,
		DataDir: *dataDir,
	}
	if *launcher != "" {
		opts.Service = standalone.NewCommandService(*launcher)
	}

	if err := standalone.Run(opts); err != nil {
		log.Fatal(err)
	}
}
