package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcastro/linechat/pkg/semver"
)

type (
	// Configuration - client configuration
	Configuration struct {
		// Host - server address
		Host string
		// Port - server port
		Port uint
		// Debug - emit session details to stderr
		Debug bool
	}
)

var (
	// Config - current configuration of the client
	Config = Configuration{
		Host: "127.0.0.1",
		Port: 20000,
	}

	// BinaryName - name of run application binary
	BinaryName = strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))

	// Version - app version fingerprint
	Version = semver.V{Minor: 4}.String()
)

func init() {
	out := flag.CommandLine.Output()
	printUsage := func() {
		fmt.Fprintf(out, "Connect to text chat server over TCP\n\n\t%s [options]\nOptions:\n\n", BinaryName)
		flag.PrintDefaults()
		fmt.Fprint(out, "\n")
	}

	help := false
	flag.BoolVar(&help, "help", false, "Print usage help")
	flag.StringVar(&Config.Host, "host", Config.Host, "Server address")
	flag.UintVar(&Config.Port, "port", Config.Port, "Server port")
	flag.BoolVar(&Config.Debug, "debug", false, "Emit session details to stderr")

	flag.Parse()

	if help {
		printUsage()
		os.Exit(0)
	}
}
