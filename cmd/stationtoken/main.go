// Command stationtoken mints a signed station token for operators to load
// onto a check-in station. It reads the same configuration as the server so
// both ends agree on the signing key and issuer.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gatepass/internal/platform/config"
	"gatepass/internal/token"
)

func main() {
	station := flag.String("station", "", "station identifier to embed in the token (required)")
	admin := flag.Bool("admin", false, "grant admin role (event window control)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *station == "" {
		flag.Usage()
		os.Exit(2)
	}

	configPath := os.Getenv("GATEPASS_CONFIG")
	if configPath == "" {
		configPath = "config.yml"
	}
	cfg := config.MustLoad(configPath)

	tokens := token.NewService(cfg.Auth.SigningKey, cfg.Auth.Issuer)
	signed, err := tokens.IssueStationToken(*station, *admin, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "issue token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(signed)
}
