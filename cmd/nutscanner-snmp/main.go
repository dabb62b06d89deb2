package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kosta-hiveradar/HR-IoT-UPS-NUT/internal/catalog"
	"github.com/kosta-hiveradar/HR-IoT-UPS-NUT/internal/config"
	"github.com/kosta-hiveradar/HR-IoT-UPS-NUT/internal/iprange"
	"github.com/kosta-hiveradar/HR-IoT-UPS-NUT/internal/snmpscan"
)

func main() {
	start := flag.String("start", "", "first address in the scan range")
	end := flag.String("end", "", "last address in the scan range (defaults to -start)")
	community := flag.String("community", "", "SNMPv1/v2c community string (default \"public\")")
	secLevel := flag.String("sec-level", "", "SNMPv3 security level: noAuthNoPriv, authNoPriv, authPriv")
	secName := flag.String("sec-name", "", "SNMPv3 security name")
	authProto := flag.String("auth-protocol", "", "SNMPv3 auth protocol: MD5, SHA, SHA256, SHA384, SHA512")
	authPassword := flag.String("auth-password", "", "SNMPv3 auth passphrase")
	privProto := flag.String("priv-protocol", "", "SNMPv3 privacy protocol: DES, AES, AES192, AES256")
	privPassword := flag.String("priv-password", "", "SNMPv3 privacy passphrase")
	timeout := flag.Duration("timeout", 0, "per-GET timeout (defaults to config)")
	configPath := flag.String("config", "", "optional config file (yaml/json/toml) read by viper")
	flag.Parse()

	if *start == "" {
		fmt.Fprintln(os.Stderr, "usage: nutscanner-snmp -start=<ip> [-end=<ip>] [credential flags]")
		os.Exit(2)
	}
	if *end == "" {
		*end = *start
	}

	v := viper.New()
	if *configPath != "" {
		v.SetConfigFile(*configPath)
		if err := v.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "reading config: %v\n", err)
			os.Exit(1)
		}
	}

	logger, err := config.NewLogger(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	scanCfg, err := config.Load(v, "scan")
	if err != nil {
		logger.Fatal("loading scan config", zap.Error(err))
	}

	creds := snmpscan.Credentials{
		Community:    *community,
		SecLevel:     *secLevel,
		SecName:      *secName,
		AuthProtocol: *authProto,
		AuthPassword: *authPassword,
		PrivProtocol: *privProto,
		PrivPassword: *privPassword,
	}

	scanner := snmpscan.NewScanner(logger, scanCfg, catalog.Default())

	ranges := []iprange.Range{{Start: *start, End: *end}}

	results, err := scanner.Scan(ranges, *timeout, creds)
	if err != nil {
		logger.Fatal("scan failed", zap.Error(err))
	}

	logger.Info("scan complete",
		zap.Int("devices_found", len(results)),
		zap.String("range", fmt.Sprintf("%s-%s", *start, *end)),
		zap.Duration("elapsed_budget", *timeout),
	)

	for _, d := range results {
		fmt.Printf("driver=%s\n", d.Driver)
		fmt.Printf("port=%s\n", d.Peer)
		for _, key := range d.Options.Keys() {
			val, _ := d.Options.Get(key)
			fmt.Printf("%s=%s\n", key, val)
		}
		fmt.Println()
	}
}
