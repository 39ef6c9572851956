package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a local API address in format [host]:[port]
//	-engine engine bridge base URL
//	-engine-timeout engine command timeout (e.g., "30s", "1m")
//	-server lightwalletd server URI
//	-chain chain name ("main" or "test")
//	-d database DSN
//	-c/-config json file path with configs
//	-log-path log file path
//	-log-level log level
//	-request-timeout local API request timeout
//	-refresh-interval periodic refresh cadence
//	-change-interval change detection cadence
//	-sync-poll-interval sync status poll cadence
//	-sync-retries sync height poll budget
//	-send-poll-interval send progress poll cadence
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("litewallet", flag.ContinueOnError)

	var serverAddress NetAddress
	var engineAddress, serverURI, chainName string
	var databaseDSN, jsonConfigPath string
	var logPath, logLevel string
	var engineTimeout, requestTimeout time.Duration
	var refreshInterval, changeInterval, syncPollInterval, sendPollInterval time.Duration
	var syncRetries int

	fs.Var(&serverAddress, "a", "Local API address host:port")
	fs.StringVar(&engineAddress, "engine", "", "Engine bridge base URL")
	fs.DurationVar(&engineTimeout, "engine-timeout", 0, "Engine command timeout (e.g., 30s, 1m)")
	fs.StringVar(&serverURI, "server", "", "Lightwalletd server URI")
	fs.StringVar(&chainName, "chain", "", "Chain name (main, test)")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&logPath, "log-path", "", "Log file path")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Local API request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&refreshInterval, "refresh-interval", 0, "Periodic refresh interval")
	fs.DurationVar(&changeInterval, "change-interval", 0, "Change detection interval")
	fs.DurationVar(&syncPollInterval, "sync-poll-interval", 0, "Sync status poll interval")
	fs.IntVar(&syncRetries, "sync-retries", 0, "Sync height poll budget")
	fs.DurationVar(&sendPollInterval, "send-poll-interval", 0, "Send progress poll interval")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			ChainName: chainName,
			ServerURI: serverURI,
			LogPath:   logPath,
			LogLevel:  logLevel,
		},
		Engine: Engine{
			Address:        engineAddress,
			RequestTimeout: engineTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			RefreshInterval:      refreshInterval,
			ChangeDetectInterval: changeInterval,
			SyncPollInterval:     syncPollInterval,
			SyncRetryBudget:      syncRetries,
			SendPollInterval:     sendPollInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
