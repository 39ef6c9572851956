package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for the JSON file format.
type StructuredJSONConfig struct {
	App struct {
		ChainName       string `json:"chain_name"`
		ServerURI       string `json:"server_uri"`
		LogPath         string `json:"log_path"`
		LogLevel        string `json:"log_level"`
		RestoreSeed     string `json:"restore_seed"`
		RestoreBirthday int64  `json:"restore_birthday"`
		Version         string `json:"version"`
	} `json:"app,omitempty"`

	Engine struct {
		Address        string   `json:"address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"engine,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		RefreshInterval      Duration `json:"refresh_interval"`
		ChangeDetectInterval Duration `json:"change_detect_interval"`
		SyncPollInterval     Duration `json:"sync_poll_interval"`
		SyncRetryBudget      int      `json:"sync_retry_budget"`
		SendPollInterval     Duration `json:"send_poll_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			ChainName:       jsonCfg.App.ChainName,
			ServerURI:       jsonCfg.App.ServerURI,
			LogPath:         jsonCfg.App.LogPath,
			LogLevel:        jsonCfg.App.LogLevel,
			RestoreSeed:     jsonCfg.App.RestoreSeed,
			RestoreBirthday: jsonCfg.App.RestoreBirthday,
			Version:         jsonCfg.App.Version,
		},
		Engine: Engine{
			Address:        jsonCfg.Engine.Address,
			RequestTimeout: time.Duration(jsonCfg.Engine.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Workers: Workers{
			RefreshInterval:      time.Duration(jsonCfg.Workers.RefreshInterval),
			ChangeDetectInterval: time.Duration(jsonCfg.Workers.ChangeDetectInterval),
			SyncPollInterval:     time.Duration(jsonCfg.Workers.SyncPollInterval),
			SyncRetryBudget:      jsonCfg.Workers.SyncRetryBudget,
			SendPollInterval:     time.Duration(jsonCfg.Workers.SendPollInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
