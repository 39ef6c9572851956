package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-lite-wallet/internal/config"
	"github.com/MKhiriev/go-lite-wallet/internal/logger"
	"github.com/MKhiriev/go-lite-wallet/internal/utils"
)

type executeRequest struct {
	Command string `json:"command"`
	Args    string `json:"args"`
}

type initRequest struct {
	ServerURI string `json:"server_uri"`
	Seed      string `json:"seed,omitempty"`
	Birthday  int64  `json:"birthday,omitempty"`
	Overwrite bool   `json:"overwrite,omitempty"`
}

type resultResponse struct {
	Result string `json:"result"`
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

type httpEngineBridge struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPEngineBridge constructs the HTTP implementation of [EngineBridge].
// It normalises the base URL from engineCfg.Address and applies the request
// timeout to every call.
//
// Returns an error if engineCfg.Address is empty or cannot be parsed as a
// valid URL.
func NewHTTPEngineBridge(engineCfg config.ClientEngine, logger *logger.Logger) (EngineBridge, error) {
	baseURL, err := normalizeBaseURL(engineCfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid engine address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, engineCfg.RequestTimeout, logger)
	return &httpEngineBridge{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Execute implements [engine.Executor]. The engine's answer is returned as
// is, including "Error" text and JSON error objects.
func (h *httpEngineBridge) Execute(ctx context.Context, command, arg string) (string, error) {
	return h.postResult(ctx, "/execute", executeRequest{Command: command, Args: arg})
}

// WalletExists implements [engine.Lifecycle].
func (h *httpEngineBridge) WalletExists(ctx context.Context, chainName string) (bool, error) {
	var res existsResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("chain", chainName).
		SetResult(&res).
		Get("/wallet/exists")
	if err != nil {
		return false, fmt.Errorf("wallet exists request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return false, err
	}

	return res.Exists, nil
}

// InitializeNew implements [engine.Lifecycle].
func (h *httpEngineBridge) InitializeNew(ctx context.Context, serverURI string) (string, error) {
	return h.postResult(ctx, "/wallet/new", initRequest{ServerURI: serverURI})
}

// InitializeFromSeed implements [engine.Lifecycle].
func (h *httpEngineBridge) InitializeFromSeed(ctx context.Context, serverURI, seed string, birthday int64, overwrite bool) (string, error) {
	return h.postResult(ctx, "/wallet/restore", initRequest{
		ServerURI: serverURI,
		Seed:      seed,
		Birthday:  birthday,
		Overwrite: overwrite,
	})
}

// InitializeExisting implements [engine.Lifecycle].
func (h *httpEngineBridge) InitializeExisting(ctx context.Context, serverURI string) (string, error) {
	return h.postResult(ctx, "/wallet/open", initRequest{ServerURI: serverURI})
}

// Deinitialize implements [engine.Lifecycle].
func (h *httpEngineBridge) Deinitialize(ctx context.Context) (string, error) {
	return h.postResult(ctx, "/wallet/close", nil)
}

func (h *httpEngineBridge) postResult(ctx context.Context, path string, body any) (string, error) {
	var res resultResponse

	req := h.client.R().
		SetContext(ctx).
		SetResult(&res)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Post(path)
	if err != nil {
		return "", fmt.Errorf("engine bridge %s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Str("path", path).Int("status", resp.StatusCode()).Msg("engine bridge returned error status")
		return "", err
	}

	return res.Result, nil
}
