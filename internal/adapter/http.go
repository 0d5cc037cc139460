package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/go-fin-keeper/internal/config"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/utils"
	"github.com/MKhiriev/go-fin-keeper/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	hasher *utils.Hasher

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter talks to the REST API at cfg.ServerAddress. A
// non-empty hashKey signs push bodies.
func NewHTTPServerAdapter(cfg config.ClientAdapter, hashKey string, logger *logger.Logger) (ServerAdapter, error) {
	address := strings.TrimSpace(cfg.ServerAddress)
	if address == "" {
		return nil, fmt.Errorf("invalid adapter address: empty")
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(address, cfg.RequestTimeout),
		hasher: utils.NewHasher(hashKey),
		logger: logger,
	}, nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/user/register", credentials)
}

func (h *httpServerAdapter) Login(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/user/login", credentials)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, credentials models.Credentials) (models.AuthResponse, error) {
	var auth models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(credentials).
		SetResult(&auth).
		Post(path)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	if auth.Token == "" {
		if auth.Token, err = utils.ParseBearerToken(resp.Header().Get("Authorization")); err != nil {
			return models.AuthResponse{}, fmt.Errorf("%s: no token in response: %w", path, err)
		}
	}

	h.SetToken(auth.Token)
	return auth, nil
}

// Push signs the rows when a hash key is configured; the server computes the
// digest over the same JSON encoding of the rows.
func (h *httpServerAdapter) Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error) {
	if h.hasher.Enabled() {
		rows, err := json.Marshal(req.Rows)
		if err != nil {
			return models.PushResponse{}, fmt.Errorf("marshal rows: %w", err)
		}
		req.Hash = h.hasher.Sum(rows)
	}

	var result models.PushResponse
	if err := h.post(ctx, "/api/sync/push", req, &result); err != nil {
		return models.PushResponse{}, err
	}
	return result, nil
}

func (h *httpServerAdapter) Pull(ctx context.Context, req models.PullRequest) (models.PullResponse, error) {
	var result models.PullResponse
	if err := h.post(ctx, "/api/sync/pull", req, &result); err != nil {
		return models.PullResponse{}, err
	}
	return result, nil
}

func (h *httpServerAdapter) Stats(ctx context.Context, req models.StatsRequest) (models.StatsResponse, error) {
	var result models.StatsResponse
	if err := h.post(ctx, "/api/sync/stats", req, &result); err != nil {
		return models.StatsResponse{}, err
	}
	return result, nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (models.AppBuildInfo, error) {
	var result models.AppBuildInfo
	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/api/version")
	if err != nil {
		return models.AppBuildInfo{}, fmt.Errorf("%w: /api/version: %w", ErrServerUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AppBuildInfo{}, err
	}
	return result, nil
}

func (h *httpServerAdapter) post(ctx context.Context, path string, body, result any) error {
	token := h.Token()
	if token == "" {
		return ErrNoToken
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(result).
		Post(path)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("path", path).Msg("request failed")
		return fmt.Errorf("%w: %s: %w", ErrServerUnavailable, path, err)
	}

	return mapHTTPError(resp)
}
