package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fin-keeper/internal/adapter"
)

type clientConnectivityService struct {
	adapter adapter.ServerAdapter
}

func NewClientConnectivityService(serverAdapter adapter.ServerAdapter) ConnectivityService {
	return &clientConnectivityService{adapter: serverAdapter}
}

// Ping asks the server for its build info. Any answer counts, even one the
// device cannot use.
func (c *clientConnectivityService) Ping(ctx context.Context) error {
	if _, err := c.adapter.Version(ctx); err != nil {
		return fmt.Errorf("ping server: %w", err)
	}
	return nil
}
