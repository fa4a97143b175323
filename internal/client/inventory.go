// ABOUTME: Stock, movement and dashboard endpoints of the inventory API
// ABOUTME: Read-mostly views plus movement registration

package client

import (
	"context"
)

// StockLevels calls GET /api/inventario/productos-con-stock
func (c *Client) StockLevels(ctx context.Context) ([]StockItem, error) {
	var items []StockItem
	if err := c.Get(ctx, "/api/inventario/productos-con-stock", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Movements calls GET /api/inventario/movimientos
func (c *Client) Movements(ctx context.Context) ([]Movement, error) {
	var movements []Movement
	if err := c.Get(ctx, "/api/inventario/movimientos", &movements); err != nil {
		return nil, err
	}
	return movements, nil
}

// CreateMovement calls POST /api/inventario/movimientos
func (c *Client) CreateMovement(ctx context.Context, input MovementInput) (*Movement, error) {
	var movement Movement
	if err := c.Post(ctx, "/api/inventario/movimientos", input, &movement); err != nil {
		return nil, err
	}
	return &movement, nil
}

// DashboardStats calls GET /api/dashboard/stats
func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.Get(ctx, "/api/dashboard/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
