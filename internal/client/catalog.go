// ABOUTME: Product and category endpoints of the inventory API
// ABOUTME: Plain CRUD over /api/productos and /api/categorias

package client

import (
	"context"
	"fmt"
)

// Products calls GET /api/productos
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.Get(ctx, "/api/productos", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct calls POST /api/productos
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	var product Product
	if err := c.Post(ctx, "/api/productos", input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct calls PUT /api/productos/{id}
func (c *Client) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*Product, error) {
	var product Product
	if err := c.Put(ctx, fmt.Sprintf("/api/productos/%d", id), input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct calls DELETE /api/productos/{id}
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/api/productos/%d", id))
}

// Categories calls GET /api/categorias
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.Get(ctx, "/api/categorias", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory calls POST /api/categorias
func (c *Client) CreateCategory(ctx context.Context, category Category) (*Category, error) {
	var created Category
	if err := c.Post(ctx, "/api/categorias", category, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCategory calls PUT /api/categorias/{id} with the full record
func (c *Client) UpdateCategory(ctx context.Context, category Category) (*Category, error) {
	var updated Category
	if err := c.Put(ctx, fmt.Sprintf("/api/categorias/%d", category.ID), category, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCategory calls DELETE /api/categorias/{id}
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/api/categorias/%d", id))
}
