// Package client is the typed resource client for the platform's REST API.
// It is the only way the console and dashboard reach the remote store.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"proxym-fin/internal/dto"
)

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken installs the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Error string `json:"error"`
		}
		msg := resp.Status
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error != "" {
			msg = envelope.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Auth

// Login authenticates and installs the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", dto.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

func (c *Client) Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Users

func (c *Client) Users(ctx context.Context) ([]dto.User, error) {
	var out []dto.User
	err := c.do(ctx, http.MethodGet, "/users", nil, &out)
	return out, err
}

func (c *Client) User(ctx context.Context, id int64) (*dto.User, error) {
	var out dto.User
	if err := c.do(ctx, http.MethodGet, "/users/"+formatID(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateUser(ctx context.Context, user dto.User) (*dto.User, error) {
	var out dto.User
	if err := c.do(ctx, http.MethodPost, "/users", user, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, user dto.User) (*dto.User, error) {
	var out dto.User
	if err := c.do(ctx, http.MethodPut, "/users/"+formatID(user.ID), user, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/users/"+formatID(id), nil, nil)
}

// Products

func (c *Client) Products(ctx context.Context) ([]dto.Product, error) {
	var out []dto.Product
	err := c.do(ctx, http.MethodGet, "/products", nil, &out)
	return out, err
}

func (c *Client) CreateProduct(ctx context.Context, product dto.Product) (*dto.Product, error) {
	var out dto.Product
	if err := c.do(ctx, http.MethodPost, "/products", product, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, product dto.Product) (*dto.Product, error) {
	var out dto.Product
	if err := c.do(ctx, http.MethodPut, "/products/"+formatID(product.ID), product, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/products/"+formatID(id), nil, nil)
}

// Transactions

func (c *Client) Transactions(ctx context.Context) ([]dto.Transaction, error) {
	var out []dto.Transaction
	err := c.do(ctx, http.MethodGet, "/transactions", nil, &out)
	return out, err
}

func (c *Client) TransactionsByUser(ctx context.Context, userID int64) ([]dto.Transaction, error) {
	var out []dto.Transaction
	err := c.do(ctx, http.MethodGet, "/transactions/user/"+formatID(userID), nil, &out)
	return out, err
}

func (c *Client) CreateTransaction(ctx context.Context, tx dto.Transaction) (*dto.Transaction, error) {
	var out dto.Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions", tx, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, tx dto.Transaction) (*dto.Transaction, error) {
	var out dto.Transaction
	if err := c.do(ctx, http.MethodPut, "/transactions/"+formatID(tx.ID), tx, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/transactions/"+formatID(id), nil, nil)
}

// Recommendations and chat

func (c *Client) Recommendations(ctx context.Context, userID int64) ([]dto.Product, error) {
	var out []dto.Product
	err := c.do(ctx, http.MethodGet, "/recommendations/"+formatID(userID), nil, &out)
	return out, err
}

func (c *Client) Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	var out dto.ChatResponse
	if err := c.do(ctx, http.MethodPost, "/chat", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
