package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"shop_automation/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Response is the uniform result of every API call. Data holds the decoded
// JSON body, or the raw text when the server did not answer with JSON.
type Response struct {
	StatusCode   int
	Headers      http.Header
	Data         any
	ResponseTime time.Duration
}

// Client is a thin REST client for cross-checking UI state against the
// backend. Idempotent requests retry on 429 and 5xx with linear backoff.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
	retries    int
	authToken  string
}

func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.APITimeout},
		log:        log,
		retries:    cfg.APIRetries,
	}
}

// SetAuthToken attaches a bearer token to subsequent requests.
func (c *Client) SetAuthToken(token string) {
	c.authToken = token
	c.log.Info("authentication token set")
}

func (c *Client) ClearAuthToken() {
	c.authToken = ""
	c.log.Info("authentication token cleared")
}

var retryableStatus = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

func idempotent(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body any) (*Response, error) {
	u := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
	}

	c.log.Infof("making %s request to: %s", method, u)
	start := time.Now()

	attempts := 1
	if idempotent(method) {
		attempts += c.retries
	}

	var resp *http.Response
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if c.authToken != "" {
			req.Header.Set("Authorization", "Bearer "+c.authToken)
		}

		resp, err = c.httpClient.Do(req)
		if err != nil {
			if attempt == attempts-1 {
				return nil, fmt.Errorf("%s %s: %w", method, u, err)
			}
			c.log.Warnf("request failed, retrying: %v", err)
			continue
		}
		if retryableStatus[resp.StatusCode] && attempt < attempts-1 {
			c.log.Warnf("got status %d, retrying", resp.StatusCode)
			resp.Body.Close()
			resp = nil
			continue
		}
		break
	}
	if resp == nil {
		return nil, fmt.Errorf("%s %s: no response", method, u)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	result := &Response{
		StatusCode:   resp.StatusCode,
		Headers:      resp.Header,
		ResponseTime: time.Since(start),
	}
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var data any
		if err := json.Unmarshal(raw, &data); err == nil {
			result.Data = data
		} else {
			result.Data = string(raw)
		}
	} else {
		result.Data = string(raw)
	}

	c.log.Infof("response status: %d (%.2fs)", result.StatusCode, result.ResponseTime.Seconds())
	return result, nil
}

func (c *Client) Get(ctx context.Context, endpoint string, query url.Values) (*Response, error) {
	return c.do(ctx, http.MethodGet, endpoint, query, nil)
}

func (c *Client) Post(ctx context.Context, endpoint string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, endpoint, nil, body)
}

func (c *Client) Put(ctx context.Context, endpoint string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPut, endpoint, nil, body)
}

func (c *Client) Patch(ctx context.Context, endpoint string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPatch, endpoint, nil, body)
}

func (c *Client) Delete(ctx context.Context, endpoint string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil)
}

// Auth endpoints

func (c *Client) RegisterUser(ctx context.Context, user any) (*Response, error) {
	return c.Post(ctx, "/auth/register", user)
}

func (c *Client) LoginUser(ctx context.Context, email, password string) (*Response, error) {
	return c.Post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// User endpoints

func (c *Client) GetUserProfile(ctx context.Context, userID string) (*Response, error) {
	return c.Get(ctx, "/users/"+userID, nil)
}

func (c *Client) UpdateUserProfile(ctx context.Context, userID string, user any) (*Response, error) {
	return c.Put(ctx, "/users/"+userID, user)
}

// Product endpoints

func (c *Client) GetProducts(ctx context.Context, filters url.Values) (*Response, error) {
	return c.Get(ctx, "/products", filters)
}

func (c *Client) GetProductByID(ctx context.Context, productID string) (*Response, error) {
	return c.Get(ctx, "/products/"+productID, nil)
}

func (c *Client) SearchProducts(ctx context.Context, query string) (*Response, error) {
	return c.Get(ctx, "/products/search", url.Values{"q": []string{query}})
}

// Cart endpoints

func (c *Client) GetCart(ctx context.Context, userID string) (*Response, error) {
	return c.Get(ctx, fmt.Sprintf("/users/%s/cart", userID), nil)
}

func (c *Client) AddToCart(ctx context.Context, userID, productID string, quantity int) (*Response, error) {
	return c.Post(ctx, fmt.Sprintf("/users/%s/cart", userID), map[string]any{
		"product_id": productID,
		"quantity":   quantity,
	})
}

func (c *Client) RemoveFromCart(ctx context.Context, userID, itemID string) (*Response, error) {
	return c.Delete(ctx, fmt.Sprintf("/users/%s/cart/%s", userID, itemID))
}

func (c *Client) ClearCart(ctx context.Context, userID string) (*Response, error) {
	return c.Delete(ctx, fmt.Sprintf("/users/%s/cart", userID))
}

// Order endpoints

func (c *Client) CreateOrder(ctx context.Context, order any) (*Response, error) {
	return c.Post(ctx, "/orders", order)
}

func (c *Client) GetOrderDetails(ctx context.Context, orderID string) (*Response, error) {
	return c.Get(ctx, "/orders/"+orderID, nil)
}

func (c *Client) GetUserOrders(ctx context.Context, userID string) (*Response, error) {
	return c.Get(ctx, fmt.Sprintf("/users/%s/orders", userID), nil)
}

func (c *Client) CancelOrder(ctx context.Context, orderID string) (*Response, error) {
	return c.Patch(ctx, fmt.Sprintf("/orders/%s/cancel", orderID), nil)
}

// HealthCheck probes the API health endpoint.
func (c *Client) HealthCheck(ctx context.Context) (*Response, error) {
	return c.Get(ctx, "/health", nil)
}

// WaitForAPIReady polls the health endpoint until it answers 200 or the
// context expires.
func (c *Client) WaitForAPIReady(ctx context.Context, maxAttempts int) error {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := c.HealthCheck(ctx)
		if err == nil && resp.StatusCode == http.StatusOK {
			c.log.Info("API is ready")
			return nil
		}
		c.log.Infof("API not ready, attempt %d/%d", attempt, maxAttempts)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return fmt.Errorf("API not ready after %d attempts", maxAttempts)
}
