package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/opentracker/gps-device-mgmt/pkg/types"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("gps-device-mgmt-client")

// DeviceManagementClient is the fleet operator surface for other services,
// devices themselves speak the hardware endpoints directly.
type DeviceManagementClient interface {
	Device(ctx context.Context, deviceID string) (types.Device, error)
	CurrentPositions(ctx context.Context) ([]types.DevicePosition, error)
	QueueInstruction(ctx context.Context, deviceID, instruction string) (types.InstructionToken, error)
	Close(ctx context.Context)
}

type client struct {
	url        string
	tokenURL   string
	clientID   string
	secret     string
	httpClient http.Client

	mu           sync.Mutex
	accessToken  string
	tokenExpires time.Time
}

func New(ctx context.Context, serviceURL, tokenURL, clientID, clientSecret string) (DeviceManagementClient, error) {
	c := &client{
		url:      strings.TrimSuffix(serviceURL, "/"),
		tokenURL: tokenURL,
		clientID: clientID,
		secret:   clientSecret,
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	if tokenURL != "" {
		err := c.refreshToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get access token: %w", err)
		}
	}

	return c, nil
}

func (c *client) Device(ctx context.Context, deviceID string) (device types.Device, err error) {
	ctx, span := tracer.Start(ctx, "get-device")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	err = c.get(ctx, "/api/v0/devices/"+deviceID, &device)
	return
}

func (c *client) CurrentPositions(ctx context.Context) (positions []types.DevicePosition, err error) {
	ctx, span := tracer.Start(ctx, "current-positions")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	response := struct {
		Data []types.DevicePosition `json:"data"`
	}{}

	err = c.get(ctx, "/api/v0/devices/coordinates", &response)
	positions = response.Data
	return
}

func (c *client) QueueInstruction(ctx context.Context, deviceID, instruction string) (token types.InstructionToken, err error) {
	ctx, span := tracer.Start(ctx, "queue-instruction")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	body, err := json.Marshal(map[string]string{"instruction": instruction})
	if err != nil {
		return
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/v0/devices/"+deviceID+"/instructions", bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed to queue instruction: %w", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("queue instruction failed with status code %d", resp.StatusCode)
		return
	}

	err = json.NewDecoder(resp.Body).Decode(&token)
	return
}

func (c *client) Close(ctx context.Context) {
	c.httpClient.CloseIdleConnections()
}

func (c *client) get(ctx context.Context, path string, result any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("device not found")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed with status code %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	return json.Unmarshal(respBody, result)
}

func (c *client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}

	token, err := c.bearerToken(ctx)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Add("Authorization", "Bearer "+token)
	}

	return req, nil
}

func (c *client) bearerToken(ctx context.Context) (string, error) {
	if c.tokenURL == "" {
		return "", nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if time.Now().Before(c.tokenExpires) {
		return c.accessToken, nil
	}

	err := c.refreshToken(ctx)
	if err != nil {
		return "", err
	}

	return c.accessToken, nil
}

// refreshToken runs the client credentials flow against the token endpoint.
// Callers hold the mutex or are still single threaded in New.
func (c *client) refreshToken(ctx context.Context) error {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.clientID},
		"client_secret": {c.secret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request failed with status code %d", resp.StatusCode)
	}

	tokenResponse := struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}{}

	err = json.NewDecoder(resp.Body).Decode(&tokenResponse)
	if err != nil {
		return fmt.Errorf("failed to unmarshal token response: %w", err)
	}

	c.accessToken = tokenResponse.AccessToken
	c.tokenExpires = time.Now().Add(time.Duration(tokenResponse.ExpiresIn) * time.Second)

	return nil
}
