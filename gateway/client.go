// Package gateway is the REST client for the PhoneConnect gateway.
package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fctx"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/phoneconnect/dial/api/errorkinds"
	"github.com/phoneconnect/dial/internal/serde"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds every request to the gateway.
const DefaultTimeout = 10 * time.Second

// Client talks to the gateway over HTTP with a bearer token.
type Client struct {
	baseURL string
	token   string

	http *http.Client
	log  zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New returns a client for the gateway at baseURL.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: DefaultTimeout},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Call asks the gateway to have the device dial number.
func (c *Client) Call(ctx context.Context, deviceID, number string) (CallResult, error) {
	ctx = fctx.WithMeta(ctx, "device_id", deviceID)

	if strings.TrimSpace(deviceID) == "" {
		return CallResult{}, fault.Wrap(errorkinds.ErrEmptyDeviceID,
			fctx.With(ctx),
			ftag.With(ftag.InvalidArgument),
			fmsg.WithDesc("empty device id", "Device ID must not be empty"),
		)
	}
	if err := ValidatePhone(number); err != nil {
		return CallResult{}, err
	}

	body, err := serde.MarshalJson(callRequest{DeviceID: deviceID, Number: number})
	if err != nil {
		return CallResult{}, fault.Wrap(err, fctx.With(ctx), ftag.With(ftag.Internal))
	}

	resp, data, err := c.do(ctx, http.MethodPost, "/call", body, true)
	if err != nil {
		return CallResult{}, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var r callResponse
		if err := serde.UnmarshalJson(data, &r); err != nil {
			return CallResult{}, c.decodeError(ctx, err)
		}

		result := CallResult{DeviceID: r.DeviceID, CommandID: r.CommandID}
		if result.DeviceID == "" {
			result.DeviceID = deviceID
		}

		c.log.Debug().Str("device_id", result.DeviceID).Str("command_id", result.CommandID).Msg("call dispatched")

		return result, nil

	case http.StatusUnauthorized:
		return CallResult{}, unauthorized(ctx)

	case http.StatusNotFound:
		return CallResult{}, fault.Wrap(errorkinds.ErrDeviceOffline,
			fctx.With(ctx),
			ftag.With(ftag.NotFound),
			fmsg.WithDesc("device offline",
				fmt.Sprintf("Device '%s' is not connected to the gateway", deviceID)),
		)
	}

	var e errorResponse
	msg := "Unknown error"
	if serde.UnmarshalJson(data, &e) == nil {
		switch {
		case e.Reason != "":
			msg = e.Reason
		case e.Error != "":
			msg = e.Error
		}
	}

	return CallResult{}, gatewayError(ctx, resp.StatusCode, msg)
}

// Devices lists the devices connected to the gateway.
func (c *Client) Devices(ctx context.Context) (DevicesResponse, error) {
	resp, data, err := c.do(ctx, http.MethodGet, "/devices", nil, true)
	if err != nil {
		return DevicesResponse{}, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var r DevicesResponse
		if err := serde.UnmarshalJson(data, &r); err != nil {
			return DevicesResponse{}, c.decodeError(ctx, err)
		}

		return r, nil

	case http.StatusUnauthorized:
		return DevicesResponse{}, unauthorized(ctx)
	}

	return DevicesResponse{}, gatewayError(ctx, resp.StatusCode, strings.TrimSpace(string(data)))
}

// Health returns the gateway's health document. The endpoint needs no token.
func (c *Client) Health(ctx context.Context) (Health, error) {
	_, data, err := c.do(ctx, http.MethodGet, "/health", nil, false)
	if err != nil {
		return nil, err
	}

	h := Health{}
	if err := serde.UnmarshalJson(data, &h); err != nil {
		return nil, c.decodeError(ctx, err)
	}

	return h, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, auth bool) (*http.Response, []byte, error) {
	ctx = fctx.WithMeta(ctx, "method", method, "path", path)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, fault.Wrap(err,
			fctx.With(ctx),
			ftag.With(ftag.InvalidArgument),
			fmsg.With("Invalid gateway URL"),
		)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log.Debug().Str("method", method).Str("url", req.URL.String()).Msg("gateway request")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fault.Wrap(err,
			fctx.With(ctx),
			ftag.With(ftag.Internal),
			fmsg.WithDesc("request failed", "HTTP request failed: "+err.Error()),
		)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fault.Wrap(err,
			fctx.With(ctx),
			ftag.With(ftag.Internal),
			fmsg.With("Cannot read gateway response"),
		)
	}

	return resp, data, nil
}

func (c *Client) decodeError(ctx context.Context, err error) error {
	return fault.Wrap(err,
		fctx.With(ctx),
		ftag.With(ftag.Internal),
		fmsg.WithDesc("decode response", "Gateway returned an unreadable response"),
	)
}

func unauthorized(ctx context.Context) error {
	return fault.Wrap(errorkinds.ErrUnauthorized,
		fctx.With(ctx),
		ftag.With(ftag.Unauthenticated),
		fmsg.WithDesc("unauthorized", "Unauthorized — check the token in your config file"),
	)
}

func gatewayError(ctx context.Context, status int, msg string) error {
	ctx = fctx.WithMeta(ctx, "status", fmt.Sprint(status))

	return fault.Wrap(errorkinds.ErrGateway,
		fctx.With(ctx),
		ftag.With(ftag.Internal),
		fmsg.WithDesc("gateway error", fmt.Sprintf("Gateway returned %d: %s", status, msg)),
	)
}
