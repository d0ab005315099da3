// Package carrier is the HTTP client of the shipping aggregator used to book
// and track shipments.
package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"go.uber.org/zap"
)

const (
	maxResponseSize = 1 << 20
	deliveryTypeNow = "now"
)

var (
	ErrRequestFailed = errors.New("carrier request failed")
	ErrUnavailable   = errors.New("carrier unavailable")
)

// Config holds the carrier API endpoint and credentials.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errs.NewValueIsRequiredError("carrier base url")
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("carrier base url", err)
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return errs.NewValueIsRequiredError("carrier api key")
	}
	return nil
}

// Client implements ports.CarrierClient over the aggregator's REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ ports.CarrierClient = (*Client)(nil)

func NewClient(config Config, logger *zap.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		apiKey:     config.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(zap.String("component", "carrier-client")),
	}, nil
}

// CreateOrder books a pickup and returns the carrier order with its waybill.
func (c *Client) CreateOrder(ctx context.Context, request ports.ShipmentRequest) (ports.CarrierOrder, error) {
	body, err := newOrderRequest(request)
	if err != nil {
		return ports.CarrierOrder{}, err
	}

	var resp orderResponse
	if err = c.do(ctx, http.MethodPost, "/v1/orders", body, &resp); err != nil {
		return ports.CarrierOrder{}, err
	}
	if !resp.Success || resp.ID == "" {
		return ports.CarrierOrder{}, fmt.Errorf("%w: %s", ErrRequestFailed, resp.Error)
	}

	c.logger.Info("carrier order created",
		zap.String("reference_id", request.ReferenceID),
		zap.String("carrier_order_id", resp.ID),
		zap.String("waybill", resp.Courier.WaybillID))

	return ports.CarrierOrder{
		ID:         resp.ID,
		Waybill:    resp.Courier.WaybillID,
		TrackingID: resp.Courier.TrackingID,
		Status:     resp.Status,
		Price:      resp.Price,
	}, nil
}

// TrackShipment returns the carrier's current view of a waybill.
func (c *Client) TrackShipment(ctx context.Context, waybill, courierCompany string) (ports.Tracking, error) {
	if waybill == "" {
		return ports.Tracking{}, errs.NewValueIsRequiredError("waybill")
	}
	if courierCompany == "" {
		return ports.Tracking{}, errs.NewValueIsRequiredError("courier company")
	}

	path := fmt.Sprintf("/v1/trackings/%s/couriers/%s", url.PathEscape(waybill), url.PathEscape(courierCompany))

	var resp trackingResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return ports.Tracking{}, err
	}
	if !resp.Success {
		return ports.Tracking{}, fmt.Errorf("%w: %s", ErrRequestFailed, resp.Error)
	}

	tracking := ports.Tracking{
		Status:  resp.Status,
		Link:    resp.Link,
		History: make([]ports.TrackingEntry, 0, len(resp.History)),
	}
	for _, entry := range resp.History {
		tracking.History = append(tracking.History, ports.TrackingEntry{
			Status:    entry.Status,
			Note:      entry.Note,
			UpdatedAt: entry.UpdatedAt,
		})
	}
	return tracking, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("carrier: failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("carrier: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("carrier: failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var failure errorResponse
		_ = json.Unmarshal(body, &failure)
		return fmt.Errorf("%w: HTTP %d: %s", ErrRequestFailed, resp.StatusCode, failure.Error)
	}

	if err = json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("carrier: failed to decode response: %w", err)
	}
	return nil
}

func newOrderRequest(request ports.ShipmentRequest) (orderRequest, error) {
	originPostal, err := postalCode("origin postal code", request.Origin.PostalCode)
	if err != nil {
		return orderRequest{}, err
	}
	destinationPostal, err := postalCode("destination postal code", request.Destination.PostalCode)
	if err != nil {
		return orderRequest{}, err
	}

	items := make([]orderItem, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, orderItem{
			Name:     item.Name,
			Value:    json.Number(item.Value.String()),
			Quantity: item.Quantity,
			Weight:   item.Weight,
		})
	}

	return orderRequest{
		ShipperContactName:      request.Shipper.ContactName,
		ShipperContactPhone:     request.Shipper.ContactPhone,
		ShipperContactEmail:     request.Shipper.ContactEmail,
		ShipperOrganization:     request.Shipper.Organisation,
		OriginContactName:       request.Origin.ContactName,
		OriginContactPhone:      request.Origin.ContactPhone,
		OriginAddress:           request.Origin.Address,
		OriginPostalCode:        originPostal,
		DestinationContactName:  request.Destination.ContactName,
		DestinationContactPhone: request.Destination.ContactPhone,
		DestinationContactEmail: request.Destination.ContactEmail,
		DestinationAddress:      request.Destination.Address,
		DestinationPostalCode:   destinationPostal,
		CourierCompany:          request.CourierCompany,
		CourierType:             request.CourierType,
		DeliveryType:            deliveryTypeNow,
		ReferenceID:             request.ReferenceID,
		Items:                   items,
	}, nil
}

func postalCode(param, value string) (int, error) {
	code, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return code, nil
}
