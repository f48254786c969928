//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/pawsit/pawsit-server/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type bookingPayload struct {
	ID          int64   `json:"id"`
	OwnerID     int64   `json:"ownerId"`
	SitterID    int64   `json:"sitterId"`
	PetIDs      []int64 `json:"petIds"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"totalAmount"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestPortalBookingContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	requestBooking := bookingPayload{
		ID:          pacttest.ExistingBookingID,
		OwnerID:     pacttest.OwnerID,
		SitterID:    pacttest.SitterID,
		PetIDs:      []int64{pacttest.PetID},
		Status:      "PENDING",
		TotalAmount: 150,
		StartDate:   "2026-04-01T08:00:00Z",
		EndDate:     "2026-04-03T08:00:00Z",
	}
	bookingBodyMatcher := matchers.Map{
		"id":          matchers.Like(requestBooking.ID),
		"ownerId":     matchers.Like(requestBooking.OwnerID),
		"sitterId":    matchers.Like(requestBooking.SitterID),
		"petIds":      matchers.ArrayMinLike(requestBooking.PetIDs[0], 1),
		"status":      matchers.Term(requestBooking.Status, "PENDING|CONFIRMED|IN_PROGRESS|COMPLETED|CANCELLED"),
		"totalAmount": matchers.Like(requestBooking.TotalAmount),
		"startDate":   matchers.Like(requestBooking.StartDate),
		"endDate":     matchers.Like(requestBooking.EndDate),
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateBookingsBaseline).
		UponReceiving("a request to create a booking").
		WithRequest("POST", "/v1/bookings", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(bookingBodyMatcher)
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(bookingBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateBookingExists).
		UponReceiving("a request to fetch an existing booking").
		WithRequest("GET", fmt.Sprintf("/v1/bookings/%d", pacttest.ExistingBookingID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(bookingBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateBookingMissing).
		UponReceiving("a request for a missing booking").
		WithRequest("GET", fmt.Sprintf("/v1/bookings/%d", pacttest.MissingBookingID)).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newBookingClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		created, err := client.CreateBooking(ctx, requestBooking)
		if err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		if created == nil || created.ID == 0 {
			return fmt.Errorf("expected created booking ID to be set")
		}

		fetched, err := client.GetBooking(ctx, pacttest.ExistingBookingID)
		if err != nil {
			return fmt.Errorf("get booking: %w", err)
		}
		if fetched == nil || fetched.ID != pacttest.ExistingBookingID {
			return fmt.Errorf("expected booking id %d, got %+v", pacttest.ExistingBookingID, fetched)
		}

		if _, err := client.GetBooking(ctx, pacttest.MissingBookingID); err == nil {
			return fmt.Errorf("expected 404 for booking %d", pacttest.MissingBookingID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}

		return nil
	})
	require.NoError(t, err)
}

type bookingClient struct {
	baseURL    string
	httpClient *http.Client
}

func newBookingClient(config pactconsumer.MockServerConfig) *bookingClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &bookingClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *bookingClient) CreateBooking(ctx context.Context, booking bookingPayload) (*bookingPayload, error) {
	body, err := json.Marshal(booking)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/bookings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload bookingPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *bookingClient) GetBooking(ctx context.Context, id int64) (*bookingPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/v1/bookings/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload bookingPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}
