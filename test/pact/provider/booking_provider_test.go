//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	pacttest "github.com/pawsit/pawsit-server/test/pact"

	analyticsapp "github.com/pawsit/pawsit-server/internal/domains/analytics/application"
	bookingmemory "github.com/pawsit/pawsit-server/internal/domains/bookings/adapters/memory"
	bookingsobs "github.com/pawsit/pawsit-server/internal/domains/bookings/adapters/observability"
	bookingsapp "github.com/pawsit/pawsit-server/internal/domains/bookings/application"
	bookingdomain "github.com/pawsit/pawsit-server/internal/domains/bookings/domain"
	notifmemory "github.com/pawsit/pawsit-server/internal/domains/notifications/adapters/memory"
	notifapp "github.com/pawsit/pawsit-server/internal/domains/notifications/application"
	paymentmemory "github.com/pawsit/pawsit-server/internal/domains/payments/adapters/memory"
	paymentworkflows "github.com/pawsit/pawsit-server/internal/domains/payments/adapters/workflows"
	paymentsapp "github.com/pawsit/pawsit-server/internal/domains/payments/application"
	petmemory "github.com/pawsit/pawsit-server/internal/domains/pets/adapters/memory"
	petsapp "github.com/pawsit/pawsit-server/internal/domains/pets/application"
	reviewmemory "github.com/pawsit/pawsit-server/internal/domains/reviews/adapters/memory"
	reviewsapp "github.com/pawsit/pawsit-server/internal/domains/reviews/application"
	usermemory "github.com/pawsit/pawsit-server/internal/domains/users/adapters/memory"
	userapp "github.com/pawsit/pawsit-server/internal/domains/users/application"
	pawsitserver "github.com/pawsit/pawsit-server/server"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestPawsitProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateBookingsBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetBookings(t)
			return nil, nil
		},
		pacttest.StateBookingExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetBookings(t)
			if setup {
				app.seedBooking(t, pacttest.ExistingBookingID)
			}
			return nil, nil
		},
		pacttest.StateBookingMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetBookings(t)
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.resetBookings(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	bookings *bookingmemory.Repository
	server   *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	userRepo := usermemory.NewRepository()
	petRepo := petmemory.NewRepository()
	bookingRepo := bookingmemory.NewRepository()
	paymentRepo := paymentmemory.NewRepository()
	reviewRepo := reviewmemory.NewRepository()
	notifRepo := notifmemory.NewRepository()

	userService := userapp.NewService(userRepo, usermemory.NewSessionStore())
	petService := petsapp.NewService(petRepo, nil)
	notifService := notifapp.NewService(notifRepo, notifmemory.NewDispatcher())
	bookingService := bookingsobs.New(bookingsapp.NewService(bookingRepo))
	paymentService := paymentsapp.NewService(paymentRepo, paymentmemory.NewGateway())
	reviewService := reviewsapp.NewService(reviewRepo)
	analyticsService := analyticsapp.NewService(bookingRepo, paymentRepo, reviewRepo, petRepo, userRepo)

	handlers := pawsitserver.ApiHandleFunctions{
		UserAPI:         pawsitserver.NewUserAPI(userService),
		PetAPI:          pawsitserver.NewPetAPI(petService),
		BookingAPI:      pawsitserver.NewBookingAPI(bookingService),
		PaymentAPI:      pawsitserver.NewPaymentAPI(paymentService, paymentworkflows.NewInlinePaymentWorkflows(paymentService)),
		ReviewAPI:       pawsitserver.NewReviewAPI(reviewService),
		NotificationAPI: pawsitserver.NewNotificationAPI(notifService),
		AnalyticsAPI:    pawsitserver.NewAnalyticsAPI(analyticsService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = pawsitserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		bookings: bookingRepo,
		server:   server,
	}
}

func (a *contractProviderApp) resetBookings(t testing.TB) {
	t.Helper()
	bookings, err := a.bookings.List(context.Background())
	require.NoError(t, err)
	for _, projection := range bookings {
		_ = a.bookings.Delete(context.Background(), projection.Entity.ID)
	}
}

func (a *contractProviderApp) seedBooking(t testing.TB, id int64) {
	t.Helper()
	start := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	booking, err := bookingdomain.NewBooking(id, pacttest.OwnerID, pacttest.SitterID, []int64{pacttest.PetID}, start, start.AddDate(0, 0, 2), 150)
	require.NoError(t, err)
	_, err = a.bookings.Save(context.Background(), booking)
	require.NoError(t, err)
}
