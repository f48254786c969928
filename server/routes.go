// Package pawsitserver exposes the REST API over the bounded contexts.
package pawsitserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds an HTTP method and path pattern to a handler.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router with a default gin engine.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine registers all API routes on the given engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers 200 for routes without a wired handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusOK, "Hello World!")
}

// ApiHandleFunctions aggregates the per-context API handlers.
type ApiHandleFunctions struct {
	UserAPI         UserAPI
	PetAPI          PetAPI
	BookingAPI      BookingAPI
	PaymentAPI      PaymentAPI
	ReviewAPI       ReviewAPI
	NotificationAPI NotificationAPI
	AnalyticsAPI    AnalyticsAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"CreateUser", http.MethodPost, "/v1/users", handleFunctions.UserAPI.CreateUser},
		{"ListUsers", http.MethodGet, "/v1/users", handleFunctions.UserAPI.ListUsers},
		{"GetUser", http.MethodGet, "/v1/users/:userId", handleFunctions.UserAPI.GetUser},
		{"UpdateUser", http.MethodPut, "/v1/users/:userId", handleFunctions.UserAPI.UpdateUser},
		{"DeleteUser", http.MethodDelete, "/v1/users/:userId", handleFunctions.UserAPI.DeleteUser},
		{"LoginUser", http.MethodPost, "/v1/auth/login", handleFunctions.UserAPI.LoginUser},
		{"LogoutUser", http.MethodPost, "/v1/auth/logout", handleFunctions.UserAPI.LogoutUser},

		{"RegisterPet", http.MethodPost, "/v1/pets", handleFunctions.PetAPI.RegisterPet},
		{"ListPets", http.MethodGet, "/v1/pets", handleFunctions.PetAPI.ListPets},
		{"GetPet", http.MethodGet, "/v1/pets/:petId", handleFunctions.PetAPI.GetPet},
		{"UpdatePet", http.MethodPut, "/v1/pets/:petId", handleFunctions.PetAPI.UpdatePet},
		{"DeletePet", http.MethodDelete, "/v1/pets/:petId", handleFunctions.PetAPI.DeletePet},

		{"CreateBooking", http.MethodPost, "/v1/bookings", handleFunctions.BookingAPI.CreateBooking},
		{"ListBookings", http.MethodGet, "/v1/bookings", handleFunctions.BookingAPI.ListBookings},
		{"GetBooking", http.MethodGet, "/v1/bookings/:bookingId", handleFunctions.BookingAPI.GetBooking},
		{"UpdateBooking", http.MethodPut, "/v1/bookings/:bookingId", handleFunctions.BookingAPI.UpdateBooking},
		{"ChangeBookingStatus", http.MethodPatch, "/v1/bookings/:bookingId/status", handleFunctions.BookingAPI.ChangeBookingStatus},
		{"DeleteBooking", http.MethodDelete, "/v1/bookings/:bookingId", handleFunctions.BookingAPI.DeleteBooking},

		{"CreatePayment", http.MethodPost, "/v1/payments", handleFunctions.PaymentAPI.CreatePayment},
		{"ListPayments", http.MethodGet, "/v1/payments", handleFunctions.PaymentAPI.ListPayments},
		{"GetPayment", http.MethodGet, "/v1/payments/:paymentId", handleFunctions.PaymentAPI.GetPayment},
		{"CapturePayment", http.MethodPost, "/v1/payments/:paymentId/capture", handleFunctions.PaymentAPI.CapturePayment},
		{"RefundPayment", http.MethodPost, "/v1/payments/:paymentId/refund", handleFunctions.PaymentAPI.RefundPayment},
		{"DeletePayment", http.MethodDelete, "/v1/payments/:paymentId", handleFunctions.PaymentAPI.DeletePayment},
		{"GetBookingPayment", http.MethodGet, "/v1/bookings/:bookingId/payment", handleFunctions.PaymentAPI.GetBookingPayment},

		{"CreateReview", http.MethodPost, "/v1/reviews", handleFunctions.ReviewAPI.CreateReview},
		{"ListReviews", http.MethodGet, "/v1/reviews", handleFunctions.ReviewAPI.ListReviews},
		{"GetReview", http.MethodGet, "/v1/reviews/:reviewId", handleFunctions.ReviewAPI.GetReview},
		{"UpdateReview", http.MethodPut, "/v1/reviews/:reviewId", handleFunctions.ReviewAPI.UpdateReview},
		{"DeleteReview", http.MethodDelete, "/v1/reviews/:reviewId", handleFunctions.ReviewAPI.DeleteReview},

		{"CreateNotification", http.MethodPost, "/v1/notifications", handleFunctions.NotificationAPI.CreateNotification},
		{"GetNotification", http.MethodGet, "/v1/notifications/:notificationId", handleFunctions.NotificationAPI.GetNotification},
		{"MarkNotificationRead", http.MethodPatch, "/v1/notifications/:notificationId/read", handleFunctions.NotificationAPI.MarkNotificationRead},
		{"DeleteNotification", http.MethodDelete, "/v1/notifications/:notificationId", handleFunctions.NotificationAPI.DeleteNotification},
		{"ListUserNotifications", http.MethodGet, "/v1/users/:userId/notifications", handleFunctions.NotificationAPI.ListUserNotifications},

		{"GetDashboardSummary", http.MethodGet, "/v1/analytics/dashboard", handleFunctions.AnalyticsAPI.GetDashboardSummary},
		{"GetBookingStatusHistogram", http.MethodGet, "/v1/analytics/bookings/status", handleFunctions.AnalyticsAPI.GetBookingStatusHistogram},
		{"GetTopSitters", http.MethodGet, "/v1/analytics/top-sitters", handleFunctions.AnalyticsAPI.GetTopSitters},
		{"GetPetBreakdown", http.MethodGet, "/v1/analytics/pets/breakdown", handleFunctions.AnalyticsAPI.GetPetBreakdown},
		{"GetUserRating", http.MethodGet, "/v1/users/:userId/rating", handleFunctions.AnalyticsAPI.GetUserRating},
	}
}
