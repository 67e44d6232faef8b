package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/session"
	"github.com/bookhive/library-service/pkg/auth"
	md "github.com/bookhive/library-service/pkg/middleware"
	"github.com/bookhive/library-service/pkg/validate"
)

type Handler struct {
	catalogSvc  CatalogService
	memberSvc   MemberService
	borrowSvc   BorrowService
	fineSvc     FineService
	paymentSvc  PaymentService
	feedbackSvc FeedbackService
	activity    ActivityLog
	hub         *session.Hub
	log         *zap.Logger
}

func New(
	catalogSvc CatalogService,
	memberSvc MemberService,
	borrowSvc BorrowService,
	fineSvc FineService,
	paymentSvc PaymentService,
	feedbackSvc FeedbackService,
	activity ActivityLog,
	hub *session.Hub,
	log *zap.Logger,
) *Handler {
	return &Handler{
		catalogSvc:  catalogSvc,
		memberSvc:   memberSvc,
		borrowSvc:   borrowSvc,
		fineSvc:     fineSvc,
		paymentSvc:  paymentSvc,
		feedbackSvc: feedbackSvc,
		activity:    activity,
		hub:         hub,
		log:         log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/members/register", h.Register)
	api.POST("/members/login", h.Login)
	api.GET("/members/email-exists", h.EmailExists)
	api.GET("/members/mobile-exists", h.MobileExists)
	api.GET("/members/:memberId", h.GetMember)
	api.PATCH("/members/:memberId", h.UpdateProfile)

	api.GET("/books", h.GetBooks)
	api.GET("/books/:bookId", h.GetBook)

	api.POST("/borrow", h.Borrow)
	api.POST("/borrow/:recordId/return", h.Return)
	api.GET("/members/:memberId/borrowed", h.History)
	api.GET("/members/:memberId/eligibility", h.Eligibility)
	api.GET("/members/:memberId/fines", h.GetFines)

	api.POST("/payments", h.Pay)
	api.GET("/members/:memberId/payments", h.GetPayments)
	api.GET("/members/:memberId/activity", h.GetActivity)

	api.POST("/complaints", h.CreateComplaint)
	api.GET("/complaints", h.ListComplaints)
	api.PATCH("/complaints/:complaintId/status", h.AdvanceComplaint)

	api.POST("/donations", h.CreateDonation)
	api.GET("/donations", h.ListDonations)
	api.PATCH("/donations/:donationId/status", h.ResolveDonation)

	api.GET("/session", h.Session, md.JwtAuthentication)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Session exposes the shared observable state for the authenticated
// member.
func (h *Handler) Session(c echo.Context) error {
	state := h.hub.Current()
	if id := auth.MemberIDFromContext(c.Request().Context()); id != "" && id != state.User.MemberID {
		return echo.NewHTTPError(http.StatusForbidden, "session belongs to another member")
	}
	return c.JSON(http.StatusOK, state)
}
