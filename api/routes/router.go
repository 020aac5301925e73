package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/astrosocial-backend/api/controllers"
	"github.com/angelmondragon/astrosocial-backend/api/middleware"
	"github.com/angelmondragon/astrosocial-backend/api/responses"
	"github.com/angelmondragon/astrosocial-backend/internal/catalog"
	"github.com/angelmondragon/astrosocial-backend/internal/notifications"
	"github.com/angelmondragon/astrosocial-backend/internal/otp"
	"github.com/angelmondragon/astrosocial-backend/internal/quizzes"
	"github.com/angelmondragon/astrosocial-backend/internal/shorts"
	"github.com/angelmondragon/astrosocial-backend/pkg/config"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/astrosocial-backend/pkg/errors"
	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
	"github.com/angelmondragon/astrosocial-backend/pkg/redis"
)

// Infra carries the shared clients the router pings or hands to middleware.
// Redis may be nil, which disables throttling and idempotent replay.
type Infra struct {
	DB       controllers.Pinger
	Redis    *redis.Client
	Gatherer prometheus.Gatherer
}

type crudHandler interface {
	Create(http.ResponseWriter, *http.Request)
	List(http.ResponseWriter, *http.Request)
	Get(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

type ownedHandler interface {
	crudHandler
	ListByAuth(http.ResponseWriter, *http.Request)
}

func NewRouter(cfg *config.Config, logg *logger.Logger, svc *Services, infra Infra) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, svc.HTTPMetrics),
		middleware.CORS(cfg.CORS),
		chimw.Compress(5),
	)
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "Route not found"))
	})

	var (
		counters   middleware.CounterStore
		replays    redis.IdempotencyStore
		authorized = middleware.Auth(cfg.JWT, logg)
		adminOnly  = passThrough
	)
	if infra.Redis != nil {
		counters, replays = infra.Redis, infra.Redis
	}
	if len(cfg.App.AdminRoleIDs) > 0 {
		adminOnly = middleware.RequireRoles(logg, cfg.App.AdminRoleIDs...)
	}
	loginThrottle := middleware.Throttle(middleware.LoginThrottle(cfg.AuthRateLimit), counters, logg)
	otpThrottle := middleware.Throttle(middleware.OTPThrottle(cfg.AuthRateLimit), counters, logg)
	idempotent := middleware.Idempotency(replays, cfg.Redis.IdempotencyTTL, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readinessDeps(infra)))
	})
	if infra.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(infra.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/create", controllers.CreateUser(svc.Users, logg))
			r.With(loginThrottle).Post("/login", controllers.AuthLogin(svc.Auth, logg))
			r.Post("/refresh-token", controllers.AuthRefresh(svc.Auth, logg))
			r.With(otpThrottle).Post("/send-otp", controllers.SendOTP(svc.OTP, logg))
			r.With(otpThrottle).Post("/verify-otp", controllers.VerifyOTP(svc.OTP, logg))

			r.Group(func(r chi.Router) {
				r.Use(authorized)
				r.Post("/logout", controllers.AuthLogout(svc.Auth, logg))
				r.Get("/getAll", controllers.ListUsers(svc.Users, logg))
				r.Get("/getProfile", controllers.GetProfile(svc.Users, logg))
				r.Put("/updateProfile", controllers.UpdateProfile(svc.Users, logg))
				r.Put("/changePassword", controllers.ChangePassword(svc.Users, logg))
				r.Get("/getUserById/{id}", controllers.GetUserByID(svc.Users, logg))
				r.Put("/updateUserById", controllers.UpdateUserByID(svc.Users, logg))
				r.Delete("/deleteUserById/{id}", controllers.DeleteUserByID(svc.Users, logg))
				r.Put("/updateNotificationSettings", controllers.UpdateNotificationSettings(svc.Users, logg))
				r.Put("/updatePrivacySettings", controllers.UpdatePrivacySettings(svc.Users, logg))
			})
		})

		cat := svc.Catalog
		r.Route("/roles", func(r chi.Router) {
			h := controllers.NewResource[models.Role, catalog.CreateRoleRequest, catalog.UpdateRoleRequest](cat.Roles, logg)
			publicReads(r, h)
			writes(r, authorized, h)
		})
		r.Route("/countries", func(r chi.Router) {
			h := controllers.NewResource[models.Country, catalog.CreateCountryRequest, catalog.UpdateCountryRequest](cat.Countries, logg)
			publicReads(r, h)
			writes(r, authorized, h)
		})
		r.Route("/states", func(r chi.Router) {
			h := controllers.NewResource[models.State, catalog.CreateStateRequest, catalog.UpdateStateRequest](cat.States, logg)
			publicReads(r, h)
			r.Get("/getByCountryId/{countryId}", h.ListWith(controllers.StatesByCountry))
			writes(r, authorized, h)
		})
		r.Route("/cities", func(r chi.Router) {
			h := controllers.NewResource[models.City, catalog.CreateCityRequest, catalog.UpdateCityRequest](cat.Cities, logg)
			publicReads(r, h)
			r.Get("/getByCountryId/{countryId}", h.ListWith(controllers.CitiesByCountry))
			r.Get("/getByStateId/{stateId}", h.ListWith(controllers.CitiesByState))
			writes(r, authorized, h)
		})

		r.Route("/master", func(r chi.Router) {
			r.Route("/category", func(r chi.Router) {
				h := controllers.NewResource[models.Category, catalog.CreateCategoryRequest, catalog.UpdateCategoryRequest](cat.Categories, logg)
				publicReads(r, h)
				writes(r, authorized, h)
			})
			r.Route("/app-category", func(r chi.Router) {
				h := controllers.NewResource[models.AppCategory, catalog.CreateAppCategoryRequest, catalog.UpdateAppCategoryRequest](cat.AppCategories, logg)
				publicReads(r, h)
				writes(r, authorized, h)
			})

			r.Group(func(r chi.Router) {
				r.Use(authorized)

				r.Route("/otp-types", func(r chi.Router) {
					mountCRUD(r, controllers.NewResource[models.OTPType, catalog.CreateOTPTypeRequest, catalog.UpdateOTPTypeRequest](svc.OTPTypes, logg))
				})
				r.Route("/otps", func(r chi.Router) {
					h := controllers.NewResource[models.OTP, controllers.NoCreate[models.OTP], otp.UpdateRequest](svc.OTPs, logg)
					mountReadUpdateDelete(r, h)
				})
				r.Route("/status", func(r chi.Router) {
					mountCRUD(r, controllers.NewResource[models.StatusLabel, catalog.CreateStatusRequest, catalog.UpdateStatusRequest](cat.Statuses, logg))
					r.With(adminOnly).Put("/updateAll", controllers.UpdateAllStatuses(cat.Statuses, logg))
				})
				r.Route("/notification-types", func(r chi.Router) {
					mountCRUD(r, controllers.NewResource[models.NotificationType, catalog.CreateNotificationTypeRequest, catalog.UpdateNotificationTypeRequest](svc.NotificationTypes, logg))
				})
				r.Route("/notifications", func(r chi.Router) {
					h := controllers.NewResource[models.Notification, controllers.NoCreate[models.Notification], notifications.UpdateRequest](svc.Notifications, logg)
					r.Post("/create", controllers.CreateNotification(svc.Notifications, logg))
					r.With(adminOnly, idempotent).Post("/createByRoleId", controllers.CreateNotificationsByRole(svc.Notifications, logg))
					r.With(adminOnly, idempotent).Post("/createSendAll", controllers.CreateNotificationsForAll(svc.Notifications, logg))
					r.Get("/getByAuth", h.ListByAuth)
					r.Put("/markRead/{id}", controllers.MarkNotificationRead(svc.Notifications, logg))
					mountReadUpdateDelete(r, h)
				})
				r.Route("/wallet", func(r chi.Router) {
					h := controllers.NewResource[models.Wallet, controllers.NoCreate[models.Wallet], controllers.NoPatch](svc.Wallets, logg)
					r.Get("/getAll", h.List)
					r.Get("/getById/{id}", h.Get)
					r.Delete("/delete/{id}", h.Delete)
					r.Get("/getByAuth", controllers.GetWalletByAuth(svc.Wallets, logg))
					r.Put("/updateByAuth", controllers.UpdateWalletByAuth(svc.Wallets, logg))
				})
			})
		})

		r.Route("/astrologer", func(r chi.Router) {
			r.Route("/classes", func(r chi.Router) {
				h := controllers.NewResource[models.AstrologerClass, catalog.CreateAstrologerClassRequest, catalog.UpdateAstrologerClassRequest](cat.Classes, logg)
				publicReads(r, h)
				r.Get("/getByCategoryId/{categoryId}", h.ListWith(controllers.ClassesByCategory))
				writes(r, authorized, h)
			})
			r.Route("/horoscope-quiz", func(r chi.Router) {
				h := controllers.NewResource[models.HoroscopeQuiz, quizzes.CreateQuizRequest, quizzes.UpdateQuizRequest](svc.Quizzes.Quizzes, logg)
				publicReads(r, h)
				writes(r, authorized, h)
			})
			r.Route("/quiz-map-user", func(r chi.Router) {
				h := controllers.NewResource[models.HoroscopeQuizMapUser, controllers.NoCreate[models.HoroscopeQuizMapUser], controllers.NoPatch](svc.Quizzes.Attempts, logg)
				r.Get("/getAll", h.List)
				r.Get("/getHighScoreUsers", controllers.ListHighScores(svc.Quizzes, logg))
				r.Group(func(r chi.Router) {
					r.Use(authorized)
					r.Post("/create", controllers.SubmitQuizAttempt(svc.Quizzes, logg))
					r.Get("/getById/{id}", h.Get)
					r.Put("/update/{id}", controllers.UpdateQuizAttempt(svc.Quizzes, logg))
					r.Delete("/delete/{id}", h.Delete)
					r.Get("/getByAuth", h.ListByAuth)
				})
			})
			r.Route("/streams", func(r chi.Router) {
				h := controllers.NewResource[models.Stream, catalog.CreateStreamRequest, catalog.UpdateStreamRequest](cat.Streams, logg)
				publicReads(r, h)
				r.Get("/getBySessionStatus/{session_status}", h.ListWith(controllers.StreamsBySessionStatus))
				r.With(authorized).Get("/getByAuth", h.ListByAuth)
				writes(r, authorized, h)
			})

			r.Group(func(r chi.Router) {
				r.Use(authorized)

				r.Route("/class-join", func(r chi.Router) {
					mountOwned(r, controllers.NewResource[models.ClassJoinUser, catalog.CreateClassJoinRequest, catalog.UpdateClassActivityRequest](cat.ClassJoins, logg))
				})
				r.Route("/class-share", func(r chi.Router) {
					mountOwned(r, controllers.NewResource[models.ClassShareUser, catalog.CreateClassShareRequest, catalog.UpdateClassActivityRequest](cat.ClassShares, logg))
				})
				r.Route("/class-view", func(r chi.Router) {
					mountOwned(r, controllers.NewResource[models.ClassViewUser, catalog.CreateClassViewRequest, catalog.UpdateClassActivityRequest](cat.ClassViews, logg))
				})
				r.Route("/bookings", func(r chi.Router) {
					h := controllers.NewResource[models.BookingAstrologer, catalog.CreateBookingRequest, catalog.UpdateBookingRequest](cat.Bookings, logg)
					mountOwned(r, h)
					r.Get("/getByAstrologerId/{astrologerId}", h.ListWith(controllers.BookingsByAstrologer))
				})
				r.Route("/shorts", func(r chi.Router) {
					mountOwned(r, controllers.NewResource[models.MyShorts, shorts.CreateShortRequest, shorts.UpdateShortRequest](svc.Shorts, logg))
				})
				r.Route("/comment-shorts", func(r chi.Router) {
					h := controllers.NewResource[models.CommentShorts, shorts.CreateCommentRequest, shorts.UpdateCommentRequest](svc.Comments, logg)
					mountOwned(r, h)
					r.Get("/getByShortsId/{shorts_id}", h.ListWith(controllers.CommentsByShorts))
				})
				r.Route("/like-shorts", func(r chi.Router) {
					mountEngagement(r, "/unlike", controllers.NewEngagement[models.LikeShorts](svc.Likes, logg),
						controllers.NewResource[models.LikeShorts, controllers.NoCreate[models.LikeShorts], shorts.UpdateEngagementRequest](svc.Likes, logg))
				})
				r.Route("/share-shorts", func(r chi.Router) {
					mountEngagement(r, "/unshare", controllers.NewEngagement[models.ShareShorts](svc.Shares, logg),
						controllers.NewResource[models.ShareShorts, controllers.NoCreate[models.ShareShorts], shorts.UpdateEngagementRequest](svc.Shares, logg))
				})
				r.Route("/tag-shorts", func(r chi.Router) {
					mountEngagement(r, "/untag", controllers.NewEngagement[models.TagShorts](svc.Tags, logg),
						controllers.NewResource[models.TagShorts, controllers.NoCreate[models.TagShorts], shorts.UpdateEngagementRequest](svc.Tags, logg))
				})
				r.Route("/plans", func(r chi.Router) {
					mountCRUD(r, controllers.NewResource[models.Plan, catalog.CreatePlanRequest, catalog.UpdatePlanRequest](cat.Plans, logg))
				})
				r.Route("/plan-subscriptions", func(r chi.Router) {
					mountOwned(r, controllers.NewResource[models.PlanSubscriptionByUser, catalog.CreatePlanSubscriptionRequest, catalog.UpdatePlanSubscriptionRequest](cat.PlanSubscriptions, logg))
				})
				r.Route("/gifts", func(r chi.Router) {
					mountCRUD(r, controllers.NewResource[models.Gift, catalog.CreateGiftRequest, catalog.UpdateGiftRequest](cat.Gifts, logg))
				})
				r.Route("/quiz-claim-gift", func(r chi.Router) {
					mountCRUD(r, controllers.NewResource[models.HoroscopeQuizClaimGift, quizzes.CreateClaimRequest, quizzes.UpdateClaimRequest](svc.Quizzes.Claims, logg))
				})
			})
		})
	})

	return r
}

func passThrough(next http.Handler) http.Handler { return next }

func readinessDeps(infra Infra) map[string]controllers.Pinger {
	deps := map[string]controllers.Pinger{}
	if infra.DB != nil {
		deps["database"] = infra.DB
	}
	if infra.Redis != nil {
		deps["redis"] = infra.Redis
	}
	return deps
}

func publicReads(r chi.Router, h crudHandler) {
	r.Get("/getAll", h.List)
	r.Get("/getById/{id}", h.Get)
}

func writes(r chi.Router, authorized func(http.Handler) http.Handler, h crudHandler) {
	r.Group(func(r chi.Router) {
		r.Use(authorized)
		r.Post("/create", h.Create)
		r.Put("/update/{id}", h.Update)
		r.Delete("/delete/{id}", h.Delete)
	})
}

func mountCRUD(r chi.Router, h crudHandler) {
	r.Post("/create", h.Create)
	mountReadUpdateDelete(r, h)
}

func mountReadUpdateDelete(r chi.Router, h crudHandler) {
	r.Get("/getAll", h.List)
	r.Get("/getById/{id}", h.Get)
	r.Put("/update/{id}", h.Update)
	r.Delete("/delete/{id}", h.Delete)
}

func mountOwned(r chi.Router, h ownedHandler) {
	mountCRUD(r, h)
	r.Get("/getByAuth", h.ListByAuth)
}

type engagementRoutes interface {
	Engage(http.ResponseWriter, *http.Request)
	Withdraw(http.ResponseWriter, *http.Request)
	ListByShorts(http.ResponseWriter, *http.Request)
}

// mountEngagement replaces create with engage, adds the withdraw verb and
// keeps generic reads, update and delete.
func mountEngagement(r chi.Router, withdrawPath string, e engagementRoutes, h ownedHandler) {
	r.Post("/create", e.Engage)
	r.Post(withdrawPath, e.Withdraw)
	r.Get("/getByShortsId/{shorts_id}", e.ListByShorts)
	r.Get("/getByAuth", h.ListByAuth)
	mountReadUpdateDelete(r, h)
}
