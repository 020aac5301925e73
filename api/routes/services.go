package routes

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/angelmondragon/astrosocial-backend/internal/auth"
	"github.com/angelmondragon/astrosocial-backend/internal/catalog"
	"github.com/angelmondragon/astrosocial-backend/internal/notifications"
	"github.com/angelmondragon/astrosocial-backend/internal/otp"
	"github.com/angelmondragon/astrosocial-backend/internal/quizzes"
	"github.com/angelmondragon/astrosocial-backend/internal/resource"
	"github.com/angelmondragon/astrosocial-backend/internal/shorts"
	"github.com/angelmondragon/astrosocial-backend/internal/users"
	"github.com/angelmondragon/astrosocial-backend/internal/wallets"
	"github.com/angelmondragon/astrosocial-backend/pkg/config"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	"github.com/angelmondragon/astrosocial-backend/pkg/email"
	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
	"github.com/angelmondragon/astrosocial-backend/pkg/metrics"
)

// Services is every domain service the router mounts.
type Services struct {
	Auth              auth.Service
	OTP               otp.Service
	Users             users.Service
	Wallets           *wallets.Service
	Notifications     *notifications.Service
	NotificationTypes *resource.Service[models.NotificationType]
	OTPs              *resource.Service[models.OTP]
	OTPTypes          *resource.Service[models.OTPType]
	Catalog           *catalog.Services
	Shorts            *resource.Service[models.MyShorts]
	Comments          *resource.Service[models.CommentShorts]
	Likes             *shorts.EngagementService[models.LikeShorts]
	Shares            *shorts.EngagementService[models.ShareShorts]
	Tags              *shorts.EngagementService[models.TagShorts]
	Quizzes           *quizzes.Service
	HTTPMetrics       *metrics.HTTPMetrics
}

// ServiceParams bundles what NewServices needs to build the graph.
type ServiceParams struct {
	Config   *config.Config
	DB       *gorm.DB
	Mailer   email.Sender
	Registry prometheus.Registerer
	Logger   *logger.Logger
}

// NewServices wires repositories and services over one database handle.
func NewServices(params ServiceParams) (*Services, error) {
	if params.Config == nil || params.DB == nil {
		return nil, fmt.Errorf("config and database are required")
	}
	cfg, db, logg := params.Config, params.DB, params.Logger

	authMetrics := metrics.NewAuthMetrics(params.Registry)
	userRepo := users.NewRepository(db)

	walletSvc, err := wallets.NewService(wallets.NewRepository(db))
	if err != nil {
		return nil, fmt.Errorf("wallets: %w", err)
	}
	userSvc, err := users.NewService(users.ServiceParams{
		Repo:     userRepo,
		Wallets:  walletSvc,
		Mailer:   params.Mailer,
		Password: cfg.Password,
		Logger:   logg,

		ReservedRoleIDs: cfg.App.AdminRoleIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("users: %w", err)
	}
	authSvc, err := auth.NewService(auth.ServiceParams{
		UserRepo:  userRepo,
		JWTConfig: cfg.JWT,
		Password:  cfg.Password,
		Metrics:   authMetrics,
	})
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}

	otpRepo := otp.NewRepository(db)
	otpSvc, err := otp.NewService(otp.ServiceParams{
		Codes:   otpRepo,
		Users:   userRepo,
		Mailer:  params.Mailer,
		OTP:     cfg.OTP,
		JWT:     cfg.JWT,
		Metrics: authMetrics,
		Logger:  logg,
	})
	if err != nil {
		return nil, fmt.Errorf("otp: %w", err)
	}
	otps, err := resource.NewService[models.OTP](otpRepo, otp.Descriptor)
	if err != nil {
		return nil, fmt.Errorf("otps: %w", err)
	}
	otpTypes, err := generic[models.OTPType](db, otp.TypeDescriptor)
	if err != nil {
		return nil, err
	}

	notifySvc, err := notifications.NewService(notifications.ServiceParams{
		Repo:       notifications.NewRepository(db),
		Recipients: userRepo,
		Metrics:    metrics.NewFanoutMetrics(params.Registry),
		Logger:     logg,
	})
	if err != nil {
		return nil, fmt.Errorf("notifications: %w", err)
	}
	notifyTypes, err := generic[models.NotificationType](db, notifications.TypeDescriptor)
	if err != nil {
		return nil, err
	}

	catalogSvc, err := catalog.New(db)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	shortsSvc, err := generic[models.MyShorts](db, shorts.ShortsDescriptor)
	if err != nil {
		return nil, err
	}
	comments, err := generic[models.CommentShorts](db, shorts.CommentDescriptor)
	if err != nil {
		return nil, err
	}
	likes, err := shorts.NewEngagementService(shorts.NewEngagementRepository(db, shorts.Likes), shorts.Likes, logg)
	if err != nil {
		return nil, fmt.Errorf("likes: %w", err)
	}
	shares, err := shorts.NewEngagementService(shorts.NewEngagementRepository(db, shorts.Shares), shorts.Shares, logg)
	if err != nil {
		return nil, fmt.Errorf("shares: %w", err)
	}
	tags, err := shorts.NewEngagementService(shorts.NewEngagementRepository(db, shorts.Tags), shorts.Tags, logg)
	if err != nil {
		return nil, fmt.Errorf("tags: %w", err)
	}

	quizSvc, err := quizzes.NewService(quizzes.ServiceParams{
		Quizzes:  resource.NewRepository[models.HoroscopeQuiz](db, quizzes.QuizDescriptor),
		Attempts: resource.NewRepository[models.HoroscopeQuizMapUser](db, quizzes.AttemptDescriptor),
		Claims:   resource.NewRepository[models.HoroscopeQuizClaimGift](db, quizzes.ClaimDescriptor),
		Logger:   logg,
	})
	if err != nil {
		return nil, fmt.Errorf("quizzes: %w", err)
	}

	return &Services{
		Auth:              authSvc,
		OTP:               otpSvc,
		Users:             userSvc,
		Wallets:           walletSvc,
		Notifications:     notifySvc,
		NotificationTypes: notifyTypes,
		OTPs:              otps,
		OTPTypes:          otpTypes,
		Catalog:           catalogSvc,
		Shorts:            shortsSvc,
		Comments:          comments,
		Likes:             likes,
		Shares:            shares,
		Tags:              tags,
		Quizzes:           quizSvc,
		HTTPMetrics:       metrics.NewHTTPMetrics(params.Registry),
	}, nil
}

func generic[T any](db *gorm.DB, desc resource.Descriptor) (*resource.Service[T], error) {
	svc, err := resource.NewService[T](resource.NewRepository[T](db, desc), desc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", desc.Name, err)
	}
	return svc, nil
}
