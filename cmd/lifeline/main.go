package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"lifeline/config"
	"lifeline/internal/delivery"
	"lifeline/internal/delivery/http"
	"lifeline/internal/delivery/http/middleware"
	"lifeline/internal/delivery/http/router/handler"
	"lifeline/internal/infra/auth"
	"lifeline/internal/infra/auth/firebase"
	"lifeline/internal/infra/geocoding"
	logs "lifeline/internal/infra/log"
	"lifeline/internal/infra/maps"
	"lifeline/internal/infra/notification"
	"lifeline/internal/infra/persistence/postgres"
	"lifeline/internal/infra/pubsub"
	"lifeline/internal/infra/qrcode"
	"lifeline/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewProfileRepository,
			postgres.NewAuthRepository,
			postgres.NewRefreshTokenRepository,
			postgres.NewBloodBankRepository,
			postgres.NewBloodRequestRepository,
			postgres.NewDonationRepository,
			postgres.NewCampaignRepository,
			postgres.NewNotificationRepository,
			postgres.NewStatsRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			firebase.NewIdentityVerifier,
			notification.NewFCMService,
			geocoding.NewGeocoder,
			maps.NewMapService,
			pubsub.NewEventPublisher,
			qrcode.NewQRCodeService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
			impl.NewUserService,
			impl.NewProfileService,
			impl.NewBloodBankService,
			impl.NewRequestService,
			impl.NewDonationService,
			impl.NewCampaignService,
			impl.NewNotificationService,
			impl.NewStatsService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewLoggerMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewHealthHandler,
			handler.NewUserHandler,
			handler.NewProfileHandler,
			handler.NewBankHandler,
			handler.NewRequestHandler,
			handler.NewDonationHandler,
			handler.NewCampaignHandler,
			handler.NewNotificationHandler,
			handler.NewStatsHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
