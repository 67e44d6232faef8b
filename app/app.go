package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bookhive/library-service/config"
	"github.com/bookhive/library-service/internal/events"
	"github.com/bookhive/library-service/internal/handler"
	"github.com/bookhive/library-service/internal/repository"
	"github.com/bookhive/library-service/internal/server"
	"github.com/bookhive/library-service/internal/service/borrow"
	"github.com/bookhive/library-service/internal/service/catalog"
	"github.com/bookhive/library-service/internal/service/feedback"
	"github.com/bookhive/library-service/internal/service/fine"
	"github.com/bookhive/library-service/internal/service/member"
	"github.com/bookhive/library-service/internal/service/payment"
	"github.com/bookhive/library-service/internal/session"
	"github.com/bookhive/library-service/internal/store"
	"github.com/bookhive/library-service/migrations"
	"github.com/bookhive/library-service/pkg/kafka"
	"github.com/bookhive/library-service/pkg/logger"
	"github.com/bookhive/library-service/pkg/postgres"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "bookhive")

	var st store.Store
	switch cfg.Store.Backend {
	case config.StoreMemory:
		st = store.NewMemory()
	default:
		db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
		if err != nil {
			log.Fatal("db init", zap.Error(err))
		}
		defer db.Close()
		st = store.NewPostgres(db, log)
	}

	catalogRepo := repository.NewCatalog(st, log)
	membersRepo := repository.NewMembers(st, log)
	ledgerRepo := repository.NewLedger(st, log)
	finesRepo := repository.NewFines(st, log)
	paymentsRepo := repository.NewPayments(st, log)
	complaintsRepo := repository.NewComplaints(st, log)
	donationsRepo := repository.NewDonations(st, log)
	activityRepo := repository.NewActivity(st, log)

	hub := session.NewHub()
	if err := session.Attach(context.Background(), hub, st, log); err != nil {
		log.Warn("session restore", zap.Error(err))
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.KafkaEnabled {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		defer producer.Close() //nolint:errcheck
		publisher = events.NewPublisher(producer)
	}

	var hasher member.Hasher = member.PlainHasher{}
	if cfg.Credentials.Scheme == "argon2" {
		hasher = member.Argon2Hasher{}
	}

	catalogSvc := catalog.NewService(catalogRepo, log)
	memberSvc := member.NewService(membersRepo, st, hub, hasher, log)
	fineSvc := fine.NewService(finesRepo, ledgerRepo, log)
	borrowSvc := borrow.NewService(catalogRepo, ledgerRepo, fineSvc, hub, publisher, log)
	paymentSvc := payment.NewService(finesRepo, paymentsRepo, publisher, cfg.Payment.SuccessRate, log)
	feedbackSvc := feedback.NewService(complaintsRepo, donationsRepo, log)

	if err := catalogSvc.Seed(context.Background()); err != nil {
		log.Fatal("catalog seed", zap.Error(err))
	}

	if cfg.KafkaEnabled {
		consumer, err := kafka.NewConsumer(cfg.Kafka, kafka.ActivityConsumerGroup)
		if err != nil {
			log.Fatal("kafka.NewConsumer", zap.Error(err))
		}
		go kafka.Consume(consumer, handler.NewConsumer(activityRepo.Append, log), kafka.ActivityTopic)
	}

	h := handler.New(catalogSvc, memberSvc, borrowSvc, fineSvc, paymentSvc, feedbackSvc, activityRepo, hub, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))

	g := new(errgroup.Group)
	g.Go(func() error {
		return srv.Run()
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server run", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
}
