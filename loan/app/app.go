package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/elibrary/loan-service/loan/config"
	"github.com/elibrary/loan-service/loan/internal/handler"
	"github.com/elibrary/loan-service/loan/internal/repository"
	"github.com/elibrary/loan-service/loan/internal/server"
	"github.com/elibrary/loan-service/loan/internal/service"
	"github.com/elibrary/loan-service/loan/migrations"
	"github.com/elibrary/loan-service/pkg/kafka"
	"github.com/elibrary/loan-service/pkg/logger"
	"github.com/elibrary/loan-service/pkg/postgres"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "loan")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("db init %v", err)
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("repo %v", err)
	}
	svc := service.NewService(repo, log)

	consumer, err := kafka.NewConsumer(cfg.Kafka, kafka.LoanConsumerGroup)
	if err != nil {
		return fmt.Errorf("kafka.NewConsumer %v", err)
	}
	go kafka.Consume(consumer, handler.NewConsumer(svc.ApplyCatalogUpdate, log), kafka.CatalogTopic)

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		return fmt.Errorf("kafka.NewProducer %v", err)
	}

	h := handler.New(svc, producer, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	if err := consumer.Close(); err != nil {
		log.Error("consumer.Close", zap.Error(err))
	}
	if err := producer.Close(); err != nil {
		log.Error("producer.Close", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
	return nil
}
