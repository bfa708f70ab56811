package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-group-chat/config"
	"github.com/oksasatya/go-ddd-group-chat/internal/infrastructure/search"
	"github.com/oksasatya/go-ddd-group-chat/pkg/helpers"
	"github.com/oksasatya/go-ddd-group-chat/pkg/mailer"
)

func main() {
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-event-worker", cfg.Env)
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEventsQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		log.Fatalf("elasticsearch: %v", err)
	}
	p := &processor{
		index:   search.NewMessageIndex(es, cfg.ESMessagesIndex),
		appName: cfg.AppName,
		logger:  logger,
	}
	switch {
	case !cfg.MailSendEnabled:
		logger.Info("MAIL_SEND_ENABLED=false; membership notices disabled")
	case !cfg.MailgunConfigured():
		log.Fatal("Mailgun not configured")
	default:
		p.mail = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue, 16)
	if err != nil {
		log.Fatalf("amqp: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			requeue, err := p.handle(ctx, msg.Body)
			if err != nil {
				logger.WithError(err).WithField("requeue", requeue).Error("event failed")
				_ = msg.Nack(false, requeue && !msg.Redelivered)
				continue
			}
			_ = msg.Ack(false)
		}
	}()

	logger.WithFields(logrus.Fields{"queue": cfg.RabbitMQEventsQueue}).Info("event worker listening")
	select {
	case <-stop:
	case <-done:
	}
	logger.Info("shutting down...")
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
