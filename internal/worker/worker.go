package worker

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"menusync/internal/config"
	"menusync/internal/events"
	"menusync/internal/worker/processors"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Worker consumes catalog sync events published by the API process and runs
// them through the event processor. It is a separate binary so sync auditing
// can scale independently of the menu service.
type Worker struct {
	config    *config.Config
	log       *logrus.Logger
	reader    *kafka.Reader
	processor *processors.EventProcessor
}

func New(cfg *config.Config, log *logrus.Logger) *Worker {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        strings.Split(cfg.KafkaBrokers, ","),
		GroupID:        "menusync-worker",
		Topic:          cfg.KafkaTopic,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &Worker{
		config:    cfg,
		log:       log,
		reader:    reader,
		processor: processors.NewEventProcessor(log),
	}
}

func (w *Worker) Start() {
	w.log.Info("worker started, listening for sync events")

	for {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		message, err := w.reader.ReadMessage(ctx)
		cancel()

		if err != nil {
			if err == context.DeadlineExceeded {
				continue
			}
			w.log.WithError(err).Error("failed to read message")
			continue
		}

		var event events.SyncEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			w.log.WithError(err).Error("failed to parse sync event")
			continue
		}

		if err := w.processor.Process(event); err != nil {
			w.log.WithError(err).Error("failed to process sync event")
		}
	}
}

func (w *Worker) Stop() {
	w.log.Info("stopping worker")
	w.reader.Close()
}
