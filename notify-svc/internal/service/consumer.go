package service

import (
	"context"
	"encoding/json"
	"log"

	"bistro-booking/notify-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	Reader MessageReader
	Sender Sender
}

func NewConsumer(reader MessageReader, sender Sender) *Consumer {
	return &Consumer{Reader: reader, Sender: sender}
}

// Start reads admin events until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting admin event consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("admin event consumer stopped")
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}
		c.Process(ctx, message)
	}
}

// Process reports whether the message produced a notification.
func (c *Consumer) Process(ctx context.Context, message kafka.Message) bool {
	var event domain.AdminEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		log.Printf("Error unmarshaling message: %v", err)
		return false
	}
	if !event.Known() {
		log.Printf("skipping event of unknown type %q", event.Type)
		return false
	}
	log.Printf("Processing %s event %s for %d", event.Type, event.EventID, event.EntityID)
	c.Sender.Send(ctx, domain.Notification{Title: event.Title, Body: event.Body})
	return true
}
