package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	amqp "github.com/rabbitmq/amqp091-go"

	"shuttle/internal/domain/models"
	"shuttle/internal/utils"
)

const (
	DefaultNotifyChannel = "shuttle:notifications"
	DefaultRoutingKey    = "shuttle.pickup"
)

// Notification is what drivers and accepted guests are told before pickup.
type Notification struct {
	Date         string      `json:"date"`
	TripTime     string      `json:"tripTime"`
	AcceptedPax  int         `json:"acceptedPax"`
	VehicleName  string      `json:"vehicleName"`
	VehiclePlate string      `json:"vehiclePlate"`
	DriverName   string      `json:"driverName"`
	DriverPhone  string      `json:"driverPhone"`
	Recipients   []Recipient `json:"recipients"`
	SentAt       time.Time   `json:"sentAt"`
}

type Recipient struct {
	BookingID      string `json:"bookingId"`
	GuestName      string `json:"guestName"`
	GuestPhone     string `json:"guestPhone"`
	PickupLocation string `json:"pickupLocation"`
	PaxCount       int    `json:"paxCount"`
}

func recipientsOf(passengers []models.Passenger) []Recipient {
	out := make([]Recipient, 0, len(passengers))
	for _, p := range passengers {
		out = append(out, Recipient{
			BookingID:      p.ID,
			GuestName:      p.GuestName,
			GuestPhone:     p.GuestPhone,
			PickupLocation: p.PickupLocation,
			PaxCount:       p.PaxCount,
		})
	}
	return out
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier only writes the notification to the log.
type LogNotifier struct {
	RequestID string
}

func (n LogNotifier) Notify(_ context.Context, note Notification) error {
	utils.LogEventf(n.RequestID, "notify", "pickup", "date=%s time=%s pax=%d vehicle=%s driver=%s recipients=%d",
		note.Date, note.TripTime, note.AcceptedPax, note.VehiclePlate, note.DriverName, len(note.Recipients))
	return nil
}

// RedisNotifier publishes the notification as JSON on a pub/sub channel.
type RedisNotifier struct {
	Client  *redis.Client
	Channel string
}

func (n RedisNotifier) Notify(ctx context.Context, note Notification) error {
	payload, err := json.Marshal(note)
	if err != nil {
		return err
	}
	channel := n.Channel
	if channel == "" {
		channel = DefaultNotifyChannel
	}
	if err := n.Client.Publish(ctx, channel, string(payload)).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// AMQPPublisher is the part of *amqp.Channel the notifier needs.
type AMQPPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPNotifier publishes persistent JSON messages to a topic exchange.
type AMQPNotifier struct {
	Channel    AMQPPublisher
	Exchange   string
	RoutingKey string
}

func (n AMQPNotifier) Notify(ctx context.Context, note Notification) error {
	body, err := json.Marshal(note)
	if err != nil {
		return err
	}
	key := n.RoutingKey
	if key == "" {
		key = DefaultRoutingKey
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = n.Channel.PublishWithContext(publishCtx, n.Exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    note.SentAt,
	})
	if err != nil {
		return fmt.Errorf("amqp publish: %w", err)
	}
	return nil
}

// DialAMQP connects and declares the durable topic exchange notifications go to.
func DialAMQP(url, exchange string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return conn, ch, nil
}
