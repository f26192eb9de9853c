package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	intconfig "shuttle/internal/config"
	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
	"shuttle/internal/services"
)

func buildSettings(env intconfig.Env) (services.Settings, error) {
	policy, err := domain.ParseAdmissionPolicy(env.AdmissionPolicy)
	if err != nil {
		return services.Settings{}, err
	}
	if env.TripCapacity <= 0 {
		return services.Settings{}, fmt.Errorf("TRIP_CAPACITY must be positive, got %d", env.TripCapacity)
	}
	for _, slot := range env.TimeSlots {
		if !domain.ParseTimeSlot(slot).IsClock() {
			return services.Settings{}, fmt.Errorf("TIME_SLOTS entry %q is not HH:MM", slot)
		}
	}
	return services.Settings{
		Capacity:         env.TripCapacity,
		Policy:           policy,
		MinShuttleSeats:  env.MinShuttleSeats,
		MaxPaxPerBooking: env.MaxPaxPerBooking,
		PricePerSeat:     env.PricePerSeat,
		TimeSlots:        env.TimeSlots,
		Routes:           models.DefaultRoutes(),
	}, nil
}

func buildShareLinks(env intconfig.Env, settings services.Settings) services.ShareLinkService {
	return services.ShareLinkService{
		Secret:  []byte(env.ShareLinkSecret),
		TTL:     env.ShareLinkTTL,
		BaseURL: env.PublicBookingURL,
		Routes:  settings.Routes,
	}
}

// buildNotifier prefers RabbitMQ, then Redis, then the log. The returned
// func releases whatever connection was opened.
func buildNotifier(env intconfig.Env) (services.Notifier, func(), error) {
	switch {
	case env.AMQPURL != "":
		conn, ch, err := services.DialAMQP(env.AMQPURL, env.NotifyExchange)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Notifier: RabbitMQ exchange=%s", env.NotifyExchange)
		return services.AMQPNotifier{Channel: ch, Exchange: env.NotifyExchange}, func() {
			_ = ch.Close()
			_ = conn.Close()
		}, nil

	case env.RedisAddr != "":
		client := redis.NewClient(&redis.Options{Addr: env.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis %s: %w", env.RedisAddr, err)
		}
		log.Printf("Notifier: Redis channel=%s", env.NotifyChannel)
		return services.RedisNotifier{Client: client, Channel: env.NotifyChannel}, func() { _ = client.Close() }, nil
	}

	log.Println("Notifier: log only")
	return services.LogNotifier{}, func() {}, nil
}
