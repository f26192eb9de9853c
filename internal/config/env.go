package config

import (
	"errors"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"shuttle/internal/utils"
)

const defaultDSN = "root:@tcp(127.0.0.1:3306)/travel_app?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"

var defaultTimeSlots = []string{
	"06:00", "07:00", "08:00", "09:00", "10:00", "11:00",
	"13:00", "14:00", "15:00", "16:00", "17:00", "18:00", "19:00", "20:00",
}

type Env struct {
	AppAddr string
	GinMode string
	DBDSN   string

	TripCapacity     int
	MinShuttleSeats  int
	MaxPaxPerBooking int
	PricePerSeat     int64
	TimeSlots        []string
	AdmissionPolicy  string

	ShareLinkSecret  string
	ShareLinkTTL     time.Duration
	PublicBookingURL string

	RedisAddr      string
	NotifyChannel  string
	AMQPURL        string
	NotifyExchange string

	CORSAllowedOrigins []string
}

// LoadEnv reads defaults, then config.yaml from . or ./config, then .env,
// then the process environment. Later sources win.
func LoadEnv() Env {
	return loadEnv(".", "./config")
}

func loadEnv(configPaths ...string) Env {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}
	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("warning: failed to read config file: %v", err)
		}
	}

	slots := utils.SplitList(v.GetString("time_slots"))
	if len(slots) == 0 {
		slots = append([]string(nil), defaultTimeSlots...)
	}

	return Env{
		AppAddr: strings.TrimSpace(v.GetString("app_addr")),
		GinMode: strings.TrimSpace(v.GetString("gin_mode")),
		DBDSN:   strings.TrimSpace(v.GetString("db_dsn")),

		TripCapacity:     v.GetInt("trip_capacity"),
		MinShuttleSeats:  v.GetInt("min_shuttle_seats"),
		MaxPaxPerBooking: v.GetInt("max_pax_per_booking"),
		PricePerSeat:     v.GetInt64("price_per_seat"),
		TimeSlots:        slots,
		AdmissionPolicy:  strings.TrimSpace(v.GetString("admission_policy")),

		ShareLinkSecret:  v.GetString("share_link_secret"),
		ShareLinkTTL:     v.GetDuration("share_link_ttl"),
		PublicBookingURL: strings.TrimRight(strings.TrimSpace(v.GetString("public_booking_url")), "/"),

		RedisAddr:      strings.TrimSpace(v.GetString("redis_addr")),
		NotifyChannel:  strings.TrimSpace(v.GetString("notify_channel")),
		AMQPURL:        strings.TrimSpace(v.GetString("amqp_url")),
		NotifyExchange: strings.TrimSpace(v.GetString("notify_exchange")),

		CORSAllowedOrigins: utils.SplitList(v.GetString("cors_allowed_origins")),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_addr", ":8080")
	v.SetDefault("gin_mode", "")
	v.SetDefault("db_dsn", defaultDSN)
	v.SetDefault("trip_capacity", 18)
	v.SetDefault("min_shuttle_seats", 16)
	v.SetDefault("max_pax_per_booking", 18)
	v.SetDefault("price_per_seat", 150000)
	v.SetDefault("time_slots", strings.Join(defaultTimeSlots, ","))
	v.SetDefault("admission_policy", "fill_gaps")
	v.SetDefault("share_link_secret", "change-me-shuttle-share-secret")
	v.SetDefault("share_link_ttl", "72h")
	v.SetDefault("public_booking_url", "http://localhost:5173/book")
	v.SetDefault("redis_addr", "")
	v.SetDefault("notify_channel", "shuttle:notifications")
	v.SetDefault("amqp_url", "")
	v.SetDefault("notify_exchange", "shuttle")
	v.SetDefault("cors_allowed_origins", "http://localhost:5173,http://127.0.0.1:5173")
}
