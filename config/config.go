package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

const AdminEventsTopic = "admin-events"

// Settings collects everything the services read from the environment.
type Settings struct {
	HTTPAddr string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string

	RedisHost   string
	RedisPort   string
	KafkaBroker string

	JWTSecret       string
	StripeSecretKey string
	Currency        string
	FrontendURL     string
	PublicURL       string
	Timezone        string

	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubject    string
	PushTTL         int

	APISvcURL    string
	NotifySvcURL string
}

func Load() Settings {
	return Settings{
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),

		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBName:     getenv("DB_NAME", "bistro"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),

		RedisHost:   getenv("REDIS_HOST", "localhost"),
		RedisPort:   getenv("REDIS_PORT", "6379"),
		KafkaBroker: getenv("KAFKA_BROKER", "localhost:9092"),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		Currency:        getenv("CURRENCY", "eur"),
		FrontendURL:     getenv("FRONTEND_URL", "http://localhost:5173"),
		PublicURL:       getenv("PUBLIC_URL", "http://localhost:8080"),
		Timezone:        getenv("RESTAURANT_TZ", "Local"),

		VAPIDPublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),
		VAPIDSubject:    getenv("VAPID_SUBJECT", "mailto:admin@example.com"),
		PushTTL:         getenvInt("PUSH_TTL", 60),

		APISvcURL:    getenv("API_SVC_URL", "http://api-svc:8081"),
		NotifySvcURL: getenv("NOTIFY_SVC_URL", "http://notify-svc:8082"),
	}
}

// Location resolves RESTAURANT_TZ, falling back to the process zone.
func (s Settings) Location() *time.Location {
	if s.Timezone == "" || s.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		log.Printf("WARNING: unknown RESTAURANT_TZ %q, using local time: %v", s.Timezone, err)
		return time.Local
	}
	return loc
}

func (s Settings) PostgresDSN() string {
	return "host=" + s.DBHost + " port=" + s.DBPort + " user=" + s.DBUser +
		" password=" + s.DBPassword + " dbname=" + s.DBName + " sslmode=disable"
}

func (s Settings) RedisAddr() string {
	return s.RedisHost + ":" + s.RedisPort
}

func MustInitPostgres(s Settings) *sql.DB {
	db, err := sql.Open("postgres", s.PostgresDSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(s Settings) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: s.RedisAddr(),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(s Settings, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{s.KafkaBroker},
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(s Settings, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(s.KafkaBroker),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           50 * time.Millisecond,
		MaxAttempts:            3,
		AllowAutoTopicCreation: true,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
