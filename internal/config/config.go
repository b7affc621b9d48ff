package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string
	Port string
}

type RedisCache struct {
	Host     string
	Port     string
	Password string
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type Coordination struct {
	SessionTTL time.Duration
}

type Poll struct {
	Interval time.Duration
}

type Recommend struct {
	AlternativesBound int
}

type Config struct {
	HTTP         HTTPServer
	Redis        RedisCache
	Postgres     Postgres
	Coordination Coordination
	Poll         Poll
	Recommend    Recommend
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := &Config{
		HTTP:         *newHTTP(),
		Redis:        *newRedis(),
		Postgres:     *newPostgres(),
		Coordination: *newCoordination(),
		Poll:         *newPoll(),
		Recommend:    *newRecommend(),
	}

	log.Printf("%s backend config : %+v\n", logtag, cfg)
	return cfg
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port: getenv("HTTP_PORT", "8080"),
		Host: getenv("HTTP_HOST", "localhost"),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:     getenv("REDIS_PORT", "6379"),
		Host:     getenv("REDIS_HOST", "redis"),
		Password: getenv("REDIS_PASSWORD", "shared"),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getenv("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "boardswap"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func newCoordination() *Coordination {
	return &Coordination{
		SessionTTL: getenvDuration("SESSION_TTL_SECONDS", 24*time.Hour),
	}
}

func newPoll() *Poll {
	return &Poll{
		Interval: getenvDuration("POLL_INTERVAL_SECONDS", 5*time.Second),
	}
}

func newRecommend() *Recommend {
	return &Recommend{
		AlternativesBound: getenvInt("RECOMMEND_ALTERNATIVES", 5),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %s\n", logtag, key, val)
	return val
}

func getenvInt(key string, defaultValue int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("%s bad %s=%q, using default %d", logtag, key, val, defaultValue)
		return defaultValue
	}
	return n
}

func getenvDuration(key string, defaultValue time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	secs, err := strconv.Atoi(val)
	if err != nil || secs <= 0 {
		log.Printf("%s bad %s=%q, using default %s", logtag, key, val, defaultValue)
		return defaultValue
	}
	return time.Duration(secs) * time.Second
}
