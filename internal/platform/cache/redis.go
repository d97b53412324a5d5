package cache

import (
	"context"
	"fmt"
	"log"

	"evalux/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

// RDB holds ephemeral keyed state with expiry: pending registrations with
// their OTP codes, and live interview sessions. Nothing here is a source of
// truth; every key carries a TTL.
var RDB *redis.Client

func Connect() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx := context.Background()
	_, err := RDB.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	fmt.Println("Successfully connected to Redis!")
}

func Close() {
	if RDB != nil {
		RDB.Close()
		fmt.Println("Redis connection closed.")
	}
}
