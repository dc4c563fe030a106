// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"drivewell/config"

	"github.com/go-redis/redis/v8"
)

// IntentCacheClient is the dedicated client for pending payment intents.
var IntentCacheClient *redis.Client

// InitIntentCache initializes the Redis client used to track pending payment
// intents (using DB from AppConfig).
func InitIntentCache() {
	IntentCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisIntentDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := IntentCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Intent Cache): %v", err)
	}
}

// GetIntentCacheClient returns the Redis client for pending payment intents.
func GetIntentCacheClient() *redis.Client {
	if IntentCacheClient == nil {
		InitIntentCache()
	}
	return IntentCacheClient
}
