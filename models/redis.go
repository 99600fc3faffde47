package models

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"plush-store/config"
)

var RedisClient *redis.Client

// InitRedis connects the shared client. The storefront degrades gracefully
// when Redis is absent: product list caching is skipped and carts live
// in-memory only for the session, so a nil client is a valid state.
func InitRedis() {
	cfg := config.AppConfig

	var opt *redis.Options
	if cfg.RedisURL != "" {
		parsedOpt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Println("Failed to parse Redis URL:", err)
			log.Println("Running without cart persistence and cache")
			return
		}
		opt = parsedOpt
	} else {
		opt = &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		}
	}

	RedisClient = redis.NewClient(opt)

	_, err := RedisClient.Ping(context.Background()).Result()
	if err != nil {
		log.Println("Redis connection failed:", err)
		log.Println("Running without cart persistence and cache")
		RedisClient = nil
		return
	}

	log.Println("Redis connected")
}

func CloseRedis() {
	if RedisClient != nil {
		RedisClient.Close()
	}
}
