package main

import (
	"context"

	"github.com/eveisesi/redisish"
	"github.com/eveisesi/redisish/internal/memory"
	mdb "github.com/eveisesi/redisish/internal/mongo"
	"github.com/eveisesi/redisish/internal/mysql"
	rdb "github.com/eveisesi/redisish/internal/redis"
	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type storeSet struct {
	messages redisish.MessageRepository
	// nil unless the backend keeps every message
	history redisish.HistoryRepository
	close   func()
}

func buildStore(ctx context.Context) (*storeSet, error) {

	switch cfg.Store {
	case "memory":
		return &storeSet{
			messages: memory.NewMessageRepository(),
			close:    func() {},
		}, nil
	case "redis":
		client, err := buildRedis(ctx)
		if err != nil {
			return nil, err
		}

		return &storeSet{
			messages: rdb.NewMessageRepository(client, cfg.Redis.Key),
			close: func() {
				_ = client.Close()
			},
		}, nil
	case "mongo":
		client, err := buildMongo(ctx)
		if err != nil {
			return nil, err
		}

		repo, err := mdb.NewMessageRepository(client.Database(cfg.Mongo.DB))
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, errors.Wrap(err, "failed to initialize messages repository")
		}

		return &storeSet{
			messages: repo,
			history:  repo,
			close: func() {
				_ = client.Disconnect(context.Background())
			},
		}, nil
	case "mysql":
		db, err := mysql.Connect(ctx, cfg.MySQL.Host, cfg.MySQL.User, cfg.MySQL.Pass, cfg.MySQL.DB)
		if err != nil {
			return nil, err
		}

		repo := mysql.NewMessageRepository(db)
		err = repo.Migrate(ctx)
		if err != nil {
			_ = db.Close()
			return nil, err
		}

		return &storeSet{
			messages: repo,
			history:  repo,
			close: func() {
				_ = db.Close()
			},
		}, nil
	}

	return nil, errors.Errorf("unknown store %q, expected one of memory, redis, mongo, mysql", cfg.Store)

}

func buildRedis(ctx context.Context) (*redis.Client, error) {
	redis := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Pass,
		DB:       cfg.Redis.DB,
	})

	_, err := redis.Ping(ctx).Result()
	if err != nil {
		_ = redis.Close()
		return nil, errors.Wrap(err, "failed to ping redis")
	}

	return redis, nil
}

func buildMongo(ctx context.Context) (*mongo.Client, error) {

	clientOpts := options.Client()
	clientOpts.SetAppName("redisish")
	clientOpts.SetHosts([]string{cfg.Mongo.Host})
	if cfg.Mongo.User != "" {
		clientOpts.SetAuth(options.Credential{
			AuthMechanism: "SCRAM-SHA-256",
			Username:      cfg.Mongo.User,
			Password:      cfg.Mongo.Pass,
		})
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to mongo db")
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "failed to ping mongo db")
	}

	return client, nil

}
