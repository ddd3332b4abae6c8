package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"golang.org/x/sync/singleflight"
)

const (
	// MongoTimeout bounds a single connect or write against the document store.
	MongoTimeout = 10 * time.Second

	CollectionContactSubmissions = "contactsubmissions"
)

// ErrMongoNotConfigured is returned when no connection string was supplied.
var ErrMongoNotConfigured = errors.New("mongodb uri not configured")

// MongoDialer opens a verified client.
type MongoDialer func(ctx context.Context) (*mongo.Client, error)

// MongoProvider hands out one process-wide client, connecting on first use.
// Concurrent callers share one in-flight connect. A failed connect is not
// cached; the next caller tries again.
type MongoProvider struct {
	mu     sync.Mutex
	client *mongo.Client
	dial   MongoDialer
	dials  singleflight.Group
}

// NewMongoProvider builds a provider for the given connection string.
func NewMongoProvider(uri string) *MongoProvider {
	return NewMongoProviderWithDialer(func(ctx context.Context) (*mongo.Client, error) {
		return dialMongo(ctx, uri)
	})
}

// NewMongoProviderWithDialer allows injecting a custom dialer (useful for tests).
func NewMongoProviderWithDialer(dial MongoDialer) *MongoProvider {
	return &MongoProvider{dial: dial}
}

// Client returns the cached client, connecting if none is established yet.
func (p *MongoProvider) Client(ctx context.Context) (*mongo.Client, error) {
	if client := p.cached(); client != nil {
		return client, nil
	}

	v, err, _ := p.dials.Do("client", func() (any, error) {
		if client := p.cached(); client != nil {
			return client, nil
		}
		// The dial outlives the caller that started it; MongoTimeout bounds it.
		client, err := p.dial(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.client = client
		p.mu.Unlock()
		return client, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*mongo.Client), nil
}

func (p *MongoProvider) cached() *mongo.Client {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.client
}

// Close disconnects the cached client if one was established.
func (p *MongoProvider) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client == nil {
		return nil
	}
	err := p.client.Disconnect(ctx)
	p.client = nil
	return err
}

func dialMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, ErrMongoNotConfigured
	}

	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(10).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, MongoTimeout)
	defer cancel()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return client, nil
}
