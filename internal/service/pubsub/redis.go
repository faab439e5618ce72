package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/kingrain94/support-desk-api/internal/domain"
	"github.com/kingrain94/support-desk-api/pkg/logger"
)

const (
	channelPrefix = "tickets:"
)

type RedisPubSub struct {
	client       *redis.Client
	logger       *logger.Logger
	subscribers  map[string]*redis.PubSub // Map of tenant ID to subscriber
	subscriberMu sync.RWMutex
}

func NewRedisPubSub(client *redis.Client, logger *logger.Logger) *RedisPubSub {
	return &RedisPubSub{
		client:      client,
		logger:      logger,
		subscribers: make(map[string]*redis.PubSub),
	}
}

func ChannelName(tenantID string) string {
	return channelPrefix + tenantID
}

// Publish publishes a ticket event to the tenant's Redis channel
func (ps *RedisPubSub) Publish(ctx context.Context, event domain.TicketEvent) error {
	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal ticket event: %w", err)
	}

	channel := ChannelName(event.TenantID)
	if err := ps.client.Publish(ctx, channel, message).Err(); err != nil {
		return fmt.Errorf("failed to publish to Redis channel %s: %w", channel, err)
	}

	return nil
}

// Subscribe subscribes to ticket events for a specific tenant. It returns
// once Redis has confirmed the subscription.
func (ps *RedisPubSub) Subscribe(ctx context.Context, tenantID string, callback func(*domain.TicketEvent)) error {
	channel := ChannelName(tenantID)

	ps.subscriberMu.Lock()
	if _, exists := ps.subscribers[tenantID]; exists {
		ps.subscriberMu.Unlock()
		ps.logger.Infof("Already subscribed to tenant channel: %s", channel)
		return nil
	}
	pubsub := ps.client.Subscribe(ctx, channel)
	ps.subscribers[tenantID] = pubsub
	ps.subscriberMu.Unlock()

	if _, err := pubsub.Receive(ctx); err != nil {
		ps.remove(tenantID, pubsub)
		return fmt.Errorf("failed to subscribe to Redis channel %s: %w", channel, err)
	}

	go func() {
		defer func() {
			ps.logger.Infof("Closing subscription for tenant channel: %s", channel)
			ps.remove(tenantID, pubsub)
		}()

		ch := pubsub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event domain.TicketEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					ps.logger.Errorf("Failed to unmarshal ticket event from channel %s: %v", channel, err)
					continue
				}
				callback(&event)

			case <-ctx.Done():
				return
			}
		}
	}()

	ps.logger.Infof("Subscribed to tenant channel: %s", channel)
	return nil
}

// remove closes pubsub and forgets it, unless a newer subscription has
// replaced it already.
func (ps *RedisPubSub) remove(tenantID string, pubsub *redis.PubSub) {
	pubsub.Close()
	ps.subscriberMu.Lock()
	if ps.subscribers[tenantID] == pubsub {
		delete(ps.subscribers, tenantID)
	}
	ps.subscriberMu.Unlock()
}

// Unsubscribe removes subscription for a tenant
func (ps *RedisPubSub) Unsubscribe(tenantID string) {
	ps.subscriberMu.Lock()
	defer ps.subscriberMu.Unlock()

	if pubsub, exists := ps.subscribers[tenantID]; exists {
		pubsub.Close()
		delete(ps.subscribers, tenantID)
		ps.logger.Infof("Unsubscribed from tenant channel: %s", ChannelName(tenantID))
	}
}

func (ps *RedisPubSub) Close() {
	ps.subscriberMu.Lock()
	defer ps.subscriberMu.Unlock()

	for tenantID, pubsub := range ps.subscribers {
		pubsub.Close()
		delete(ps.subscribers, tenantID)
		ps.logger.Infof("Closed subscription for tenant channel: %s", ChannelName(tenantID))
	}
}
