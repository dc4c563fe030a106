package booking

import (
	"context"
	"encoding/json"
	"time"

	"drivewell/models"

	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// stripeCheckoutClient is the live CheckoutClient backed by the Stripe SDK.
type stripeCheckoutClient struct{}

func NewStripeCheckoutClient() CheckoutClient {
	return stripeCheckoutClient{}
}

func (stripeCheckoutClient) NewSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return session.New(params)
}

// redisIntentStore keeps pending checkout intents in Redis under a TTL so
// abandoned sessions expire on their own.
type redisIntentStore struct {
	client *redis.Client
}

func NewRedisIntentStore(client *redis.Client) IntentStore {
	return &redisIntentStore{client: client}
}

func intentKey(intentID string) string {
	return "intent:" + intentID
}

func (s *redisIntentStore) Save(intent models.PendingIntent, ttl time.Duration) error {
	data, err := json.Marshal(intent)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Set(ctx, intentKey(intent.IntentID), data, ttl).Err()
}

func (s *redisIntentStore) Consume(intentID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.client.Del(ctx, intentKey(intentID)).Err()
}
