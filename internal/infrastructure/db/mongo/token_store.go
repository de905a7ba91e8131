package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clinicdesk/clinic-web/internal/core/domain"
)

const collectionTokens = "client_tokens"

// TokenStore persists one bearer token per client id in MongoDB. A TTL index
// on expires_at lets the server purge stale entries; Load also checks the
// expiry because the purge runs only once a minute.
type TokenStore struct {
	col *mongo.Collection
	now func() time.Time
}

func NewTokenStore(db *mongo.Database) *TokenStore {
	return &TokenStore{col: db.Collection(collectionTokens), now: time.Now}
}

type tokenDoc struct {
	ClientID  string    `bson:"_id"`
	Token     string    `bson:"token"`
	ExpiresAt time.Time `bson:"expires_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (s *TokenStore) Load(ctx context.Context, clientID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tokenDoc
	err := s.col.FindOne(ctx, bson.M{"_id": clientID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", domain.ErrTokenNotFound
		}
		return "", fmt.Errorf("find token: %w", err)
	}
	if !s.now().Before(doc.ExpiresAt) {
		return "", domain.ErrTokenNotFound
	}
	return doc.Token, nil
}

// Save upserts the token of clientID.
func (s *TokenStore) Save(ctx context.Context, clientID, token string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := s.now().UTC()
	doc := tokenDoc{ClientID: clientID, Token: token, ExpiresAt: now.Add(ttl), UpdatedAt: now}
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": clientID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *TokenStore) Clear(ctx context.Context, clientID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": clientID}); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// Ping reports whether the database answers.
func (s *TokenStore) Ping(ctx context.Context) error {
	return s.col.Database().RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// EnsureIndexes creates the TTL index on the tokens collection.
func (s *TokenStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0).SetName("expires_at_ttl"),
	})
	if err != nil {
		return fmt.Errorf("create token indexes: %w", err)
	}
	return nil
}
