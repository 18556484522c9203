package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainauth "motorent/internal/domain/auth"
	domaindeliverer "motorent/internal/domain/deliverer"
)

// SessionStore keeps bearer sessions with a TTL index on expiry.
type SessionStore struct {
	col *mongo.Collection
}

func NewSessionStore(db *mongo.Database) *SessionStore {
	col := db.Collection("app_session")
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{Keys: bson.D{{Key: "deliverer_id", Value: 1}}})
	return &SessionStore{col: col}
}

func (s *SessionStore) Save(ctx context.Context, session *domainauth.Session) error {
	if session == nil {
		return domainauth.ErrTokenRequired
	}
	doc := sessionDocument{
		ID:          string(session.Token),
		DelivererID: string(session.DelivererID),
		CreatedAt:   session.CreatedAt,
		ExpiresAt:   session.ExpiresAt,
	}
	opts := options.Update().SetUpsert(true)
	_, err := s.col.UpdateByID(ctx, doc.ID, bson.M{"$set": doc}, opts)
	return err
}

func (s *SessionStore) Get(ctx context.Context, token domainauth.Token) (*domainauth.Session, error) {
	var doc sessionDocument
	if err := s.col.FindOne(ctx, bson.M{"_id": string(token)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainauth.ErrSessionNotFound
		}
		return nil, err
	}
	session := doc.toSession()
	if session.Expired(time.Now()) {
		_ = s.Delete(ctx, token)
		return nil, domainauth.ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionStore) Delete(ctx context.Context, token domainauth.Token) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": string(token)})
	return err
}

func (s *SessionStore) DeleteByDeliverer(ctx context.Context, id domaindeliverer.ID) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"deliverer_id": string(id)})
	return err
}

type sessionDocument struct {
	ID          string    `bson:"_id"`
	DelivererID string    `bson:"deliverer_id"`
	CreatedAt   time.Time `bson:"created_at"`
	ExpiresAt   time.Time `bson:"expires_at"`
}

func (d sessionDocument) toSession() *domainauth.Session {
	return &domainauth.Session{
		Token:       domainauth.Token(d.ID),
		DelivererID: domaindeliverer.ID(d.DelivererID),
		CreatedAt:   d.CreatedAt.UTC(),
		ExpiresAt:   d.ExpiresAt.UTC(),
	}
}
