package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"motorent/internal/domain/notification"
)

type NotificationStore struct {
	col *mongo.Collection
}

func NewNotificationStore(db *mongo.Database) *NotificationStore {
	return &NotificationStore{col: db.Collection("app_notification")}
}

func (s *NotificationStore) Save(ctx context.Context, n notification.Notification) error {
	doc := notificationDocument{
		ID:        n.ID,
		MotoID:    n.MotoID,
		Year:      n.Year,
		Model:     n.Model,
		Plate:     n.Plate,
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
	}
	_, err := s.col.InsertOne(ctx, doc)
	return err
}

func (s *NotificationStore) All(ctx context.Context) ([]notification.Notification, error) {
	cursor, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []notification.Notification
	for cursor.Next(ctx) {
		var doc notificationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, notification.Notification{
			ID:        doc.ID,
			MotoID:    doc.MotoID,
			Year:      doc.Year,
			Model:     doc.Model,
			Plate:     doc.Plate,
			Message:   doc.Message,
			CreatedAt: doc.CreatedAt.UTC(),
		})
	}
	return out, cursor.Err()
}

type notificationDocument struct {
	ID        string    `bson:"_id"`
	MotoID    string    `bson:"moto_id"`
	Year      int       `bson:"year"`
	Model     string    `bson:"model"`
	Plate     string    `bson:"plate"`
	Message   string    `bson:"message"`
	CreatedAt time.Time `bson:"created_at"`
}
