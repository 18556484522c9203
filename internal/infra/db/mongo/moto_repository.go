package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainmoto "motorent/internal/domain/moto"
)

type MotoRepository struct {
	col *mongo.Collection
}

func NewMotoRepository(db *mongo.Database) *MotoRepository {
	col := db.Collection("agg_moto")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "plate", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &MotoRepository{col: col}
}

func (r *MotoRepository) ByID(ctx context.Context, id domainmoto.ID) (*domainmoto.Motorcycle, error) {
	return r.findOne(ctx, bson.M{"_id": string(id)})
}

func (r *MotoRepository) ByPlate(ctx context.Context, plate string) (*domainmoto.Motorcycle, error) {
	return r.findOne(ctx, bson.M{"plate": plate})
}

func (r *MotoRepository) Search(ctx context.Context, platePrefix string) ([]*domainmoto.Motorcycle, error) {
	filter := bson.M{}
	if platePrefix != "" {
		filter["plate"] = bson.M{"$regex": "^" + platePrefix}
	}
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "plate", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	motos := make([]*domainmoto.Motorcycle, 0)
	for cursor.Next(ctx) {
		var doc motoDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		motos = append(motos, doc.toAggregate())
	}
	return motos, cursor.Err()
}

func (r *MotoRepository) Save(ctx context.Context, m *domainmoto.Motorcycle) error {
	doc := newMotoDocument(m)
	opts := options.Update().SetUpsert(true)
	if _, err := r.col.UpdateByID(ctx, doc.ID, bson.M{"$set": doc}, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainmoto.ErrPlateAlreadyUsed
		}
		return err
	}
	return nil
}

func (r *MotoRepository) Delete(ctx context.Context, id domainmoto.ID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainmoto.ErrNotFound
	}
	return nil
}

func (r *MotoRepository) findOne(ctx context.Context, filter bson.M) (*domainmoto.Motorcycle, error) {
	var doc motoDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainmoto.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

type motoDocument struct {
	ID        string `bson:"_id"`
	Year      int    `bson:"year"`
	Model     string `bson:"model"`
	Plate     string `bson:"plate"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func newMotoDocument(m *domainmoto.Motorcycle) motoDocument {
	return motoDocument{
		ID:        string(m.ID),
		Year:      m.Year,
		Model:     m.Model,
		Plate:     m.Plate,
		CreatedAt: m.CreatedAt.UnixMilli(),
		UpdatedAt: m.UpdatedAt.UnixMilli(),
	}
}

func (d motoDocument) toAggregate() *domainmoto.Motorcycle {
	return &domainmoto.Motorcycle{
		ID:        domainmoto.ID(d.ID),
		Year:      d.Year,
		Model:     d.Model,
		Plate:     d.Plate,
		CreatedAt: timestampToTime(d.CreatedAt),
		UpdatedAt: timestampToTime(d.UpdatedAt),
	}
}
