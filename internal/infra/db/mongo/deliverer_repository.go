package mongo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domaindeliverer "motorent/internal/domain/deliverer"
)

type DelivererRepository struct {
	col *mongo.Collection
}

func NewDelivererRepository(db *mongo.Database) *DelivererRepository {
	col := db.Collection("agg_deliverer")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "cnh_number", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_cnh_number"),
	})
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "cnpj", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_cnpj"),
	})
	return &DelivererRepository{col: col}
}

func (r *DelivererRepository) ByID(ctx context.Context, id domaindeliverer.ID) (*domaindeliverer.Deliverer, error) {
	return r.findOne(ctx, bson.M{"_id": string(id)})
}

func (r *DelivererRepository) ByCNHNumber(ctx context.Context, cnh string) (*domaindeliverer.Deliverer, error) {
	return r.findOne(ctx, bson.M{"cnh_number": cnh})
}

func (r *DelivererRepository) ByCNPJ(ctx context.Context, cnpj string) (*domaindeliverer.Deliverer, error) {
	return r.findOne(ctx, bson.M{"cnpj": cnpj})
}

func (r *DelivererRepository) Save(ctx context.Context, d *domaindeliverer.Deliverer) error {
	doc := newDelivererDocument(d)
	opts := options.Update().SetUpsert(true)
	if _, err := r.col.UpdateByID(ctx, doc.ID, bson.M{"$set": doc}, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), "uniq_cnpj") {
				return domaindeliverer.ErrCNPJAlreadyUsed
			}
			return domaindeliverer.ErrCNHAlreadyUsed
		}
		return err
	}
	return nil
}

func (r *DelivererRepository) findOne(ctx context.Context, filter bson.M) (*domaindeliverer.Deliverer, error) {
	var doc delivererDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domaindeliverer.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

type delivererDocument struct {
	ID           string `bson:"_id"`
	Name         string `bson:"name"`
	CNPJ         string `bson:"cnpj"`
	BirthDate    int64  `bson:"birth_date"`
	CNHNumber    string `bson:"cnh_number"`
	CNHType      string `bson:"cnh_type"`
	CNHImageURL  string `bson:"cnh_image_url"`
	PasswordHash string `bson:"password_hash"`
	CreatedAt    int64  `bson:"created_at"`
	UpdatedAt    int64  `bson:"updated_at"`
}

func newDelivererDocument(d *domaindeliverer.Deliverer) delivererDocument {
	return delivererDocument{
		ID:           string(d.ID),
		Name:         d.Name,
		CNPJ:         d.CNPJ,
		BirthDate:    d.BirthDate.UnixMilli(),
		CNHNumber:    d.CNHNumber,
		CNHType:      string(d.CNHType),
		CNHImageURL:  d.CNHImageURL,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt.UnixMilli(),
		UpdatedAt:    d.UpdatedAt.UnixMilli(),
	}
}

func (d delivererDocument) toAggregate() *domaindeliverer.Deliverer {
	return &domaindeliverer.Deliverer{
		ID:           domaindeliverer.ID(d.ID),
		Name:         d.Name,
		CNPJ:         d.CNPJ,
		BirthDate:    timestampToTime(d.BirthDate),
		CNHNumber:    d.CNHNumber,
		CNHType:      domaindeliverer.LicenseType(d.CNHType),
		CNHImageURL:  d.CNHImageURL,
		PasswordHash: d.PasswordHash,
		CreatedAt:    timestampToTime(d.CreatedAt),
		UpdatedAt:    timestampToTime(d.UpdatedAt),
	}
}
