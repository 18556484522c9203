package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domaindeliverer "motorent/internal/domain/deliverer"
	domainmoto "motorent/internal/domain/moto"
	domainplan "motorent/internal/domain/plan"
	domainrent "motorent/internal/domain/rent"
	"motorent/internal/domain/shared/money"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type RentRepository struct {
	col *mongo.Collection
}

func NewRentRepository(db *mongo.Database) *RentRepository {
	col := db.Collection("agg_rent")
	// one active rent per deliverer+plate
	idx := mongo.IndexModel{
		Keys: bson.D{{Key: "deliverer_id", Value: 1}, {Key: "plate", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"status": string(domainrent.StatusRented)}),
	}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{Keys: bson.D{{Key: "moto_id", Value: 1}}})
	return &RentRepository{col: col}
}

func (r *RentRepository) Create(ctx context.Context, rent *domainrent.Rent) error {
	doc := newRentDocument(rent)
	doc.Version = 1
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return err
	}
	rent.Version = doc.Version
	return nil
}

func (r *RentRepository) Update(ctx context.Context, rent *domainrent.Rent) error {
	doc := newRentDocument(rent)
	filter := bson.M{"_id": doc.ID, "version": rent.Version}
	doc.Version = rent.Version + 1
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrConcurrentUpdate
	}
	rent.Version = doc.Version
	return nil
}

func (r *RentRepository) ByID(ctx context.Context, id domainrent.ID) (*domainrent.Rent, error) {
	var doc rentDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainrent.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *RentRepository) Filter(ctx context.Context, filter domainrent.Filter, page domainrent.Page) ([]*domainrent.Rent, error) {
	query := bson.M{}
	if filter.DelivererID != "" {
		query["deliverer_id"] = string(filter.DelivererID)
	}
	if filter.Plate != "" {
		query["plate"] = filter.Plate
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}

	normalized := page.Normalized()
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(normalized.PerPage))

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rents := make([]*domainrent.Rent, 0)
	for cursor.Next(ctx) {
		var doc rentDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		rents = append(rents, doc.toAggregate())
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return rents, nil
}

func (r *RentRepository) FindRentedByPlate(ctx context.Context, delivererID domaindeliverer.ID, plate string) (*domainrent.Rent, error) {
	filter := bson.M{
		"deliverer_id": string(delivererID),
		"plate":        plate,
		"status":       string(domainrent.StatusRented),
	}
	var doc rentDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *RentRepository) CountByMoto(ctx context.Context, motoID domainmoto.ID) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"moto_id": string(motoID)})
}

type rentDocument struct {
	ID               string       `bson:"_id"`
	DelivererID      string       `bson:"deliverer_id"`
	MotoID           string       `bson:"moto_id"`
	Plate            string       `bson:"plate"`
	StartDate        int64        `bson:"start_date"`
	EndDate          int64        `bson:"end_date"`
	DeliveryForecast int64        `bson:"delivery_forecast"`
	Plan             planDocument `bson:"plan"`
	TotalCost        money.Money  `bson:"total_cost"`
	Status           string       `bson:"status"`
	CreatedAt        int64        `bson:"created_at"`
	UpdatedAt        int64        `bson:"updated_at"`
	Version          int64        `bson:"version"`
}

type planDocument struct {
	Days      int         `bson:"days"`
	DailyRate money.Money `bson:"daily_rate"`
}

func newRentDocument(r *domainrent.Rent) rentDocument {
	return rentDocument{
		ID:               string(r.ID),
		DelivererID:      string(r.DelivererID),
		MotoID:           string(r.MotoID),
		Plate:            r.Plate,
		StartDate:        r.StartDate.UnixMilli(),
		EndDate:          r.EndDate.UnixMilli(),
		DeliveryForecast: r.DeliveryForecast.UnixMilli(),
		Plan:             planDocument{Days: r.Plan.Days, DailyRate: r.Plan.DailyRate},
		TotalCost:        r.TotalCost,
		Status:           string(r.Status),
		CreatedAt:        r.CreatedAt.UnixMilli(),
		UpdatedAt:        r.UpdatedAt.UnixMilli(),
		Version:          r.Version,
	}
}

func (d rentDocument) toAggregate() *domainrent.Rent {
	return &domainrent.Rent{
		ID:               domainrent.ID(d.ID),
		DelivererID:      domaindeliverer.ID(d.DelivererID),
		MotoID:           domainmoto.ID(d.MotoID),
		Plate:            d.Plate,
		StartDate:        timestampToTime(d.StartDate),
		EndDate:          timestampToTime(d.EndDate),
		DeliveryForecast: timestampToTime(d.DeliveryForecast),
		Plan:             domainplan.RentPlan{Days: d.Plan.Days, DailyRate: d.Plan.DailyRate},
		TotalCost:        d.TotalCost,
		Status:           domainrent.Status(d.Status),
		CreatedAt:        timestampToTime(d.CreatedAt),
		UpdatedAt:        timestampToTime(d.UpdatedAt),
		Version:          d.Version,
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
