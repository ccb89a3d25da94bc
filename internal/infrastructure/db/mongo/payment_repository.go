package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/barbaria/salon-booking/internal/core/domain"
)

const collectionPayments = "payments"

type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection(collectionPayments)}
}

type paymentDocument struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty"`
	AppointmentID *primitive.ObjectID `bson:"appointment_id,omitempty"`
	Amount        float64             `bson:"amount"`
	Method        string              `bson:"payment_method"`
	Status        string              `bson:"status"`
	PaymentDate   time.Time           `bson:"payment_date"`
	CreatedAt     time.Time           `bson:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at"`
}

// toDomain normalises legacy method values such as "credit_card". Unknown
// methods are passed through as stored.
func (d *paymentDocument) toDomain() *domain.Payment {
	method, err := domain.ParsePaymentMethod(d.Method)
	if err != nil {
		method = domain.PaymentMethod(d.Method)
	}
	return &domain.Payment{
		ID:            d.ID.Hex(),
		AppointmentID: hexOf(d.AppointmentID),
		Amount:        d.Amount,
		Method:        method,
		Status:        domain.PaymentStatus(d.Status),
		PaymentDate:   d.PaymentDate,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	appointment, err := optionalObjectID(p.AppointmentID)
	if err != nil {
		return nil, err
	}
	doc := paymentDocument{
		AppointmentID: appointment,
		Amount:        p.Amount,
		Method:        string(p.Method),
		Status:        string(p.Status),
		PaymentDate:   p.PaymentDate.UTC(),
		CreatedAt:     p.CreatedAt.UTC(),
		UpdatedAt:     p.UpdatedAt.UTC(),
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc paymentDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PaymentRepository) List(ctx context.Context) ([]*domain.Payment, error) {
	return r.find(ctx, bson.M{})
}

// FindByDateRange returns payments dated in [start, end), oldest first.
func (r *PaymentRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Payment, error) {
	return r.find(ctx, bson.M{"payment_date": bson.M{"$gte": start.UTC(), "$lt": end.UTC()}})
}

func (r *PaymentRepository) find(ctx context.Context, filter bson.M) ([]*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "payment_date", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find payments: %w", err)
	}
	defer cur.Close(ctx)

	var docs []paymentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}

	out := make([]*domain.Payment, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

// Update writes the mutable fields. payment_date and appointment_id are
// never touched.
func (r *PaymentRepository) Update(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	oid, err := objectID(p.ID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"amount":         p.Amount,
		"payment_method": string(p.Method),
		"status":         string(p.Status),
		"updated_at":     p.UpdatedAt.UTC(),
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc paymentDocument
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("update payment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

// EnsureIndexes creates the payment_date index used by monthly reports.
func (r *PaymentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "payment_date", Value: 1}}},
		{Keys: bson.D{{Key: "appointment_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
