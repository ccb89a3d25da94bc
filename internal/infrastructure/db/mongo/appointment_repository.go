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

const collectionAppointments = "appointments"

type AppointmentRepository struct {
	col *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{col: db.Collection(collectionAppointments)}
}

// appointmentDocument stores references only; customer, staff and service
// details are resolved on read.
type appointmentDocument struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	CustomerID  *primitive.ObjectID  `bson:"customer_id,omitempty"`
	GuestName   string               `bson:"guest_name,omitempty"`
	GuestPhone  string               `bson:"guest_phone,omitempty"`
	StaffID     primitive.ObjectID   `bson:"staff_id"`
	ServiceIDs  []primitive.ObjectID `bson:"service_ids"`
	ScheduledAt time.Time            `bson:"scheduled_at"`
	Status      string               `bson:"status"`
	Notes       string               `bson:"notes,omitempty"`
	PaymentID   *primitive.ObjectID  `bson:"payment_id,omitempty"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

func toAppointmentDocument(a *domain.Appointment) (*appointmentDocument, error) {
	customer, err := optionalObjectID(a.CustomerID)
	if err != nil {
		return nil, err
	}
	staff, err := objectID(a.StaffID)
	if err != nil {
		return nil, err
	}
	payment, err := optionalObjectID(a.PaymentID)
	if err != nil {
		return nil, err
	}
	services := make([]primitive.ObjectID, 0, len(a.ServiceIDs))
	for _, id := range a.ServiceIDs {
		oid, err := objectID(id)
		if err != nil {
			return nil, err
		}
		services = append(services, oid)
	}

	doc := &appointmentDocument{
		CustomerID:  customer,
		GuestName:   a.GuestName,
		GuestPhone:  a.GuestPhone,
		StaffID:     staff,
		ServiceIDs:  services,
		ScheduledAt: a.ScheduledAt.UTC(),
		Status:      string(a.Status),
		Notes:       a.Notes,
		PaymentID:   payment,
		CreatedAt:   a.CreatedAt.UTC(),
		UpdatedAt:   a.UpdatedAt.UTC(),
	}
	if a.ID != "" {
		if doc.ID, err = objectID(a.ID); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (d *appointmentDocument) toDomain() *domain.Appointment {
	services := make([]string, 0, len(d.ServiceIDs))
	for _, oid := range d.ServiceIDs {
		services = append(services, oid.Hex())
	}
	return &domain.Appointment{
		ID:          d.ID.Hex(),
		CustomerID:  hexOf(d.CustomerID),
		GuestName:   d.GuestName,
		GuestPhone:  d.GuestPhone,
		StaffID:     d.StaffID.Hex(),
		ServiceIDs:  services,
		ScheduledAt: d.ScheduledAt,
		Status:      domain.AppointmentStatus(d.Status),
		Notes:       d.Notes,
		PaymentID:   hexOf(d.PaymentID),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	doc, err := toAppointmentDocument(a)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc appointmentDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns every appointment ordered by scheduled time.
func (r *AppointmentRepository) List(ctx context.Context) ([]*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find appointments: %w", err)
	}
	defer cur.Close(ctx)

	var docs []appointmentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}

	out := make([]*domain.Appointment, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

// Update replaces the stored document. Guest fields and the customer
// reference are written together so a booking cannot end up with both.
func (r *AppointmentRepository) Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	doc, err := toAppointmentDocument(a)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrAppointmentNotFound
	}
	return doc.toDomain(), nil
}

func (r *AppointmentRepository) SetPayment(ctx context.Context, appointmentID, paymentID string) error {
	aid, err := objectID(appointmentID)
	if err != nil {
		return err
	}
	pid, err := objectID(paymentID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"payment_id": pid, "updated_at": time.Now().UTC()}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": aid}, update)
	if err != nil {
		return fmt.Errorf("set appointment payment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the appointments collection.
func (r *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "staff_id", Value: 1}, {Key: "scheduled_at", Value: 1}}},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
