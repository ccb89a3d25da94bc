package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/barbaria/salon-booking/internal/core/domain"
)

const collectionServices = "services"

// ServiceCatalog reads the services collection. Services are managed by a
// separate back office, so there is no write path here.
type ServiceCatalog struct {
	col *mongo.Collection
}

func NewServiceCatalog(db *mongo.Database) *ServiceCatalog {
	return &ServiceCatalog{col: db.Collection(collectionServices)}
}

// serviceDocument follows the back office's field names, which are
// camelCase unlike the collections owned here.
type serviceDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Duration    int                `bson:"duration"`
	Price       float64            `bson:"price"`
	Description string             `bson:"description,omitempty"`
	ServiceType string             `bson:"serviceType"`
}

const defaultServiceType = "main"

func (c *ServiceCatalog) FindByIDs(ctx context.Context, ids []string) ([]domain.Service, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := c.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find services: %w", err)
	}
	defer cur.Close(ctx)

	var docs []serviceDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}

	out := make([]domain.Service, 0, len(docs))
	for _, d := range docs {
		if d.ServiceType == "" {
			d.ServiceType = defaultServiceType
		}
		out = append(out, domain.Service{
			ID:              d.ID.Hex(),
			Name:            d.Name,
			DurationMinutes: d.Duration,
			Price:           d.Price,
			Description:     d.Description,
			Type:            d.ServiceType,
		})
	}
	return out, nil
}
