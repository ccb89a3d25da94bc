package mongo

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const servicesNS = "salon.services"

func TestServiceCatalog_FindByIDs(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes back office documents", func(mt *mtest.T) {
		catalog := NewServiceCatalog(mt.DB)
		cut, shave := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, servicesNS, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: cut},
				{Key: "name", Value: "Haircut"},
				{Key: "duration", Value: 30},
				{Key: "price", Value: 250.0},
				{Key: "serviceType", Value: "additional"},
			},
			bson.D{
				{Key: "_id", Value: shave},
				{Key: "name", Value: "Shave"},
				{Key: "duration", Value: 15},
				{Key: "price", Value: 100.0},
			},
		))

		found, err := catalog.FindByIDs(context.Background(), []string{cut.Hex(), shave.Hex()})
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if len(found) != 2 {
			t.Fatalf("expected 2 services, got %d", len(found))
		}
		if found[0].Type != "additional" || found[0].DurationMinutes != 30 {
			t.Fatalf("unexpected first service: %+v", found[0])
		}
		if found[1].Type != "main" {
			t.Fatalf("missing serviceType must default to main, got %q", found[1].Type)
		}
	})

	mt.Run("malformed ids never reach the server", func(mt *mtest.T) {
		catalog := NewServiceCatalog(mt.DB)

		found, err := catalog.FindByIDs(context.Background(), []string{"nope"})
		if err != nil || len(found) != 0 {
			t.Fatalf("expected empty result, got %v, %v", found, err)
		}
	})
}
