package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/ecoforecast-api/internal/domain"
	"github.com/jhoicas/ecoforecast-api/internal/domain/entity"
	"github.com/jhoicas/ecoforecast-api/internal/domain/repository"
	"github.com/jhoicas/ecoforecast-api/pkg/config"
)

func readings(e, w, f float64) entity.Readings {
	r := func(v float64) entity.Reading {
		return entity.Reading{Usage: decimal.NewFromFloat(v * 2), AmountPaid: decimal.NewFromFloat(v)}
	}
	return entity.Readings{Electricity: r(e), Water: r(w), Fuel: r(f)}
}

func TestRecord_IdaYVuelta(t *testing.T) {
	in := readings(50, 10, 15)
	doc := &entity.InputsDoc{Period: entity.PeriodQuarterly, Year: 2025, Inputs: &in}

	rec := toRecord(doc)
	rec.ID = primitive.NewObjectID()
	out := rec.toEntity()

	assert.Equal(t, rec.ID.Hex(), out.ID)
	require.NotNil(t, out.Inputs)
	assert.True(t, out.Inputs.Water.AmountPaid.Equal(decimal.NewFromInt(10)))
	assert.True(t, out.Inputs.Electricity.Usage.Equal(decimal.NewFromInt(100)))
	assert.Nil(t, out.Quarters)
}

// Documento del backend anterior: sin period, valores double, year int32.
func TestRecord_DocumentoLegadoSinPeriod(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"_id":  primitive.NewObjectID(),
		"year": int32(2024),
		"inputs": bson.M{
			"electricity": bson.M{"usage": 100.0, "amountPaid": 50.0},
			"water":       bson.M{"usage": 20.0, "amountPaid": 10.0},
			"fuel":        bson.M{"usage": 5.0, "amountPaid": 15.0},
		},
		"createdAt": time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	var rec record
	require.NoError(t, bson.Unmarshal(raw, &rec))
	doc := rec.toEntity()

	assert.Equal(t, entity.PeriodQuarterly, doc.Period)
	assert.Equal(t, 2024, doc.Year)
	require.NotNil(t, doc.Inputs)
	assert.True(t, doc.Inputs.Fuel.AmountPaid.Equal(decimal.NewFromInt(15)))
}

func TestLatestQuery(t *testing.T) {
	q := latestQuery(repository.LatestFilter{Period: entity.PeriodQuarterly})
	assert.Equal(t, bson.M{"period": bson.M{"$ne": "four-quarter"}}, q)

	q = latestQuery(repository.LatestFilter{Period: entity.PeriodFourQuarter, Company: "acme"})
	assert.Equal(t, bson.M{"period": "four-quarter", "company": "acme"}, q)
}

// ── Integración (requiere TEST_MONGO_URI) ────────────────────────────────────

func TestInputsRepo_Integracion(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI no definido")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := config.MongoConfig{URI: uri, Database: "ecoforecast_test", Collection: "inputs_" + primitive.NewObjectID().Hex()}
	client, err := Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	repo := NewInputsRepository(client, cfg)
	t.Cleanup(func() { _ = repo.coll.Drop(context.Background()) })
	require.NoError(t, repo.EnsureIndexes(ctx))

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	in := readings(1, 2, 3)
	_, err = repo.Insert(ctx, &entity.InputsDoc{Period: entity.PeriodQuarterly, Year: 2024, Inputs: &in})
	require.NoError(t, err)
	id2, err := repo.Insert(ctx, &entity.InputsDoc{Period: entity.PeriodQuarterly, Year: 2025, Inputs: &in})
	require.NoError(t, err)

	latest, err := repo.FindLatest(ctx, repository.LatestFilter{Period: entity.PeriodQuarterly})
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, id2, latest.ID)

	_, err = repo.FindByID(ctx, "zzz")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
	_, err = repo.FindByID(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
