// Package mongodb implementa el repositorio de consumos sobre MongoDB.
// Lee también los documentos escritos por el backend anterior (sin campo period, números double).
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/ecoforecast-api/internal/domain"
	"github.com/jhoicas/ecoforecast-api/internal/domain/entity"
	"github.com/jhoicas/ecoforecast-api/internal/domain/repository"
	"github.com/jhoicas/ecoforecast-api/pkg/config"
)

var _ repository.InputsRepository = (*InputsRepo)(nil)

// Connect abre el cliente y verifica la conexión.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("conectar mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// InputsRepo implementación del puerto InputsRepository sobre una colección MongoDB.
type InputsRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewInputsRepository construye el adaptador sobre la colección configurada.
func NewInputsRepository(client *mongo.Client, cfg config.MongoConfig) *InputsRepo {
	return &InputsRepo{
		coll: client.Database(cfg.Database).Collection(cfg.Collection),
		now:  time.Now,
	}
}

// EnsureIndexes crea el índice usado por FindLatest.
func (r *InputsRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "period", Value: 1}, {Key: "company", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("crear índice inputs: %w", err)
	}
	return nil
}

// Insert persiste el documento; el ObjectID lo genera el driver.
func (r *InputsRepo) Insert(ctx context.Context, doc *entity.InputsDoc) (string, error) {
	rec := toRecord(doc)
	rec.ID = primitive.NewObjectID()
	// Mongo guarda milisegundos: truncar para que el doc devuelto coincida con el guardado.
	rec.CreatedAt = r.now().UTC().Truncate(time.Millisecond)

	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		return "", fmt.Errorf("insert inputs: %w", err)
	}
	doc.ID = rec.ID.Hex()
	doc.CreatedAt = rec.CreatedAt
	return doc.ID, nil
}

// FindLatest ordena por createdAt y luego _id, ambos descendentes.
func (r *InputsRepo) FindLatest(ctx context.Context, filter repository.LatestFilter) (*entity.InputsDoc, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	var rec record
	err := r.coll.FindOne(ctx, latestQuery(filter), opts).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest inputs: %w", err)
	}
	return rec.toEntity(), nil
}

// FindByID exige un ObjectID hexadecimal válido.
func (r *InputsRepo) FindByID(ctx context.Context, id string) (*entity.InputsDoc, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	var rec record
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get inputs: %w", err)
	}
	return rec.toEntity(), nil
}

// latestQuery: los documentos trimestrales antiguos no tienen period, por eso se filtra con $ne.
func latestQuery(f repository.LatestFilter) bson.M {
	q := bson.M{}
	switch f.Period {
	case entity.PeriodFourQuarter:
		q["period"] = string(entity.PeriodFourQuarter)
	case entity.PeriodQuarterly:
		q["period"] = bson.M{"$ne": string(entity.PeriodFourQuarter)}
	}
	if f.Company != "" {
		q["company"] = f.Company
	}
	return q
}

// ── Registros BSON ────────────────────────────────────────────────────────────

type record struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Period    string             `bson:"period,omitempty"`
	Company   string             `bson:"company,omitempty"`
	Year      int                `bson:"year"`
	Inputs    *readingsRecord    `bson:"inputs,omitempty"`
	Quarters  *quartersRecord    `bson:"quarters,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type readingRecord struct {
	Usage      float64 `bson:"usage"`
	AmountPaid float64 `bson:"amountPaid"`
}

type readingsRecord struct {
	Electricity readingRecord `bson:"electricity"`
	Water       readingRecord `bson:"water"`
	Fuel        readingRecord `bson:"fuel"`
}

type quartersRecord struct {
	Q1 readingsRecord `bson:"q1"`
	Q2 readingsRecord `bson:"q2"`
	Q3 readingsRecord `bson:"q3"`
	Q4 readingsRecord `bson:"q4"`
}

func toRecord(d *entity.InputsDoc) record {
	rec := record{
		Period:  string(d.Period),
		Company: d.Company,
		Year:    d.Year,
	}
	if d.Inputs != nil {
		r := fromReadings(*d.Inputs)
		rec.Inputs = &r
	}
	if d.Quarters != nil {
		rec.Quarters = &quartersRecord{
			Q1: fromReadings(d.Quarters.Q1),
			Q2: fromReadings(d.Quarters.Q2),
			Q3: fromReadings(d.Quarters.Q3),
			Q4: fromReadings(d.Quarters.Q4),
		}
	}
	return rec
}

func (rec record) toEntity() *entity.InputsDoc {
	d := &entity.InputsDoc{
		ID:        rec.ID.Hex(),
		Period:    entity.Period(rec.Period),
		Company:   rec.Company,
		Year:      rec.Year,
		CreatedAt: rec.CreatedAt.UTC(),
	}
	if d.Period == "" {
		d.Period = entity.PeriodQuarterly
	}
	if rec.Inputs != nil {
		r := rec.Inputs.toEntity()
		d.Inputs = &r
	}
	if rec.Quarters != nil {
		d.Quarters = &entity.Quarters{
			Q1: rec.Quarters.Q1.toEntity(),
			Q2: rec.Quarters.Q2.toEntity(),
			Q3: rec.Quarters.Q3.toEntity(),
			Q4: rec.Quarters.Q4.toEntity(),
		}
	}
	return d
}

func fromReadings(r entity.Readings) readingsRecord {
	conv := func(x entity.Reading) readingRecord {
		return readingRecord{Usage: x.Usage.InexactFloat64(), AmountPaid: x.AmountPaid.InexactFloat64()}
	}
	return readingsRecord{
		Electricity: conv(r.Electricity),
		Water:       conv(r.Water),
		Fuel:        conv(r.Fuel),
	}
}

func (r readingsRecord) toEntity() entity.Readings {
	conv := func(x readingRecord) entity.Reading {
		return entity.Reading{Usage: decimal.NewFromFloat(x.Usage), AmountPaid: decimal.NewFromFloat(x.AmountPaid)}
	}
	return entity.Readings{
		Electricity: conv(r.Electricity),
		Water:       conv(r.Water),
		Fuel:        conv(r.Fuel),
	}
}
