package form_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecoforecast-api/internal/application/form"
	"github.com/jhoicas/ecoforecast-api/internal/domain"
	"github.com/jhoicas/ecoforecast-api/internal/domain/entity"
)

type fakeGateway struct {
	mu      sync.Mutex
	saved   []entity.Readings
	years   []int
	latest  *entity.Readings
	saveErr error
	block   chan struct{} // si no es nil, SaveInputs espera a que se cierre
	started chan struct{}
}

func (g *fakeGateway) SaveInputs(_ context.Context, r entity.Readings, year int) (string, error) {
	if g.started != nil {
		close(g.started)
	}
	if g.block != nil {
		<-g.block
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.saveErr != nil {
		return "", g.saveErr
	}
	g.saved = append(g.saved, r)
	g.years = append(g.years, year)
	return "abc123", nil
}

func (g *fakeGateway) LatestInputs(context.Context) (*entity.Readings, error) {
	return g.latest, nil
}

func fill(t *testing.T, c *form.Controller) {
	t.Helper()
	values := map[entity.Category][2]string{
		entity.Electricity: {"100", "50"},
		entity.Water:       {"20", "10"},
		entity.Fuel:        {"5", "15"},
	}
	for cat, v := range values {
		require.NoError(t, c.Edit(cat, entity.FieldUsage, v[0]))
		require.NoError(t, c.Edit(cat, entity.FieldAmountPaid, v[1]))
	}
}

func TestController_SaveCorrecto(t *testing.T) {
	gw := &fakeGateway{}
	var navigated string
	c := form.NewController(gw, form.WithYear(2024), form.OnSaved(func(id string) { navigated = id }))
	fill(t, c)

	id, err := c.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)
	assert.Equal(t, form.StateSaved, c.State())
	assert.Equal(t, "Saved! (id: abc123)", c.Notice())
	assert.NoError(t, c.Err())
	assert.Equal(t, "abc123", navigated)

	require.Len(t, gw.saved, 1)
	assert.Equal(t, []int{2024}, gw.years)
	assert.True(t, gw.saved[0].Water.AmountPaid.Equal(decimal.NewFromInt(10)))
}

func TestController_ValidacionNoLlamaAlGateway(t *testing.T) {
	gw := &fakeGateway{}
	called := false
	c := form.NewController(gw, form.OnSaved(func(string) { called = true }))
	fill(t, c)
	require.NoError(t, c.Edit(entity.Water, entity.FieldAmountPaid, ""))

	_, err := c.Save(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.EqualError(t, c.Err(), "Water amount paid is required")
	assert.Equal(t, form.StateEditing, c.State())
	assert.Empty(t, gw.saved)
	assert.False(t, called)
}

func TestController_NegativoRechazado(t *testing.T) {
	c := form.NewController(&fakeGateway{})
	fill(t, c)
	require.NoError(t, c.Edit(entity.Fuel, entity.FieldUsage, "-3"))

	_, err := c.Save(context.Background())
	assert.EqualError(t, err, "Fuel usage must be a non-negative number")
}

func TestController_FalloDeGuardadoConservaBorrador(t *testing.T) {
	gw := &fakeGateway{saveErr: errors.New("Failed to save inputs")}
	c := form.NewController(gw)
	fill(t, c)
	before := c.Draft()

	_, err := c.Save(context.Background())
	require.Error(t, err)
	assert.Equal(t, form.StateEditing, c.State())
	assert.EqualError(t, c.Err(), "Failed to save inputs")
	assert.Empty(t, c.Notice())
	assert.Equal(t, before, c.Draft())
}

func TestController_EditTrasFalloLimpiaError(t *testing.T) {
	c := form.NewController(&fakeGateway{})
	_, err := c.Save(context.Background())
	require.Error(t, err)
	assert.EqualError(t, c.Err(), "Electricity usage is required")

	require.NoError(t, c.Edit(entity.Electricity, entity.FieldUsage, "10"))
	assert.Equal(t, form.StateEditing, c.State())
	assert.NoError(t, c.Err())
}

func TestController_ClearLimpiaAvisoDeGuardado(t *testing.T) {
	c := form.NewController(&fakeGateway{})
	fill(t, c)
	_, err := c.Save(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, c.Notice())

	c.Clear()
	assert.Equal(t, form.StateEditing, c.State())
	assert.Empty(t, c.Notice())
	assert.NoError(t, c.Err())
}

func TestController_EditTextoNoNumerico(t *testing.T) {
	c := form.NewController(&fakeGateway{})
	require.NoError(t, c.Edit(entity.Electricity, entity.FieldUsage, "12"))

	err := c.Edit(entity.Electricity, entity.FieldUsage, "abc")
	require.Error(t, err)
	assert.True(t, c.Draft().Electricity.Usage.IsPending())

	err = c.Edit(entity.Category("gas"), entity.FieldUsage, "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	err = c.Edit(entity.Water, entity.FieldName("cost"), "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestController_PreviewParcial(t *testing.T) {
	c := form.NewController(&fakeGateway{})
	require.NoError(t, c.Edit(entity.Electricity, entity.FieldAmountPaid, "50"))
	require.NoError(t, c.Edit(entity.Fuel, entity.FieldAmountPaid, "15"))

	s := c.Preview()
	assert.Nil(t, s.Water)
	assert.True(t, s.Total.Equal(decimal.NewFromInt(65)))

	c.Clear()
	assert.True(t, c.Preview().Total.IsZero())
}

func TestController_UnSoloGuardadoEnCurso(t *testing.T) {
	gw := &fakeGateway{block: make(chan struct{}), started: make(chan struct{})}
	c := form.NewController(gw)
	fill(t, c)

	done := make(chan error, 1)
	go func() {
		_, err := c.Save(context.Background())
		done <- err
	}()
	<-gw.started

	assert.Equal(t, form.StateSaving, c.State())
	_, err := c.Save(context.Background())
	assert.ErrorIs(t, err, form.ErrSaveInProgress)

	close(gw.block)
	require.NoError(t, <-done)
	assert.Equal(t, form.StateSaved, c.State())
	assert.Len(t, gw.saved, 1)
}

func TestController_LoadLatest(t *testing.T) {
	gw := &fakeGateway{}
	c := form.NewController(gw)

	require.NoError(t, c.LoadLatest(context.Background()))
	assert.True(t, c.Draft().Water.Usage.IsPending())

	gw.latest = &entity.Readings{Water: entity.Reading{Usage: decimal.NewFromInt(7), AmountPaid: decimal.NewFromInt(3)}}
	require.NoError(t, c.LoadLatest(context.Background()))
	assert.Equal(t, "7", c.Draft().Water.Usage.String())
	assert.Equal(t, "0", c.Draft().Fuel.AmountPaid.String())
}

func TestController_SetYear(t *testing.T) {
	gw := &fakeGateway{}
	c := form.NewController(gw)
	c.SetYear(2021)
	c.SetYear(-5)
	assert.Equal(t, 2021, c.Year())

	fill(t, c)
	_, err := c.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2021}, gw.years)
}
