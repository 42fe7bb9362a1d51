package vehicle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServiceTest(t *testing.T) (*ServiceImpl, context.Context) {
	repo := NewRepositoryStub()
	t.Cleanup(repo.Cleanup)
	return NewService(repo), context.Background()
}

func intPtr(v int) *int {
	return &v
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("creates a vehicle and returns it with an ID", func(t *testing.T) {
		s, ctx := setupServiceTest(t)

		created, err := s.Create(ctx, Vehicle{
			Name:         "Transporter 1",
			LicensePlate: "WZ 4501E",
			Description:  "9-seater",
		})

		assert.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, 1, created.IsActive)
	})

	t.Run("keeps an explicitly inactive vehicle inactive", func(t *testing.T) {
		s, ctx := setupServiceTest(t)

		created, err := s.Create(ctx, Vehicle{
			Name:         "Old van",
			LicensePlate: "WZ 0001A",
			IsActive:     0,
		})

		assert.NoError(t, err)
		assert.Equal(t, 0, created.IsActive)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name    string
			vehicle Vehicle
		}{
			{name: "empty name", vehicle: Vehicle{LicensePlate: "WZ 4501E"}},
			{name: "empty license plate", vehicle: Vehicle{Name: "Transporter 1"}},
			{name: "hue below range", vehicle: Vehicle{Name: "T1", LicensePlate: "WZ 4501E", ColorHue: intPtr(-1)}},
			{name: "hue above range", vehicle: Vehicle{Name: "T1", LicensePlate: "WZ 4501E", ColorHue: intPtr(361)}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s, ctx := setupServiceTest(t)

				_, err := s.Create(ctx, tt.vehicle)

				assert.ErrorIs(t, err, ErrVehicleInvalid)
			})
		}
	})
}

func TestServiceImpl_GetAll_DefaultHues(t *testing.T) {
	s, ctx := setupServiceTest(t)

	_, err := s.Create(ctx, Vehicle{Name: "First", LicensePlate: "WZ 0001A"})
	require.NoError(t, err)
	_, err = s.Create(ctx, Vehicle{Name: "Second", LicensePlate: "WZ 0002B"})
	require.NoError(t, err)
	_, err = s.Create(ctx, Vehicle{Name: "Third", LicensePlate: "WZ 0003C", ColorHue: intPtr(200)})
	require.NoError(t, err)

	vehicles, err := s.GetAll(ctx)

	require.NoError(t, err)
	require.Len(t, vehicles, 3)
	// Positions 0 and 1 get golden-angle defaults, the explicit hue survives.
	assert.Equal(t, 0, *vehicles[0].ColorHue)
	assert.Equal(t, 137, *vehicles[1].ColorHue)
	assert.Equal(t, 200, *vehicles[2].ColorHue)
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("updates an existing vehicle", func(t *testing.T) {
		s, ctx := setupServiceTest(t)

		created, err := s.Create(ctx, Vehicle{Name: "Transporter 1", LicensePlate: "WZ 4501E"})
		require.NoError(t, err)

		created.Name = "Transporter 1 (lift gate)"
		updated, err := s.Update(ctx, created)

		assert.NoError(t, err)
		assert.Equal(t, "Transporter 1 (lift gate)", updated.Name)
	})

	t.Run("returns not found for an unknown vehicle", func(t *testing.T) {
		s, ctx := setupServiceTest(t)

		_, err := s.Update(ctx, Vehicle{ID: 42, Name: "Ghost", LicensePlate: "WZ 9999Z"})

		assert.ErrorIs(t, err, ErrVehicleNotFound)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	s, ctx := setupServiceTest(t)

	created, err := s.Create(ctx, Vehicle{Name: "Transporter 1", LicensePlate: "WZ 4501E"})
	require.NoError(t, err)

	assert.NoError(t, s.Delete(ctx, created.ID))
	_, err = s.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}
