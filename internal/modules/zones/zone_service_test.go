package zones

import (
	"context"
	"testing"
	"time"

	"propane-delivery/internal/geo"
	"propane-delivery/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeZoneRepo is an in-memory RepositoryInterface for service tests.
type fakeZoneRepo struct {
	zones       []*models.DeliveryZone
	listActiveN int
}

func (f *fakeZoneRepo) Create(_ context.Context, zone *models.DeliveryZone) (*models.DeliveryZone, error) {
	zone.IsActive = true
	zone.CreatedAt = time.Now()
	f.zones = append(f.zones, zone)
	return zone, nil
}

func (f *fakeZoneRepo) FindByID(_ context.Context, zoneID string) (*models.DeliveryZone, error) {
	for _, z := range f.zones {
		if z.ID == zoneID {
			return z, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeZoneRepo) ListAll(_ context.Context) ([]*models.DeliveryZone, error) {
	return f.zones, nil
}

func (f *fakeZoneRepo) ListActive(_ context.Context) ([]*models.DeliveryZone, error) {
	f.listActiveN++
	var active []*models.DeliveryZone
	for _, z := range f.zones {
		if z.IsActive {
			active = append(active, z)
		}
	}
	return active, nil
}

func (f *fakeZoneRepo) Update(ctx context.Context, zoneID string, req models.UpdateZoneRequest) (*models.DeliveryZone, error) {
	zone, err := f.FindByID(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		zone.IsActive = *req.IsActive
	}
	return zone, nil
}

func (f *fakeZoneRepo) Delete(_ context.Context, zoneID string) error {
	for i, z := range f.zones {
		if z.ID == zoneID {
			f.zones = append(f.zones[:i], f.zones[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func TestCreateZoneFromTemplate_CenterIsInsideZone(t *testing.T) {
	svc := NewService(&fakeZoneRepo{}, time.Minute)
	center := models.LatLng{Lat: 43.65, Lng: -79.38}

	zone, err := svc.CreateZoneFromTemplate(context.Background(), models.ZoneTemplateRequest{
		Name:       "Midtown",
		Center:     center,
		HalfSizeKm: 5,
	})
	require.NoError(t, err)
	require.Len(t, zone.Vertices, 4)

	assert.True(t, geo.PointInPolygon(center, zone.Vertices), "template center must be inside the generated square")

	// A point well beyond the half-size must be outside.
	outside := models.LatLng{Lat: center.Lat + 1, Lng: center.Lng}
	assert.False(t, geo.PointInPolygon(outside, zone.Vertices))
}

func TestCreateZone_RejectsDegeneratePolygon(t *testing.T) {
	svc := NewService(&fakeZoneRepo{}, time.Minute)

	_, err := svc.CreateZone(context.Background(), models.CreateZoneRequest{
		Name:     "Line",
		Vertices: []models.LatLng{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}},
	})
	assert.ErrorIs(t, err, models.ErrZoneTooFewVertices)
}

func TestCheckLocation_CachesActiveZonesAndInvalidatesOnWrite(t *testing.T) {
	repo := &fakeZoneRepo{}
	svc := NewService(repo, time.Minute)
	ctx := context.Background()

	_, err := svc.CreateZone(ctx, models.CreateZoneRequest{
		Name: "Downtown",
		Vertices: []models.LatLng{
			{Lat: 0, Lng: 0}, {Lat: 0, Lng: 10}, {Lat: 10, Lng: 10}, {Lat: 10, Lng: 0},
		},
	})
	require.NoError(t, err)

	// Two probes, one repository fetch.
	_, err = svc.CheckLocation(ctx, models.LatLng{Lat: 5, Lng: 5})
	require.NoError(t, err)
	_, err = svc.CheckLocation(ctx, models.LatLng{Lat: 6, Lng: 6})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listActiveN)

	// A zone write invalidates the cache, so the next probe refetches.
	inactive := false
	_, err = svc.UpdateZone(ctx, repo.zones[0].ID, models.UpdateZoneRequest{IsActive: &inactive})
	require.NoError(t, err)

	result, err := svc.CheckLocation(ctx, models.LatLng{Lat: 5, Lng: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listActiveN)
	assert.False(t, result.IsServiceable, "deactivated zone must no longer match")
}
