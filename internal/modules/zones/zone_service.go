package zones

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"propane-delivery/internal/models"

	"github.com/google/uuid"
)

// ServiceInterface defines the zone management and geofencing contract.
type ServiceInterface interface {
	CreateZone(ctx context.Context, req models.CreateZoneRequest) (*models.DeliveryZone, error)
	CreateZoneFromTemplate(ctx context.Context, req models.ZoneTemplateRequest) (*models.DeliveryZone, error)
	GetZone(ctx context.Context, zoneID string) (*models.DeliveryZone, error)
	ListZones(ctx context.Context) ([]*models.DeliveryZone, error)
	UpdateZone(ctx context.Context, zoneID string, req models.UpdateZoneRequest) (*models.DeliveryZone, error)
	DeleteZone(ctx context.Context, zoneID string) error

	// CheckLocation classifies a point against the active zone set.
	CheckLocation(ctx context.Context, point models.LatLng) (*models.ServiceabilityResult, error)
}

// Service implements zone management on top of the repository, with a
// short-lived cache of the active zone set so every serviceability probe does
// not hit the database. The cache is invalidated on any zone write.
type Service struct {
	repo     RepositoryInterface
	cacheTTL time.Duration

	mu        sync.RWMutex
	cached    []*models.DeliveryZone
	fetchedAt time.Time
}

func NewService(repo RepositoryInterface, cacheTTL time.Duration) *Service {
	return &Service{repo: repo, cacheTTL: cacheTTL}
}

// activeZones returns the cached active zone set, refreshing it when stale.
func (s *Service) activeZones(ctx context.Context) ([]*models.DeliveryZone, error) {
	s.mu.RLock()
	if s.cached != nil && time.Since(s.fetchedAt) < s.cacheTTL {
		zones := s.cached
		s.mu.RUnlock()
		return zones, nil
	}
	s.mu.RUnlock()

	zones, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.activeZones: %w", err)
	}

	s.mu.Lock()
	s.cached = zones
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	return zones, nil
}

func (s *Service) invalidateCache() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

func (s *Service) CreateZone(ctx context.Context, req models.CreateZoneRequest) (*models.DeliveryZone, error) {
	if len(req.Vertices) < 3 {
		return nil, models.ErrZoneTooFewVertices
	}

	zone := &models.DeliveryZone{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Color:       req.Color,
		Vertices:    req.Vertices,
		DeliveryFee: req.DeliveryFee,
		Description: req.Description,
	}

	created, err := s.repo.Create(ctx, zone)
	if err != nil {
		return nil, err
	}
	s.invalidateCache()
	log.Printf("zone created: id=%s name=%q vertices=%d", created.ID, created.Name, len(created.Vertices))
	return created, nil
}

// CreateZoneFromTemplate builds a square zone of the requested half-size
// around a center point, for admins who want coverage without hand-drawing
// a polygon.
func (s *Service) CreateZoneFromTemplate(ctx context.Context, req models.ZoneTemplateRequest) (*models.DeliveryZone, error) {
	// Kilometers per degree: latitude is ~constant, longitude shrinks with
	// the cosine of the latitude.
	dLat := req.HalfSizeKm / 110.574
	dLng := req.HalfSizeKm / (111.320 * math.Cos(req.Center.Lat*math.Pi/180))

	c := req.Center
	vertices := []models.LatLng{
		{Lat: c.Lat - dLat, Lng: c.Lng - dLng},
		{Lat: c.Lat - dLat, Lng: c.Lng + dLng},
		{Lat: c.Lat + dLat, Lng: c.Lng + dLng},
		{Lat: c.Lat + dLat, Lng: c.Lng - dLng},
	}

	return s.CreateZone(ctx, models.CreateZoneRequest{
		Name:        req.Name,
		Color:       req.Color,
		Vertices:    vertices,
		DeliveryFee: req.DeliveryFee,
	})
}

func (s *Service) GetZone(ctx context.Context, zoneID string) (*models.DeliveryZone, error) {
	return s.repo.FindByID(ctx, zoneID)
}

func (s *Service) ListZones(ctx context.Context) ([]*models.DeliveryZone, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) UpdateZone(ctx context.Context, zoneID string, req models.UpdateZoneRequest) (*models.DeliveryZone, error) {
	if req.Vertices != nil && len(*req.Vertices) < 3 {
		return nil, models.ErrZoneTooFewVertices
	}

	zone, err := s.repo.Update(ctx, zoneID, req)
	if err != nil {
		return nil, err
	}
	s.invalidateCache()
	log.Printf("zone updated: id=%s name=%q active=%v", zone.ID, zone.Name, zone.IsActive)
	return zone, nil
}

func (s *Service) DeleteZone(ctx context.Context, zoneID string) error {
	if err := s.repo.Delete(ctx, zoneID); err != nil {
		return err
	}
	s.invalidateCache()
	log.Printf("zone deleted: id=%s", zoneID)
	return nil
}

func (s *Service) CheckLocation(ctx context.Context, point models.LatLng) (*models.ServiceabilityResult, error) {
	zones, err := s.activeZones(ctx)
	if err != nil {
		return nil, err
	}

	result := CheckServiceability(point, zones)
	if result.IsServiceable {
		log.Printf("classify point: lat=%.6f lng=%.6f zone=%s fee=%.2f", point.Lat, point.Lng, result.Zone.ID, result.DeliveryFee)
	} else if result.NearestZone != nil {
		log.Printf("classify point: lat=%.6f lng=%.6f outside all zones, nearest=%s distance_km=%.2f", point.Lat, point.Lng, result.NearestZone.ID, result.DistanceKm)
	} else {
		log.Printf("classify point: lat=%.6f lng=%.6f no zones configured", point.Lat, point.Lng)
	}
	return result, nil
}
