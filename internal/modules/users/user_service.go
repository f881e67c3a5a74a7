package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"propane-delivery/internal/models"
	"propane-delivery/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
)

// LocationClassifier is the slice of the zones module the user service needs:
// classifying a candidate map pin against the active delivery zones.
type LocationClassifier interface {
	CheckLocation(ctx context.Context, point models.LatLng) (*models.ServiceabilityResult, error)
}

// Notifier sends account lifecycle emails off the request path.
type Notifier interface {
	Welcome(to, nickname string)
}

// LocationUpdateResponse pairs the updated profile with the serviceability
// verdict, so the UI can render the zone highlight (or the nearest-zone hint)
// without a second round trip.
type LocationUpdateResponse struct {
	User   *models.User                 `json:"user"`
	Result *models.ServiceabilityResult `json:"result"`
}

// ServiceInterface defines the account and profile contract.
type ServiceInterface interface {
	Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	HandleGoogleLogin() (string, string, error)
	HandleGoogleCallback(ctx context.Context, code string) (*models.AuthResponse, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, data models.UserUpdateData) (*models.User, error)
	UpdateLocation(ctx context.Context, userID string, req models.UpdateLocationRequest) (*LocationUpdateResponse, error)
	ListUsers(ctx context.Context, page, limit int) ([]*models.User, int, error)
}

type Service struct {
	repo              RepositoryInterface
	classifier        LocationClassifier
	notifier          Notifier
	jwtSecret         string
	googleOAuthConfig *oauth2.Config
}

func NewService(
	repo RepositoryInterface,
	classifier LocationClassifier,
	notifier Notifier,
	jwtSecret string,
	googleOAuthConfig *oauth2.Config,
) *Service {
	return &Service{
		repo:              repo,
		classifier:        classifier,
		notifier:          notifier,
		jwtSecret:         jwtSecret,
		googleOAuthConfig: googleOAuthConfig,
	}
}

func (s *Service) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, models.ErrEmailTaken
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("service.Signup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("service.Signup: hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Nickname:     req.Nickname,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
		AuthProvider: "email",
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	log.Printf("user signed up: id=%s", created.ID)

	s.notifier.Welcome(created.Email, created.Nickname)

	return s.generateAuthResponse(created)
}

func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("service.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	return s.generateAuthResponse(user)
}

func (s *Service) generateAuthResponse(user *models.User) (*models.AuthResponse, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(72 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("service.generateAuthResponse: signing token: %w", err)
	}

	user.PasswordHash = ""
	return &models.AuthResponse{AccessToken: signed, User: user}, nil
}

// HandleGoogleLogin returns the Google consent URL and the CSRF state token
// the handler should stash in a cookie.
func (s *Service) HandleGoogleLogin() (string, string, error) {
	state, err := utils.GenerateSecureToken(16)
	if err != nil {
		return "", "", fmt.Errorf("service.HandleGoogleLogin: %w", err)
	}
	return s.googleOAuthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline), state, nil
}

func (s *Service) HandleGoogleCallback(ctx context.Context, code string) (*models.AuthResponse, error) {
	token, err := s.googleOAuthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("service.HandleGoogleCallback: code exchange: %w", err)
	}

	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("service.HandleGoogleCallback: fetching userinfo: %w", err)
	}
	defer resp.Body.Close()

	var info struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("service.HandleGoogleCallback: decoding userinfo: %w", err)
	}

	user, err := s.repo.FindByEmail(ctx, info.Email)
	if errors.Is(err, models.ErrNotFound) {
		user, err = s.repo.Create(ctx, &models.User{
			ID:           uuid.New().String(),
			Nickname:     info.Name,
			Email:        info.Email,
			Role:         models.RoleCustomer,
			AuthProvider: "google",
		})
		if err == nil {
			s.notifier.Welcome(user.Email, user.Nickname)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("service.HandleGoogleCallback: %w", err)
	}

	return s.generateAuthResponse(user)
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, data models.UserUpdateData) (*models.User, error) {
	user, err := s.repo.Update(ctx, userID, data)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdateLocation moves the customer's map pin and re-runs zone classification.
// A serviceable point stores the containing zone's id; an out-of-zone point
// clears it, so later orders are stamped with a null zone and fall back to
// manual dispatch.
func (s *Service) UpdateLocation(ctx context.Context, userID string, req models.UpdateLocationRequest) (*LocationUpdateResponse, error) {
	result, err := s.classifier.CheckLocation(ctx, req.Location)
	if err != nil {
		return nil, fmt.Errorf("service.UpdateLocation: %w", err)
	}

	var zoneID *string
	if result.IsServiceable {
		zoneID = &result.Zone.ID
	}

	user, err := s.repo.UpdateLocation(ctx, userID, req.Location.Lat, req.Location.Lng, req.Address, zoneID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""

	zoneLabel := "none"
	if zoneID != nil {
		zoneLabel = *zoneID
	}
	log.Printf("resolve zone: user=%s lat=%.6f lng=%.6f zone=%s", userID, req.Location.Lat, req.Location.Lng, zoneLabel)

	return &LocationUpdateResponse{User: user, Result: result}, nil
}

func (s *Service) ListUsers(ctx context.Context, page, limit int) ([]*models.User, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	users, total, err := s.repo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ListUsers: %w", err)
	}
	for _, u := range users {
		u.PasswordHash = ""
	}
	return users, total, nil
}
