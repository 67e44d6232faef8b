package member

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/repository"
	"github.com/bookhive/library-service/internal/session"
	"github.com/bookhive/library-service/internal/store"
	"github.com/bookhive/library-service/pkg/auth"
)

const tokenTTL = 24 * time.Hour

type Service struct {
	log     *zap.Logger
	members repository.Members
	store   store.Store
	hub     *session.Hub
	hasher  Hasher
}

func NewService(members repository.Members, s store.Store, hub *session.Hub, hasher Hasher, log *zap.Logger) *Service {
	if hasher == nil {
		hasher = PlainHasher{}
	}
	return &Service{
		log:     log,
		members: members,
		store:   s,
		hub:     hub,
		hasher:  hasher,
	}
}

func (s *Service) Register(ctx context.Context, req model.RegisterRequest) (model.RegisterResponse, error) {
	credential, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.RegisterResponse{}, errors.Wrap(err, "hash credential")
	}

	m := model.Member{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Email:       strings.TrimSpace(req.Email),
		Password:    credential,
		CountryCode: req.CountryCode,
		Mobile:      req.Mobile,
		DateOfBirth: req.DateOfBirth,
		Address:     req.Address,
		CreatedAt:   time.Now(),
	}

	created, err := s.members.Create(ctx, m)
	if err != nil {
		return model.RegisterResponse{}, err
	}
	return model.RegisterResponse{
		MemberID: created.ID,
		Name:     created.Name,
		Email:    created.Email,
	}, nil
}

// ValidateCredentials keeps the directory contract: a boolean. Store
// errors read as false, missing member included.
func (s *Service) ValidateCredentials(ctx context.Context, email, password string) bool {
	m, err := s.members.FindByEmail(ctx, email)
	if err != nil {
		return false
	}
	return s.hasher.Compare(m.Password, password)
}

// Login validates the credentials, issues a session token and persists
// the currentUser blob.
func (s *Service) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	m, err := s.members.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.LoginResponse{}, errs.ErrInvalidCredentials
		}
		return model.LoginResponse{}, err
	}
	if !s.hasher.Compare(m.Password, req.Password) {
		return model.LoginResponse{}, errs.ErrInvalidCredentials
	}

	expirationTime := time.Now().Add(tokenTTL)
	claims := &auth.Claims{
		Email: m.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}
	claims.Profile.MemberID = m.ID
	claims.Profile.Name = m.Name

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(auth.JWTKey)
	if err != nil {
		return model.LoginResponse{}, errors.Wrap(err, "sign token")
	}

	user := model.AuthUser{
		MemberID: m.ID,
		Name:     m.Name,
		Email:    m.Email,
		Token:    tokenString,
		LoginAt:  time.Now(),
	}
	if err := store.SaveOne(ctx, s.store, store.KeyCurrentUser, user); err != nil {
		return model.LoginResponse{}, err
	}
	s.hub.SetUser(user)

	return model.LoginResponse{
		MemberID:    m.ID,
		Name:        m.Name,
		Email:       m.Email,
		AccessToken: tokenString,
		ExpiresIn:   int(expirationTime.Unix()),
	}, nil
}

// UpdateProfile edits the mutable profile fields. Identity fields
// (email, mobile, credential) stay as registered.
func (s *Service) UpdateProfile(ctx context.Context, memberID string, req model.UpdateProfileRequest) (model.Member, error) {
	m, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return model.Member{}, err
	}
	if req.Name != "" {
		m.Name = req.Name
	}
	if req.DateOfBirth != "" {
		m.DateOfBirth = req.DateOfBirth
	}
	if req.Address != "" {
		m.Address = req.Address
	}
	if err := s.members.Update(ctx, m); err != nil {
		return model.Member{}, err
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, memberID string) (model.Member, error) {
	return s.members.FindByID(ctx, memberID)
}

func (s *Service) FindByEmail(ctx context.Context, email string) (model.Member, error) {
	return s.members.FindByEmail(ctx, email)
}

func (s *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.members.EmailExists(ctx, email)
}

func (s *Service) MobileExists(ctx context.Context, countryCode, mobile string) (bool, error) {
	return s.members.MobileExists(ctx, countryCode, mobile)
}
