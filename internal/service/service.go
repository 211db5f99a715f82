package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Dan9191/calc-hub/internal/apperr"
	"github.com/Dan9191/calc-hub/internal/auth"
	"github.com/Dan9191/calc-hub/internal/config"
	"github.com/Dan9191/calc-hub/internal/models"
	"github.com/Dan9191/calc-hub/internal/repository"
	"github.com/Dan9191/calc-hub/internal/utils/email"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Notifier is told about admin content edits
type Notifier interface {
	SendContentChange(c email.ContentChange) error
}

// Service handles business logic
type Service struct {
	repo     repository.Store
	log      *logrus.Logger
	config   *config.Config
	notifier Notifier
	now      func() time.Time
	pending  sync.WaitGroup
}

// NewService initializes a new service; notifier may be nil
func NewService(repo repository.Store, log *logrus.Logger, cfg *config.Config, notifier Notifier) *Service {
	return &Service{repo: repo, log: log, config: cfg, notifier: notifier, now: time.Now}
}

// SeedAdmin creates the configured admin user if it does not exist yet
func (s *Service) SeedAdmin(ctx context.Context) error {
	if s.config.AdminEmail == "" {
		s.log.Warn("ADMIN_EMAIL not set, admin login disabled until a user exists")
		return nil
	}
	addr := strings.ToLower(strings.TrimSpace(s.config.AdminEmail))
	_, err := s.repo.FindUserByEmail(ctx, addr)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(s.config.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{Email: addr, PasswordHash: string(hashedPassword)}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return err
	}

	s.log.Infof("Admin user seeded: %s", user.Email)
	return nil
}

// Login authenticates an admin and returns a JWT token
func (s *Service) Login(ctx context.Context, addr, password string) (string, error) {
	addr = strings.ToLower(strings.TrimSpace(addr))
	if addr == "" || password == "" {
		return "", apperr.New(apperr.Invalid, "email and password are required")
	}

	user, err := s.repo.FindUserByEmail(ctx, addr)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Warnf("Login failed for %s", addr)
		return "", apperr.New(apperr.Unauthorized, "invalid credentials")
	}
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, err, "login failed")
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Warnf("Login failed for %s", addr)
		return "", apperr.New(apperr.Unauthorized, "invalid credentials")
	}

	tokenString, err := auth.IssueToken(s.config.JWTSecret, s.config.JWTTTL, user.ID, user.Email, s.now())
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, err, "login failed")
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// ListContent returns a public content collection
func (s *Service) ListContent(ctx context.Context, kindName string) ([]models.ContentItem, error) {
	kind, err := parseKind(kindName)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListContent(ctx, kind)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "failed to list content")
	}
	return items, nil
}

// GetContent returns one item
func (s *Service) GetContent(ctx context.Context, kindName, id string) (*models.ContentItem, error) {
	kind, err := parseKind(kindName)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.GetContent(ctx, kind, id)
	if err != nil {
		return nil, storeError(err, kind, id)
	}
	return item, nil
}

// AddContent validates the payload and appends it to the collection
func (s *Service) AddContent(ctx context.Context, kindName string, data json.RawMessage, position int) (*models.ContentItem, error) {
	kind, err := parseKind(kindName)
	if err != nil {
		return nil, err
	}
	payload, err := canonical(kind, data, position)
	if err != nil {
		return nil, err
	}

	item := &models.ContentItem{
		ID:       uuid.NewString(),
		Kind:     kind,
		Position: position,
		Data:     payload,
	}
	if err := s.repo.AddContent(ctx, item); err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "failed to add content")
	}

	s.log.WithFields(logrus.Fields{"kind": kind, "id": item.ID, "actor": actor(ctx)}).Info("Content created")
	s.notify(ctx, "created", kind, item.ID)
	return item, nil
}

// UpdateContent replaces an item's payload; position 0 keeps the current position
func (s *Service) UpdateContent(ctx context.Context, kindName, id string, data json.RawMessage, position int) (*models.ContentItem, error) {
	kind, err := parseKind(kindName)
	if err != nil {
		return nil, err
	}
	payload, err := canonical(kind, data, position)
	if err != nil {
		return nil, err
	}

	item := &models.ContentItem{ID: id, Kind: kind, Position: position, Data: payload}
	if err := s.repo.UpdateContent(ctx, item); err != nil {
		return nil, storeError(err, kind, id)
	}

	s.log.WithFields(logrus.Fields{"kind": kind, "id": id, "actor": actor(ctx)}).Info("Content updated")
	s.notify(ctx, "updated", kind, id)
	return item, nil
}

// RemoveContent deletes an item
func (s *Service) RemoveContent(ctx context.Context, kindName, id string) error {
	kind, err := parseKind(kindName)
	if err != nil {
		return err
	}
	if err := s.repo.RemoveContent(ctx, kind, id); err != nil {
		return storeError(err, kind, id)
	}

	s.log.WithFields(logrus.Fields{"kind": kind, "id": id, "actor": actor(ctx)}).Info("Content deleted")
	s.notify(ctx, "deleted", kind, id)
	return nil
}

func (s *Service) notify(ctx context.Context, action string, kind models.Kind, id string) {
	if s.notifier == nil {
		return
	}
	change := email.ContentChange{
		Action: action,
		Kind:   string(kind),
		ID:     id,
		Actor:  actor(ctx),
		At:     s.now(),
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		// the edit is already stored
		if err := s.notifier.SendContentChange(change); err != nil {
			s.log.Warnf("Content notification failed: %v", err)
		}
	}()
}

// Wait blocks until every queued content notification has been handed to the notifier
func (s *Service) Wait() {
	s.pending.Wait()
}

func parseKind(name string) (models.Kind, error) {
	kind, err := models.ParseKind(name)
	if err != nil {
		return "", apperr.Wrap(apperr.NotFound, err, "unknown content kind")
	}
	return kind, nil
}

// canonical validates data for kind and re-encodes it compactly
func canonical(kind models.Kind, data json.RawMessage, position int) (json.RawMessage, error) {
	if position < 0 {
		return nil, apperr.New(apperr.Invalid, "position must not be negative")
	}
	if len(data) == 0 {
		return nil, apperr.New(apperr.Invalid, "data is required")
	}
	entity, err := models.DecodeEntity(kind, data)
	if err != nil {
		return nil, apperr.InvalidInput(err)
	}
	out, err := json.Marshal(entity)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "failed to encode content")
	}
	return out, nil
}

func storeError(err error, kind models.Kind, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.New(apperr.NotFound, "%s item %s not found", kind, id)
	}
	return apperr.Wrap(apperr.Internal, err, "content store failed")
}

func actor(ctx context.Context) string {
	if c, ok := auth.FromContext(ctx); ok {
		return c.Email
	}
	return "unknown"
}
