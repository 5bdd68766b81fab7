package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"eventboard/internal/auth"
	apperrors "eventboard/internal/errors"
	"eventboard/internal/handler"
	"eventboard/internal/logging"
	"eventboard/internal/repository"
	"eventboard/internal/service"
	"eventboard/internal/validation"
)

// fixture is the seed file layout. Events reference their owner by email.
type fixture struct {
	Users []struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"users"`
	Events []struct {
		Email string `json:"email"`
		Text  string `json:"text"`
		Name  string `json:"name"`
	} `json:"events"`
}

type seedResult struct {
	UsersCreated  int
	UsersSkipped  int
	EventsCreated int
}

type seeder struct {
	users    service.UserService
	events   service.EventService
	lookup   repository.UserRepository
	validate *validation.Validator
}

// loadFixture reads source from disk, or over http when it is a URL.
func loadFixture(ctx context.Context, source string) (*fixture, error) {
	var body []byte
	var err error
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		body, err = fetch(ctx, source)
	} else {
		body, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}
	return parseFixture(body)
}

func parseFixture(body []byte) (*fixture, error) {
	var fx fixture
	if err := json.Unmarshal(body, &fx); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return &fx, nil
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fixture: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fixture source returned status code: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// seed registers users, skipping those already present, then creates events
// owned by the user with the referenced email. Records go through the same
// request rules as the API.
func (s *seeder) seed(ctx context.Context, fx *fixture) (seedResult, error) {
	logger := logging.FromContext(ctx)
	var res seedResult

	for _, u := range fx.Users {
		req := handler.RegisterRequest{Name: u.Name, Email: u.Email, Password: u.Password, Password2: u.Password}
		req.Normalize()
		if err := s.validate.Validate(&req); err != nil {
			return res, fmt.Errorf("invalid user %s: %w", u.Email, err)
		}
		_, err := s.users.Register(ctx, service.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password})
		switch {
		case errors.Is(err, apperrors.ErrDuplicateEmail):
			logger.Debug().Str("email", u.Email).Msg("User exists, skipping")
			res.UsersSkipped++
		case err != nil:
			return res, fmt.Errorf("error registering %s: %w", u.Email, err)
		default:
			res.UsersCreated++
		}
	}

	for _, ev := range fx.Events {
		req := handler.CreateEventRequest{Text: ev.Text, Name: ev.Name}
		req.Normalize()
		if err := s.validate.Validate(&req); err != nil {
			return res, fmt.Errorf("invalid event for %s: %w", ev.Email, err)
		}
		owner, err := s.lookup.FindByEmail(ctx, service.NormalizeEmail(ev.Email))
		if err != nil {
			return res, fmt.Errorf("error resolving owner %s: %w", ev.Email, err)
		}
		identity := auth.Identity{UserID: owner.ID, Name: owner.Name, Email: owner.Email}
		if _, err := s.events.Create(ctx, identity, service.CreateEventInput{Text: req.Text, Name: req.Name}); err != nil {
			return res, fmt.Errorf("error creating event for %s: %w", ev.Email, err)
		}
		res.EventsCreated++
	}
	return res, nil
}
