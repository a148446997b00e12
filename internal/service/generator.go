package service

import (
	"context"
	"log/slog"

	"github.com/passforge/passforge-go/internal/config"
	"github.com/passforge/passforge-go/internal/crypto"
	"github.com/passforge/passforge-go/internal/model"
)

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	gen      *crypto.Generator
	defaults config.Defaults
	hash     func(string) (string, error)
}

// NewGeneratorService creates a new GeneratorService. A nil gen uses crypto/rand.
func NewGeneratorService(gen *crypto.Generator, defaults config.Defaults) *GeneratorService {
	if gen == nil {
		gen = crypto.NewGenerator(nil)
	}
	return &GeneratorService{
		gen:      gen,
		defaults: defaults,
		hash:     crypto.HashPassword,
	}
}

// Request converts an API request into a generation request, filling unset
// fields from the configured defaults. A length that is present but blank is
// invalid, not a request for the default.
func (s *GeneratorService) Request(req model.GenerateRequest) (crypto.GenerationRequest, error) {
	length := s.defaults.Length
	if req.Length != nil {
		n, err := crypto.ParseLength(string(*req.Length))
		if err != nil {
			return crypto.GenerationRequest{}, err
		}
		length = n
	}

	classes := s.defaults.Classes
	classes = setClass(classes, crypto.Lowercase, req.Lowercase)
	classes = setClass(classes, crypto.Uppercase, req.Uppercase)
	classes = setClass(classes, crypto.Digit, req.Numbers)
	classes = setClass(classes, crypto.Symbol, req.Symbols)

	return crypto.GenerationRequest{Length: length, Classes: classes}, nil
}

// Generate produces a password based on the given request.
func (s *GeneratorService) Generate(ctx context.Context, req model.GenerateRequest) (model.GenerateResponse, error) {
	genReq, err := s.Request(req)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	password, err := s.gen.Generate(genReq)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	resp := model.GenerateResponse{
		Password: password,
		Length:   len(password),
	}

	if req.Hash {
		resp.Hash, err = s.hash(password)
		if err != nil {
			return model.GenerateResponse{}, err
		}
	}

	slog.DebugContext(ctx, "password generated", "length", genReq.Length, "classes", genReq.Classes.String(), "hashed", req.Hash)

	return resp, nil
}

// setClass applies an optional toggle to classes.
func setClass(classes crypto.ClassSet, c crypto.CharacterClass, p *bool) crypto.ClassSet {
	if p == nil {
		return classes
	}
	if *p {
		return classes.With(c)
	}
	return classes.Without(c)
}
