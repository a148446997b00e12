package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/passforge/passforge-go/internal/config"
	"github.com/passforge/passforge-go/internal/crypto"
	"github.com/passforge/passforge-go/internal/model"
)

func boolPtr(b bool) *bool { return &b }

func lengthOf(s string) *model.LengthInput {
	l := model.LengthInput(s)
	return &l
}

func newTestGeneratorService() *GeneratorService {
	return NewGeneratorService(nil, config.BuiltinDefaults())
}

func TestGenerate_Defaults(t *testing.T) {
	svc := newTestGeneratorService()
	resp, err := svc.Generate(context.Background(), model.GenerateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Length != 12 {
		t.Errorf("expected length 12, got %d", resp.Length)
	}
	if len(resp.Password) != 12 {
		t.Errorf("expected password length 12, got %d", len(resp.Password))
	}
	if resp.Hash != "" {
		t.Errorf("expected no hash unless requested, got %q", resp.Hash)
	}
}

func TestGenerate_ConfiguredDefaults(t *testing.T) {
	svc := NewGeneratorService(nil, config.Defaults{Length: 30, Classes: crypto.NewClassSet(crypto.Digit)})
	resp, err := svc.Generate(context.Background(), model.GenerateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Length != 30 {
		t.Errorf("expected length 30, got %d", resp.Length)
	}
	for _, c := range resp.Password {
		if c < '0' || c > '9' {
			t.Fatalf("unexpected character %q in digits-only password", c)
		}
	}
}

func TestGenerate_CustomOptions(t *testing.T) {
	svc := newTestGeneratorService()
	resp, err := svc.Generate(context.Background(), model.GenerateRequest{
		Length:    lengthOf("32"),
		Uppercase: boolPtr(true),
		Lowercase: boolPtr(true),
		Numbers:   boolPtr(false),
		Symbols:   boolPtr(false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Length != 32 {
		t.Errorf("expected length 32, got %d", resp.Length)
	}
	for _, c := range resp.Password {
		if !((c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')) {
			t.Errorf("unexpected character %q in password with only uppercase+lowercase", c)
		}
	}
}

func TestGenerate_WithHash(t *testing.T) {
	svc := newTestGeneratorService()
	svc.hash = (crypto.HashParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16}).Hash

	resp, err := svc.Generate(context.Background(), model.GenerateRequest{Hash: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(resp.Hash, "$argon2id$") {
		t.Fatalf("expected argon2id hash, got %q", resp.Hash)
	}
	match, err := crypto.VerifyPassword(resp.Password, resp.Hash)
	if err != nil {
		t.Fatalf("unexpected verify error: %v", err)
	}
	if !match {
		t.Error("hash does not match generated password")
	}
}

func TestGenerate_HashFailure(t *testing.T) {
	svc := newTestGeneratorService()
	hashErr := errors.New("salt unavailable")
	svc.hash = func(string) (string, error) { return "", hashErr }

	_, err := svc.Generate(context.Background(), model.GenerateRequest{Hash: true})
	if !errors.Is(err, hashErr) {
		t.Fatalf("expected %v, got %v", hashErr, err)
	}
}

func TestGenerate_ValidationErrors(t *testing.T) {
	none := model.GenerateRequest{
		Length:    lengthOf("16"),
		Uppercase: boolPtr(false),
		Lowercase: boolPtr(false),
		Numbers:   boolPtr(false),
		Symbols:   boolPtr(false),
	}

	tests := []struct {
		name    string
		req     model.GenerateRequest
		wantErr error
	}{
		{name: "length too short", req: model.GenerateRequest{Length: lengthOf("3")}, wantErr: crypto.ErrOutOfRange},
		{name: "length too long", req: model.GenerateRequest{Length: lengthOf("300")}, wantErr: crypto.ErrOutOfRange},
		{name: "length not a number", req: model.GenerateRequest{Length: lengthOf("abc")}, wantErr: crypto.ErrInvalidLength},
		{name: "length empty", req: model.GenerateRequest{Length: lengthOf("")}, wantErr: crypto.ErrInvalidLength},
		{name: "length blank", req: model.GenerateRequest{Length: lengthOf("  ")}, wantErr: crypto.ErrInvalidLength},
		{name: "no character classes", req: none, wantErr: crypto.ErrNoClassSelected},
	}

	svc := newTestGeneratorService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGenerate_EntropyFailure(t *testing.T) {
	svc := NewGeneratorService(crypto.NewGenerator(strings.NewReader("")), config.BuiltinDefaults())
	if _, err := svc.Generate(context.Background(), model.GenerateRequest{}); err == nil {
		t.Fatal("expected error from exhausted random source")
	}
}
