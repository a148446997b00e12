package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
)

const (
	MinLength     = 4
	MaxLength     = 256
	DefaultLength = 12
)

var (
	ErrInvalidLength      = errors.New("length must be a number")
	ErrOutOfRange         = errors.New("choose a length between 4 and 256")
	ErrNoClassSelected    = errors.New("select at least one character set")
	ErrLengthInsufficient = errors.New("length must be at least the number of selected character sets")
)

// GenerationRequest is an immutable description of one password to build.
type GenerationRequest struct {
	Length  int
	Classes ClassSet
}

// NewGenerationRequest builds a request from the four class toggles.
func NewGenerationRequest(length int, lower, upper, digits, symbols bool) GenerationRequest {
	var classes ClassSet
	if lower {
		classes = classes.With(Lowercase)
	}
	if upper {
		classes = classes.With(Uppercase)
	}
	if digits {
		classes = classes.With(Digit)
	}
	if symbols {
		classes = classes.With(Symbol)
	}
	return GenerationRequest{Length: length, Classes: classes}
}

// Validate checks the request against the length bounds and class selection.
func (r GenerationRequest) Validate() error {
	if r.Length < MinLength || r.Length > MaxLength {
		return ErrOutOfRange
	}
	if r.Classes.Len() == 0 {
		return ErrNoClassSelected
	}
	if r.Length < r.Classes.Len() {
		return ErrLengthInsufficient
	}
	return nil
}

// ParseLength converts raw length input into a length within [MinLength, MaxLength].
func ParseLength(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrInvalidLength
	}
	if n < MinLength || n > MaxLength {
		return 0, ErrOutOfRange
	}
	return n, nil
}

// Generator builds passwords from a cryptographically secure random source.
// It keeps no state besides the source, so one Generator may be shared
// between goroutines as long as the source is safe for concurrent reads.
type Generator struct {
	rand io.Reader
}

// NewGenerator returns a Generator reading entropy from r.
// A nil r selects crypto/rand.Reader.
func NewGenerator(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{rand: r}
}

var defaultGenerator = NewGenerator(nil)

// Generate builds a password using crypto/rand.
func Generate(req GenerationRequest) (string, error) {
	return defaultGenerator.Generate(req)
}

// GenerateFromInput parses lengthText the way a form field would and generates a password.
func GenerateFromInput(lengthText string, classes ClassSet) (string, error) {
	length, err := ParseLength(lengthText)
	if err != nil {
		return "", err
	}
	return Generate(GenerationRequest{Length: length, Classes: classes})
}

// Generate creates a password containing at least one character of every
// requested class, filled from the combined pool and shuffled.
func (g *Generator) Generate(req GenerationRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	classes := req.Classes.Classes()
	pool := req.Classes.Pool()
	result := make([]byte, 0, req.Length)

	// Guarantee at least one character from each selected class.
	for _, c := range classes {
		ch, err := g.randChar(c.Alphabet())
		if err != nil {
			return "", err
		}
		result = append(result, ch)
	}

	for len(result) < req.Length {
		ch, err := g.randChar(pool)
		if err != nil {
			return "", err
		}
		result = append(result, ch)
	}

	if err := g.shuffle(result); err != nil {
		return "", err
	}

	return string(result), nil
}

// randChar picks a character from charset uniformly.
func (g *Generator) randChar(charset string) (byte, error) {
	n, err := g.intn(len(charset))
	if err != nil {
		return 0, err
	}
	return charset[n], nil
}

// shuffle performs a Fisher-Yates shuffle.
func (g *Generator) shuffle(data []byte) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := g.intn(i + 1)
		if err != nil {
			return err
		}
		data[i], data[j] = data[j], data[i]
	}
	return nil
}

func (g *Generator) intn(n int) (int, error) {
	v, err := rand.Int(g.rand, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("reading random source: %w", err)
	}
	return int(v.Int64()), nil
}
