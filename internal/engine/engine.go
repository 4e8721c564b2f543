package engine

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/tink-crypto/tink-go/v2/tink"
	"golang.org/x/crypto/pbkdf2"

	"github.com/idelchi/veil/internal/logging"
)

// Engine seals and opens containers. It holds no per-call state and is safe for concurrent use.
type Engine struct {
	params Params
	rand   io.Reader
	log    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRandom replaces the salt source. It must be cryptographically secure outside of tests.
func WithRandom(r io.Reader) Option {
	return func(e *Engine) {
		e.rand = r
	}
}

// WithLogger sets the logger used for debug timing output.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// New validates params and returns an Engine.
func New(params Params, opts ...Option) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	engine := &Engine{
		params: params,
		rand:   rand.Reader,
		log:    logging.Discard(),
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine, nil
}

// Params returns the parameters the engine was built with.
func (e *Engine) Params() Params {
	return e.params
}

// Overhead is the number of bytes a container adds to its plaintext.
func (e *Engine) Overhead() int {
	return e.params.HeaderSize() + TagSize
}

// Encrypt seals data under a key derived from password and returns
// salt || nonce || ciphertext || tag.
func (e *Engine) Encrypt(data, password []byte) ([]byte, error) {
	salt := make([]byte, e.params.SaltSize)
	if _, err := io.ReadFull(e.rand, salt); err != nil {
		return nil, fmt.Errorf("%w: generating salt: %w", ErrCrypto, err)
	}

	primitive, err := e.primitive(password, salt)
	if err != nil {
		return nil, err
	}

	// The RAW-prefixed primitive draws a fresh nonce per call and emits nonce || ciphertext || tag.
	sealed, err := primitive.Encrypt(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: encrypting: %w", ErrCrypto, err)
	}

	if len(sealed) != e.params.NonceSize+len(data)+TagSize {
		return nil, fmt.Errorf("%w: unexpected ciphertext length %d", ErrCrypto, len(sealed))
	}

	blob := make([]byte, 0, len(salt)+len(sealed))
	blob = append(blob, salt...)
	blob = append(blob, sealed...)

	return blob, nil
}

// Decrypt opens a container produced by Encrypt. No plaintext is returned unless the
// authentication tag verifies.
func (e *Engine) Decrypt(blob, password []byte) ([]byte, error) {
	container, err := e.Parse(blob)
	if err != nil {
		return nil, err
	}

	primitive, err := e.primitive(password, container.Salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := primitive.Decrypt(blob[e.params.SaltSize:], nil)
	if err != nil {
		return nil, ErrAuthentication
	}

	return plaintext, nil
}

// primitive derives the key for (password, salt) and turns it into an AEAD.
// The raw key does not outlive this call.
func (e *Engine) primitive(password, salt []byte) (tink.AEAD, error) {
	start := time.Now()

	key := e.deriveKey(password, salt)
	defer zero(key)

	e.log.Debug("derived key", slog.Int("iterations", e.params.Iterations), logging.Elapsed(start))

	primitive, err := newAEAD(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCrypto, err)
	}

	return primitive, nil
}

// deriveKey runs PBKDF2-SHA256 over password and salt.
func (e *Engine) deriveKey(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, e.params.Iterations, e.params.KeyLength, sha256.New)
}

// zero overwrites b.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}

	runtime.KeepAlive(b)
}
