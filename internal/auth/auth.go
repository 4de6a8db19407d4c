// Package auth holds provider credentials. Tokens are opaque strings issued
// elsewhere; this package never mints or refreshes them.
package auth

import (
	"os"
	"strings"
	"sync"
)

// CredentialStore resolves per-provider API credentials.
type CredentialStore interface {
	// Token returns the credential for the named provider, if present.
	Token(name string) (string, bool)

	// Connected reports whether the named provider has a credential.
	Connected(name string) bool
}

// EnvStore reads credentials from EVENTS_<NAME>_TOKEN environment variables,
// with the provider name uppercased and spaces replaced by underscores.
// Values are captured once at construction so availability checks stay cheap.
type EnvStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewEnvStore creates an EnvStore for the given provider names.
func NewEnvStore(names ...string) *EnvStore {
	s := &EnvStore{tokens: make(map[string]string, len(names))}
	for _, name := range names {
		if v := os.Getenv(envKey(name)); v != "" {
			s.tokens[normalize(name)] = v
		}
	}
	return s
}

// Token returns the credential for the named provider.
func (s *EnvStore) Token(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.tokens[normalize(name)]
	return v, ok
}

// Connected reports whether the named provider has a credential.
func (s *EnvStore) Connected(name string) bool {
	_, ok := s.Token(name)
	return ok
}

// SetToken overrides a credential. Intended for tests.
func (s *EnvStore) SetToken(name, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[normalize(name)] = token
}

// StaticStore is a fixed credential map, used in tests and local runs.
type StaticStore map[string]string

// Token returns the credential for the named provider.
func (s StaticStore) Token(name string) (string, bool) {
	v, ok := s[normalize(name)]
	return v, ok
}

// Connected reports whether the named provider has a credential.
func (s StaticStore) Connected(name string) bool {
	_, ok := s.Token(name)
	return ok
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func envKey(name string) string {
	k := strings.ToUpper(strings.TrimSpace(name))
	k = strings.ReplaceAll(k, " ", "_")
	return "EVENTS_" + k + "_TOKEN"
}
