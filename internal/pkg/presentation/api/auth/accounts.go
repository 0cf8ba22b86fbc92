package auth

import (
	"context"
	"io"
	"net/http"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v2"
)

type ownerContextKey struct{ name string }

var ownerCtxKey = &ownerContextKey{"owner"}

type Account struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

// AccountStore holds the owner accounts devices are registered under.
// Passwords are stored as bcrypt hashes.
type AccountStore struct {
	accounts map[string]Account
}

func NewAccountStore(r io.ReadCloser) (*AccountStore, error) {
	defer r.Close()

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	cfg := struct {
		Accounts []Account `yaml:"accounts"`
	}{}

	err = yaml.Unmarshal(b, &cfg)
	if err != nil {
		return nil, err
	}

	accounts := make(map[string]Account, len(cfg.Accounts))
	for _, a := range cfg.Accounts {
		accounts[a.Username] = a
	}

	return &AccountStore{accounts: accounts}, nil
}

// Verify reports whether the username and password match a known account.
func (s *AccountStore) Verify(username, password string) bool {
	account, ok := s.accounts[username]
	if !ok {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) == nil
}

// BasicAuth authenticates owner requests and stores the owner name in the
// request context.
func (s *AccountStore) BasicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok || !s.Verify(username, password) {
			logger := logging.GetFromContext(r.Context())
			logger.Info("rejected owner credentials", "username", username)

			w.Header().Set("WWW-Authenticate", `Basic realm="gps-device-mgmt"`)
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), username)))
	})
}

func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerCtxKey, owner)
}

// OwnerFromContext returns the authenticated owner, or an empty string when
// the request carried no owner credentials.
func OwnerFromContext(ctx context.Context) string {
	owner, _ := ctx.Value(ownerCtxKey).(string)
	return owner
}
