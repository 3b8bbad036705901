// Package service contains application services: account management and the
// per-session fitness ledger.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	pkgcrypto "github.com/and161185/fittrack/internal/crypto"
	"github.com/and161185/fittrack/internal/crypto/vaultcrypto"
	"github.com/and161185/fittrack/internal/errs"
	"github.com/and161185/fittrack/internal/limiter"
	"github.com/and161185/fittrack/internal/model"
	"github.com/and161185/fittrack/internal/storage"
)

const (
	minPasswordLen    = 6
	defaultSessionTTL = 30 * 24 * time.Hour

	signKeyKey = "ft_signkey"
)

// Accounts manages registration, login and the active session. The durable
// store holds the credential table and the remember-me slot; the ephemeral
// store holds the tab-scoped slot and dies with the process.
type Accounts struct {
	durable    storage.Store
	ephemeral  storage.Store
	lim        limiter.Limiter
	signKey    []byte
	sessionTTL time.Duration
	log        *zap.Logger
	now        func() time.Time
}

// NewAccounts constructs the account service.
func NewAccounts(durable, ephemeral storage.Store, lim limiter.Limiter, signKey []byte, log *zap.Logger) *Accounts {
	if log == nil {
		log = zap.NewNop()
	}
	return &Accounts{
		durable:    durable,
		ephemeral:  ephemeral,
		lim:        lim,
		signKey:    signKey,
		sessionTTL: defaultSessionTTL,
		log:        log,
		now:        time.Now,
	}
}

// LoadOrCreateSignKey returns the machine-local HS256 key for session
// tokens, generating and persisting one on first use.
func LoadOrCreateSignKey(ctx context.Context, st storage.Store) ([]byte, error) {
	key, err := st.Get(ctx, signKeyKey)
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	key, err = pkgcrypto.RandBytes(32)
	if err != nil {
		return nil, err
	}
	if err := st.Set(ctx, signKeyKey, key); err != nil {
		return nil, err
	}
	return key, nil
}

// FoldEmail normalizes an email to its case-insensitive account key.
func FoldEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account and establishes a session for it.
func (a *Accounts) Register(ctx context.Context, email, password string, remember bool) (model.Session, error) {
	email = FoldEmail(email)
	if email == "" {
		return model.Session{}, fmt.Errorf("%w: email required", errs.ErrValidation)
	}
	if len(password) < minPasswordLen {
		return model.Session{}, errs.ErrWeakPassword
	}

	table, err := a.loadTable(ctx)
	if err != nil {
		return model.Session{}, err
	}
	if _, exists := table[email]; exists {
		return model.Session{}, errs.ErrEmailTaken
	}

	saltAuth, err := pkgcrypto.RandBytes(16)
	if err != nil {
		return model.Session{}, err
	}
	kekSalt, err := pkgcrypto.RandBytes(16)
	if err != nil {
		return model.Session{}, err
	}
	dek, err := vaultcrypto.Rand(vaultcrypto.DEKLen)
	if err != nil {
		return model.Session{}, err
	}
	kek := vaultcrypto.DeriveKEK([]byte(password), kekSalt)
	wrapped, err := vaultcrypto.WrapDEK(kek, dek)
	if err != nil {
		return model.Session{}, err
	}

	table[email] = model.Account{
		Email:      email,
		PwdHash:    pkgcrypto.HashPassword([]byte(password), saltAuth),
		SaltAuth:   saltAuth,
		KekSalt:    kekSalt,
		WrappedDEK: wrapped,
		CreatedAt:  a.now(),
	}
	if err := a.saveTable(ctx, table); err != nil {
		return model.Session{}, err
	}

	a.log.Info("account registered", zap.String("email", email))
	return a.establishSession(ctx, email, remember, dek)
}

// Login authenticates an account and establishes a session. Failed attempts
// are rate limited per email.
func (a *Accounts) Login(ctx context.Context, email, password string, remember bool) (model.Session, error) {
	email = FoldEmail(email)

	allowed, retry, err := a.lim.Allow(ctx, email)
	if err != nil {
		return model.Session{}, err
	}
	if !allowed {
		a.log.Warn("login rate limited", zap.String("email", email), zap.Duration("retry_after", retry))
		return model.Session{}, errs.ErrRateLimited
	}

	table, err := a.loadTable(ctx)
	if err != nil {
		return model.Session{}, err
	}
	acc, ok := table[email]
	if !ok {
		if blocked, _, ferr := a.lim.Failure(ctx, email); ferr == nil && blocked {
			return model.Session{}, errs.ErrRateLimited
		}
		return model.Session{}, errs.ErrEmailNotFound
	}
	if !pkgcrypto.VerifyPassword([]byte(password), acc.SaltAuth, acc.PwdHash) {
		if blocked, _, ferr := a.lim.Failure(ctx, email); ferr == nil && blocked {
			return model.Session{}, errs.ErrRateLimited
		}
		return model.Session{}, errs.ErrWrongPassword
	}
	_ = a.lim.Success(ctx, email)

	kek := vaultcrypto.DeriveKEK([]byte(password), acc.KekSalt)
	dek, err := vaultcrypto.UnwrapDEK(kek, acc.WrappedDEK)
	if err != nil {
		return model.Session{}, fmt.Errorf("unwrap vault key: %w", err)
	}

	a.log.Info("login", zap.String("email", email), zap.Bool("remember", remember))
	return a.establishSession(ctx, email, remember, dek)
}

// Logout clears both session slots. The caller discards its Ledger; the
// next login rebuilds the working set from storage.
func (a *Accounts) Logout(ctx context.Context) error {
	if err := a.durable.Remove(ctx, storage.SessionKey); err != nil {
		return err
	}
	if err := a.ephemeral.Remove(ctx, storage.SessionKey); err != nil {
		return err
	}
	a.log.Info("logout")
	return nil
}

// Active resolves the current session: the ephemeral slot wins, then the
// durable remember-me token. Returns errs.ErrNoSession when neither holds.
func (a *Accounts) Active(ctx context.Context) (model.Session, error) {
	if blob, err := a.ephemeral.Get(ctx, storage.SessionKey); err == nil {
		var slot sessionSlot
		if err := json.Unmarshal(blob, &slot); err != nil {
			return model.Session{}, err
		}
		return model.Session{Email: slot.Email, DEK: slot.DEK}, nil
	}

	blob, err := a.durable.Get(ctx, storage.SessionKey)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.Session{}, errs.ErrNoSession
		}
		return model.Session{}, err
	}
	var slot sessionSlot
	if err := json.Unmarshal(blob, &slot); err != nil {
		return model.Session{}, err
	}
	email, err := a.verifySessionToken(slot.Token)
	if err != nil {
		// Stale or tampered token: drop the slot instead of failing forever.
		_ = a.durable.Remove(ctx, storage.SessionKey)
		return model.Session{}, errs.ErrNoSession
	}
	return model.Session{Email: email, Remember: true, DEK: slot.DEK}, nil
}

// sessionSlot is the serialized form of a session pointer. The remember-me
// slot carries a signed token; the ephemeral slot only needs the email.
type sessionSlot struct {
	Email string `json:"email,omitempty"`
	Token string `json:"token,omitempty"`
	DEK   []byte `json:"dek"`
}

func (a *Accounts) establishSession(ctx context.Context, email string, remember bool, dek []byte) (model.Session, error) {
	if remember {
		token, err := a.issueSessionToken(email)
		if err != nil {
			return model.Session{}, err
		}
		blob, err := json.Marshal(sessionSlot{Token: token, DEK: dek})
		if err != nil {
			return model.Session{}, err
		}
		if err := a.durable.Set(ctx, storage.SessionKey, blob); err != nil {
			return model.Session{}, err
		}
		_ = a.ephemeral.Remove(ctx, storage.SessionKey)
		return model.Session{Email: email, Remember: true, DEK: dek}, nil
	}

	blob, err := json.Marshal(sessionSlot{Email: email, DEK: dek})
	if err != nil {
		return model.Session{}, err
	}
	if err := a.ephemeral.Set(ctx, storage.SessionKey, blob); err != nil {
		return model.Session{}, err
	}
	// A non-remembered login invalidates any previous remember-me slot.
	if err := a.durable.Remove(ctx, storage.SessionKey); err != nil {
		return model.Session{}, err
	}
	return model.Session{Email: email, DEK: dek}, nil
}

// issueSessionToken creates a signed HS256 JWT with the email as subject.
func (a *Accounts) issueSessionToken(email string) (string, error) {
	now := a.now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.sessionTTL)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(a.signKey)
}

func (a *Accounts) verifySessionToken(token string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return a.signKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("token without subject")
	}
	return claims.Subject, nil
}

// loadTable reads the credential table; an absent slot is an empty table.
func (a *Accounts) loadTable(ctx context.Context) (map[string]model.Account, error) {
	blob, err := a.durable.Get(ctx, storage.AccountsKey)
	if errors.Is(err, errs.ErrNotFound) {
		return map[string]model.Account{}, nil
	}
	if err != nil {
		return nil, err
	}
	var table map[string]model.Account
	if err := json.Unmarshal(blob, &table); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	return table, nil
}

func (a *Accounts) saveTable(ctx context.Context, table map[string]model.Account) error {
	blob, err := json.Marshal(table)
	if err != nil {
		return err
	}
	return a.durable.Set(ctx, storage.AccountsKey, blob)
}
