package authkit

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/lingostack/authkit/password"
	"github.com/redis/go-redis/v9"
)

type mockUserProvider struct {
	users   map[string]UserRecord
	byEmail map[string]string
	mu      sync.Mutex

	getByEmailErr error
	createErr     error
	updateErr     error

	getByEmailCalls int
	getByIDCalls    int
	createCalls     int
	updateCalls     int
}

func newMockUserProvider() *mockUserProvider {
	return &mockUserProvider{
		users:   make(map[string]UserRecord),
		byEmail: make(map[string]string),
	}
}

func (m *mockUserProvider) put(u UserRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.UserID] = u
	m.byEmail[u.Email] = u.UserID
}

func (m *mockUserProvider) get(userID string) UserRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[userID]
}

func (m *mockUserProvider) GetUserByEmail(_ context.Context, email string) (UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getByEmailCalls++

	if m.getByEmailErr != nil {
		return UserRecord{}, m.getByEmailErr
	}

	userID, ok := m.byEmail[email]
	if !ok {
		return UserRecord{}, ErrUserNotFound
	}
	return m.users[userID], nil
}

func (m *mockUserProvider) GetUserByID(_ context.Context, userID string) (UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getByIDCalls++

	user, ok := m.users[userID]
	if !ok {
		return UserRecord{}, ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserProvider) CreateUser(_ context.Context, input CreateUserInput) (UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++

	if m.createErr != nil {
		return UserRecord{}, m.createErr
	}
	if _, exists := m.byEmail[input.Email]; exists {
		return UserRecord{}, ErrAccountExists
	}

	user := UserRecord{
		UserID:             fmt.Sprintf("u%d", len(m.users)+1),
		Name:               input.Name,
		Email:              input.Email,
		PasswordHash:       input.PasswordHash,
		Role:               input.Role,
		Verified:           input.Verified,
		Status:             input.Status,
		CertificationLevel: input.CertificationLevel,
	}
	m.users[user.UserID] = user
	m.byEmail[user.Email] = user.UserID
	return user, nil
}

func (m *mockUserProvider) UpdateUser(_ context.Context, userID string, update UserUpdate) (UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++

	if m.updateErr != nil {
		return UserRecord{}, m.updateErr
	}

	user, ok := m.users[userID]
	if !ok {
		return UserRecord{}, ErrUserNotFound
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.CertificationLevel != nil {
		user.CertificationLevel = *update.CertificationLevel
	}
	if update.Verified != nil {
		user.Verified = *update.Verified
	}
	if update.PasswordHash != nil {
		user.PasswordHash = *update.PasswordHash
	}
	m.users[userID] = user
	return user, nil
}

type sentMail struct {
	to         string
	subject    string
	templateID string
	data       map[string]string
}

type mockMailer struct {
	mu       sync.Mutex
	sent     []sentMail
	sendErr  error
	sendFunc func(to string) error
}

func (m *mockMailer) SendMail(_ context.Context, to, subject, templateID string, data map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sendErr != nil {
		return m.sendErr
	}
	if m.sendFunc != nil {
		if err := m.sendFunc(to); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, templateID: templateID, data: data})
	return nil
}

func (m *mockMailer) lastOTP(t *testing.T) string {
	t.Helper()

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sent) == 0 {
		t.Fatal("no mail was sent")
	}
	return m.sent[len(m.sent)-1].data["otp"]
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.JWT.AccessSecret = []byte("test-access-secret")
	cfg.JWT.RefreshSecret = []byte("test-refresh-secret")
	cfg.JWT.AccessTTL = 15 * time.Minute
	cfg.JWT.RefreshTTL = 24 * time.Hour
	cfg.JWT.Leeway = 0

	// Light argon2 parameters keep the suite fast.
	cfg.Password = PasswordConfig{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	}
	return cfg
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, client
}

func newTestHasher(t *testing.T) *password.Argon2 {
	t.Helper()

	cfg := testConfig().Password
	h, err := password.NewArgon2(password.Config{
		Memory:      cfg.Memory,
		Time:        cfg.Time,
		Parallelism: cfg.Parallelism,
		SaltLength:  cfg.SaltLength,
		KeyLength:   cfg.KeyLength,
	})
	if err != nil {
		t.Fatalf("NewArgon2 failed: %v", err)
	}
	return h
}

func newTestEngine(t *testing.T, cfg Config, rdb *redis.Client, up UserProvider, mailer Mailer) *Engine {
	t.Helper()

	engine, err := New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithUserProvider(up).
		WithMailer(mailer).
		Build()
	if err != nil {
		t.Fatalf("engine build failed: %v", err)
	}
	t.Cleanup(engine.Close)
	return engine
}

// seedUser hashes the given password and stores a user directly in the
// provider, bypassing Register.
func seedUser(t *testing.T, up *mockUserProvider, email, plaintext string, verified bool, role Role) UserRecord {
	t.Helper()

	hasher := newTestHasher(t)
	hash, err := hasher.Hash(plaintext)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	user := UserRecord{
		UserID:             fmt.Sprintf("u%d", len(up.users)+1),
		Name:               "Alice",
		Email:              email,
		PasswordHash:       hash,
		Role:               role,
		Verified:           verified,
		Status:             StatusActive,
		CertificationLevel: LevelA1,
	}
	up.put(user)
	return user
}

func makeDifferentOTP(code string) string {
	out := []byte(code)
	if out[0] == '9' {
		out[0] = '0'
	} else {
		out[0]++
	}
	return string(out)
}
