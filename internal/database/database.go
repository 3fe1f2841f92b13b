// File: internal/database/database.go
//
// Package database hands out authenticated gorm handles to the relational
// datastore. There are two trust levels: the anonymous key for client-trust
// operations and the service role key for server-trust operations.
package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/iyunix/go-newsbot/internal/domain"
)

type Role string

const (
	RoleAnon    Role = "anon"
	RoleService Role = "service_role"
)

// Handle yields a ready *gorm.DB or the reason there is none.
type Handle interface {
	DB(ctx context.Context) (*gorm.DB, error)
}

// Credentials is a datastore URL plus the key that authenticates against it.
type Credentials struct {
	URL string
	Key string
}

// Provider lazily opens one connection pool per role and reuses it.
type Provider struct {
	creds map[Role]Credentials
	mu    sync.Mutex
	pools map[Role]*gorm.DB
}

func NewProvider(url, anonKey, serviceKey string) *Provider {
	return &Provider{
		creds: map[Role]Credentials{
			RoleAnon:    {URL: url, Key: anonKey},
			RoleService: {URL: url, Key: serviceKey},
		},
		pools: make(map[Role]*gorm.DB),
	}
}

// Anon returns the client-trust handle.
func (p *Provider) Anon() Handle { return roleHandle{p: p, role: RoleAnon} }

// Service returns the server-trust handle.
func (p *Provider) Service() Handle { return roleHandle{p: p, role: RoleService} }

func (p *Provider) open(role Role) (*gorm.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if db, ok := p.pools[role]; ok {
		return db, nil
	}
	db, err := Open(role, p.creds[role])
	if err != nil {
		return nil, err
	}
	// SQLite has no roles: once both keys check out, the roles share one
	// database so an in-memory DSN is not split in two.
	if !isPostgres(p.creds[role].URL) {
		for other, existing := range p.pools {
			if p.creds[other].URL == p.creds[role].URL {
				closeDB(db)
				db = existing
				break
			}
		}
	}
	p.pools[role] = db
	return db, nil
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Close closes every pool that was opened.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	closed := make(map[*gorm.DB]bool)
	for role, db := range p.pools {
		delete(p.pools, role)
		if closed[db] {
			continue
		}
		closed[db] = true
		if err := closeDB(db); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close %s pool: %w", role, err)
		}
	}
	return firstErr
}

type roleHandle struct {
	p    *Provider
	role Role
}

func (h roleHandle) DB(ctx context.Context) (*gorm.DB, error) {
	db, err := h.p.open(h.role)
	if err != nil {
		return nil, err
	}
	return db.WithContext(ctx), nil
}

// Static wraps an already opened connection, mostly for tests.
func Static(db *gorm.DB) Handle { return staticHandle{db: db} }

type staticHandle struct{ db *gorm.DB }

func (h staticHandle) DB(ctx context.Context) (*gorm.DB, error) {
	return h.db.WithContext(ctx), nil
}

// Open connects with the given credentials. postgres:// URLs use the key as
// the connection password; anything else is treated as a SQLite DSN.
func Open(role Role, creds Credentials) (*gorm.DB, error) {
	if creds.URL == "" || creds.Key == "" {
		keyVar := "DATABASE_ANON_KEY"
		if role == RoleService {
			keyVar = "DATABASE_SERVICE_ROLE_KEY"
		}
		return nil, domain.NewConfigError(fmt.Sprintf("DATABASE_URL 및 %s가 설정되지 않았습니다.", keyVar))
	}

	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	if isPostgres(creds.URL) {
		dsn, err := withPassword(creds.URL, creds.Key)
		if err != nil {
			return nil, domain.NewConfigError(fmt.Sprintf("DATABASE_URL 형식이 올바르지 않습니다: %v", err))
		}
		db, err := gorm.Open(postgres.Open(dsn), gormCfg)
		if err != nil {
			return nil, domain.NewStoreError("connect", err)
		}
		return db, nil
	}

	db, err := gorm.Open(sqlite.Open(creds.URL), gormCfg)
	if err != nil {
		return nil, domain.NewStoreError("connect", err)
	}
	if strings.Contains(creds.URL, ":memory:") {
		// Every new connection to an in-memory DSN is a fresh database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, domain.NewStoreError("connect", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrate creates or updates the four tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Search{},
		&domain.NewsItemRecord{},
		&domain.SummaryRecord{},
	)
}

func isPostgres(raw string) bool {
	return strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://")
}

func withPassword(raw, key string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	username := u.User.Username()
	if username == "" {
		username = "postgres"
	}
	u.User = url.UserPassword(username, key)
	return u.String(), nil
}

// NewInMemory opens a private in-memory SQLite database with the schema
// applied. The pool is pinned to one connection so every query sees the
// same database.
func NewInMemory() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
