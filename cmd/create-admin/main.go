package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/sannyeinphyo/internlink-sub001/internal/config"
	"github.com/sannyeinphyo/internlink-sub001/internal/domain/entities"
	domainerrors "github.com/sannyeinphyo/internlink-sub001/internal/domain/errors"
	domainrepo "github.com/sannyeinphyo/internlink-sub001/internal/domain/repositories"
	"github.com/sannyeinphyo/internlink-sub001/internal/infrastructure/datasources/postgres"
	"github.com/sannyeinphyo/internlink-sub001/internal/infrastructure/repositories"
	"github.com/sannyeinphyo/internlink-sub001/pkg/crypto"
	"github.com/sannyeinphyo/internlink-sub001/pkg/utils"
)

const (
	minPasswordLength      = 8
	generatedPasswordBytes = 12
)

var openCreateAdminDB = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
	sqlDB, err := postgres.NewConnection(cfg)
	if err != nil {
		return nil, err
	}
	return postgres.NewGorm(sqlDB)
}

var openCreateAdminSQLDB = func(db *gorm.DB) (io.Closer, error) {
	return db.DB()
}

// adminStore is what promotion and creation write through
type adminStore struct {
	accounts domainrepo.AccountRepository
	profiles domainrepo.ProfileRepository
	uow      domainrepo.UnitOfWork
}

type createAdminDeps struct {
	loadEnv  func() error
	loadCfg  func() *config.Config
	prepare  func(cfg *config.Config) (adminStore, io.Closer, error)
	hash     func(password string) (string, error)
	password func() (string, error)
	now      func() time.Time
	out      io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultCreateAdminDeps() createAdminDeps {
	return createAdminDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (adminStore, io.Closer, error) {
			db, err := openCreateAdminDB(cfg.Database)
			if err != nil {
				return adminStore{}, nil, fmt.Errorf("failed to connect db: %w", err)
			}

			sqlDB, err := openCreateAdminSQLDB(db)
			if err != nil {
				return adminStore{}, nil, fmt.Errorf("failed to init sql db: %w", err)
			}

			if err := postgres.Migrate(db); err != nil {
				_ = sqlDB.Close()
				return adminStore{}, nil, err
			}
			return newAdminStore(db), sqlDB, nil
		},
		hash:     crypto.HashPassword,
		password: generatePassword,
		now:      time.Now,
		out:      os.Stdout,
	}
}

func newAdminStore(db *gorm.DB) adminStore {
	return adminStore{
		accounts: repositories.NewAccountRepository(db),
		profiles: repositories.NewProfileRepository(db),
		uow:      repositories.NewUnitOfWork(db),
	}
}

// generatePassword returns 24 hex characters
func generatePassword() (string, error) {
	return crypto.GenerateRandomToken(generatedPasswordBytes)
}

type adminInput struct {
	email    string
	name     string
	password string
}

func parseAdminFlags(args []string) (adminInput, error) {
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	emailFlag := fs.String("email", "", "admin email (required)")
	nameFlag := fs.String("name", "", "admin display name (required)")
	passwordFlag := fs.String("password", "", "admin password (generated when empty)")
	if err := fs.Parse(args); err != nil {
		return adminInput{}, err
	}

	in := adminInput{
		email:    entities.NormalizeEmail(*emailFlag),
		name:     *nameFlag,
		password: *passwordFlag,
	}
	if in.email == "" {
		return in, fmt.Errorf("--email is required")
	}
	if in.name == "" {
		return in, fmt.Errorf("--name is required")
	}
	if in.password != "" && len(in.password) < minPasswordLength {
		return in, fmt.Errorf("--password must be at least %d characters", minPasswordLength)
	}
	return in, nil
}

func runCreateAdmin(args []string, deps createAdminDeps) error {
	def := defaultCreateAdminDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.hash == nil {
		deps.hash = def.hash
	}
	if deps.password == nil {
		deps.password = def.password
	}
	if deps.now == nil {
		deps.now = def.now
	}
	if deps.out == nil {
		deps.out = def.out
	}

	in, err := parseAdminFlags(args)
	if err != nil {
		return err
	}

	generated := false
	if in.password == "" {
		if in.password, err = deps.password(); err != nil {
			return fmt.Errorf("failed to generate password: %w", err)
		}
		generated = true
	}
	hash, err := deps.hash(in.password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := deps.loadCfg()
	store, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	accounts := store.accounts
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	ctx := context.Background()
	account, err := accounts.GetByEmail(ctx, in.email)
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		now := deps.now()
		account = &entities.Account{
			ID:           utils.GenerateUUIDv7(),
			Email:        in.email,
			Name:         in.name,
			PasswordHash: hash,
			Role:         entities.RoleAdmin,
			Status:       entities.AccountStatusApproved,
			Verified:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := accounts.Create(ctx, account); err != nil {
			return fmt.Errorf("failed creating admin: %w", err)
		}
		_, _ = fmt.Fprintln(deps.out, "Created admin account")
	case err != nil:
		return fmt.Errorf("failed to load account %s: %w", in.email, err)
	default:
		if err := promote(ctx, store, account, in.name, hash); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(deps.out, "Promoted existing account to admin")
	}

	_, _ = fmt.Fprintf(deps.out, "account_id=%s\n", account.ID.String())
	_, _ = fmt.Fprintf(deps.out, "email=%s\n", account.Email)
	if generated {
		_, _ = fmt.Fprintf(deps.out, "PASSWORD=%s\n", in.password)
	}
	return nil
}

// promote turns an existing account into an approved admin. The profile of
// its previous role is removed since admins carry none.
func promote(ctx context.Context, store adminStore, account *entities.Account, name, hash string) error {
	previous := account.Role
	account.Name = name
	account.Role = entities.RoleAdmin
	account.Status = entities.AccountStatusApproved
	account.Verified = true
	account.ClearOTP()

	return store.uow.Do(ctx, func(txCtx context.Context) error {
		if err := store.profiles.DeleteByAccount(txCtx, account.ID, previous); err != nil {
			return fmt.Errorf("failed removing %s profile: %w", previous, err)
		}
		if err := store.accounts.Update(txCtx, account); err != nil {
			return fmt.Errorf("failed promoting account: %w", err)
		}
		if err := store.accounts.UpdatePassword(txCtx, account.ID, hash); err != nil {
			return fmt.Errorf("failed setting password: %w", err)
		}
		return nil
	})
}

func main() {
	if err := runCreateAdmin(os.Args[1:], defaultCreateAdminDeps()); err != nil {
		log.Fatal(err)
	}
}
