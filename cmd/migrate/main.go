package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/sannaclaudia/WebAPP/internal/domain/identity"
	"github.com/sannaclaudia/WebAPP/internal/infrastructure/auth"
	"github.com/sannaclaudia/WebAPP/internal/infrastructure/config"
	"github.com/sannaclaudia/WebAPP/internal/infrastructure/logger"
	"github.com/sannaclaudia/WebAPP/internal/infrastructure/migration"
	"github.com/sannaclaudia/WebAPP/internal/infrastructure/persistence"
	"github.com/sannaclaudia/WebAPP/migrations"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

func main() {
	var (
		migrationsPath string
		logLevel       string
		withTOTP       bool
	)

	flag.StringVar(&migrationsPath, "path", "", "Read migrations from this directory instead of the embedded set")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&withTOTP, "totp", true, "create-user: generate a TOTP secret for the account")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	log.Info("Migration CLI started",
		zap.String("command", command),
		zap.String("migrations_path", displayPath(migrationsPath)),
	)

	// Commands that only touch the filesystem
	switch command {
	case "create":
		if len(args) < 2 {
			log.Fatal("Migration name required. Usage: migrate create <name> [description]")
		}
		description := ""
		if len(args) > 2 {
			description = args[2]
		}
		dir := migrationsPath
		if dir == "" {
			dir = defaultMigrationsPath
		}
		mf, err := migration.CreateMigration(dir, args[1], description)
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration created successfully",
			zap.String("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
		return

	case "list":
		var names []string
		if migrationsPath == "" {
			names, err = migration.ListMigrationsFS(migrations.FS)
		} else {
			names, err = migration.ListMigrations(migrationsPath)
		}
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		if len(names) == 0 {
			log.Info("No migrations found")
			return
		}
		log.Info("Available migrations", zap.Int("count", len(names)))
		for _, name := range names {
			fmt.Println("  -", name)
		}
		return

	case "create-user":
		if len(args) < 3 {
			log.Fatal("Usage: migrate [-totp=false] create-user <username> <password>")
		}
		if err := createUser(cfg, log, args[1], args[2], withTOTP); err != nil {
			log.Fatal("Failed to create user", zap.Error(err))
		}
		return
	}

	if cfg.Database.Driver != "postgres" {
		log.Fatal("Schema migrations run against PostgreSQL only; SQLite schemas are created by the server",
			zap.String("driver", cfg.Database.Driver))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database", zap.Error(err))
	}

	var m *migration.Migrator
	if migrationsPath == "" {
		m, err = migration.NewEmbedded(db, migrations.FS, log)
	} else {
		m, err = migration.New(db, migrationsPath, log)
	}
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil {
			log.Fatal("Migration up failed", zap.Error(err))
		}

	case "down":
		if err := m.Down(); err != nil {
			log.Fatal("Migration down failed", zap.Error(err))
		}

	case "step":
		if len(args) < 2 {
			log.Fatal("Step count required. Usage: migrate step <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid step count", zap.String("value", args[1]))
		}
		if err := m.Steps(n); err != nil {
			log.Fatal("Migration step failed", zap.Error(err))
		}

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal("Failed to get version", zap.Error(err))
		}
		if version == 0 {
			log.Info("No migrations applied")
		} else {
			log.Info("Current migration version",
				zap.Uint("version", version),
				zap.Bool("dirty", dirty),
			)
		}

	case "force":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate force <version>")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid version number", zap.String("value", args[1]))
		}
		log.Warn("Forcing migration version - use with caution!")
		if err := m.Force(version); err != nil {
			log.Fatal("Force version failed", zap.Error(err))
		}

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

// createUser stores an account with a bcrypt hash and, optionally, a fresh
// TOTP secret. The otpauth URL is printed once for the authenticator app.
func createUser(cfg *config.Config, log *zap.Logger, username, password string, withTOTP bool) error {
	user, err := identity.NewUser(username, password)
	if err != nil {
		return err
	}

	if withTOTP {
		secret, url, err := auth.NewTOTPService(cfg.TOTP).Generate(user.Username)
		if err != nil {
			return err
		}
		if err := user.EnableTOTP(secret); err != nil {
			return err
		}
		fmt.Println("Scan this URL with an authenticator app:")
		fmt.Println("  " + url)
	}

	db, err := persistence.NewDatabase(&cfg.Database, log, "warn")
	if err != nil {
		return err
	}
	defer db.Close()

	if err := persistence.NewGormUserRepository(db.DB).Create(context.Background(), user); err != nil {
		return err
	}
	log.Info("User created",
		zap.Uint("id", user.ID),
		zap.String("username", user.Username),
		zap.Bool("totp", user.HasTOTP()),
	)
	return nil
}

func displayPath(path string) string {
	if path == "" {
		return "(embedded)"
	}
	return path
}

func printUsage() {
	fmt.Println(`Restaurant Database Migration Tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                                Apply all pending migrations
  down                              Roll back all migrations
  step <n>                          Apply n migrations (positive=up, negative=down)
  version                           Show current migration version
  force <version>                   Force set migration version (use with caution)
  create <name> [desc]              Create a new migration file pair
  list                              List available migrations
  create-user <username> <password> Create an account (with a TOTP secret unless -totp=false)

Flags:
  -path string          Read migrations from a directory instead of the embedded set
  -log-level string     Log level: debug, info, warn, error (default: info)
  -totp bool            Generate a TOTP secret in create-user (default: true)

Environment Variables:
  RESTO_DATABASE_HOST, RESTO_DATABASE_PORT, RESTO_DATABASE_USER,
  RESTO_DATABASE_PASSWORD, RESTO_DATABASE_DBNAME, RESTO_DATABASE_SSLMODE

Examples:
  # Apply all pending migrations
  migrate up

  # Roll back the last migration
  migrate step -1

  # Create an account with a second factor
  migrate create-user mario 'a-long-password'`)
}
