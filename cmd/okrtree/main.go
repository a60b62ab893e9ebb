package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/okrtree/internal/cli"
	"github.com/alexanderramin/okrtree/internal/db"
	"github.com/alexanderramin/okrtree/internal/remote"
	"github.com/alexanderramin/okrtree/internal/session"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

const defaultAPI = "http://localhost:8080/api"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env in the working directory overrides nothing already exported.
	_ = godotenv.Load()

	apiURL := os.Getenv("OKRTREE_API")
	if apiURL == "" {
		apiURL = defaultAPI
	}

	// Session snapshot DB: env var or default ~/.okrtree/okrtree.db
	dbPath := os.Getenv("OKRTREE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".okrtree", "okrtree.db")
	}

	log, closeLog, err := openDebugLog()
	if err != nil {
		return err
	}
	defer closeLog()

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	sessions := session.NewStore(database)
	client := remote.New(apiURL, log)

	app := &cli.App{
		Remote:   client,
		Sessions: sessions,
		IsInteractive: isatty.IsTerminal(os.Stdout.Fd()) ||
			isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}

	// Restore the stored session, if any. An expired token surfaces later
	// as an unauthorized error from the backend.
	if snap, err := sessions.Load(); err == nil {
		client.SetToken(snap.Token)
		app.CurrentUser = &snap.User
	} else if !errors.Is(err, session.ErrNoSession) {
		return fmt.Errorf("loading session: %w", err)
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// openDebugLog returns a request logger writing to OKRTREE_DEBUG_LOG,
// or a no-op logger when the variable is unset.
func openDebugLog() (zerolog.Logger, func(), error) {
	path := os.Getenv("OKRTREE_DEBUG_LOG")
	if path == "" {
		return zerolog.Nop(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("opening debug log: %w", err)
	}
	log := zerolog.New(f).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	return log, func() { f.Close() }, nil
}
