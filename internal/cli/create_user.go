// Package cli implements the command-line subcommands.
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/readshelf/readshelf/internal/auth"
	"github.com/readshelf/readshelf/internal/config"
	"github.com/readshelf/readshelf/internal/database"
)

// CreateUserCommand provisions a user account. Account creation is
// deliberately not exposed over HTTP.
type CreateUserCommand struct {
	Username     string
	Password     string
	DatabasePath string
}

// NewCreateUserCommand creates a new CreateUserCommand.
func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{}
}

// ParseFlags parses command line flags.
func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	fs.StringVar(&cmd.Username, "username", "", "Username for the new account (3-64 characters, alphanumeric plus underscore/hyphen)")
	fs.StringVar(&cmd.Password, "password", "", "Password for the new account (at least 12 characters)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user -username <name> -password <password> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a user account in the local database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Username == "" || cmd.Password == "" {
		fs.Usage()
		return fmt.Errorf("both -username and -password are required")
	}

	return nil
}

// Run executes the command.
func (cmd *CreateUserCommand) Run() error {
	cfg := config.NewConfig()
	cfg.Database.Path = cmd.DatabasePath

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	service := auth.NewService(db.DB, cfg.Auth)
	user, err := service.CreateUser(cmd.Username, cmd.Password)
	if err != nil {
		return err
	}

	fmt.Printf("Created user %q (id %d)\n", user.Username, user.ID)
	return nil
}
