package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/justsurfingit/jobly-api/internal/auth"
	"github.com/justsurfingit/jobly-api/internal/config"
	"github.com/justsurfingit/jobly-api/internal/database"
	"github.com/justsurfingit/jobly-api/internal/logger"
)

var version = "dev"

type CLI struct {
	VersionFlag kong.VersionFlag `name:"version" help:"Print version."`

	Migrate MigrateCmd `cmd:"" help:"Create or update the database schema."`
	Seed    SeedCmd    `cmd:"" help:"Load sample companies, jobs and an admin account."`
	Token   TokenCmd   `cmd:"" help:"Mint an API token for a user."`
}

// Context is handed to every command's Run.
type Context struct {
	Ctx    context.Context
	Config *config.Config
	Logger *zap.Logger
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(rc *Context) error {
	db, err := database.Connect(rc.Ctx, rc.Config.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(rc.Ctx); err != nil {
		return err
	}
	rc.Logger.Info("schema migrated")
	return nil
}

type SeedCmd struct {
	AdminPassword string `help:"Password for the seeded admin account." env:"JOBLY_ADMIN_PASSWORD" default:"password"`
}

func (c *SeedCmd) Run(rc *Context) error {
	db, err := database.Connect(rc.Ctx, rc.Config.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(rc.Ctx); err != nil {
		return err
	}
	if err := database.Seed(rc.Ctx, db.Gorm, c.AdminPassword, rc.Config.BcryptCost); err != nil {
		return err
	}
	rc.Logger.Info("database seeded")
	return nil
}

type TokenCmd struct {
	Username string `arg:"" help:"Username the token is issued for."`
	Admin    bool   `help:"Mark the token as carrying admin rights."`
}

func (c *TokenCmd) Run(rc *Context) error {
	token, err := auth.NewTokenManager(rc.Config.SecretKey, rc.Config.TokenTTL).Issue(c.Username, c.Admin)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func main() {
	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("joblyctl"),
		kong.Description("Jobly administration CLI."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	err = kctx.Run(&Context{Ctx: context.Background(), Config: cfg, Logger: log})
	kctx.FatalIfErrorf(err)
}
