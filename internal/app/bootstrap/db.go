// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	rolestore "github.com/dalemusser/helmdesk/internal/app/store/roles"
	userstore "github.com/dalemusser/helmdesk/internal/app/store/users"
	"github.com/dalemusser/helmdesk/internal/app/system/indexes"
	"github.com/dalemusser/helmdesk/internal/app/system/timeouts"
	"github.com/dalemusser/helmdesk/internal/app/system/validators"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection and verifies it with a ping.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema applies collection validators and indexes, seeds the role
// set, and creates the initial admin account when one is configured and the
// directory is empty.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Long())
	defer cancel()

	if err := validators.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		return fmt.Errorf("ensure validators: %w", err)
	}
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	if err := rolestore.New(deps.MongoDatabase).Seed(ctx, rolestore.Defaults); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	return ensureAdmin(ctx, appCfg, deps, logger)
}

// ensureAdmin creates the configured admin account if no user with that
// email exists yet. Re-running against a populated directory is a no-op, so
// restarts never clobber a changed password.
func ensureAdmin(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.SeedAdminEmail == "" {
		return nil
	}

	users := userstore.New(deps.MongoDatabase)
	_, err := users.GetByEmail(ctx, appCfg.SeedAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, userstore.ErrNotFound) {
		return fmt.Errorf("admin lookup: %w", err)
	}

	u, err := users.Create(ctx, userstore.NewUser{
		FullName: "Administrator",
		Email:    appCfg.SeedAdminEmail,
		RoleID:   "admin",
		Password: appCfg.SeedAdminPassword,
	})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	logger.Info("seeded admin account",
		zap.String("user_id", u.ID.Hex()),
		zap.String("email", u.Email))
	return nil
}
