// Command seed bootstraps an administrator account in Firebase and the
// profile store. It is idempotent: rerunning with the same email reuses the
// existing user and leaves an existing profile row in place.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"google.golang.org/api/option"

	"lifeline/config"
	"lifeline/internal/domain/entity"
	logs "lifeline/internal/infra/log"
	"lifeline/internal/infra/persistence/postgres"
)

func main() {
	email := flag.String("email", "", "administrator email (required)")
	password := flag.String("password", "", "initial password for a newly created user")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "seed: -email is required")
		os.Exit(2)
	}

	if err := run(context.Background(), *email, *password); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, email, password string) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	client, err := authClient(ctx, cfg)
	if err != nil {
		return err
	}

	user, created, err := ensureUser(ctx, client, email, password)
	if err != nil {
		return err
	}
	if created {
		logger.Info("created firebase user", "uid", user.UID, "email", email)
	} else {
		logger.Info("reusing firebase user", "uid", user.UID, "email", email)
	}

	// The admin claim lands in future ID tokens. Existing sessions pick it
	// up on their next refresh.
	claims := map[string]any{"role": string(entity.RoleAdmin)}
	if err := client.SetCustomUserClaims(ctx, user.UID, claims); err != nil {
		return fmt.Errorf("set admin claim: %w", err)
	}

	if err := ensureProfile(ctx, cfg, user.UID, email); err != nil {
		return err
	}

	logger.Info("administrator ready", "uid", user.UID, "email", email)

	return nil
}

func authClient(ctx context.Context, cfg *config.Config) (*firebaseauth.Client, error) {
	if cfg.Firebase == nil || cfg.Firebase.ProjectID == "" {
		return nil, fmt.Errorf("firebase is not configured")
	}

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase auth client: %w", err)
	}

	return client, nil
}

func ensureUser(ctx context.Context, client *firebaseauth.Client, email, password string) (*firebaseauth.UserRecord, bool, error) {
	user, err := client.GetUserByEmail(ctx, email)
	if err == nil {
		return user, false, nil
	}
	if !firebaseauth.IsUserNotFound(err) {
		return nil, false, fmt.Errorf("look up user: %w", err)
	}

	if password == "" {
		return nil, false, fmt.Errorf("user %s does not exist and no -password was given", email)
	}

	params := (&firebaseauth.UserToCreate{}).
		Email(email).
		Password(password).
		EmailVerified(true)

	user, err = client.CreateUser(ctx, params)
	if err != nil {
		return nil, false, fmt.Errorf("create user: %w", err)
	}

	return user, true, nil
}

func ensureProfile(ctx context.Context, cfg *config.Config, uid, email string) error {
	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	profiles := postgres.NewProfileRepository(db)

	profile := entity.NewDefaultProfile(uid, email)
	profile.Role = entity.RoleAdmin

	// Upsert keeps an existing profile untouched, including a prior role.
	if err := profiles.Upsert(ctx, profile); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	return nil
}
