package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/memorial/internal/app/models"
	appRepos "github.com/yigit/memorial/internal/app/repositories"
	"github.com/yigit/memorial/internal/db"
	"github.com/yigit/memorial/internal/pkg/apperrors"
	"github.com/yigit/memorial/internal/pkg/auth"
)

// DefaultDemoPassword is used for the demo accounts when none is configured
const DefaultDemoPassword = "DemoPassword123!"

type demoUser struct {
	name        string
	email       string
	displayName string
	role        appModels.RoleType
}

var demoUsers = []demoUser{
	{name: "Admin User", email: "admin@example.com", displayName: "Admin", role: appModels.RoleAdmin},
	{name: "Vendor User", email: "vendor@example.com", displayName: "Vendor", role: appModels.RoleVendor},
	{name: "Regular User", email: "user@example.com", displayName: "User", role: appModels.RoleUser},
}

var defaultTitles = map[appModels.ReferenceKind][]string{
	appModels.ReferenceOccupation:       {"Student", "Doctor", "Private Job", "Engineer"},
	appModels.ReferenceInstitution:      {"Uttara High School", "Rajuk Uttara Model College", "Uttara University", "Milestone College"},
	appModels.ReferenceIncidentLocation: {"Jasimuddin Mor", "Rajlokkhi", "Azampur", "Housebuilding", "BNS Center"},
}

// CreateDefaultData creates the demo accounts and lookup titles if they don't exist.
// Failures are logged and joined so one bad row does not stop the rest.
func CreateDefaultData(ctx context.Context, conn db.DBTX, demoPassword string, lgr zerolog.Logger) error {
	repos := appRepos.NewRepositories(conn)
	if demoPassword == "" {
		demoPassword = DefaultDemoPassword
	}

	lgr.Info().Msg("Checking/Creating default data (users and lookup titles)...")
	var finalErr error

	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		return err
	}

	var adminID *int64
	for _, u := range demoUsers {
		id, err := ensureUser(ctx, repos.UserRepository, u, hash)
		if err != nil {
			lgr.Error().Err(err).Str("email", u.email).Msg("Error creating demo user")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if u.role == appModels.RoleAdmin {
			adminID = &id
		}
	}

	for _, kind := range []appModels.ReferenceKind{
		appModels.ReferenceOccupation,
		appModels.ReferenceInstitution,
		appModels.ReferenceIncidentLocation,
	} {
		repo := repos.Reference(kind)
		for _, title := range defaultTitles[kind] {
			if _, err := repo.EnsureTitle(ctx, title, adminID); err != nil {
				lgr.Error().Err(err).Str("kind", string(kind)).Str("title", title).Msg("Error seeding lookup title")
				finalErr = errors.Join(finalErr, err)
			}
		}
		lgr.Info().Str("kind", string(kind)).Int("count", len(defaultTitles[kind])).Msg("Lookup titles seeded")
	}

	if finalErr != nil {
		lgr.Warn().Err(finalErr).Msg("Default data seeding finished with errors")
	} else {
		lgr.Info().Msg("Default data check/creation finished.")
	}
	return finalErr
}

func ensureUser(ctx context.Context, repo *appRepos.UserRepository, u demoUser, hash string) (int64, error) {
	existing, err := repo.GetUserByEmail(ctx, u.email)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return 0, err
	}

	displayName := u.displayName
	return repo.CreateUser(ctx, &appModels.User{
		Name:        u.name,
		Email:       u.email,
		Password:    hash,
		RoleType:    u.role,
		DisplayName: &displayName,
	})
}
