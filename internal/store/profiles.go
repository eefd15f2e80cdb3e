package store

import (
	"fmt"

	"bidhouse-backend/internal/models"
	"github.com/google/uuid"
)

const profileColumns = "profile_id, email, role, is_active, created_at"

func scanProfile(s rowScanner) (*models.Profile, error) {
	var p models.Profile
	if err := s.Scan(&p.ProfileID, &p.Email, &p.Role, &p.IsActive, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreateProfile(email, role string) (*models.Profile, error) {
	profile, err := scanProfile(c.db.QueryRow(`
		INSERT INTO profiles (email, role)
		VALUES ($1, $2)
		RETURNING `+profileColumns,
		email, role))
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}

// CreateProfileWithID inserts a profile using an externally issued id, used
// when auto-creating rows for Supabase Auth users that have no profile yet.
func (c *Client) CreateProfileWithID(profileID uuid.UUID, email string, isActive bool) (*models.Profile, error) {
	profile, err := scanProfile(c.db.QueryRow(`
		INSERT INTO profiles (profile_id, email, is_active)
		VALUES ($1, $2, $3)
		RETURNING `+profileColumns,
		profileID, email, isActive))
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}

func (c *Client) GetProfile(profileID uuid.UUID) (*models.Profile, error) {
	var profile *models.Profile
	err := withReadRetry(func() error {
		var err error
		profile, err = scanProfile(c.db.QueryRow(`
			SELECT `+profileColumns+`
			FROM profiles
			WHERE profile_id = $1`,
			profileID))
		return notFound(err, "profile")
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// GetProfileByEmail returns (nil, nil) when no profile has the email.
func (c *Client) GetProfileByEmail(email string) (*models.Profile, error) {
	var profile *models.Profile
	err := withReadRetry(func() error {
		var err error
		profile, err = scanProfile(c.db.QueryRow(`
			SELECT `+profileColumns+`
			FROM profiles
			WHERE email = $1`,
			email))
		return notFound(err, "profile")
	})
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (c *Client) UpdateProfileEmail(profileID uuid.UUID, email string) (*models.Profile, error) {
	profile, err := scanProfile(c.db.QueryRow(`
		UPDATE profiles
		SET email = $1
		WHERE profile_id = $2
		RETURNING `+profileColumns,
		email, profileID))
	if err != nil {
		return nil, fmt.Errorf("failed to update profile email: %w", notFound(err, "profile"))
	}
	return profile, nil
}

func (c *Client) ActivateProfile(profileID uuid.UUID) (*models.Profile, error) {
	profile, err := scanProfile(c.db.QueryRow(`
		UPDATE profiles
		SET is_active = TRUE
		WHERE profile_id = $1
		RETURNING `+profileColumns,
		profileID))
	if err != nil {
		return nil, fmt.Errorf("failed to activate profile: %w", notFound(err, "profile"))
	}
	return profile, nil
}
