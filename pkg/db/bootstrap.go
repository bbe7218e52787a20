package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Bootstrap initializes the database with default data if it's empty.
// This is called after migrations and handles first-run setup. Each
// installation gets a stable hub UUID, minted once here.
func (db *DB) Bootstrap(ctx context.Context) error {
	// Check if any profiles exist
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check profiles: %w", err)
	}

	if count > 0 {
		return nil // Already bootstrapped
	}

	// First run - create defaults
	result, err := db.ExecContext(ctx, `
		INSERT INTO profiles (name, hub_uuid, is_active)
		VALUES (?, ?, 1)
	`, "default", uuid.NewString())
	if err != nil {
		return fmt.Errorf("failed to create default profile: %w", err)
	}

	profileID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get profile ID: %w", err)
	}

	// Create default API server config. 39500 is the conventional hub
	// notification port for this sensor family.
	_, err = db.ExecContext(ctx, `
		INSERT INTO api_servers (profile_id, host, port)
		VALUES (?, '0.0.0.0', 39500)
	`, profileID)
	if err != nil {
		return fmt.Errorf("failed to create default API server: %w", err)
	}

	// Create default MQTT broker config, disabled until a broker URL is set.
	_, err = db.ExecContext(ctx, `
		INSERT INTO mqtt_brokers (profile_id)
		VALUES (?)
	`, profileID)
	if err != nil {
		return fmt.Errorf("failed to create default MQTT broker: %w", err)
	}

	return nil
}

// NeedsBootstrap returns true if the database needs initial setup.
func (db *DB) NeedsBootstrap(ctx context.Context) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
