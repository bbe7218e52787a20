package db

import (
	"context"
	"errors"
	"fmt"
)

var ErrNoActiveProfile = errors.New("no active profile found")

// Config represents the complete runtime configuration loaded from the database.
type Config struct {
	Profile    *Profile
	APIServer  *APIServer
	MQTTBroker *MQTTBroker
}

// APIAddress returns the API server listen address.
func (c *Config) APIAddress() string {
	if c.APIServer == nil {
		return "0.0.0.0:39500"
	}
	return c.APIServer.Address()
}

// CallbackAddress returns the hub address advertised to sensors.
func (c *Config) CallbackAddress() string {
	if c.APIServer == nil {
		return "0.0.0.0:39500"
	}
	return c.APIServer.CallbackAddress()
}

// HubUUID returns the installation's stable hub UUID.
func (c *Config) HubUUID() string {
	if c.Profile == nil {
		return ""
	}
	return c.Profile.HubUUID
}

// ActiveConfig loads the complete configuration for the active profile.
func (db *DB) ActiveConfig(ctx context.Context) (*Config, error) {
	// Get active profile
	profile, err := db.Profiles().GetActive(ctx)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, ErrNoActiveProfile
		}
		return nil, fmt.Errorf("failed to get active profile: %w", err)
	}

	config := &Config{
		Profile: profile,
	}

	// Get API server config
	apiServer, err := db.APIServers().Get(ctx, profile.ID)
	if err != nil && !errors.Is(err, ErrAPIServerNotFound) {
		return nil, fmt.Errorf("failed to get API server config: %w", err)
	}
	config.APIServer = apiServer

	// Get MQTT broker config
	broker, err := db.MQTTBrokers().Get(ctx, profile.ID)
	if err != nil && !errors.Is(err, ErrMQTTBrokerNotFound) {
		return nil, fmt.Errorf("failed to get MQTT broker config: %w", err)
	}
	config.MQTTBroker = broker

	return config, nil
}
