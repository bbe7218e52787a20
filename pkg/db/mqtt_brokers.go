package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrMQTTBrokerNotFound = errors.New("mqtt broker config not found")

// MQTTBroker represents MQTT publishing configuration. An empty
// BrokerURL disables publishing entirely.
type MQTTBroker struct {
	ID                int64
	ProfileID         int64
	BrokerURL         string
	ClientID          string
	TopicPrefix       string
	QoS               int
	Retain            bool
	HADiscovery       bool
	HADiscoveryPrefix string
	CreatedAt         time.Time
}

// MQTTBrokerStore provides MQTT broker config CRUD operations.
type MQTTBrokerStore interface {
	Get(ctx context.Context, profileID int64) (*MQTTBroker, error)
	Create(ctx context.Context, b *MQTTBroker) error
	Update(ctx context.Context, b *MQTTBroker) error
	Delete(ctx context.Context, profileID int64) error
}

// MQTTBrokers returns an MQTTBrokerStore for this database.
func (db *DB) MQTTBrokers() MQTTBrokerStore {
	return &mqttBrokerStore{db: db}
}

type mqttBrokerStore struct {
	db *DB
}

func (s *mqttBrokerStore) Get(ctx context.Context, profileID int64) (*MQTTBroker, error) {
	b := &MQTTBroker{}
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, profile_id, broker_url, client_id, topic_prefix, qos, retain,
		       ha_discovery, ha_discovery_prefix, created_at
		FROM mqtt_brokers WHERE profile_id = ?
	`, profileID).Scan(&b.ID, &b.ProfileID, &b.BrokerURL, &b.ClientID, &b.TopicPrefix,
		&b.QoS, &b.Retain, &b.HADiscovery, &b.HADiscoveryPrefix, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrMQTTBrokerNotFound
	}
	if err != nil {
		return nil, err
	}
	b.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	return b, nil
}

func (s *mqttBrokerStore) Create(ctx context.Context, b *MQTTBroker) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO mqtt_brokers (profile_id, broker_url, client_id, topic_prefix, qos, retain,
		                          ha_discovery, ha_discovery_prefix)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, b.ProfileID, b.BrokerURL, b.ClientID, b.TopicPrefix, b.QoS, b.Retain,
		b.HADiscovery, b.HADiscoveryPrefix)
	if err != nil {
		return fmt.Errorf("failed to create MQTT broker config: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (s *mqttBrokerStore) Update(ctx context.Context, b *MQTTBroker) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE mqtt_brokers SET broker_url = ?, client_id = ?, topic_prefix = ?, qos = ?,
		       retain = ?, ha_discovery = ?, ha_discovery_prefix = ?
		WHERE profile_id = ?
	`, b.BrokerURL, b.ClientID, b.TopicPrefix, b.QoS, b.Retain,
		b.HADiscovery, b.HADiscoveryPrefix, b.ProfileID)
	return err
}

func (s *mqttBrokerStore) Delete(ctx context.Context, profileID int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM mqtt_brokers WHERE profile_id = ?`, profileID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrMQTTBrokerNotFound
	}
	return nil
}
