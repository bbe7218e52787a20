package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rllynch/pi-garage-smartthings/pkg/sensor"
)

var ErrSensorNotFound = errors.New("sensor not found")

// SensorStore persists registered sensors so the hub survives restarts
// without losing its registry.
type SensorStore interface {
	Get(ctx context.Context, usn string) (*sensor.Sensor, error)
	List(ctx context.Context, profileID int64) ([]*sensor.Sensor, error)
	Upsert(ctx context.Context, profileID int64, s *sensor.Sensor) error
	SetContact(ctx context.Context, usn string, contact sensor.ContactValue) error
	SetSubscribed(ctx context.Context, usn string, at time.Time) error
	Delete(ctx context.Context, usn string) error
}

// Sensors returns a SensorStore for this database.
func (db *DB) Sensors() SensorStore {
	return &sensorStore{db: db}
}

type sensorStore struct {
	db *DB
}

const sensorColumns = `usn, name, device_type, mac, hex_ip, hex_port, ssdp_path,
       network_id, contact, last_seen, last_subscribed`

func scanSensor(scan func(dest ...any) error) (*sensor.Sensor, error) {
	s := &sensor.Sensor{}
	var contact string
	var lastSeen, lastSubscribed sql.NullString
	err := scan(&s.USN, &s.Name, &s.DeviceType, &s.MAC, &s.HexIP, &s.HexPort,
		&s.SSDPPath, &s.NetworkID, &contact, &lastSeen, &lastSubscribed)
	if err != nil {
		return nil, err
	}
	s.Contact = sensor.ParseContact(contact)
	if lastSeen.Valid {
		s.LastSeen, _ = time.Parse(time.DateTime, lastSeen.String)
	}
	if lastSubscribed.Valid {
		s.LastSubscribed, _ = time.Parse(time.DateTime, lastSubscribed.String)
	}
	return s, nil
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.DateTime)
}

func (st *sensorStore) Get(ctx context.Context, usn string) (*sensor.Sensor, error) {
	row := st.db.QueryRowContext(ctx, `
		SELECT `+sensorColumns+`
		FROM sensors WHERE usn = ?
	`, usn)
	s, err := scanSensor(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrSensorNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (st *sensorStore) List(ctx context.Context, profileID int64) ([]*sensor.Sensor, error) {
	rows, err := st.db.QueryContext(ctx, `
		SELECT `+sensorColumns+`
		FROM sensors WHERE profile_id = ? ORDER BY usn
	`, profileID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var sensors []*sensor.Sensor
	for rows.Next() {
		s, err := scanSensor(rows.Scan)
		if err != nil {
			return nil, err
		}
		sensors = append(sensors, s)
	}
	return sensors, rows.Err()
}

func (st *sensorStore) Upsert(ctx context.Context, profileID int64, s *sensor.Sensor) error {
	_, err := st.db.ExecContext(ctx, `
		INSERT INTO sensors (usn, profile_id, name, device_type, mac, hex_ip, hex_port,
		                     ssdp_path, network_id, contact, last_seen, last_subscribed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(usn) DO UPDATE SET
			name = excluded.name,
			device_type = excluded.device_type,
			mac = excluded.mac,
			hex_ip = excluded.hex_ip,
			hex_port = excluded.hex_port,
			ssdp_path = excluded.ssdp_path,
			network_id = excluded.network_id,
			contact = excluded.contact,
			last_seen = excluded.last_seen,
			last_subscribed = excluded.last_subscribed,
			updated_at = datetime('now')
	`, s.USN, profileID, s.Name, s.DeviceType, s.MAC, s.HexIP, s.HexPort,
		s.SSDPPath, s.NetworkID, string(s.Contact), nullTime(s.LastSeen), nullTime(s.LastSubscribed))
	if err != nil {
		return fmt.Errorf("failed to upsert sensor: %w", err)
	}
	return nil
}

func (st *sensorStore) SetContact(ctx context.Context, usn string, contact sensor.ContactValue) error {
	result, err := st.db.ExecContext(ctx, `
		UPDATE sensors SET contact = ?, last_seen = datetime('now'), updated_at = datetime('now')
		WHERE usn = ?
	`, string(contact), usn)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSensorNotFound
	}
	return nil
}

func (st *sensorStore) SetSubscribed(ctx context.Context, usn string, at time.Time) error {
	result, err := st.db.ExecContext(ctx, `
		UPDATE sensors SET last_subscribed = ?, updated_at = datetime('now')
		WHERE usn = ?
	`, nullTime(at), usn)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSensorNotFound
	}
	return nil
}

func (st *sensorStore) Delete(ctx context.Context, usn string) error {
	result, err := st.db.ExecContext(ctx, `DELETE FROM sensors WHERE usn = ?`, usn)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSensorNotFound
	}
	return nil
}
