package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const clientColumns = `id, name, domain, project_name, cms, location_code, notes, created, updated`

// ListClients returns all client records ordered by creation date
func (db *DB) ListClients(ctx context.Context) ([]Client, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY created ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Domain, &c.ProjectName, &c.CMS,
			&c.LocationCode, &c.Notes, &c.Created, &c.Updated); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read clients: %w", err)
	}
	return clients, nil
}

// GetClient returns a client by ID, or nil if not found
func (db *DB) GetClient(ctx context.Context, id uuid.UUID) (*Client, error) {
	var c Client
	err := db.pool.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Domain, &c.ProjectName, &c.CMS,
		&c.LocationCode, &c.Notes, &c.Created, &c.Updated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &c, nil
}

// SaveClient inserts or updates a client record, assigning an ID when
// missing and defaulting the location code. The stored record is returned.
func (db *DB) SaveClient(ctx context.Context, client Client) (*Client, error) {
	if client.Name == "" {
		return nil, fmt.Errorf("client name cannot be empty")
	}
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	if client.LocationCode == 0 {
		client.LocationCode = DefaultLocationCode
	}

	var saved Client
	err := db.pool.QueryRow(ctx,
		`INSERT INTO clients (id, name, domain, project_name, cms, location_code, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
		   name = $2, domain = $3, project_name = $4, cms = $5,
		   location_code = $6, notes = $7, updated = NOW()
		 RETURNING `+clientColumns,
		client.ID, client.Name, client.Domain, client.ProjectName,
		client.CMS, client.LocationCode, client.Notes,
	).Scan(&saved.ID, &saved.Name, &saved.Domain, &saved.ProjectName, &saved.CMS,
		&saved.LocationCode, &saved.Notes, &saved.Created, &saved.Updated)
	if err != nil {
		return nil, fmt.Errorf("failed to save client: %w", err)
	}
	return &saved, nil
}

// DeleteClient removes a client record. No-op if the client does not exist.
func (db *DB) DeleteClient(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}
