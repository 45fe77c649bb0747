package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lucasmendes/plantao/pkg/db"
)

// GetPeople retrieves all person records ordered by queue position
func (d *DB) GetPeople(ctx context.Context) ([]db.Person, error) {
	return d.queryPeople(ctx, `
		SELECT id, full_name, role, email, phone, active, queue_order
		FROM person
		ORDER BY queue_order, full_name
	`)
}

// GetPeopleByRole retrieves person records for a single role ordered by queue position
func (d *DB) GetPeopleByRole(ctx context.Context, role string) ([]db.Person, error) {
	return d.queryPeople(ctx, `
		SELECT id, full_name, role, email, phone, active, queue_order
		FROM person
		WHERE role = $1
		ORDER BY queue_order, full_name
	`, role)
}

func (d *DB) queryPeople(ctx context.Context, query string, args ...any) ([]db.Person, error) {
	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer rows.Close()

	var people []db.Person
	for rows.Next() {
		var p db.Person
		var email, phone *string
		if err := rows.Scan(&p.ID, &p.FullName, &p.Role, &email, &phone, &p.Active, &p.QueueOrder); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		if email != nil {
			p.Email = *email
		}
		if phone != nil {
			p.Phone = *phone
		}
		people = append(people, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating people: %w", err)
	}

	return people, nil
}

// GetPerson retrieves a single person record
func (d *DB) GetPerson(ctx context.Context, id string) (*db.Person, error) {
	var p db.Person
	var email, phone *string
	err := d.pool.QueryRow(ctx, `
		SELECT id, full_name, role, email, phone, active, queue_order
		FROM person
		WHERE id = $1
	`, id).Scan(&p.ID, &p.FullName, &p.Role, &email, &phone, &p.Active, &p.QueueOrder)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query person: %w", err)
	}
	if email != nil {
		p.Email = *email
	}
	if phone != nil {
		p.Phone = *phone
	}
	return &p, nil
}

// InsertPerson inserts a new person record
func (d *DB) InsertPerson(ctx context.Context, person *db.Person) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO person (id, full_name, role, email, phone, active, queue_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, person.ID, person.FullName, person.Role, nullable(person.Email), nullable(person.Phone), person.Active, person.QueueOrder)
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}
	return nil
}

// UpdatePerson updates an existing person record
func (d *DB) UpdatePerson(ctx context.Context, person *db.Person) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE person
		SET full_name = $2, role = $3, email = $4, phone = $5, active = $6, queue_order = $7
		WHERE id = $1
	`, person.ID, person.FullName, person.Role, nullable(person.Email), nullable(person.Phone), person.Active, person.QueueOrder)
	if err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// nullable maps empty strings to SQL NULL
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
