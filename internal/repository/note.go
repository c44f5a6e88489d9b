package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jobtracker/jobtracker/internal/model"
)

// ErrNoteNotFound is returned when no note matches the id, its application
// and the application's owner.
var ErrNoteNotFound = errors.New("note not found")

// ListNotes returns the notes of an application owned by ownerEmail, oldest
// first.
func (q *Queries) ListNotes(ctx context.Context, applicationID int64, ownerEmail string) ([]*model.Note, error) {
	query := `
		SELECT n.id, n.application_id, n.content, n.created_at, n.updated_at
		FROM notes n
		JOIN applications a ON a.id = n.application_id
		JOIN accounts u ON u.id = a.owner_id
		WHERE n.application_id = $1 AND u.email = $2
		ORDER BY n.id
	`

	rows, err := q.db.Query(ctx, query, applicationID, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*model.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}

	return notes, nil
}

// FindNote retrieves a note through the full ownership chain: the note must
// belong to applicationID and that application must belong to ownerEmail.
func (q *Queries) FindNote(ctx context.Context, applicationID, noteID int64, ownerEmail string) (*model.Note, error) {
	query := `
		SELECT n.id, n.application_id, n.content, n.created_at, n.updated_at
		FROM notes n
		JOIN applications a ON a.id = n.application_id
		JOIN accounts u ON u.id = a.owner_id
		WHERE n.id = $1 AND n.application_id = $2 AND u.email = $3
	` + q.lockClause("n")

	note, err := scanNote(q.db.QueryRow(ctx, query, noteID, applicationID, ownerEmail))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	return note, nil
}

// CreateNote inserts note and fills in ID, CreatedAt and UpdatedAt.
func (q *Queries) CreateNote(ctx context.Context, note *model.Note) error {
	query := `
		INSERT INTO notes (application_id, content)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := q.db.QueryRow(ctx, query, note.ApplicationID, note.Content).
		Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

// UpdateNote replaces the content of a note and refreshes UpdatedAt.
func (q *Queries) UpdateNote(ctx context.Context, note *model.Note) error {
	query := `
		UPDATE notes
		SET content = $2, updated_at = clock_timestamp()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.db.QueryRow(ctx, query, note.ID, note.Content).Scan(&note.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("failed to update note: %w", err)
	}

	return nil
}

// DeleteNote removes a note.
func (q *Queries) DeleteNote(ctx context.Context, id int64) error {
	result, err := q.db.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// scanNote scans a single row into a Note model.
func scanNote(row pgx.Row) (*model.Note, error) {
	var note model.Note
	err := row.Scan(
		&note.ID,
		&note.ApplicationID,
		&note.Content,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &note, nil
}
