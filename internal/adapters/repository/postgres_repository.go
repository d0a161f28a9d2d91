package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/statefacts/core/internal/domain/entities"
	"github.com/statefacts/core/internal/infrastructure/logger"
	"github.com/statefacts/core/internal/ports"
)

// pgUniqueViolation is the SQLSTATE for unique_violation
const pgUniqueViolation = "23505"

type funFactsRow struct {
	ID        string         `db:"id"`
	StateCode string         `db:"state_code"`
	FunFacts  pq.StringArray `db:"fun_facts"`
	Version   int64          `db:"version"`
}

func (row *funFactsRow) toEntity() *entities.FunFacts {
	return &entities.FunFacts{
		ID:        row.ID,
		StateCode: row.StateCode,
		FunFacts:  nonNil([]string(row.FunFacts)),
		Version:   row.Version,
	}
}

// PostgresFunFactRepository implements FunFactRepository on the fun_facts table
type PostgresFunFactRepository struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewPostgresFunFactRepository creates a new postgres-backed repository
func NewPostgresFunFactRepository(db *sqlx.DB, log *logger.Logger) *PostgresFunFactRepository {
	return &PostgresFunFactRepository{
		db:     db,
		logger: log.WithComponent("postgres_repository"),
	}
}

var _ ports.FunFactRepository = (*PostgresFunFactRepository)(nil)

func (r *PostgresFunFactRepository) GetByStateCode(ctx context.Context, stateCode string) (*entities.FunFacts, error) {
	query := `
		SELECT id, state_code, fun_facts, version
		FROM fun_facts
		WHERE state_code = $1`

	start := time.Now()

	var row funFactsRow
	err := r.db.GetContext(ctx, &row, query, stateCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.LogStorageCall("select", stateCode, since(start), nil)
			return nil, entities.ErrRecordNotFound
		}
		r.logger.LogStorageCall("select", stateCode, since(start), err)
		return nil, fmt.Errorf("get fun facts by state code: %w", err)
	}
	r.logger.LogStorageCall("select", stateCode, since(start), nil)

	return row.toEntity(), nil
}

func (r *PostgresFunFactRepository) List(ctx context.Context) ([]*entities.FunFacts, error) {
	query := `
		SELECT id, state_code, fun_facts, version
		FROM fun_facts
		ORDER BY state_code`

	start := time.Now()

	var rows []funFactsRow
	err := r.db.SelectContext(ctx, &rows, query)
	r.logger.LogStorageCall("select_all", "", since(start), err)
	if err != nil {
		return nil, fmt.Errorf("list fun facts: %w", err)
	}

	records := make([]*entities.FunFacts, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].toEntity())
	}

	return records, nil
}

func (r *PostgresFunFactRepository) Create(ctx context.Context, record *entities.FunFacts) error {
	query := `
		INSERT INTO fun_facts (id, state_code, fun_facts, version)
		VALUES ($1, $2, $3, 0)`

	id := uuid.New().String()
	start := time.Now()

	_, err := r.db.ExecContext(ctx, query, id, record.StateCode, pq.StringArray(nonNil(record.FunFacts)))
	r.logger.LogStorageCall("insert", record.StateCode, since(start), err)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return entities.ErrVersionConflict
		}
		return fmt.Errorf("create fun facts: %w", err)
	}

	record.ID = id
	record.Version = 0
	return nil
}

func (r *PostgresFunFactRepository) Update(ctx context.Context, record *entities.FunFacts) error {
	query := `
		UPDATE fun_facts
		SET fun_facts = $1, version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE state_code = $2 AND version = $3`

	start := time.Now()

	res, err := r.db.ExecContext(ctx, query, pq.StringArray(nonNil(record.FunFacts)), record.StateCode, record.Version)
	r.logger.LogStorageCall("update", record.StateCode, since(start), err)
	if err != nil {
		return fmt.Errorf("update fun facts: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update fun facts: %w", err)
	}
	if affected == 0 {
		return entities.ErrVersionConflict
	}

	record.Version++
	return nil
}

func (r *PostgresFunFactRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
