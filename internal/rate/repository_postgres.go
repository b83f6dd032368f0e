package rate

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	latestRateQuery = `
		SELECT id, price_per_gram, source, currency, captured_at
		FROM silver_rates
		ORDER BY captured_at DESC, id DESC
		LIMIT 1
	`
	insertRateQuery = `
		INSERT INTO silver_rates (price_per_gram, source, currency, captured_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	rateHistoryQuery = `
		SELECT id, price_per_gram, source, currency, captured_at
		FROM silver_rates
		ORDER BY captured_at DESC, id DESC
		LIMIT $1
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Latest() (Rate, error) {
	var out Rate
	err := r.db.QueryRow(latestRateQuery).
		Scan(&out.ID, &out.PricePerGram, &out.Source, &out.Currency, &out.CapturedAt)
	if err == sql.ErrNoRows {
		return Rate{}, ErrNoRate
	}
	if err != nil {
		return Rate{}, err
	}
	return out, nil
}

func (r *PostgresRepository) Insert(entry Rate) (Rate, error) {
	err := r.db.QueryRow(insertRateQuery,
		entry.PricePerGram, entry.Source, entry.Currency, entry.CapturedAt).
		Scan(&entry.ID)
	if err != nil {
		return Rate{}, err
	}
	return entry, nil
}

func (r *PostgresRepository) History(limit int) ([]Rate, error) {
	rows, err := r.db.Query(rateHistoryQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Rate, 0)
	for rows.Next() {
		var e Rate
		if err := rows.Scan(&e.ID, &e.PricePerGram, &e.Source, &e.Currency, &e.CapturedAt); err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
