package carousel

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	listSlidesQuery = `
		SELECT id, title, subtitle, image_url, link_url, sort_order, is_active, created_at
		FROM carousel_slides
		ORDER BY sort_order ASC, id ASC
	`
	listActiveSlidesQuery = `
		SELECT id, title, subtitle, image_url, link_url, sort_order, is_active, created_at
		FROM carousel_slides
		WHERE is_active
		ORDER BY sort_order ASC, id ASC
	`
	getSlideQuery = `
		SELECT id, title, subtitle, image_url, link_url, sort_order, is_active, created_at
		FROM carousel_slides
		WHERE id = $1
	`
	insertSlideQuery = `
		INSERT INTO carousel_slides (title, subtitle, image_url, link_url, sort_order, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	updateSlideQuery = `
		UPDATE carousel_slides
		SET title = $2, subtitle = $3, image_url = $4, link_url = $5,
		    sort_order = $6, is_active = $7
		WHERE id = $1
	`
	deleteSlideQuery = `DELETE FROM carousel_slides WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanSlide(row interface{ Scan(...any) error }) (Slide, error) {
	var s Slide
	var subtitle, linkURL sql.NullString
	err := row.Scan(&s.ID, &s.Title, &subtitle, &s.ImageURL, &linkURL,
		&s.SortOrder, &s.IsActive, &s.CreatedAt)
	if err != nil {
		return Slide{}, err
	}
	s.Subtitle = subtitle.String
	s.LinkURL = linkURL.String
	return s, nil
}

func (r *PostgresRepository) List(activeOnly bool) ([]Slide, error) {
	query := listSlidesQuery
	if activeOnly {
		query = listActiveSlidesQuery
	}
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Slide, 0)
	for rows.Next() {
		s, err := scanSlide(rows)
		if err != nil {
			continue
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Slide, error) {
	s, err := scanSlide(r.db.QueryRow(getSlideQuery, id))
	if err == sql.ErrNoRows {
		return Slide{}, ErrNotFound
	}
	if err != nil {
		return Slide{}, err
	}
	return s, nil
}

func (r *PostgresRepository) Create(s Slide) (Slide, error) {
	err := r.db.QueryRow(insertSlideQuery, s.Title, s.Subtitle, s.ImageURL,
		s.LinkURL, s.SortOrder, s.IsActive, s.CreatedAt).Scan(&s.ID)
	if err != nil {
		return Slide{}, err
	}
	return s, nil
}

func (r *PostgresRepository) Update(s Slide) error {
	res, err := r.db.Exec(updateSlideQuery, s.ID, s.Title, s.Subtitle,
		s.ImageURL, s.LinkURL, s.SortOrder, s.IsActive)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteSlideQuery, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
