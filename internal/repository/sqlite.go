package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/abrezinsky/archeryscore/internal/models"
)

// Repository provides data access methods
type Repository struct {
	db *sql.DB
}

// dsn enables foreign keys on every connection the driver opens, so cascades
// hold after the pool recycles a connection.
func dsn(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_foreign_keys=on"
}

// New creates a new Repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dsn(dbPath))
	if err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite works best with single connection
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db}

	// Run migrations
	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// DB returns the underlying database connection (for transactions)
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS competitions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			date TEXT NOT NULL,
			location TEXT NOT NULL,
			logo_url TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS archers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			club TEXT,
			competition_id INTEGER NOT NULL,
			category TEXT NOT NULL,
			gender TEXT NOT NULL,
			age_group TEXT NOT NULL,
			score20 INTEGER,
			score18 INTEGER,
			score16 INTEGER,
			score14 INTEGER,
			score12 INTEGER,
			score10 INTEGER,
			score8 INTEGER,
			score6 INTEGER,
			score4 INTEGER,
			score0 INTEGER,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (competition_id) REFERENCES competitions(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_archers_competition ON archers(competition_id)`,
		`CREATE INDEX IF NOT EXISTS idx_archers_name ON archers(competition_id, first_name, last_name)`,
	}

	additionalMigrations := []string{
		`ALTER TABLE archers ADD COLUMN updated_at DATETIME`,
		`ALTER TABLE competitions ADD COLUMN logo_url TEXT`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}

	for _, migration := range additionalMigrations {
		r.db.Exec(migration) // Ignore errors - columns may already exist
	}

	return nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint failure
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if stderrors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

// ==================== Competition Methods ====================

// ListCompetitions returns all competitions, newest first
func (r *Repository) ListCompetitions(ctx context.Context) ([]models.Competition, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, date, location, logo_url FROM competitions ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	competitions := []models.Competition{}
	for rows.Next() {
		var c models.Competition
		var logoURL sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Date, &c.Location, &logoURL); err != nil {
			return nil, err
		}
		if logoURL.Valid {
			c.LogoURL = &logoURL.String
		}
		competitions = append(competitions, c)
	}
	return competitions, rows.Err()
}

// GetCompetition retrieves a competition by ID
func (r *Repository) GetCompetition(ctx context.Context, id int) (*models.Competition, error) {
	var c models.Competition
	var logoURL sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, date, location, logo_url FROM competitions WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Date, &c.Location, &logoURL)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if logoURL.Valid {
		c.LogoURL = &logoURL.String
	}
	return &c, nil
}

// CreateCompetition inserts a competition. Returns ErrDuplicate if the name is taken.
func (r *Repository) CreateCompetition(ctx context.Context, name, date, location string, logoURL *string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO competitions (name, date, location, logo_url) VALUES (?, ?, ?, ?)`,
		name, date, location, logoURL)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return result.LastInsertId()
}

// SetCompetitionLogo replaces the logo URL. A nil URL removes the logo.
func (r *Repository) SetCompetitionLogo(ctx context.Context, id int, logoURL *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE competitions SET logo_url = ? WHERE id = ?`, logoURL, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// DeleteCompetition deletes a competition and, through the foreign key, its archers
func (r *Repository) DeleteCompetition(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM competitions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ==================== Archer Methods ====================

const archerColumns = `id, first_name, last_name, email, club, competition_id, category, gender, age_group,
	score20, score18, score16, score14, score12, score10, score8, score6, score4, score0`

// totalScoreExpr is the weighted total used for SQL ordering
const totalScoreExpr = `(COALESCE(score20, 0) * 20 + COALESCE(score18, 0) * 18 + COALESCE(score16, 0) * 16 +
	COALESCE(score14, 0) * 14 + COALESCE(score12, 0) * 12 + COALESCE(score10, 0) * 10 +
	COALESCE(score8, 0) * 8 + COALESCE(score6, 0) * 6 + COALESCE(score4, 0) * 4)`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArcher(s rowScanner) (models.Archer, error) {
	var a models.Archer
	var club sql.NullString
	var scores [10]sql.NullInt64
	err := s.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &club, &a.CompetitionID,
		&a.Category, &a.Gender, &a.AgeGroup,
		&scores[0], &scores[1], &scores[2], &scores[3], &scores[4],
		&scores[5], &scores[6], &scores[7], &scores[8], &scores[9])
	if err != nil {
		return a, err
	}
	a.Club = club.String

	var zones [10]*int
	for i, v := range scores {
		if v.Valid {
			count := int(v.Int64)
			zones[i] = &count
		}
	}
	a.Scores = models.ScoresFromZones(zones)
	return a, nil
}

func (r *Repository) queryArchers(ctx context.Context, query string, args ...any) ([]models.Archer, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	archers := []models.Archer{}
	for rows.Next() {
		a, err := scanArcher(rows)
		if err != nil {
			return nil, err
		}
		archers = append(archers, a)
	}
	return archers, rows.Err()
}

// ListArchers returns all archers of a competition in registration order
func (r *Repository) ListArchers(ctx context.Context, competitionID int) ([]models.Archer, error) {
	return r.queryArchers(ctx,
		`SELECT `+archerColumns+` FROM archers WHERE competition_id = ? ORDER BY id`, competitionID)
}

// ArcherFilter narrows FilterArchers. Empty fields are ignored; Sort is
// "asc", "desc" or empty for registration order.
type ArcherFilter struct {
	Club     string
	Category string
	Gender   string
	AgeGroup string
	Sort     string
}

// FilterArchers returns the archers of a competition matching f
func (r *Repository) FilterArchers(ctx context.Context, competitionID int, f ArcherFilter) ([]models.Archer, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + archerColumns + ` FROM archers WHERE competition_id = ?`)
	args := []any{competitionID}

	for _, cond := range []struct {
		column, value string
	}{
		{"club", f.Club},
		{"category", f.Category},
		{"gender", f.Gender},
		{"age_group", f.AgeGroup},
	} {
		if cond.value != "" {
			fmt.Fprintf(&sb, ` AND %s = ?`, cond.column)
			args = append(args, cond.value)
		}
	}

	switch f.Sort {
	case "asc":
		sb.WriteString(` ORDER BY ` + totalScoreExpr + ` ASC, id`)
	case "desc":
		sb.WriteString(` ORDER BY ` + totalScoreExpr + ` DESC, id`)
	default:
		sb.WriteString(` ORDER BY id`)
	}

	return r.queryArchers(ctx, sb.String(), args...)
}

// GetArcher retrieves an archer by ID
func (r *Repository) GetArcher(ctx context.Context, id int) (*models.Archer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+archerColumns+` FROM archers WHERE id = ?`, id)
	a, err := scanArcher(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindArcherByName retrieves the first archer of a competition with the given name
func (r *Repository) FindArcherByName(ctx context.Context, competitionID int, firstName, lastName string) (*models.Archer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+archerColumns+` FROM archers WHERE competition_id = ? AND first_name = ? AND last_name = ? ORDER BY id LIMIT 1`,
		competitionID, firstName, lastName)
	a, err := scanArcher(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateArcher inserts an archer and returns its ID
func (r *Repository) CreateArcher(ctx context.Context, a models.Archer) (int64, error) {
	s := a.Scores
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO archers (first_name, last_name, email, club, competition_id, category, gender, age_group,
			score20, score18, score16, score14, score12, score10, score8, score6, score4, score0)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.FirstName, a.LastName, a.Email, a.Club, a.CompetitionID, a.Category, a.Gender, a.AgeGroup,
		s.Score20, s.Score18, s.Score16, s.Score14, s.Score12, s.Score10, s.Score8, s.Score6, s.Score4, s.Score0)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// UpdateArcher stores the profile and scores of an existing archer
func (r *Repository) UpdateArcher(ctx context.Context, a models.Archer) error {
	s := a.Scores
	result, err := r.db.ExecContext(ctx, `
		UPDATE archers SET first_name = ?, last_name = ?, email = ?, club = ?, category = ?, gender = ?, age_group = ?,
			score20 = ?, score18 = ?, score16 = ?, score14 = ?, score12 = ?,
			score10 = ?, score8 = ?, score6 = ?, score4 = ?, score0 = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, a.FirstName, a.LastName, a.Email, a.Club, a.Category, a.Gender, a.AgeGroup,
		s.Score20, s.Score18, s.Score16, s.Score14, s.Score12, s.Score10, s.Score8, s.Score6, s.Score4, s.Score0,
		a.ID)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// DeleteArcher deletes an archer
func (r *Repository) DeleteArcher(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM archers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// ClearScores unsets every score of a competition and returns the number of archers touched
func (r *Repository) ClearScores(ctx context.Context, competitionID int) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE archers SET score20 = NULL, score18 = NULL, score16 = NULL, score14 = NULL, score12 = NULL,
			score10 = NULL, score8 = NULL, score6 = NULL, score4 = NULL, score0 = NULL,
			updated_at = CURRENT_TIMESTAMP
		WHERE competition_id = ?
	`, competitionID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ListClubs returns the distinct non-empty clubs of a competition
func (r *Repository) ListClubs(ctx context.Context, competitionID int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT club FROM archers WHERE competition_id = ? AND club IS NOT NULL AND club != '' ORDER BY club`,
		competitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clubs := []string{}
	for rows.Next() {
		var club string
		if err := rows.Scan(&club); err != nil {
			return nil, err
		}
		clubs = append(clubs, club)
	}
	return clubs, rows.Err()
}

// CountProgress returns how many archers of a competition have any score recorded
func (r *Repository) CountProgress(ctx context.Context, competitionID int) (models.Progress, error) {
	var p models.Progress
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN COALESCE(score20, score18, score16, score14, score12,
				score10, score8, score6, score4, score0) IS NOT NULL THEN 1 ELSE 0 END), 0)
		FROM archers WHERE competition_id = ?
	`, competitionID).Scan(&p.Total, &p.Scored)
	return p, err
}

// ==================== Settings Methods ====================

// GetSetting retrieves a setting value
func (r *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return value, err
}

// SetSetting saves a setting value
func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}
