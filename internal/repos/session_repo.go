package repos

import "github.com/jmoiron/sqlx"

// SessionRepo stores admin sessions server-side. Presence of a row means
// the session id in the cookie is authenticated.
type SessionRepo struct{ DB *sqlx.DB }

func NewSessionRepo(db *sqlx.DB) *SessionRepo { return &SessionRepo{DB: db} }

func (r *SessionRepo) Create(sid string) error {
	_, err := r.DB.Exec(`
	  INSERT INTO sessions(id, last_seen) VALUES(?, CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET last_seen = CURRENT_TIMESTAMP
	`, sid)
	return err
}

func (r *SessionRepo) Exists(sid string) (bool, error) {
	var n int
	if err := r.DB.Get(&n, `SELECT COUNT(*) FROM sessions WHERE id = ?`, sid); err != nil {
		return false, err
	}
	if n > 0 {
		_, _ = r.DB.Exec(`UPDATE sessions SET last_seen = CURRENT_TIMESTAMP WHERE id = ?`, sid)
	}
	return n > 0, nil
}

func (r *SessionRepo) Delete(sid string) error {
	_, err := r.DB.Exec(`DELETE FROM sessions WHERE id = ?`, sid)
	return err
}
