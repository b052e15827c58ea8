package storage

import "github.com/yuuto7838/adsim/internal/game"

// Repository is the persistence surface the session layer depends on.
type Repository interface {
	// LoadCredential returns the stored API key, or "" when none is
	// configured. Absence is not an error; it routes the state machine to
	// AWAITING_CREDENTIALS.
	LoadCredential() (string, error)
	SaveCredential(key string) error
	ClearCredential() error

	// AppendArchive records the summary of a finished run.
	AppendArchive(a *game.SessionArchive) error
	// ListArchive returns the most recent archive rows, newest first.
	ListArchive(limit int) ([]game.SessionArchive, error)
}
