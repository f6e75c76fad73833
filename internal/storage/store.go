package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/san-kum/warpsim/internal/metric"
)

const dbFile = "snapshots.db"

var (
	ErrNotFound  = errors.New("storage: snapshot not found")
	ErrAmbiguous = errors.New("storage: id prefix matches more than one snapshot")
)

// Snapshot describes one saved parameter set and the sample it produced.
type Snapshot struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Mode      metric.Mode   `json:"mode"`
	View      metric.View   `json:"view"`
	Params    metric.Params `json:"params"`
	Points    int           `json:"points"`
	Size      int           `json:"size"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Records holds a decoded sample. Points is set for 2D snapshots and
// Samples for 3D ones.
type Records struct {
	View    metric.View       `json:"view"`
	Points  []metric.Record2D `json:"points,omitempty"`
	Samples []metric.Record3D `json:"samples,omitempty"`
}

func (r *Records) Len() int {
	if r.View == metric.View3D {
		return len(r.Samples)
	}
	return len(r.Points)
}

type snapshotRow struct {
	ID        string  `db:"id"`
	Name      string  `db:"name"`
	Mode      string  `db:"mode"`
	View      string  `db:"dims"`
	Time      float64 `db:"time"`
	Tensor    float64 `db:"tensor"`
	Lambda    float64 `db:"lambda"`
	Warp      float64 `db:"warp"`
	Rotation  float64 `db:"rotation"`
	Points    int     `db:"points"`
	Size      int     `db:"size"`
	CreatedAt int64   `db:"created_at"`
}

func (r snapshotRow) snapshot() (Snapshot, error) {
	mode, err := metric.ParseMode(r.Mode)
	if err != nil {
		return Snapshot{}, err
	}
	view, err := metric.ParseView(r.View)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		ID:   r.ID,
		Name: r.Name,
		Mode: mode,
		View: view,
		Params: metric.Params{
			Time:         r.Time,
			Tensor:       r.Tensor,
			Lambda:       r.Lambda,
			WarpStrength: r.Warp,
			RotationDeg:  r.Rotation,
		},
		Points:    r.Points,
		Size:      r.Size,
		CreatedAt: time.UnixMilli(r.CreatedAt).UTC(),
	}, nil
}

// Store keeps snapshots in a SQLite database under baseDir.
type Store struct {
	baseDir string
	conn    *sqlx.DB
	codec   *codec
	log     *slog.Logger
}

// Open creates baseDir if needed and opens (or creates) the snapshot index.
func Open(baseDir string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	path := filepath.Join(baseDir, dbFile)
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	c, err := newCodec()
	if err != nil {
		conn.Close()
		return nil, err
	}

	s := &Store{baseDir: baseDir, conn: conn, codec: c, log: log.With("component", "storage")}
	if err := s.migrate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	s.log.Debug("snapshot store opened", "path", path)
	return s, nil
}

func (s *Store) Close() error {
	s.codec.close()
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		mode TEXT NOT NULL,
		dims TEXT NOT NULL,
		time REAL NOT NULL,
		tensor REAL NOT NULL,
		lambda REAL NOT NULL,
		warp REAL NOT NULL,
		rotation REAL NOT NULL,
		points INTEGER NOT NULL,
		size INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		samples BLOB NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_created ON snapshots(created_at);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Save samples snap's parameters and stores the result. ID, Points, Size
// and CreatedAt are filled in; the stored snapshot is returned.
func (s *Store) Save(ctx context.Context, snap Snapshot) (Snapshot, error) {
	if err := snap.Params.Validate(); err != nil {
		return Snapshot{}, err
	}
	blob, n, err := s.codec.encode(snap.Mode, snap.View, snap.Params)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode samples: %w", err)
	}

	snap.ID = uuid.NewString()
	snap.Points = n
	snap.Size = len(blob)
	snap.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	_, err = s.conn.ExecContext(ctx, `
		INSERT INTO snapshots (id, name, mode, dims, time, tensor, lambda, warp, rotation, points, size, created_at, samples)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.Name, snap.Mode.String(), snap.View.String(),
		snap.Params.Time, snap.Params.Tensor, snap.Params.Lambda, snap.Params.WarpStrength, snap.Params.RotationDeg,
		snap.Points, snap.Size, snap.CreatedAt.UnixMilli(), blob)
	if err != nil {
		return Snapshot{}, fmt.Errorf("insert snapshot: %w", err)
	}
	s.log.Info("snapshot saved", "id", snap.ID, "mode", snap.Mode, "view", snap.View, "points", n, "bytes", snap.Size)
	return snap, nil
}

const selectColumns = `id, name, mode, dims, time, tensor, lambda, warp, rotation, points, size, created_at`

// List returns all snapshots, newest first.
func (s *Store) List(ctx context.Context) ([]Snapshot, error) {
	var rows []snapshotRow
	err := s.conn.SelectContext(ctx, &rows,
		`SELECT `+selectColumns+` FROM snapshots ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	out := make([]Snapshot, 0, len(rows))
	for _, r := range rows {
		snap, err := r.snapshot()
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", r.ID, err)
		}
		out = append(out, snap)
	}
	return out, nil
}

// resolve expands an id or unique id prefix to a full id.
func (s *Store) resolve(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrNotFound
	}
	var ids []string
	pattern := strings.NewReplacer("%", "", "_", "").Replace(id) + "%"
	if err := s.conn.SelectContext(ctx, &ids, `SELECT id FROM snapshots WHERE id LIKE ? LIMIT 2`, pattern); err != nil {
		return "", err
	}
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return ids[0], nil
	}
	return "", fmt.Errorf("%w: %s", ErrAmbiguous, id)
}

// Load returns the metadata of one snapshot. id may be a unique prefix.
func (s *Store) Load(ctx context.Context, id string) (Snapshot, error) {
	full, err := s.resolve(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	var row snapshotRow
	err = s.conn.GetContext(ctx, &row, `SELECT `+selectColumns+` FROM snapshots WHERE id = ?`, full)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Snapshot{}, err
	}
	return row.snapshot()
}

// LoadRecords decompresses the stored sample of one snapshot.
func (s *Store) LoadRecords(ctx context.Context, id string) (Snapshot, *Records, error) {
	snap, err := s.Load(ctx, id)
	if err != nil {
		return Snapshot{}, nil, err
	}
	var blob []byte
	if err := s.conn.GetContext(ctx, &blob, `SELECT samples FROM snapshots WHERE id = ?`, snap.ID); err != nil {
		return Snapshot{}, nil, err
	}
	recs, err := s.codec.decode(snap.View, blob)
	if err != nil {
		return Snapshot{}, nil, fmt.Errorf("snapshot %s: %w", snap.ID, err)
	}
	return snap, recs, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	full, err := s.resolve(ctx, id)
	if err != nil {
		return err
	}
	res, err := s.conn.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, full)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.log.Info("snapshot deleted", "id", full)
	return nil
}
