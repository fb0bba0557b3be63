package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mohd-Abdelaleem/darbi-salati/internal"
)

// PostgresStorage persists the four collections to postgres. Embedded
// task/checklist sequences and timeline references are stored as JSONB.
//
// Expected schema:
//
//	days        (date_gregorian text primary key, date_hijri jsonb,
//	             prayer_times jsonb, timeline_ids jsonb, updated_at timestamptz)
//	checkpoints (id text primary key, date text, title_ar text, time text,
//	             is_locked bool, icon text, color text, is_user_created bool,
//	             tasks jsonb, checklist jsonb, updated_at timestamptz)
//	tasks       (id text primary key, date text, type text, title_ar text,
//	             is_done bool, time text, custom_points int,
//	             icon text, color text, parent_checkpoint_id text,
//	             is_user_created bool, updated_at timestamptz)
//	snapshots   (date_gregorian text primary key, date_hijri jsonb,
//	             points_earned int, points_max int, prayers_done jsonb,
//	             prayers_count int, tasks_total int, tasks_done int,
//	             custom_tasks_done int, created_at text)
type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

// --- DayRepository ---

// SaveDay writes the day document and replaces the date's children inside a
// single transaction so the collections stay consistent per date.
func (p *PostgresStorage) SaveDay(ctx context.Context, day internal.DayData) error {
	dayDoc, cps, tasks := ExplodeDay(day, time.Now())

	hijriJSON, err := json.Marshal(dayDoc.DateHijri)
	if err != nil {
		return err
	}
	timesJSON, err := json.Marshal(dayDoc.PrayerTimes)
	if err != nil {
		return err
	}
	refsJSON, err := json.Marshal(dayDoc.TimelineIDs)
	if err != nil {
		return err
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		p.logger.Errorf("failed to begin day transaction: %v", err)
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `INSERT INTO days (date_gregorian, date_hijri, prayer_times, timeline_ids, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (date_gregorian) DO UPDATE
		SET date_hijri = EXCLUDED.date_hijri, prayer_times = EXCLUDED.prayer_times,
		    timeline_ids = EXCLUDED.timeline_ids, updated_at = now()`,
		dayDoc.DateGregorian, hijriJSON, timesJSON, refsJSON)
	if err != nil {
		p.logger.Errorf("failed to upsert day %s: %v", dayDoc.DateGregorian, err)
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM checkpoints WHERE date = $1`, dayDoc.DateGregorian); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM tasks WHERE date = $1`, dayDoc.DateGregorian); err != nil {
		return err
	}

	for _, cp := range cps {
		tasksJSON, err := json.Marshal(cp.Tasks)
		if err != nil {
			return err
		}
		checklistJSON, err := json.Marshal(cp.Checklist)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `INSERT INTO checkpoints (id, date, title_ar, time, is_locked, icon, color, is_user_created, tasks, checklist, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())`,
			cp.ID, cp.Date, cp.TitleAr, cp.Time, cp.IsLocked, cp.Icon, cp.Color, cp.IsUserCreated, tasksJSON, checklistJSON)
		if err != nil {
			p.logger.Errorf("failed to insert checkpoint %s: %v", cp.ID, err)
			return err
		}
	}

	for _, t := range tasks {
		_, err = tx.Exec(ctx, `INSERT INTO tasks (id, date, type, title_ar, is_done, time, custom_points, icon, color, parent_checkpoint_id, is_user_created, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())`,
			t.ID, t.Date, string(t.Type), t.TitleAr, t.IsDone, t.Time, t.CustomPoints, t.Icon, t.Color, t.ParentCheckpointID, t.IsUserCreated)
		if err != nil {
			p.logger.Errorf("failed to insert task %s: %v", t.ID, err)
			return err
		}
	}

	return tx.Commit(ctx)
}

func (p *PostgresStorage) GetDay(ctx context.Context, date string) (internal.DayData, error) {
	var (
		doc           DayDocument
		hijriJSON     []byte
		timesJSON     []byte
		refsJSON      []byte
		updatedAt     time.Time
		dateGregorian string
	)
	row := p.pool.QueryRow(ctx, `SELECT date_gregorian, date_hijri, prayer_times, timeline_ids, updated_at FROM days WHERE date_gregorian = $1`, date)
	if err := row.Scan(&dateGregorian, &hijriJSON, &timesJSON, &refsJSON, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return internal.DayData{}, ErrDayNotFound
		}
		p.logger.Errorf("failed to query day %s: %v", date, err)
		return internal.DayData{}, err
	}
	doc.DateGregorian = dateGregorian
	doc.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	if err := json.Unmarshal(hijriJSON, &doc.DateHijri); err != nil {
		return internal.DayData{}, err
	}
	if err := json.Unmarshal(timesJSON, &doc.PrayerTimes); err != nil {
		return internal.DayData{}, err
	}
	if err := json.Unmarshal(refsJSON, &doc.TimelineIDs); err != nil {
		return internal.DayData{}, err
	}

	cps, err := p.checkpointsForDate(ctx, date)
	if err != nil {
		return internal.DayData{}, err
	}
	tasks, err := p.tasksForDate(ctx, date)
	if err != nil {
		return internal.DayData{}, err
	}
	return AssembleDay(doc, cps, tasks)
}

func (p *PostgresStorage) checkpointsForDate(ctx context.Context, date string) (map[string]CheckpointDocument, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, date, title_ar, time, is_locked, icon, color, is_user_created, tasks, checklist FROM checkpoints WHERE date = $1`, date)
	if err != nil {
		p.logger.Errorf("failed to query checkpoints for %s: %v", date, err)
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]CheckpointDocument)
	for rows.Next() {
		var cp CheckpointDocument
		var tasksJSON, checklistJSON []byte
		if err := rows.Scan(&cp.ID, &cp.Date, &cp.TitleAr, &cp.Time, &cp.IsLocked, &cp.Icon, &cp.Color, &cp.IsUserCreated, &tasksJSON, &checklistJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(tasksJSON, &cp.Tasks); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(checklistJSON, &cp.Checklist); err != nil {
			return nil, err
		}
		out[cp.ID] = cp
	}
	return out, rows.Err()
}

func (p *PostgresStorage) tasksForDate(ctx context.Context, date string) (map[string]TaskDocument, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, date, type, title_ar, is_done, time, custom_points, icon, color, parent_checkpoint_id, is_user_created FROM tasks WHERE date = $1`, date)
	if err != nil {
		p.logger.Errorf("failed to query tasks for %s: %v", date, err)
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]TaskDocument)
	for rows.Next() {
		var t TaskDocument
		var typ string
		if err := rows.Scan(&t.ID, &t.Date, &typ, &t.TitleAr, &t.IsDone, &t.Time, &t.CustomPoints, &t.Icon, &t.Color, &t.ParentCheckpointID, &t.IsUserCreated); err != nil {
			return nil, err
		}
		t.Type = internal.TaskType(typ)
		out[t.ID] = t
	}
	return out, rows.Err()
}

// --- SnapshotRepository ---

func (p *PostgresStorage) SaveSnapshot(ctx context.Context, snap internal.SnapshotDocument) error {
	hijriJSON, err := json.Marshal(snap.DateHijri)
	if err != nil {
		return err
	}
	prayersJSON, err := json.Marshal(snap.PrayersDone)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx, `INSERT INTO snapshots (date_gregorian, date_hijri, points_earned, points_max, prayers_done, prayers_count, tasks_total, tasks_done, custom_tasks_done, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (date_gregorian) DO UPDATE
		SET date_hijri = EXCLUDED.date_hijri, points_earned = EXCLUDED.points_earned,
		    points_max = EXCLUDED.points_max, prayers_done = EXCLUDED.prayers_done,
		    prayers_count = EXCLUDED.prayers_count, tasks_total = EXCLUDED.tasks_total,
		    tasks_done = EXCLUDED.tasks_done, custom_tasks_done = EXCLUDED.custom_tasks_done,
		    created_at = EXCLUDED.created_at`,
		snap.DateGregorian, hijriJSON, snap.PointsEarned, snap.PointsMax, prayersJSON,
		snap.PrayersCount, snap.TasksTotal, snap.TasksDone, snap.CustomTasksDone, snap.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to upsert snapshot %s: %v", snap.DateGregorian, err)
	}
	return err
}

func (p *PostgresStorage) GetAllSnapshots(ctx context.Context) ([]internal.SnapshotDocument, error) {
	return p.querySnapshots(ctx, `SELECT date_gregorian, date_hijri, points_earned, points_max, prayers_done, prayers_count, tasks_total, tasks_done, custom_tasks_done, created_at FROM snapshots ORDER BY date_gregorian`)
}

func (p *PostgresStorage) GetSnapshotRange(ctx context.Context, from, to string) ([]internal.SnapshotDocument, error) {
	return p.querySnapshots(ctx, `SELECT date_gregorian, date_hijri, points_earned, points_max, prayers_done, prayers_count, tasks_total, tasks_done, custom_tasks_done, created_at FROM snapshots WHERE date_gregorian >= $1 AND date_gregorian <= $2 ORDER BY date_gregorian`, from, to)
}

func (p *PostgresStorage) querySnapshots(ctx context.Context, sql string, args ...interface{}) ([]internal.SnapshotDocument, error) {
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		p.logger.Errorf("failed to query snapshots: %v", err)
		return nil, err
	}
	defer rows.Close()

	var snaps []internal.SnapshotDocument
	for rows.Next() {
		var s internal.SnapshotDocument
		var hijriJSON, prayersJSON []byte
		if err := rows.Scan(&s.DateGregorian, &hijriJSON, &s.PointsEarned, &s.PointsMax, &prayersJSON, &s.PrayersCount, &s.TasksTotal, &s.TasksDone, &s.CustomTasksDone, &s.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(hijriJSON, &s.DateHijri); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(prayersJSON, &s.PrayersDone); err != nil {
			return nil, err
		}
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}

// --- Compile-time assertions ---
var _ DayRepository = (*PostgresStorage)(nil)
var _ SnapshotRepository = (*PostgresStorage)(nil)
