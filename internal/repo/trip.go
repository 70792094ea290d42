package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/sejin-oh/itinera/internal/domain"
)

// TripRepo defines the persistence operations for trips. A trip is stored and
// loaded as a whole aggregate (trip + days + stops): the planner mutates by
// whole-value replacement, so Save replaces the day/stop rows wholesale.
//
// The service layer depends on this interface, not the Postgres
// implementation, which allows it to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip aggregate and returns the persisted record
	// (with DB-generated id and created_at/updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID loads the full trip aggregate.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns trip headers (no days) ordered by created_at descending.
	List(ctx context.Context) ([]domain.Trip, error)

	// Save replaces the stored aggregate with the given snapshot and returns
	// the persisted record. Returns domain.ErrNotFound for an unknown trip.
	Save(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip and everything it owns.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	const q = `
		INSERT INTO trips (name, start_date, cover_image)
		VALUES (@name, @start_date, @cover_image)
		RETURNING id, created_at, updated_at`

	args := pgx.NamedArgs{
		"name":        trip.Name,
		"start_date":  trip.StartDate,
		"cover_image": trip.CoverImage,
	}

	var id pgtype.UUID
	if err := tx.QueryRow(ctx, q, args).Scan(&id, &trip.CreatedAt, &trip.UpdatedAt); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	trip.ID = uuid.UUID(id.Bytes)

	if err := insertDays(ctx, tx, trip.ID, trip.Days); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: commit: %w", err)
	}
	return trip, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT id, name, start_date, cover_image, created_at, updated_at
		FROM trips
		WHERE id = @id`

	trip, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}

	trip.Days, err = loadDays(ctx, r.db, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return trip, nil
}

func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `
		SELECT id, name, start_date, cover_image, created_at, updated_at
		FROM trips
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}
	return trips, nil
}

func (r *pgTripRepo) Save(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	const q = `
		UPDATE trips
		SET name        = @name,
		    start_date  = @start_date,
		    cover_image = @cover_image,
		    updated_at  = now()
		WHERE id = @id
		RETURNING created_at, updated_at`

	args := pgx.NamedArgs{
		"id":          trip.ID,
		"name":        trip.Name,
		"start_date":  trip.StartDate,
		"cover_image": trip.CoverImage,
	}

	if err := tx.QueryRow(ctx, q, args).Scan(&trip.CreatedAt, &trip.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: %w", domain.ErrNotFound)
		}
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: %w", err)
	}

	// Whole-value replacement: stops cascade from days.
	if _, err := tx.Exec(ctx, `DELETE FROM days WHERE trip_id = @id`, pgx.NamedArgs{"id": trip.ID}); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: clear days: %w", err)
	}
	if err := insertDays(ctx, tx, trip.ID, trip.Days); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: commit: %w", err)
	}
	return trip, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trips WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// insertDays writes the day and stop rows of an aggregate. Day order and stop
// order are preserved via explicit position columns. Cached day totals are
// persisted alongside but are never read back as computation input.
func insertDays(ctx context.Context, tx pgx.Tx, tripID uuid.UUID, days []domain.Day) error {
	const dayQ = `
		INSERT INTO days (id, trip_id, position, date, modes, total_distance_m, total_duration_min, total_budget, mode_stats)
		VALUES (@id, @trip_id, @position, @date, @modes, @total_distance_m, @total_duration_min, @total_budget, @mode_stats)`

	const stopQ = `
		INSERT INTO stops (id, day_id, position, place_id, name, address, lat, lng, start_time,
		                   stay_minutes, budget, memo, checklist, details, category)
		VALUES (@id, @day_id, @position, @place_id, @name, @address, @lat, @lng, @start_time,
		        @stay_minutes, @budget, @memo, @checklist, @details, @category)`

	for pos, day := range days {
		modes, err := json.Marshal(day.Modes)
		if err != nil {
			return fmt.Errorf("marshal modes: %w", err)
		}
		modeStats, err := json.Marshal(day.Totals.ModeStats)
		if err != nil {
			return fmt.Errorf("marshal mode stats: %w", err)
		}

		if _, err := tx.Exec(ctx, dayQ, pgx.NamedArgs{
			"id":                 day.ID,
			"trip_id":            tripID,
			"position":           pos,
			"date":               day.Date,
			"modes":              modes,
			"total_distance_m":   day.Totals.DistanceMeters,
			"total_duration_min": day.Totals.DurationMinutes,
			"total_budget":       day.Totals.Budget,
			"mode_stats":         modeStats,
		}); err != nil {
			return fmt.Errorf("insert day %d: %w", pos, err)
		}

		for spos, stop := range day.Stops {
			checklist, err := json.Marshal(stop.Checklist)
			if err != nil {
				return fmt.Errorf("marshal checklist: %w", err)
			}
			var details []byte
			if stop.Details != nil {
				if details, err = json.Marshal(stop.Details); err != nil {
					return fmt.Errorf("marshal details: %w", err)
				}
			}

			if _, err := tx.Exec(ctx, stopQ, pgx.NamedArgs{
				"id":           stop.ID,
				"day_id":       day.ID,
				"position":     spos,
				"place_id":     stop.PlaceID,
				"name":         stop.Name,
				"address":      stop.Address,
				"lat":          stop.Position.Lat,
				"lng":          stop.Position.Lng,
				"start_time":   stop.StartTime,
				"stay_minutes": stop.StayMinutes,
				"budget":       stop.Budget,
				"memo":         stop.Memo,
				"checklist":    checklist,
				"details":      details,
				"category":     string(stop.Category),
			}); err != nil {
				return fmt.Errorf("insert stop %d of day %d: %w", spos, pos, err)
			}
		}
	}
	return nil
}

// loadDays reads the day and stop rows of a trip in position order.
func loadDays(ctx context.Context, db db, tripID uuid.UUID) ([]domain.Day, error) {
	const q = `
		SELECT id, date, modes, total_distance_m, total_duration_min, total_budget, mode_stats
		FROM days
		WHERE trip_id = @trip_id
		ORDER BY position`

	rows, err := db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("load days: %w", err)
	}
	defer rows.Close()

	days := []domain.Day{}
	for rows.Next() {
		var (
			d         domain.Day
			id        pgtype.UUID
			modes     []byte
			modeStats []byte
		)
		if err := rows.Scan(&id, &d.Date, &modes, &d.Totals.DistanceMeters,
			&d.Totals.DurationMinutes, &d.Totals.Budget, &modeStats); err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		d.ID = uuid.UUID(id.Bytes)
		if err := json.Unmarshal(modes, &d.Modes); err != nil {
			return nil, fmt.Errorf("unmarshal modes: %w", err)
		}
		if len(modeStats) > 0 {
			if err := json.Unmarshal(modeStats, &d.Totals.ModeStats); err != nil {
				return nil, fmt.Errorf("unmarshal mode stats: %w", err)
			}
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("day rows: %w", err)
	}

	for i := range days {
		if days[i].Stops, err = loadStops(ctx, db, days[i].ID); err != nil {
			return nil, err
		}
	}
	return days, nil
}

// loadStops reads one day's stops in position order.
func loadStops(ctx context.Context, db db, dayID uuid.UUID) ([]domain.Stop, error) {
	const q = `
		SELECT id, place_id, name, address, lat, lng, start_time, stay_minutes,
		       budget, memo, checklist, details, category
		FROM stops
		WHERE day_id = @day_id
		ORDER BY position`

	rows, err := db.Query(ctx, q, pgx.NamedArgs{"day_id": dayID})
	if err != nil {
		return nil, fmt.Errorf("load stops: %w", err)
	}
	defer rows.Close()

	stops := []domain.Stop{}
	for rows.Next() {
		var (
			s         domain.Stop
			id        pgtype.UUID
			checklist []byte
			details   []byte
			category  string
		)
		if err := rows.Scan(&id, &s.PlaceID, &s.Name, &s.Address, &s.Position.Lat, &s.Position.Lng,
			&s.StartTime, &s.StayMinutes, &s.Budget, &s.Memo, &checklist, &details, &category); err != nil {
			return nil, fmt.Errorf("scan stop: %w", err)
		}
		s.ID = uuid.UUID(id.Bytes)
		s.Category = domain.StopCategory(category)
		if err := json.Unmarshal(checklist, &s.Checklist); err != nil {
			return nil, fmt.Errorf("unmarshal checklist: %w", err)
		}
		if len(details) > 0 {
			s.Details = &domain.PlaceDetails{}
			if err := json.Unmarshal(details, s.Details); err != nil {
				return nil, fmt.Errorf("unmarshal details: %w", err)
			}
		}
		stops = append(stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stop rows: %w", err)
	}
	return stops, nil
}

// scanTrip maps a trip header row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t  domain.Trip
		id pgtype.UUID
	)
	err := s.Scan(&id, &t.Name, &t.StartDate, &t.CoverImage, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}
	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}
