package repositories

import (
	"database/sql"
	"errors"

	intconfig "traintrek/internal/config"
	"traintrek/internal/domain"
	"traintrek/internal/domain/models"
)

type TrainRepo struct {
	DB *sql.DB
}

func (r TrainRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const trainColumns = `id, name, source, destination, total_seats, available_seats,
			departure_time, arrival_time, duration, fare,
			COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), '')`

func scanTrain(row *sql.Row) (models.Train, error) {
	var t models.Train
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Source,
		&t.Destination,
		&t.TotalSeats,
		&t.AvailableSeats,
		&t.DepartureTime,
		&t.ArrivalTime,
		&t.Duration,
		&t.Fare,
		&t.CreatedAt,
	)
	return t, err
}

// GetByID fetches a single train.
func (r TrainRepo) GetByID(id int64) (models.Train, error) {
	if id <= 0 {
		return models.Train{}, domain.ValidationError{Field: "trainId", Msg: "invalid id"}
	}
	t, err := scanTrain(r.db().QueryRow(`SELECT `+trainColumns+` FROM trains WHERE id=? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Train{}, domain.NotFoundError{Resource: "train", Err: err}
		}
		return models.Train{}, domain.InternalError{Err: err}
	}
	return t, nil
}

// All lists the whole catalog.
func (r TrainRepo) All() ([]models.Train, error) {
	rows, err := r.db().Query(`SELECT ` + trainColumns + ` FROM trains ORDER BY id`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()
	return collectTrains(rows)
}

// Search matches source and destination by case-insensitive substring.
func (r TrainRepo) Search(source, destination string) ([]models.Train, error) {
	rows, err := r.db().Query(`
		SELECT `+trainColumns+`
		FROM trains
		WHERE LOWER(source) LIKE LOWER(?) AND LOWER(destination) LIKE LOWER(?)
		ORDER BY id`,
		"%"+source+"%", "%"+destination+"%")
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()
	return collectTrains(rows)
}

func collectTrains(rows *sql.Rows) ([]models.Train, error) {
	out := []models.Train{}
	for rows.Next() {
		var t models.Train
		if err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Source,
			&t.Destination,
			&t.TotalSeats,
			&t.AvailableSeats,
			&t.DepartureTime,
			&t.ArrivalTime,
			&t.Duration,
			&t.Fare,
			&t.CreatedAt,
		); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}
