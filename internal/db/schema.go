package db

import (
	"database/sql"
	"fmt"
)

var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS trains (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	source VARCHAR(255) NOT NULL,
	destination VARCHAR(255) NOT NULL,
	total_seats INT NOT NULL,
	available_seats INT NOT NULL,
	departure_time VARCHAR(20) NOT NULL,
	arrival_time VARCHAR(20) NOT NULL,
	duration VARCHAR(50) NOT NULL,
	fare BIGINT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	CONSTRAINT chk_available_seats CHECK (available_seats >= 0 AND available_seats <= total_seats)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	train_id BIGINT NOT NULL,
	user_name VARCHAR(255) NOT NULL DEFAULT 'Guest',
	user_email VARCHAR(255),
	user_phone VARCHAR(100),
	journey_date DATE,
	status ENUM('CONFIRMED','RAC','WL','CANCELLED') NOT NULL,
	coach VARCHAR(10),
	seat_number INT,
	pnr VARCHAR(20) NOT NULL,
	booking_time TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_pnr (pnr),
	KEY idx_train_status (train_id, status),
	KEY idx_user_email (user_email),
	KEY idx_user_phone (user_phone),
	CONSTRAINT fk_bookings_train FOREIGN KEY (train_id) REFERENCES trains (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS upgrade_history (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_id BIGINT NOT NULL,
	old_status VARCHAR(20) NOT NULL,
	new_status VARCHAR(20) NOT NULL,
	upgrade_type ENUM('lucky_confirm','auto_upgrade','cancellation_upgrade') NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_booking (booking_id),
	CONSTRAINT fk_upgrade_history_booking FOREIGN KEY (booking_id) REFERENCES bookings (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
}

// EnsureSchema creates the three tables when missing (idempotent).
func EnsureSchema(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("db not available")
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}

// SeedTrains inserts the sample catalog when the trains table is empty.
func SeedTrains(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("db not available")
	}
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM trains`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := [][]any{
		{"Rajdhani Express", "New Delhi", "Mumbai", 50, 12, "16:30", "08:45", "16h 15m", 2845},
		{"Shatabdi Express", "Chennai", "Bangalore", 40, 5, "06:00", "11:00", "5h 00m", 1250},
		{"Duronto Express", "Kolkata", "Delhi", 60, 0, "22:15", "10:30", "12h 15m", 1980},
		{"Gatimaan Express", "Delhi", "Agra", 45, 20, "08:10", "09:50", "1h 40m", 750},
		{"Tejas Express", "Mumbai", "Goa", 55, 8, "05:30", "13:45", "8h 15m", 1560},
	}
	for _, row := range seed {
		if _, err := db.Exec(`INSERT INTO trains
			(name, source, destination, total_seats, available_seats, departure_time, arrival_time, duration, fare)
			VALUES (?,?,?,?,?,?,?,?,?)`, row...); err != nil {
			return err
		}
	}
	return nil
}
