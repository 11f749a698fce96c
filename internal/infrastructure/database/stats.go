package database

import (
	"fmt"
	"time"
)

// PoolStats is a snapshot of the pgx pool for the health endpoint.
type PoolStats struct {
	TotalConns        int32         `json:"total_conns"`
	MaxConns          int32         `json:"max_conns"`
	AcquiredConns     int32         `json:"acquired_conns"`
	IdleConns         int32         `json:"idle_conns"`
	ConstructingConns int32         `json:"constructing_conns"`
	AcquireCount      int64         `json:"acquire_count"`
	EmptyAcquireCount int64         `json:"empty_acquire_count"`
	AvgAcquire        time.Duration `json:"avg_acquire_ns"`
}

func (db *PostgresDB) Stats() (*PoolStats, error) {
	if db.Pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	raw := db.Pool.Stat()
	return &PoolStats{
		TotalConns:        raw.TotalConns(),
		MaxConns:          raw.MaxConns(),
		AcquiredConns:     raw.AcquiredConns(),
		IdleConns:         raw.IdleConns(),
		ConstructingConns: raw.ConstructingConns(),
		AcquireCount:      raw.AcquireCount(),
		EmptyAcquireCount: raw.EmptyAcquireCount(),
		AvgAcquire:        averageDuration(raw.AcquireDuration(), raw.AcquireCount()),
	}, nil
}

func averageDuration(total time.Duration, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return total / time.Duration(count)
}
