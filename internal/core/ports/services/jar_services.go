package services

import (
	"context"

	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
)

// JarReaderSvc defines read operations for savings jars
type JarReaderSvc interface {
	// ListJars retrieves a user's active jars sorted by deadline ascending,
	// derived pacing fields computed on read.
	ListJars(ctx context.Context, userID string) ([]dto.JarResponse, error)

	// GetJarByID retrieves one jar with its deposit history.
	GetJarByID(ctx context.Context, userID, jarID string) (*dto.JarResponse, error)
}

// JarWriterSvc defines write operations for savings jars
type JarWriterSvc interface {
	// CreateJar validates and persists a new jar with defaulted styling.
	CreateJar(ctx context.Context, userID string, req dto.CreateJarRequest) (*dto.JarResponse, error)

	// Deposit validates a deposit (positive amount, within unallocated cash)
	// and appends it under per-user serialization. Crossing the target
	// completes the jar.
	Deposit(ctx context.Context, userID, jarID string, req dto.DepositRequest) (*dto.DepositResponse, error)

	// ArchiveJar marks a jar archived.
	ArchiveJar(ctx context.Context, userID, jarID string) error
}

// JarSvcFacade combines jar service operations
type JarSvcFacade interface {
	JarReaderSvc
	JarWriterSvc
}
