package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/pkg/apperrors"
	"github.com/yigit/memorial/internal/pkg/csvstream"
)

// DefaultImportBatchSize is the number of rows accumulated before a bulk insert
const DefaultImportBatchSize = 1000

// ImportOptions bounds one import
type ImportOptions struct {
	BatchSize int
	// MaxRows stops the import once exceeded; zero means unlimited
	MaxRows int
}

// ImportResult summarises a finished (or abandoned) import
type ImportResult struct {
	RowsRead     int
	RowsInserted int64
	Batches      int
	Checksum     string
}

// ImportService loads people records from CSV files
type ImportService interface {
	Import(ctx context.Context, src io.Reader, submitterID int64) (*ImportResult, error)
}

type importServiceImpl struct {
	store   PeopleBulkInserter
	options ImportOptions
	now     func() time.Time
	logger  zerolog.Logger
}

// NewImportService creates an ImportService writing through store
func NewImportService(store PeopleBulkInserter, options ImportOptions, logger zerolog.Logger) ImportService {
	if options.BatchSize <= 0 {
		options.BatchSize = DefaultImportBatchSize
	}
	return &importServiceImpl{
		store:   store,
		options: options,
		now:     time.Now,
		logger:  logger,
	}
}

// Import streams src row by row. Each full batch is written before the next row is read,
// and the remainder is written after the last row. A failure leaves earlier batches in place;
// the returned result then describes the work done so far.
func (s *importServiceImpl) Import(ctx context.Context, src io.Reader, submitterID int64) (*ImportResult, error) {
	digest := xxhash.New()
	reader := csvstream.NewReader(io.TeeReader(src, digest))
	now := s.now()

	result := &ImportResult{}
	batch := make([]models.Person, 0, s.options.BatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		inserted, err := s.store.BulkInsertPeople(ctx, batch)
		if err != nil {
			return fmt.Errorf("%w: batch %d: %v", apperrors.ErrImportPersist, result.Batches+1, err)
		}
		result.Batches++
		result.RowsInserted += inserted
		s.logger.Debug().
			Int("batch", result.Batches).
			Int("rows", len(batch)).
			Int64("inserted", inserted).
			Msg("Import batch stored")
		batch = make([]models.Person, 0, s.options.BatchSize)
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		row, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			s.logger.Warn().Err(err).Int("rowsRead", reader.Rows()).Msg("Import aborted on malformed CSV")
			return result, fmt.Errorf("%w: %v", apperrors.ErrImportParse, err)
		}

		result.RowsRead = reader.Rows()
		if s.options.MaxRows > 0 && result.RowsRead > s.options.MaxRows {
			result.RowsRead--
			return result, apperrors.NewCustomError(apperrors.ErrImportTooLarge,
				fmt.Sprintf("import exceeds the limit of %d rows", s.options.MaxRows))
		}

		batch = append(batch, TransformRow(row, submitterID, now))
		if len(batch) >= s.options.BatchSize {
			if err := flush(); err != nil {
				return result, err
			}
		}
	}

	if err := flush(); err != nil {
		return result, err
	}

	result.Checksum = fmt.Sprintf("%016x", digest.Sum64())
	s.logger.Info().
		Int64("submittedBy", submitterID).
		Int("rowsRead", result.RowsRead).
		Int64("rowsInserted", result.RowsInserted).
		Int("batches", result.Batches).
		Str("checksum", result.Checksum).
		Msg("Import completed")

	return result, nil
}
