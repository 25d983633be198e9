package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tanakakogyo/shopkb/internal/db"
	"github.com/tanakakogyo/shopkb/internal/domain"
	"github.com/tanakakogyo/shopkb/internal/domain/record"
)

// Redis loads knowledge-base records from a Redis database. Each record is
// one JSON value:
//
//	<prefix>company:<id>  -> companyDTO
//	<prefix>drawing:<id>  -> instructionFile
//	<prefix>contrib:<id>  -> contributionsFile
//
// Used by deployments that mirror the NAS data into Redis instead of
// mounting the share on the app host.
type Redis struct {
	store  db.Store
	prefix string
	logger *zap.Logger
}

// NewRedis creates a Redis-backed loader with the given key prefix.
func NewRedis(store db.Store, prefix string, logger *zap.Logger) *Redis {
	return &Redis{store: store, prefix: prefix, logger: logger}
}

// LoadCompanies reads every company record.
func (r *Redis) LoadCompanies(ctx context.Context) ([]record.Company, error) {
	var companies []record.Company
	err := r.scanJSON(ctx, "company:", func(_ string, data []byte) {
		var dto companyDTO
		if err := json.Unmarshal(data, &dto); err != nil {
			r.logger.Debug("skipping malformed company record", zap.Error(err))
			return
		}
		companies = append(companies, companyFromDTO(dto))
	})
	if err != nil {
		return nil, err
	}
	return companies, nil
}

// LoadDrawings reads every work-instruction record.
func (r *Redis) LoadDrawings(ctx context.Context) ([]record.Drawing, error) {
	var drawings []record.Drawing
	err := r.scanJSON(ctx, "drawing:", func(id string, data []byte) {
		var dto instructionFile
		if err := json.Unmarshal(data, &dto); err != nil {
			r.logger.Debug("skipping malformed drawing record",
				zap.String("id", id), zap.Error(err))
			return
		}
		drawings = append(drawings, drawingFromDTO(dto, id))
	})
	if err != nil {
		return nil, err
	}
	return drawings, nil
}

// LoadContributions reads every contributions record.
func (r *Redis) LoadContributions(ctx context.Context) ([]record.Contribution, error) {
	var contributions []record.Contribution
	err := r.scanJSON(ctx, "contrib:", func(id string, data []byte) {
		var dto contributionsFile
		if err := json.Unmarshal(data, &dto); err != nil {
			r.logger.Debug("skipping malformed contributions record",
				zap.String("id", id), zap.Error(err))
			return
		}
		contributions = append(contributions, contributionsFromDTO(dto, id)...)
	})
	if err != nil {
		return nil, err
	}
	return contributions, nil
}

// Ping checks store connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}

// scanJSON iterates all keys under the given kind prefix and hands each
// value to fn along with the key's trailing identifier. A key that vanished
// between SCAN and GET is skipped.
func (r *Redis) scanJSON(ctx context.Context, kind string, fn func(id string, data []byte)) error {
	prefix := r.prefix + kind
	keys, err := r.store.Keys(ctx, prefix+"*")
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := r.store.Get(ctx, key)
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue
			}
			r.logger.Debug("skipping unreadable record",
				zap.String("key", key), zap.Error(err))
			continue
		}
		fn(key[len(prefix):], data)
	}
	return nil
}
