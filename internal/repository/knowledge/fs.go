// Package knowledge loads the read-only knowledge-base records from their
// external source: the shop's NAS filesystem layout or a Redis database.
//
// Filesystem layout (the NAS convention the web app writes):
//
//	<root>/companies.json
//	<root>/work-instructions/<dir>/instruction.json
//	<root>/work-instructions/<dir>/contributions/contributions.json
//
// A malformed individual file is skipped; the rest of the scan continues.
package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/tanakakogyo/shopkb/internal/domain"
	"github.com/tanakakogyo/shopkb/internal/domain/record"
)

const workInstructionsDir = "work-instructions"

// FS loads knowledge-base records from a filesystem root.
type FS struct {
	root   string
	logger *zap.Logger
}

// NewFS creates a filesystem loader rooted at the given data directory.
func NewFS(root string, logger *zap.Logger) *FS {
	return &FS{root: root, logger: logger}
}

// LoadCompanies reads the product catalog from companies.json.
func (f *FS) LoadCompanies(ctx context.Context) ([]record.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(f.root, "companies.json"))
	if err != nil {
		return nil, fmt.Errorf("%w: read companies.json: %w", domain.ErrSourceUnavailable, err)
	}

	var file companiesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: parse companies.json: %w", domain.ErrSourceUnavailable, err)
	}

	companies := make([]record.Company, len(file.Companies))
	for i, dto := range file.Companies {
		companies[i] = companyFromDTO(dto)
	}
	return companies, nil
}

// LoadDrawings reads every work-instruction record under work-instructions/.
func (f *FS) LoadDrawings(ctx context.Context) ([]record.Drawing, error) {
	dirs, err := f.instructionDirs()
	if err != nil {
		return nil, err
	}

	var drawings []record.Drawing
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return drawings, err
		}

		path := filepath.Join(f.root, workInstructionsDir, dir, "instruction.json")
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var file instructionFile
		if err := json.Unmarshal(data, &file); err != nil {
			f.logger.Debug("skipping malformed instruction file",
				zap.String("path", path), zap.Error(err))
			continue
		}

		drawings = append(drawings, drawingFromDTO(file, dir))
	}
	return drawings, nil
}

// LoadContributions reads every contributions file under work-instructions/.
func (f *FS) LoadContributions(ctx context.Context) ([]record.Contribution, error) {
	dirs, err := f.instructionDirs()
	if err != nil {
		return nil, err
	}

	var contributions []record.Contribution
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return contributions, err
		}

		path := filepath.Join(f.root, workInstructionsDir, dir, "contributions", "contributions.json")
		data, err := os.ReadFile(path)
		if err != nil {
			// Most drawings have no contributions yet.
			continue
		}

		var file contributionsFile
		if err := json.Unmarshal(data, &file); err != nil {
			f.logger.Debug("skipping malformed contributions file",
				zap.String("path", path), zap.Error(err))
			continue
		}

		contributions = append(contributions, contributionsFromDTO(file, dir)...)
	}
	return contributions, nil
}

// Ping checks that the data root exists and is a directory.
func (f *FS) Ping(_ context.Context) error {
	info, err := os.Stat(f.root)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrSourceUnavailable, f.root)
	}
	return nil
}

func (f *FS) instructionDirs() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(f.root, workInstructionsDir))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrSourceUnavailable, workInstructionsDir, err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs, nil
}
