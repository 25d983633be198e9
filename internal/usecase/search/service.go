// Package search implements the knowledge-base retrieval engine: keyword
// extraction, per-source relevance scoring, and result aggregation. The
// aggregated result is formatted into a context block for the chat model.
package search

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tanakakogyo/shopkb/internal/domain/keyword"
	"github.com/tanakakogyo/shopkb/internal/domain/match"
	"github.com/tanakakogyo/shopkb/internal/metrics"
	keyworduc "github.com/tanakakogyo/shopkb/internal/usecase/keyword"
)

// Result caps. Targeted queries get a short list; an explicit show-all
// request gets a broad one. Contributions stay short either way.
const (
	productCap           = 10
	productCapShowAll    = 30
	drawingCap           = 15
	drawingCapShowAll    = 50
	contributionCap      = 10
	defaultMaxCandidates = 2000
	scoreEqualityEpsilon = 0.1
)

// Service runs the three source searchers and aggregates their results.
type Service struct {
	catalog       CatalogLoader
	drawings      DrawingLoader
	contributions ContributionLoader
	maxCandidates int
	logger        *zap.Logger
}

// New creates a search service over the three knowledge sources.
func New(catalog CatalogLoader, drawings DrawingLoader, contributions ContributionLoader, logger *zap.Logger) *Service {
	return &Service{
		catalog:       catalog,
		drawings:      drawings,
		contributions: contributions,
		maxCandidates: defaultMaxCandidates,
		logger:        logger,
	}
}

// WithMaxCandidates caps how many candidates each searcher scans, so a
// pathologically large collection cannot stall a chat request.
func (s *Service) WithMaxCandidates(n int) *Service {
	if n > 0 {
		s.maxCandidates = n
	}
	return s
}

// Search extracts keywords from the query (supplemented from the most
// recent conversation turn when the query has no technical content of its
// own), runs the three source searchers concurrently, and aggregates their
// results. It never fails: a retrieval problem degrades to an empty result
// so the surrounding chat request can proceed without context.
func (s *Service) Search(ctx context.Context, query string, history []string) match.Result {
	start := time.Now()

	kw := keyworduc.ExtractWithHistory(query, history)

	s.logger.Debug("extracted keywords",
		zap.Strings("materials", kw.Materials),
		zap.Strings("machines", kw.Machines),
		zap.Strings("processes", kw.Processes),
		zap.Strings("tools", kw.Tools),
		zap.Strings("drawings", kw.Drawings),
		zap.Strings("categories", kw.Categories),
		zap.Bool("show_all", kw.ShowAll),
	)

	var (
		products      []match.Product
		drawings      []match.Drawing
		contributions []match.Contribution
	)

	// The three searchers are independent; each recovers from its own
	// source failure with an empty list so the others still contribute.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products = s.searchProducts(gctx, kw)
		return nil
	})
	g.Go(func() error {
		drawings = s.searchDrawings(gctx, kw)
		return nil
	})
	g.Go(func() error {
		contributions = s.searchContributions(gctx, kw)
		return nil
	})
	_ = g.Wait()

	elapsed := time.Since(start)
	metrics.ObserveSearch(elapsed, len(products), len(drawings), len(contributions))

	return aggregate(products, drawings, contributions, kw, elapsed)
}

// aggregate packages the three result lists with summary statistics. Pure
// packaging: no ranking or filtering happens here.
func aggregate(
	products []match.Product,
	drawings []match.Drawing,
	contributions []match.Contribution,
	kw keyword.Keywords,
	elapsed time.Duration,
) match.Result {
	return match.Result{
		Products:      products,
		Drawings:      drawings,
		Contributions: contributions,
		Stats: match.Statistics{
			Products:      len(products),
			Drawings:      len(drawings),
			Contributions: len(contributions),
			SearchTerms:   kw.SearchTerms(),
			Elapsed:       elapsed,
		},
	}
}

// searchProducts scores every product in the catalog against the keywords.
func (s *Service) searchProducts(ctx context.Context, kw keyword.Keywords) []match.Product {
	companies, err := s.catalog.LoadCompanies(ctx)
	if err != nil {
		s.logger.Warn("product catalog unavailable", zap.Error(err))
		return nil
	}

	var matches []match.Product
	scanned := 0

	for _, company := range companies {
		displayName := strings.ToLower(company.DisplayName())

		for _, product := range company.Products {
			if scanned >= s.maxCandidates || ctx.Err() != nil {
				return rankProducts(matches, kw.ShowAll)
			}
			scanned++

			var score float64
			var fields []string

			if countInTitle(kw.Companies, displayName) > 0 {
				score += 3
				fields = append(fields, "会社名")
			}
			if countInTitle(kw.Categories, strings.ToLower(product.Category)) > 0 {
				score += 4
				fields = append(fields, fieldCategory)
			}
			if countInTitle(kw.Processes, strings.ToLower(product.Name)) > 0 {
				score += 2
				fields = append(fields, "製品名")
			}

			// An exact drawing hit inside the product's drawing list is a
			// very strong signal.
			drawingHits := 0
			for _, d := range kw.Drawings {
				if containsString(product.Drawings, d) {
					drawingHits++
				}
			}
			if drawingHits > 0 {
				score += 8 * float64(drawingHits)
				fields = append(fields, "図番")
			}

			if n := descriptionOverlap(kw.OriginalQuery, product.Description); n > 0 {
				score += float64(n)
				fields = append(fields, "説明")
			}

			if score > 0 || kw.ShowAll {
				matches = append(matches, match.Product{
					CompanyName:    company.DisplayName(),
					ProductName:    product.Name,
					Category:       product.Category,
					DrawingNumbers: product.Drawings,
					Score:          score,
					MatchedFields:  fields,
				})
			}
		}
	}

	return rankProducts(matches, kw.ShowAll)
}

// searchDrawings scores every work-instruction record via the full weight
// table and breaks score ties by step count: richer documented records are
// more useful.
func (s *Service) searchDrawings(ctx context.Context, kw keyword.Keywords) []match.Drawing {
	records, err := s.drawings.LoadDrawings(ctx)
	if err != nil {
		s.logger.Warn("drawing records unavailable", zap.Error(err))
		return nil
	}

	var matches []match.Drawing
	for i, d := range records {
		if i >= s.maxCandidates || ctx.Err() != nil {
			break
		}

		score, fields := relevance(kw, d)
		if score <= 0 && !kw.ShowAll {
			continue
		}

		// Surface which query materials literally appear in the title.
		// Display only; the score already accounts for them.
		title := strings.ToLower(d.Title)
		var materials []string
		for _, m := range kw.Materials {
			if strings.Contains(title, strings.ToLower(m)) {
				materials = append(materials, m)
			}
		}

		matches = append(matches, match.Drawing{
			DrawingNumber: d.DrawingNumber,
			Title:         d.Title,
			CompanyID:     d.CompanyID,
			MachineTypes:  d.MachineTypes,
			Materials:     materials,
			Difficulty:    d.Difficulty,
			EstimatedTime: d.EstimatedTime,
			ToolsUsed:     d.ToolsRequired,
			Score:         score,
			MatchedFields: fields,
			WorkSteps:     d.StepCount(),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if diff := a.Score - b.Score; diff > scoreEqualityEpsilon || diff < -scoreEqualityEpsilon {
			return a.Score > b.Score
		}
		return a.WorkSteps > b.WorkSteps
	})

	return truncateDrawings(matches, kw.ShowAll)
}

// searchContributions applies a lighter free-text scoring rule. No boost:
// contributions are short texts where multi-field richness means little.
func (s *Service) searchContributions(ctx context.Context, kw keyword.Keywords) []match.Contribution {
	records, err := s.contributions.LoadContributions(ctx)
	if err != nil {
		s.logger.Warn("contribution records unavailable", zap.Error(err))
		return nil
	}

	queryWords := strings.Fields(strings.ToLower(kw.OriginalQuery))

	var matches []match.Contribution
	for i, c := range records {
		if i >= s.maxCandidates || ctx.Err() != nil {
			break
		}

		text := strings.ToLower(c.Text)
		if text == "" {
			continue
		}

		var score float64
		score += 2 * float64(countInTitle(kw.Processes, text))
		score += 2 * float64(countInTitle(kw.Tools, text))
		for _, w := range queryWords {
			if utf8.RuneCountInString(w) > 2 && strings.Contains(text, w) {
				score++
			}
		}

		if score > 0 {
			matches = append(matches, match.Contribution{
				DrawingNumber: c.DrawingNumber,
				Contributor:   c.UserName,
				Content:       c.Text,
				Type:          c.Type,
				Timestamp:     c.Timestamp,
				Score:         score,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > contributionCap {
		matches = matches[:contributionCap]
	}
	return matches
}

func rankProducts(matches []match.Product, showAll bool) []match.Product {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	limit := productCap
	if showAll {
		limit = productCapShowAll
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func truncateDrawings(matches []match.Drawing, showAll bool) []match.Drawing {
	limit := drawingCap
	if showAll {
		limit = drawingCapShowAll
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// descriptionOverlap counts query tokens (longer than 2 runes) appearing in
// the product description.
func descriptionOverlap(query, description string) int {
	if description == "" {
		return 0
	}
	desc := strings.ToLower(description)
	n := 0
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if utf8.RuneCountInString(w) > 2 && strings.Contains(desc, w) {
			n++
		}
	}
	return n
}
