package chi

import (
	"github.com/tanakakogyo/shopkb/internal/domain/match"
)

type chatRequest struct {
	Messages []messageDTO `json:"messages"`
}

type messageDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type searchRequest struct {
	Query   string   `json:"query"`
	History []string `json:"history"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Search response DTOs keep the field names the web app's chat screen
// already consumes.
type searchResultDTO struct {
	Companies     []productMatchDTO      `json:"companies"`
	Drawings      []drawingMatchDTO      `json:"drawings"`
	Contributions []contributionMatchDTO `json:"contributions"`
	Statistics    statisticsDTO          `json:"statistics"`
}

type productMatchDTO struct {
	CompanyName    string   `json:"companyName"`
	ProductName    string   `json:"productName"`
	Category       string   `json:"category"`
	DrawingNumbers []string `json:"drawingNumbers"`
	RelevanceScore float64  `json:"relevanceScore"`
	MatchedFields  []string `json:"matchedFields"`
}

type drawingMatchDTO struct {
	DrawingNumber  string   `json:"drawingNumber"`
	Title          string   `json:"title"`
	CompanyID      string   `json:"companyId"`
	MachineTypes   []string `json:"machineTypes"`
	Materials      []string `json:"materials"`
	Difficulty     string   `json:"difficulty"`
	EstimatedTime  string   `json:"estimatedTime"`
	ToolsUsed      []string `json:"toolsUsed"`
	RelevanceScore float64  `json:"relevanceScore"`
	MatchedFields  []string `json:"matchedFields"`
	WorkStepsCount int      `json:"workStepsCount"`
}

type contributionMatchDTO struct {
	DrawingNumber  string  `json:"drawingNumber"`
	Contributor    string  `json:"contributor"`
	Content        string  `json:"content"`
	Type           string  `json:"type"`
	Timestamp      string  `json:"timestamp"`
	RelevanceScore float64 `json:"relevanceScore"`
}

type statisticsDTO struct {
	TotalCompanies     int      `json:"totalCompanies"`
	TotalDrawings      int      `json:"totalDrawings"`
	TotalContributions int      `json:"totalContributions"`
	SearchTerms        []string `json:"searchTerms"`
	ProcessingTimeMs   int64    `json:"processingTimeMs"`
}

func searchResultToDTO(r match.Result) searchResultDTO {
	companies := make([]productMatchDTO, len(r.Products))
	for i, p := range r.Products {
		companies[i] = productMatchDTO{
			CompanyName:    p.CompanyName,
			ProductName:    p.ProductName,
			Category:       p.Category,
			DrawingNumbers: p.DrawingNumbers,
			RelevanceScore: p.Score,
			MatchedFields:  p.MatchedFields,
		}
	}

	drawings := make([]drawingMatchDTO, len(r.Drawings))
	for i, d := range r.Drawings {
		drawings[i] = drawingMatchDTO{
			DrawingNumber:  d.DrawingNumber,
			Title:          d.Title,
			CompanyID:      d.CompanyID,
			MachineTypes:   d.MachineTypes,
			Materials:      d.Materials,
			Difficulty:     d.Difficulty,
			EstimatedTime:  d.EstimatedTime,
			ToolsUsed:      d.ToolsUsed,
			RelevanceScore: d.Score,
			MatchedFields:  d.MatchedFields,
			WorkStepsCount: d.WorkSteps,
		}
	}

	contributions := make([]contributionMatchDTO, len(r.Contributions))
	for i, c := range r.Contributions {
		contributions[i] = contributionMatchDTO{
			DrawingNumber:  c.DrawingNumber,
			Contributor:    c.Contributor,
			Content:        c.Content,
			Type:           c.Type,
			Timestamp:      c.Timestamp,
			RelevanceScore: c.Score,
		}
	}

	return searchResultDTO{
		Companies:     companies,
		Drawings:      drawings,
		Contributions: contributions,
		Statistics: statisticsDTO{
			TotalCompanies:     r.Stats.Products,
			TotalDrawings:      r.Stats.Drawings,
			TotalContributions: r.Stats.Contributions,
			SearchTerms:        r.Stats.SearchTerms,
			ProcessingTimeMs:   r.Stats.Elapsed.Milliseconds(),
		},
	}
}
