package knowledge

import (
	"github.com/tanakakogyo/shopkb/internal/domain/record"
)

// companiesFile is the on-disk shape of companies.json.
type companiesFile struct {
	Companies []companyDTO `json:"companies"`
}

type companyDTO struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	ShortName string       `json:"shortName"`
	Products  []productDTO `json:"products"`
}

type productDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Drawings    []string `json:"drawings"`
}

// instructionFile is the on-disk shape of instruction.json.
type instructionFile struct {
	Metadata           metadataDTO              `json:"metadata"`
	WorkStepsByMachine map[string][]workStepDTO `json:"workStepsByMachine"`
}

type metadataDTO struct {
	DrawingNumber string   `json:"drawingNumber"`
	Title         string   `json:"title"`
	CompanyID     string   `json:"companyId"`
	MachineType   []string `json:"machineType"`
	Difficulty    string   `json:"difficulty"`
	EstimatedTime string   `json:"estimatedTime"`
	ToolsRequired []string `json:"toolsRequired"`
}

type workStepDTO struct {
	StepNumber  int    `json:"stepNumber"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// contributionsFile is the on-disk shape of contributions.json.
type contributionsFile struct {
	DrawingNumber string            `json:"drawingNumber"`
	Contributions []contributionDTO `json:"contributions"`
}

type contributionDTO struct {
	UserName  string `json:"userName"`
	Text      string `json:"text"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

func companyFromDTO(dto companyDTO) record.Company {
	products := make([]record.Product, len(dto.Products))
	for i, p := range dto.Products {
		products[i] = record.Product{
			ID:          p.ID,
			Name:        p.Name,
			Category:    p.Category,
			Description: p.Description,
			Drawings:    p.Drawings,
		}
	}
	return record.Company{
		ID:        dto.ID,
		Name:      dto.Name,
		ShortName: dto.ShortName,
		Products:  products,
	}
}

// drawingFromDTO hydrates a drawing record. fallbackNumber fills in for
// records whose metadata lacks a drawing number (the directory or key name).
func drawingFromDTO(dto instructionFile, fallbackNumber string) record.Drawing {
	meta := dto.Metadata

	number := meta.DrawingNumber
	if number == "" {
		number = fallbackNumber
	}
	companyID := meta.CompanyID
	if companyID == "" {
		companyID = "unknown"
	}
	difficulty := meta.Difficulty
	if difficulty == "" {
		difficulty = "unknown"
	}
	estimatedTime := meta.EstimatedTime
	if estimatedTime == "" {
		estimatedTime = "unknown"
	}

	var steps map[string][]record.WorkStep
	if len(dto.WorkStepsByMachine) > 0 {
		steps = make(map[string][]record.WorkStep, len(dto.WorkStepsByMachine))
		for machine, rows := range dto.WorkStepsByMachine {
			converted := make([]record.WorkStep, len(rows))
			for i, s := range rows {
				converted[i] = record.WorkStep{
					StepNumber:  s.StepNumber,
					Title:       s.Title,
					Description: s.Description,
				}
			}
			steps[machine] = converted
		}
	}

	return record.Drawing{
		DrawingNumber:  number,
		Title:          meta.Title,
		CompanyID:      companyID,
		MachineTypes:   meta.MachineType,
		Difficulty:     difficulty,
		EstimatedTime:  estimatedTime,
		ToolsRequired:  meta.ToolsRequired,
		StepsByMachine: steps,
	}
}

func contributionsFromDTO(dto contributionsFile, fallbackNumber string) []record.Contribution {
	number := dto.DrawingNumber
	if number == "" {
		number = fallbackNumber
	}

	out := make([]record.Contribution, 0, len(dto.Contributions))
	for _, c := range dto.Contributions {
		userName := c.UserName
		if userName == "" {
			userName = "unknown"
		}
		contribType := c.Type
		if contribType == "" {
			contribType = "comment"
		}
		out = append(out, record.Contribution{
			DrawingNumber: number,
			UserName:      userName,
			Text:          c.Text,
			Type:          contribType,
			Timestamp:     c.Timestamp,
		})
	}
	return out
}
