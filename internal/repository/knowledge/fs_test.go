package knowledge

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/tanakakogyo/shopkb/internal/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func newTestRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "companies.json"), `{
		"companies": [
			{
				"id": "c1",
				"name": "中央鉄工所株式会社",
				"shortName": "中央鉄工所",
				"products": [
					{"id": "p1", "name": "ブラケット", "category": "ブラケット", "drawings": ["AB-1001"]}
				]
			}
		]
	}`)

	writeFile(t, filepath.Join(root, "work-instructions", "AB-1001", "instruction.json"), `{
		"metadata": {
			"drawingNumber": "AB-1001",
			"title": "SUS304 ブラケット",
			"companyId": "c1",
			"machineType": ["マシニング"],
			"difficulty": "中級",
			"estimatedTime": "2時間",
			"toolsRequired": ["エンドミル"]
		},
		"workStepsByMachine": {
			"マシニング": [
				{"stepNumber": 1, "title": "粗加工", "description": "外形を削る"},
				{"stepNumber": 2, "title": "仕上げ", "description": "公差に追い込む"}
			]
		}
	}`)

	writeFile(t, filepath.Join(root, "work-instructions", "AB-1001", "contributions", "contributions.json"), `{
		"drawingNumber": "AB-1001",
		"contributions": [
			{"userName": "佐藤", "text": "低速で送ると仕上がりが良い", "type": "tip", "timestamp": "2026-08-01T09:00:00Z"},
			{"text": "承知しました"}
		]
	}`)

	// Malformed record in an otherwise valid tree.
	writeFile(t, filepath.Join(root, "work-instructions", "BAD-0001", "instruction.json"), `{not json`)

	// Metadata without a drawing number: the directory name fills in.
	writeFile(t, filepath.Join(root, "work-instructions", "CD-2002", "instruction.json"), `{
		"metadata": {"title": "真鍮リング"}
	}`)

	return root
}

func TestFS_LoadCompanies(t *testing.T) {
	fs := NewFS(newTestRoot(t), zap.NewNop())

	companies, err := fs.LoadCompanies(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(companies) != 1 {
		t.Fatalf("expected 1 company, got %d", len(companies))
	}
	c := companies[0]
	if c.DisplayName() != "中央鉄工所" {
		t.Errorf("expected short name as display name, got %q", c.DisplayName())
	}
	if len(c.Products) != 1 || c.Products[0].Category != "ブラケット" {
		t.Errorf("unexpected products: %+v", c.Products)
	}
}

func TestFS_LoadDrawings(t *testing.T) {
	fs := NewFS(newTestRoot(t), zap.NewNop())

	drawings, err := fs.LoadDrawings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// BAD-0001 is malformed and must be skipped, not fail the scan.
	if len(drawings) != 2 {
		t.Fatalf("expected 2 drawings, got %d", len(drawings))
	}

	byNumber := make(map[string]int)
	for i, d := range drawings {
		byNumber[d.DrawingNumber] = i
	}

	i, ok := byNumber["AB-1001"]
	if !ok {
		t.Fatal("AB-1001 not loaded")
	}
	if drawings[i].StepCount() != 2 {
		t.Errorf("expected 2 steps, got %d", drawings[i].StepCount())
	}
	if drawings[i].Difficulty != "中級" {
		t.Errorf("unexpected difficulty %q", drawings[i].Difficulty)
	}

	j, ok := byNumber["CD-2002"]
	if !ok {
		t.Fatal("expected directory name as fallback drawing number")
	}
	if drawings[j].Difficulty != "unknown" {
		t.Errorf("expected defaulted difficulty, got %q", drawings[j].Difficulty)
	}
	if drawings[j].CompanyID != "unknown" {
		t.Errorf("expected defaulted company id, got %q", drawings[j].CompanyID)
	}
}

func TestFS_LoadContributions(t *testing.T) {
	fs := NewFS(newTestRoot(t), zap.NewNop())

	contributions, err := fs.LoadContributions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contributions) != 2 {
		t.Fatalf("expected 2 contributions, got %d", len(contributions))
	}
	if contributions[0].UserName != "佐藤" || contributions[0].Type != "tip" {
		t.Errorf("unexpected first contribution: %+v", contributions[0])
	}
	if contributions[1].UserName != "unknown" || contributions[1].Type != "comment" {
		t.Errorf("expected defaulted user and type, got %+v", contributions[1])
	}
}

func TestFS_Ping(t *testing.T) {
	fs := NewFS(newTestRoot(t), zap.NewNop())
	if err := fs.Ping(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	missing := NewFS(filepath.Join(t.TempDir(), "nope"), zap.NewNop())
	err := missing.Ping(context.Background())
	if !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestFS_MissingRoot(t *testing.T) {
	fs := NewFS(filepath.Join(t.TempDir(), "nope"), zap.NewNop())

	if _, err := fs.LoadDrawings(context.Background()); !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
	if _, err := fs.LoadCompanies(context.Background()); !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
}
