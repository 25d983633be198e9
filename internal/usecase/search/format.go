package search

import (
	"fmt"
	"strings"

	"github.com/tanakakogyo/shopkb/internal/domain/match"
)

// Formatter display caps: the context block stays small enough to prepend
// to a chat prompt.
const (
	formatDrawingLimit      = 5
	formatProductLimit      = 3
	formatContributionLimit = 3
	formatToolLimit         = 5
)

// FormatResults renders a search result as the section-headed Japanese text
// block injected into the chat prompt. An all-empty result produces an
// explicit no-data notice: the model must never receive silent emptiness it
// might hallucinate around.
func FormatResults(r match.Result) string {
	var b strings.Builder
	b.WriteString("【社内データベース検索結果】\n\n")

	if !r.Empty() {
		writeStatistics(&b, r.Stats)
	}

	if len(r.Drawings) > 0 {
		writeDrawings(&b, r.Drawings)
	}
	if len(r.Products) > 0 {
		writeProducts(&b, r.Products)
	}
	if len(r.Contributions) > 0 {
		writeContributions(&b, r.Contributions)
	}

	if r.Empty() {
		b.WriteString("⚠️ 該当するデータが見つかりませんでした。\n")
		b.WriteString("検索キーワードを変更するか、より具体的な情報（図番、材質、機械種別など）を含めてお試しください。\n")
	}

	return b.String()
}

func writeStatistics(b *strings.Builder, stats match.Statistics) {
	b.WriteString("📊 検索結果サマリー:\n")
	if stats.Drawings > 0 {
		fmt.Fprintf(b, "  • 図番: %d件\n", stats.Drawings)
	}
	if stats.Products > 0 {
		fmt.Fprintf(b, "  • 会社/製品: %d件\n", stats.Products)
	}
	if stats.Contributions > 0 {
		fmt.Fprintf(b, "  • 追記情報: %d件\n", stats.Contributions)
	}
	if len(stats.SearchTerms) > 0 {
		fmt.Fprintf(b, "  • 検索キーワード: %s\n", strings.Join(stats.SearchTerms, ", "))
	}
	b.WriteString("\n")
}

func writeDrawings(b *strings.Builder, drawings []match.Drawing) {
	b.WriteString("🔧 関連作業手順:\n")
	for i, d := range drawings {
		if i >= formatDrawingLimit {
			break
		}
		fmt.Fprintf(b, "\n%d. 図番: %s\n", i+1, d.DrawingNumber)
		fmt.Fprintf(b, "   タイトル: %s\n", d.Title)
		if len(d.MachineTypes) > 0 {
			fmt.Fprintf(b, "   使用機械: %s\n", strings.Join(d.MachineTypes, "、"))
		}
		if len(d.Materials) > 0 {
			fmt.Fprintf(b, "   材質: %s\n", strings.Join(d.Materials, "、"))
		}
		fmt.Fprintf(b, "   難易度: %s、推定時間: %s\n", d.Difficulty, d.EstimatedTime)
		if len(d.ToolsUsed) > 0 {
			tools := d.ToolsUsed
			if len(tools) > formatToolLimit {
				tools = tools[:formatToolLimit]
			}
			fmt.Fprintf(b, "   使用工具: %s\n", strings.Join(tools, "、"))
		}
		if len(d.MatchedFields) > 0 {
			fmt.Fprintf(b, "   マッチ項目: %s\n", strings.Join(d.MatchedFields, "、"))
		}
		fmt.Fprintf(b, "   作業ステップ数: %d工程\n", d.WorkSteps)
	}
	b.WriteString("\n")
}

func writeProducts(b *strings.Builder, products []match.Product) {
	b.WriteString("🏢 関連会社・製品:\n")
	for i, p := range products {
		if i >= formatProductLimit {
			break
		}
		fmt.Fprintf(b, "\n%d. %s: %s\n", i+1, p.CompanyName, p.ProductName)
		fmt.Fprintf(b, "   カテゴリ: %s\n", p.Category)
		fmt.Fprintf(b, "   関連図番: %s\n", strings.Join(p.DrawingNumbers, ", "))
		if len(p.MatchedFields) > 0 {
			fmt.Fprintf(b, "   マッチ項目: %s\n", strings.Join(p.MatchedFields, "、"))
		}
	}
	b.WriteString("\n")
}

func writeContributions(b *strings.Builder, contributions []match.Contribution) {
	b.WriteString("💡 現場からの追記情報:\n")
	for i, c := range contributions {
		if i >= formatContributionLimit {
			break
		}
		fmt.Fprintf(b, "\n%d. [%s] %sさんの%s:\n", i+1, c.DrawingNumber, c.Contributor, c.Type)
		fmt.Fprintf(b, "   「%s」\n", c.Content)
	}
	b.WriteString("\n")
}
