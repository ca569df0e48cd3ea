package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/model"
)

const analyzeSystemPrompt = `You are a T20 cricket performance analyst. You are given structured career
data computed from ball-by-ball match records and a question about the player.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Be concise and concrete.

Metrics glossary:
- average: runs per dismissal; with no dismissals it is the raw run total.
- strike_rate (batting): runs per 100 balls faced. Wides are not balls faced.
- consistency: % of innings with 30 or more runs.
- form_index: weighted sum of the last five scores (or wickets), most recent
  weighted 1.5, then 1.3, 1.1, 0.9, 0.7, divided by 5.
- overs: cricket notation, 3.5 means three overs and five balls.
- economy: runs conceded per over. Byes and leg byes are not charged to the bowler.
- strike_rate (bowling): legal balls per wicket. Run outs are not credited.
- recent_innings: the player's latest innings, oldest first. Bowling rows
  carry runs conceded.`

var (
	analyzeModel   string
	analyzeAPIKey  string
	analyzeRecent  int
	analyzeMaxToks int64
	analyzeRender  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <name> <question>",
	Short: "AI-powered grounded analysis of a stored player (requires ANTHROPIC_API_KEY)",
	Long: `Send a player's stored careers and recent innings as compact JSON to the
Anthropic Messages API together with a question, and stream the answer.
Quote the player name: cricstats analyze "V Kohli" "How has his form changed?"`,
	Args: cobra.ExactArgs(2),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "claude-haiku-4-5-20251001", "Anthropic model to use")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	analyzeCmd.Flags().IntVar(&analyzeRecent, "recent", 10, "number of latest innings per discipline to include")
	analyzeCmd.Flags().Int64Var(&analyzeMaxToks, "max-tokens", 1024, "response token limit")
	analyzeCmd.Flags().BoolVar(&analyzeRender, "render", false, "wait for the full answer and render it as terminal markdown")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	name, question := args[0], args[1]

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	bat, err := db.GetBattingCareer(name)
	if err != nil {
		return fmt.Errorf("query batting career: %w", err)
	}
	if bat == nil {
		return fmt.Errorf("no stored data for %q: run 'cricstats stats' first", name)
	}
	bowl, err := db.GetBowlingCareer(name)
	if err != nil {
		return fmt.Errorf("query bowling career: %w", err)
	}

	history := make(map[string][]model.InningsRecord, 2)
	for _, kind := range []model.Discipline{model.DisciplineBatting, model.DisciplineBowling} {
		rows, err := db.GetInningsHistory(name, kind)
		if err != nil {
			return fmt.Errorf("query %s history: %w", kind, err)
		}
		if len(rows) > analyzeRecent {
			rows = rows[len(rows)-analyzeRecent:]
		}
		history[kind.String()] = rows
	}

	contextJSON, err := buildPlayerContext(*bat, bowl, history)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}
	return callAnthropic(cmd.Context(), analyzeAPIKey, analyzeModel, contextJSON, question)
}

// contextInnings is the compact per-innings shape sent to the model.
type contextInnings struct {
	Date    string `json:"date"`
	Match   string `json:"match"`
	Runs    int    `json:"runs"`
	Balls   int    `json:"balls"`
	Wickets int    `json:"wickets,omitempty"`
	Out     bool   `json:"out,omitempty"`
}

// buildPlayerContext serialises a player's stored data into compact JSON.
func buildPlayerContext(bat model.BattingCareer, bowl *model.BowlingCareer, history map[string][]model.InningsRecord) (string, error) {
	recent := make(map[string][]contextInnings, len(history))
	for kind, rows := range history {
		out := make([]contextInnings, len(rows))
		for i, r := range rows {
			out[i] = contextInnings{Date: r.MatchDate, Match: r.MatchID, Runs: r.Runs, Balls: r.Balls, Wickets: r.Wickets, Out: r.Out}
		}
		recent[kind] = out
	}
	payload := struct {
		Player        string                      `json:"player"`
		Batting       model.BattingCareer         `json:"batting"`
		Bowling       *model.BowlingCareer        `json:"bowling"`
		RecentInnings map[string][]contextInnings `json:"recent_innings"`
	}{bat.Player, bat, bowl, recent}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// callAnthropic streams a response from the Anthropic API and prints it to stdout.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	fmt.Fprintln(os.Stdout, "\n─── AI Analysis ─────────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: analyzeMaxToks,
		System: []anthropic.TextBlockParam{
			{Text: analyzeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	var answer strings.Builder
	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				text := delta.Delta.AsTextDelta().Text
				if analyzeRender {
					answer.WriteString(text)
				} else {
					fmt.Fprint(os.Stdout, text)
				}
			}
		}
	}
	if analyzeRender && answer.Len() > 0 {
		out, err := glamour.Render(answer.String(), "auto")
		if err != nil {
			// fall back to the raw markdown
			out = answer.String()
		}
		fmt.Fprint(os.Stdout, out)
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed: check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
