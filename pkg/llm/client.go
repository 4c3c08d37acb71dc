package llm

const suggestSystemPrompt = `You are a sub-editor at a Nigerian news publication. Given an article's title and body, write a summary the editor can use on a feed card.

Rules:
1. 2 to 3 sentences, neutral tone
2. Keep all facts: names, places, figures, dates
3. No opinion, no speculation, no emojis
4. Plain text, no markdown

Output as JSON only, no other text:
{
  "summary": "the suggested summary"
}`

type SuggestInput struct {
	Title   string
	Content string
}

type SuggestResult struct {
	Summary   string
	ModelUsed string
}

// SummaryClient suggests a feed summary for a draft article. The
// suggestion is advisory; the editor decides what gets published.
type SummaryClient interface {
	SuggestSummary(input SuggestInput) (*SuggestResult, error)
}
