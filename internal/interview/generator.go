package interview

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/voicehire/interview-api/pkg/llm"
)

// questionArraySchema validates the parsed tier-1 payload: a JSON array of
// non-empty strings.
var questionArraySchema = jsonschema.MustCompileString("questions.json", `{
	"type": "array",
	"items": {"type": "string", "minLength": 1}
}`)

// tier is one fallback strategy in the generation chain, attempted in fixed
// priority order.
type tier struct {
	name string
	run  func(ctx context.Context, prompt string, count int) ([]string, error)
}

// Generator converts a topic prompt and question count into an ordered list
// of interview questions. Its fallback chain guarantees the caller always
// receives exactly the requested number of questions and never observes a
// model failure.
type Generator struct {
	client llm.Client
	logger zerolog.Logger
	tiers  []tier
}

// NewGenerator builds a generator backed by the given model client.
func NewGenerator(client llm.Client, logger zerolog.Logger) *Generator {
	g := &Generator{
		client: client,
		logger: logger.With().Str("component", "question_generator").Logger(),
	}
	g.tiers = []tier{
		{name: "structured", run: g.structuredTier},
		{name: "per_question", run: g.perQuestionTier},
		{name: "static", run: g.staticTier},
	}
	return g
}

// Generate returns exactly count non-empty questions for count >= 1. Only a
// non-positive count produces an error; model failures fall through the
// tier chain down to the static table.
func (g *Generator) Generate(ctx context.Context, prompt string, count int) ([]string, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: question count must be positive, got %d", ErrSessionCreation, count)
	}

	for _, t := range g.tiers {
		questions, err := t.run(ctx, prompt, count)
		if err != nil {
			generatorTierOutcomes.WithLabelValues(t.name, "failure").Inc()
			g.logger.Warn().Err(err).Str("tier", t.name).Msg("generation tier failed, falling through")
			continue
		}
		generatorTierOutcomes.WithLabelValues(t.name, "success").Inc()
		g.logger.Info().Str("tier", t.name).Int("count", len(questions)).Msg("questions generated")
		return questions, nil
	}

	// Unreachable: the static tier never fails.
	return nil, fmt.Errorf("%w: all generation tiers failed", ErrSessionCreation)
}

func (g *Generator) structuredTier(ctx context.Context, prompt string, count int) ([]string, error) {
	reply, err := g.client.Send(ctx, structuredPrompt(prompt, count))
	if err != nil {
		return nil, err
	}

	payload := extractJSONArray(reply)
	if payload == "" {
		return nil, fmt.Errorf("no JSON array in model reply")
	}

	var decoded interface{}
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return nil, fmt.Errorf("parse question array: %w", err)
	}

	if err := questionArraySchema.Validate(decoded); err != nil {
		return nil, fmt.Errorf("invalid question array: %w", err)
	}

	items, ok := decoded.([]interface{})
	if !ok || len(items) < count {
		return nil, fmt.Errorf("model returned %d questions, need %d", len(items), count)
	}

	questions := make([]string, 0, count)
	for _, item := range items[:count] {
		questions = append(questions, item.(string))
	}
	return questions, nil
}

func (g *Generator) perQuestionTier(ctx context.Context, prompt string, count int) ([]string, error) {
	questions := make([]string, 0, count)
	for i := 0; i < count; i++ {
		reply, err := g.client.Send(ctx, singleQuestionPrompt(prompt))
		if err != nil {
			return nil, err
		}

		question := strings.TrimSpace(strings.NewReplacer(`"`, "", "'", "").Replace(reply))
		if question == "" {
			return nil, fmt.Errorf("model returned an empty question")
		}
		if !strings.HasSuffix(question, "?") {
			question += "?"
		}
		questions = append(questions, question)
	}
	return questions, nil
}

// staticTier serves topic-appropriate canned questions. It cannot fail; when
// the requested count exceeds the matched set, questions repeat.
func (g *Generator) staticTier(_ context.Context, prompt string, count int) ([]string, error) {
	set := fallbackSet(prompt)
	questions := make([]string, 0, count)
	for i := 0; i < count; i++ {
		questions = append(questions, set[i%len(set)])
	}
	return questions, nil
}

// extractJSONArray strips fenced code blocks and surrounding prose, leaving
// the first top-level JSON array in the text.
func extractJSONArray(raw string) string {
	text := strings.TrimSpace(raw)

	if idx := strings.Index(text, "```json"); idx >= 0 {
		text = text[idx+len("```json"):]
		if end := strings.Index(text, "```"); end >= 0 {
			text = text[:end]
		}
	} else if idx := strings.Index(text, "```"); idx >= 0 {
		text = text[idx+len("```"):]
		if end := strings.Index(text, "```"); end >= 0 {
			text = text[:end]
		}
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end < start {
		return ""
	}
	return strings.TrimSpace(text[start : end+1])
}

func structuredPrompt(prompt string, count int) string {
	return fmt.Sprintf(`You are an experienced technical interviewer. Generate exactly %d specific, detailed interview questions based on the following prompt:

%s

IMPORTANT RULES:
1. Generate ACTUAL, SPECIFIC questions - not generic templates
2. Each question should be clear, detailed, and conversational
3. Questions should be suitable for a voice interview (easy to understand when spoken)
4. Each question should be 20-50 words long
5. Make questions practical and real-world focused
6. Do NOT use placeholders or generic formats

RESPOND ONLY with a JSON array of strings in this exact format:
["First specific question here?", "Second specific question here?", ...]

Do NOT include any other text, explanations, markdown, or code blocks - ONLY the JSON array.`, count, prompt)
}

func singleQuestionPrompt(prompt string) string {
	return fmt.Sprintf("Generate one specific interview question about: %s. Just give me the question text, nothing else.", prompt)
}

// fallbackQuestions maps case-insensitive topic keywords to canned question
// sets. The generic set applies when no keyword matches.
var fallbackQuestions = []struct {
	keywords  []string
	questions []string
}{
	{
		keywords: []string{"react"},
		questions: []string{
			"Can you explain what React hooks are and how the useState hook works?",
			"What is the difference between props and state in React?",
			"How does React's virtual DOM improve application performance?",
			"Can you describe the React component lifecycle?",
			"What are the key differences between class components and functional components in React?",
			"How would you optimize the performance of a large React application?",
			"What is prop drilling and how can you avoid it?",
			"Can you explain how useEffect works and provide a use case?",
			"What are React keys and why are they important?",
			"How do you handle forms in React?",
		},
	},
	{
		keywords: []string{"javascript", "js"},
		questions: []string{
			"Can you explain how closures work in JavaScript?",
			"What is the difference between let, const, and var?",
			"How does asynchronous programming work in JavaScript?",
			"Can you explain the concept of promises?",
			"What is the event loop in JavaScript?",
			"How do you handle errors in JavaScript?",
			"What are arrow functions and how do they differ from regular functions?",
			"Can you explain prototypal inheritance?",
			"What is the difference between == and === in JavaScript?",
			"How does the 'this' keyword work in JavaScript?",
		},
	},
	{
		keywords: []string{"python"},
		questions: []string{
			"Can you explain how decorators work in Python?",
			"What is the difference between lists and tuples?",
			"How does memory management work in Python?",
			"Can you explain generators and iterators?",
			"What are list comprehensions and when would you use them?",
			"How do you handle exceptions in Python?",
			"What is the difference between deep copy and shallow copy?",
			"Can you explain how the GIL works?",
			"What are Python context managers?",
			"How does Python's import system work?",
		},
	},
}

var genericQuestions = []string{
	"Can you describe your experience with software development?",
	"How do you approach debugging complex issues?",
	"What design patterns are you familiar with?",
	"How do you ensure code quality in your projects?",
	"Can you explain your approach to testing?",
	"How do you stay updated with new technologies?",
	"What is your experience with version control systems?",
	"How do you handle technical debt?",
	"Can you describe a challenging project you worked on?",
	"What are your thoughts on code reviews?",
}

func fallbackSet(prompt string) []string {
	lowered := strings.ToLower(prompt)
	for _, entry := range fallbackQuestions {
		for _, keyword := range entry.keywords {
			if strings.Contains(lowered, keyword) {
				return entry.questions
			}
		}
	}
	return genericQuestions
}
