package interview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneratorStructuredTier(t *testing.T) {
	client := &scriptedClient{replies: []string{`["What are hooks?", "What is JSX?", "What are keys?"]`}}
	g := NewGenerator(client, testLogger())

	questions, err := g.Generate(context.Background(), "React fundamentals", 2)
	require.NoError(t, err)
	require.Equal(t, []string{"What are hooks?", "What is JSX?"}, questions)
	require.Equal(t, 1, client.callCount())
}

func TestGeneratorStructuredTierFencedReply(t *testing.T) {
	reply := "Here you go:\n```json\n[\"One?\", \"Two?\"]\n```\nHope that helps."
	client := &scriptedClient{replies: []string{reply}}
	g := NewGenerator(client, testLogger())

	questions, err := g.Generate(context.Background(), "testing", 2)
	require.NoError(t, err)
	require.Equal(t, []string{"One?", "Two?"}, questions)
}

func TestGeneratorFallsBackToPerQuestionTier(t *testing.T) {
	client := &scriptedClient{replies: []string{
		"I cannot produce JSON right now, sorry.",
		`"What is a closure"`,
		"Explain the event loop",
	}}
	g := NewGenerator(client, testLogger())

	questions, err := g.Generate(context.Background(), "javascript", 2)
	require.NoError(t, err)
	require.Equal(t, []string{"What is a closure?", "Explain the event loop?"}, questions)
	require.Equal(t, 3, client.callCount())
}

func TestGeneratorFallsBackToStaticTier(t *testing.T) {
	boom := errors.New("model unavailable")
	client := &scriptedClient{errs: []error{boom, boom, boom, boom}}
	g := NewGenerator(client, testLogger())

	questions, err := g.Generate(context.Background(), "React interview", 3)
	require.NoError(t, err)
	require.Len(t, questions, 3)
	for _, q := range questions {
		require.NotEmpty(t, q)
		require.Contains(t, strings.ToLower(q), "react")
	}
}

func TestGeneratorStaticTierKeywordTable(t *testing.T) {
	cases := []struct {
		prompt string
		needle string
	}{
		{prompt: "Senior React developer screen", needle: "React"},
		{prompt: "core JavaScript knowledge", needle: "JavaScript"},
		{prompt: "Python backend role", needle: "Python"},
		{prompt: "general engineering aptitude", needle: "software development"},
	}

	for _, tc := range cases {
		set := fallbackSet(tc.prompt)
		require.NotEmpty(t, set, tc.prompt)
		require.Contains(t, set[0], tc.needle, tc.prompt)
	}
}

func TestGeneratorStaticTierCyclesBeyondTableSize(t *testing.T) {
	// Empty replies fail the first two tiers, landing on the static table.
	g := NewGenerator(&scriptedClient{}, testLogger())

	questions, err := g.Generate(context.Background(), "python", 12)
	require.NoError(t, err)
	require.Len(t, questions, 12)
	require.Equal(t, questions[0], questions[10])
}

func TestGeneratorRejectsNonPositiveCount(t *testing.T) {
	g := NewGenerator(&scriptedClient{}, testLogger())

	_, err := g.Generate(context.Background(), "React", 0)
	require.ErrorIs(t, err, ErrSessionCreation)

	_, err = g.Generate(context.Background(), "React", -3)
	require.ErrorIs(t, err, ErrSessionCreation)
}

func TestGeneratorRejectsShortArray(t *testing.T) {
	client := &scriptedClient{
		replies: []string{`["only one?"]`, "Second question", "Third question", "Fourth question"},
	}
	g := NewGenerator(client, testLogger())

	questions, err := g.Generate(context.Background(), "go", 3)
	require.NoError(t, err)
	require.Equal(t, []string{"Second question?", "Third question?", "Fourth question?"}, questions)
}

func TestExtractJSONArray(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare", in: `["a", "b"]`, want: `["a", "b"]`},
		{name: "surrounded", in: `Sure! ["a"] done`, want: `["a"]`},
		{name: "fenced", in: "```json\n[\"a\"]\n```", want: `["a"]`},
		{name: "plain fence", in: "```\n[\"a\"]\n```", want: `["a"]`},
		{name: "missing", in: "no array here", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, extractJSONArray(tc.in))
		})
	}
}
