// Package bank loads question banks from files.
package bank

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/kana-tools/kanaq/internal/model"
)

const separator = " : "

var parenRe = regexp.MustCompile(`\s*\([^)]*\)`)

// VisibleKey strips parenthetical annotations from a prompt. The result is
// the stable key used for statistics. Applying it twice equals applying it
// once.
func VisibleKey(prompt string) string {
	return parenRe.ReplaceAllString(prompt, "")
}

// Load reads questions from the provided file path. Each line must be in
// the form "prompt : answer"; malformed lines are skipped with a warning
// and answers are lowercased.
func Load(path string) ([]model.Question, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only bank file.
			_ = cerr
		}
	}()

	var questions []model.Question
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, separator)
		if len(parts) != 2 {
			fmt.Fprintf(os.Stderr, "skipping invalid line: %s\n", line)
			continue
		}
		questions = append(questions, model.Question{
			Prompt: strings.TrimSpace(parts[0]),
			Answer: strings.ToLower(strings.TrimSpace(parts[1])),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("question bank is empty")
	}
	return questions, nil
}

// Answers returns the deduplicated answer set of a bank, preserving first
// appearance order. It seeds external autocompletion.
func Answers(questions []model.Question) []string {
	seen := make(map[string]struct{}, len(questions))
	out := make([]string, 0, len(questions))
	for _, q := range questions {
		if _, ok := seen[q.Answer]; ok {
			continue
		}
		seen[q.Answer] = struct{}{}
		out = append(out, q.Answer)
	}
	return out
}

// VisibleKeys returns the distinct visible prompts of a bank.
func VisibleKeys(questions []model.Question) []string {
	seen := make(map[string]struct{}, len(questions))
	out := make([]string, 0, len(questions))
	for _, q := range questions {
		key := VisibleKey(q.Prompt)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
