package session

import (
	"errors"
	"fmt"

	"github.com/fatih/color"

	"docchat-client/internal/domain"
	"docchat-client/internal/usecase"
)

var (
	questionLabel = color.New(color.FgCyan, color.Bold)
	answerLabel   = color.New(color.FgGreen, color.Bold)
	noticeStyle   = color.New(color.FgYellow)
	errorStyle    = color.New(color.FgRed, color.Bold)
	citationStyle = color.New(color.Faint)
)

// renderNewTurns prints every turn appended since the previous render. A
// shrunken snapshot means the log was reset; rendering restarts from the top.
func (s *Session) renderNewTurns() {
	snapshot := s.log.Snapshot()
	if len(snapshot) < s.rendered {
		s.rendered = 0
	}
	for _, turn := range snapshot[s.rendered:] {
		s.renderTurn(turn)
	}
	s.rendered = len(snapshot)
}

func (s *Session) renderTurn(turn domain.Turn) {
	switch turn.Role {
	case domain.RoleQuestion:
		questionLabel.Fprint(s.out, "you: ")
		fmt.Fprintln(s.out, turn.Body)
	case domain.RoleAnswer:
		answerLabel.Fprint(s.out, "assistant: ")
		fmt.Fprintln(s.out, turn.Body)
		for _, c := range turn.Citations {
			citationStyle.Fprintf(s.out, "  source: %s (p.%d)\n", c.Title, c.Page)
		}
	case domain.RoleRetrieval:
		noticeStyle.Fprintln(s.out, turn.Body)
		s.renderCandidates(turn.Candidates)
	}
}

func (s *Session) renderCandidates(candidates []domain.Candidate) {
	for i, c := range candidates {
		mark := "[ ]"
		if c.Included {
			mark = "[x]"
		}
		fmt.Fprintf(s.out, "  %s %d. %s (p.%d, score %.3f)\n", mark, i, c.Title, c.Page, c.Score)
		fmt.Fprintf(s.out, "      %s\n", preview(c.Content, 100))
	}
}

func (s *Session) renderDataset(info domain.DatasetInfo, chunks []domain.Chunk) {
	fmt.Fprintf(s.out, "dataset: %d chunk(s), index present: %v\n", info.ChunkCount, info.HasIndex)
	if info.Text != "" {
		fmt.Fprintf(s.out, "text preview: %s\n", preview(info.Text, 200))
	}
	for _, ch := range chunks {
		fmt.Fprintf(s.out, "  #%d %s (p.%d, %d tokens)\n", ch.ID, ch.Title, ch.Page, ch.TokenCount)
	}
}

func (s *Session) renderReport(report string) {
	noticeStyle.Fprintln(s.out, "--- report ---")
	fmt.Fprintln(s.out, report)
}

// renderError maps the usecase taxonomy onto user-facing messages: backend
// failures surface verbatim when a message is present, transport failures as
// a generic connectivity error.
func (s *Session) renderError(err error) {
	var ucErr *usecase.Error
	if !errors.As(err, &ucErr) {
		errorStyle.Fprintf(s.out, "error: %v\n", err)
		return
	}
	switch ucErr.Code {
	case usecase.ErrorTransport:
		errorStyle.Fprintln(s.out, "error: could not reach the server")
	case usecase.ErrorBackend:
		if msg, ok := usecase.BackendMessage(err); ok && msg != "" {
			errorStyle.Fprintf(s.out, "error: %s\n", msg)
		} else {
			errorStyle.Fprintln(s.out, "error: the server reported a failure")
		}
	case usecase.ErrorBusy:
		errorStyle.Fprintln(s.out, "error: still working on the previous request")
	case usecase.ErrorInvalidInput:
		errorStyle.Fprintf(s.out, "error: invalid input (%s)\n", ucErr.Reason)
	default:
		errorStyle.Fprintf(s.out, "error: %v\n", err)
	}
}

func (s *Session) printNotice(msg string) {
	noticeStyle.Fprintln(s.out, msg)
}

func (s *Session) printWelcome() {
	fmt.Fprintln(s.out, "docchat — ask questions about your ingested documents")
	fmt.Fprintln(s.out, "type a question, or /help for commands")
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.out, "commands:")
	fmt.Fprintln(s.out, "  <question>                    retrieve passages for a question")
	fmt.Fprintln(s.out, "  /toggle N                     include/exclude passage N")
	fmt.Fprintln(s.out, "  /confirm                      generate the answer from included passages")
	fmt.Fprintln(s.out, "  /ingest PATH... [--text TEXT] ingest documents and/or pasted text")
	fmt.Fprintln(s.out, "  /data                         show the ingested dataset")
	fmt.Fprintln(s.out, "  /report DEST [-- kw,kw]       generate a trip-preparation report")
	fmt.Fprintln(s.out, "  /quit                         exit")
}

func preview(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
