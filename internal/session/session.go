// Package session is the interactive terminal surface of the client. It
// turns user input into usecase calls and renders the conversation log; it
// holds no conversational state beyond what it has already printed.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"docchat-client/internal/conversation"
	"docchat-client/internal/domain"
	"docchat-client/internal/usecase"
)

// Session drives the REPL. Plain input submits a question; slash commands
// reach the other workflows.
type Session struct {
	chat    *usecase.ChatService
	ingest  *usecase.IngestService
	dataset *usecase.DatasetService
	report  *usecase.ReportService
	log     *conversation.Log

	in  io.Reader
	out io.Writer

	// rendered counts log turns already printed, so each render emits only
	// what is new since the last snapshot.
	rendered int
	// pendingRetrievalID addresses the retrieval turn awaiting confirmation.
	pendingRetrievalID string

	// readFile is a seam for tests; defaults to os.ReadFile.
	readFile func(name string) ([]byte, error)
}

// New creates a Session reading from in and writing to out.
func New(chat *usecase.ChatService, ingest *usecase.IngestService, dataset *usecase.DatasetService, report *usecase.ReportService, log *conversation.Log, in io.Reader, out io.Writer) (*Session, error) {
	if chat == nil || ingest == nil || dataset == nil || report == nil {
		return nil, errors.New("session: all services must be set")
	}
	if log == nil {
		return nil, errors.New("session: conversation log must not be nil")
	}
	return &Session{
		chat:     chat,
		ingest:   ingest,
		dataset:  dataset,
		report:   report,
		log:      log,
		in:       in,
		out:      out,
		readFile: os.ReadFile,
	}, nil
}

// Run reads input until EOF or /quit.
func (s *Session) Run(ctx context.Context) error {
	s.printWelcome()
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}
		s.handleLine(ctx, line)
	}
	return scanner.Err()
}

func (s *Session) handleLine(ctx context.Context, line string) {
	if !strings.HasPrefix(line, "/") {
		s.submitQuestion(ctx, line)
		return
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case "/help":
		s.printHelp()
	case "/toggle":
		s.toggle(fields[1:])
	case "/confirm":
		s.confirm(ctx)
	case "/ingest":
		s.runIngest(ctx, strings.TrimSpace(strings.TrimPrefix(line, "/ingest")))
	case "/data":
		s.showDataset(ctx)
	case "/report":
		s.runReport(ctx, strings.TrimSpace(strings.TrimPrefix(line, "/report")))
	default:
		s.printNotice(fmt.Sprintf("unknown command %s, try /help", fields[0]))
	}
}

func (s *Session) submitQuestion(ctx context.Context, question string) {
	turnID, err := s.chat.Submit(ctx, question)
	if err != nil {
		s.renderNewTurns()
		s.renderError(err)
		return
	}
	s.pendingRetrievalID = turnID
	s.renderNewTurns()
	s.printNotice("toggle passages with /toggle N, then /confirm to generate the answer")
}

func (s *Session) toggle(args []string) {
	if s.pendingRetrievalID == "" {
		s.printNotice("no retrieval batch awaiting confirmation")
		return
	}
	if len(args) != 1 {
		s.printNotice("usage: /toggle N")
		return
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		s.printNotice("usage: /toggle N")
		return
	}
	s.chat.Toggle(s.pendingRetrievalID, idx)
	if turn, ok := s.log.Find(s.pendingRetrievalID); ok {
		s.renderCandidates(turn.Candidates)
	}
}

func (s *Session) confirm(ctx context.Context) {
	if s.pendingRetrievalID == "" {
		s.printNotice("no retrieval batch awaiting confirmation")
		return
	}
	err := s.chat.Confirm(ctx, s.pendingRetrievalID)
	if err != nil {
		s.renderError(err)
		return
	}
	s.pendingRetrievalID = ""
	s.renderNewTurns()
}

// runIngest parses "/ingest PATH... [--text PASTED TEXT]" arguments.
func (s *Session) runIngest(ctx context.Context, args string) {
	var paths []string
	var pasted string
	if i := strings.Index(args, "--text"); i >= 0 {
		pasted = strings.TrimSpace(args[i+len("--text"):])
		args = args[:i]
	}
	paths = strings.Fields(args)

	in := usecase.IngestInput{PastedText: pasted}
	for _, p := range paths {
		data, err := s.readFile(p)
		if err != nil {
			s.printNotice(fmt.Sprintf("cannot read %s: %v", p, err))
			return
		}
		in.Files = append(in.Files, domain.IngestFile{Name: p, Data: data})
	}

	stats, err := s.ingest.Ingest(ctx, in)
	if err != nil {
		s.renderError(err)
		return
	}
	// The log was reset together with the replaced dataset.
	s.rendered = 0
	s.pendingRetrievalID = ""
	s.printNotice(fmt.Sprintf("ingested %d file(s) into %d chunks (text input: %v); conversation cleared",
		stats.FileCount, stats.ChunkCount, stats.HasTextInput))
}

func (s *Session) showDataset(ctx context.Context) {
	s.dataset.Refresh(ctx)
	info, ok := s.dataset.Info()
	if !ok {
		s.printNotice("no dataset information available yet")
		return
	}
	s.renderDataset(info, s.dataset.ChunkList())
}

// runReport parses "/report DESTINATION [-- keyword,keyword]" arguments.
func (s *Session) runReport(ctx context.Context, args string) {
	destination := args
	var keywords []string
	if i := strings.Index(args, "--"); i >= 0 {
		destination = strings.TrimSpace(args[:i])
		for _, k := range strings.Split(args[i+len("--"):], ",") {
			keywords = append(keywords, strings.TrimSpace(k))
		}
	}

	report, err := s.report.Generate(ctx, destination, keywords)
	if err != nil {
		s.renderError(err)
		return
	}
	s.renderReport(report)
}
