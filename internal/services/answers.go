package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/data-question-api/internal/completion"
	"github.com/BerylCAtieno/data-question-api/internal/extractor"
	"github.com/BerylCAtieno/data-question-api/internal/models"
	"github.com/BerylCAtieno/data-question-api/internal/storage"
	"github.com/BerylCAtieno/data-question-api/internal/utils"
)

const (
	GeneralSystemPrompt = "You are a helpful assistant for a Tools in Data Science course. Answer the question accurately and concisely."
	DataSystemPrompt    = "You are a helpful assistant that answers questions about data files."

	// SampleRows is how many table rows are shown to the model.
	SampleRows = 10

	answerColumn      = "answer"
	answerColumnQuery = "answer column"
	extractedDir      = "extracted"
)

type AnswerService interface {
	Answer(ctx context.Context, req *models.AskRequest) (*models.AnswerResponse, error)
}

type answerService struct {
	completer    completion.Completer
	scratch      storage.Scratch
	logger       *utils.Logger
	extractLimit int64
}

type Option func(*answerService)

// WithExtractLimit caps the total uncompressed bytes taken from one archive.
func WithExtractLimit(maxBytes int64) Option {
	return func(s *answerService) {
		s.extractLimit = maxBytes
	}
}

func NewService(completer completion.Completer, scratch storage.Scratch, logger *utils.Logger, opts ...Option) AnswerService {
	s := &answerService{
		completer: completer,
		scratch:   scratch,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Answer resolves a question, using the first CSV table inside an uploaded
// zip archive when there is one.
func (s *answerService) Answer(ctx context.Context, req *models.AskRequest) (*models.AnswerResponse, error) {
	if req.HasFile() {
		resp, found, err := s.answerFromUpload(ctx, req)
		if err != nil || found {
			return resp, err
		}
	}

	s.logger.Info("Answering question directly", "question_length", len(req.Question))
	return s.complete(ctx, GeneralSystemPrompt, req.Question)
}

// answerFromUpload reports found=false when the upload holds no usable table.
func (s *answerService) answerFromUpload(ctx context.Context, req *models.AskRequest) (*models.AnswerResponse, bool, error) {
	scope, err := s.scratch.Open()
	if err != nil {
		return nil, false, utils.NewInternalError("failed to create temporary storage", err)
	}
	defer func() {
		if err := scope.Close(); err != nil {
			s.logger.Error("Failed to remove temporary storage", "dir", scope.Dir(), "error", err)
		}
	}()

	archivePath, err := scope.Save(req.File.Name, req.File.Data)
	if err != nil {
		return nil, false, utils.NewInternalError("failed to store upload", err)
	}

	if !strings.HasSuffix(req.File.Name, ".zip") {
		s.logger.Debug("Ignoring non-zip upload", "filename", req.File.Name)
		return nil, false, nil
	}

	dest, err := scope.Mkdir(extractedDir)
	if err != nil {
		return nil, false, utils.NewInternalError("failed to create extraction dir", err)
	}
	if err := extractor.ExtractZip(archivePath, dest, s.extractLimit); err != nil {
		return nil, false, utils.NewExtractionError("failed to extract archive", err)
	}

	csvPath, ok, err := extractor.FindFirst(dest, ".csv")
	if err != nil {
		return nil, false, utils.NewExtractionError("failed to read extracted archive", err)
	}
	if !ok {
		s.logger.Info("No CSV found in archive", "filename", req.File.Name)
		return nil, false, nil
	}

	table, err := extractor.ParseCSVFile(csvPath)
	if err != nil {
		return nil, false, utils.NewParseError("failed to parse CSV", err)
	}

	resp, err := s.answerFromTable(ctx, req.Question, table)
	return resp, true, err
}

func (s *answerService) answerFromTable(ctx context.Context, question string, table *models.Table) (*models.AnswerResponse, error) {
	if strings.Contains(strings.ToLower(question), answerColumnQuery) {
		if col := table.Column(answerColumn); col >= 0 {
			if table.NumRows() == 0 {
				return nil, utils.NewParseError("answer column has no values", nil)
			}
			s.logger.Info("Answered from answer column", "rows", table.NumRows())
			return &models.AnswerResponse{Answer: table.Rows[0][col]}, nil
		}
	}

	summary, err := extractor.Summarize(table, SampleRows)
	if err != nil {
		return nil, utils.NewParseError("failed to summarize table", err)
	}

	s.logger.Info("Answering from table sample", "rows", summary.Rows, "columns", summary.Columns)
	return s.complete(ctx, DataSystemPrompt, TablePrompt(summary, question))
}

func (s *answerService) complete(ctx context.Context, systemPrompt, userPrompt string) (*models.AnswerResponse, error) {
	text, err := s.completer.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, utils.NewUpstreamError("completion service failed", err)
	}
	return &models.AnswerResponse{Answer: strings.TrimSpace(text)}, nil
}

// TablePrompt is the user message sent alongside a table sample.
func TablePrompt(summary *models.TableSummary, question string) string {
	return fmt.Sprintf("I have a CSV file with the following data (showing first %d rows): %s. The file has %d rows and %d columns. %s",
		SampleRows, summary.Sample, summary.Rows, summary.Columns, question)
}
