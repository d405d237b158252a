package service

import (
	"context"
	"fmt"
	"strings"

	"notelite-be/internal/dto"
	"notelite-be/internal/pkg/logger"
	"notelite-be/internal/pkg/serverutils"
	"notelite-be/pkg/llm"
)

const (
	summaryPromptTemplate = "Summarize this note for me:\n\nTitle: %s\nContent: %s"
	summaryTemperature    = 0.7
	summaryFallback       = "Failed to generate summary."
)

type ISummarizeService interface {
	Summarize(ctx context.Context, req *dto.SummarizeRequest) (*dto.SummarizeResponse, error)
}

type summarizeService struct {
	llmProvider llm.LLMProvider
	model       string
	logger      logger.ILogger
}

func NewSummarizeService(llmProvider llm.LLMProvider, model string, sysLogger logger.ILogger) ISummarizeService {
	return &summarizeService{
		llmProvider: llmProvider,
		model:       model,
		logger:      sysLogger,
	}
}

// Summarize forwards the note as a single user-role completion request.
// One synchronous round trip: no retry, no streaming, no caching of
// previous summaries.
func (s *summarizeService) Summarize(ctx context.Context, req *dto.SummarizeRequest) (*dto.SummarizeResponse, error) {
	if req.Title == "" || req.Content == "" {
		return nil, serverutils.NewValidationError("Title and content are required.")
	}

	// Title and content are interpolated verbatim; the template is the contract.
	prompt := fmt.Sprintf(summaryPromptTemplate, req.Title, req.Content)

	out, err := s.llmProvider.Generate(ctx, prompt,
		llm.WithModel(s.model),
		llm.WithTemperature(summaryTemperature),
	)
	if err != nil {
		// The upstream error body stays in the logs for operators; the
		// client only ever sees the fixed message.
		s.logger.Error("summarize", "upstream completion call failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, serverutils.NewUpstreamError("Failed to generate summary from OpenAI.", err)
	}

	summary := strings.TrimSpace(out)
	if summary == "" {
		summary = summaryFallback
	}

	return &dto.SummarizeResponse{Summary: summary}, nil
}
