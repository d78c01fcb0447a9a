package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/tutorhubbd/tutorhub-api/internal/models"
	"github.com/tutorhubbd/tutorhub-api/pkg/config"
)

// RecommendService fronts the tutor recommendation engine. The engine
// itself is external and not yet deployed, so every prompt gets the
// acknowledgement payload with an empty tutor list.
type RecommendService struct {
	config config.RecommenderConfig
	logger *zap.Logger
}

// NewRecommendService constructs a RecommendService instance.
func NewRecommendService(cfg config.RecommenderConfig, logger *zap.Logger) *RecommendService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BaseURL != "" {
		logger.Info("recommendation engine configured but not yet integrated", zap.String("base_url", cfg.BaseURL))
	}
	return &RecommendService{config: cfg, logger: logger}
}

// Recommend acknowledges a prompt unconditionally, echoing whatever was
// sent, empty prompts included. The contract is stable so clients can
// integrate ahead of the engine going live.
func (s *RecommendService) Recommend(ctx context.Context, req models.RecommendRequest) (*models.RecommendResponse, error) {
	return &models.RecommendResponse{
		Message:           "AI recommendation is coming soon",
		PromptReceived:    req.Prompt,
		RecommendedTutors: []string{},
	}, nil
}
