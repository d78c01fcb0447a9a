package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorhubbd/tutorhub-api/internal/models"
	"github.com/tutorhubbd/tutorhub-api/pkg/config"
)

func TestRecommendEchoesPrompt(t *testing.T) {
	svc := NewRecommendService(config.RecommenderConfig{}, nil)

	res, err := svc.Recommend(context.Background(), models.RecommendRequest{Prompt: "physics tutor in Dhaka"})
	require.NoError(t, err)
	assert.Equal(t, "physics tutor in Dhaka", res.PromptReceived)
	assert.NotEmpty(t, res.Message)
	assert.Empty(t, res.RecommendedTutors)
	assert.NotNil(t, res.RecommendedTutors)
}

func TestRecommendAcceptsEmptyPrompt(t *testing.T) {
	svc := NewRecommendService(config.RecommenderConfig{}, nil)

	res, err := svc.Recommend(context.Background(), models.RecommendRequest{})
	require.NoError(t, err)
	assert.Equal(t, "", res.PromptReceived)
	assert.Empty(t, res.RecommendedTutors)
}
