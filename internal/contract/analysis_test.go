package contract

import (
	"errors"
	"fmt"
	"testing"

	"github.com/alexanderramin/timestudy/internal/domain"
	"github.com/alexanderramin/timestudy/internal/msa"
	"github.com/stretchr/testify/assert"
)

func TestNewAnalysisRequest_CarriesDefaults(t *testing.T) {
	defaults := msa.Config{Transform: domain.TransformLn, ConfidenceLevel: 0.99}
	req := NewAnalysisRequest("study-1", defaults)

	assert.Equal(t, "study-1", req.StudyID)
	assert.Equal(t, domain.TransformLn, req.Config.Transform)
	assert.Equal(t, 0.99, req.Config.ConfidenceLevel)
	assert.Nil(t, req.Now)
}

func TestAnalysisErrorCodeFor(t *testing.T) {
	tests := []struct {
		err  error
		want AnalysisErrorCode
	}{
		{fmt.Errorf("wrapped: %w", msa.ErrInsufficientData), ErrInsufficientData},
		{msa.ErrInvalidRecord, ErrInvalidRecord},
		{msa.ErrTransform, ErrInvalidTransform},
		{msa.ErrInvalidConfig, ErrInvalidConfig},
		{msa.ErrUnbalancedDesign, ErrUnbalancedDesign},
		{errors.New("disk on fire"), ErrAnalysisInternal},
	}
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			assert.Equal(t, tt.want, AnalysisErrorCodeFor(tt.err))
		})
	}
}

func TestAnalysisError_UnwrapsToSentinel(t *testing.T) {
	err := &AnalysisError{Code: ErrInsufficientData, Message: "1 measurement", Err: msa.ErrInsufficientData}

	assert.Equal(t, "INSUFFICIENT_DATA: 1 measurement", err.Error())
	assert.ErrorIs(t, err, msa.ErrInsufficientData)
}
