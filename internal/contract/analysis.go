package contract

import (
	"errors"
	"time"

	"github.com/alexanderramin/timestudy/internal/domain"
	"github.com/alexanderramin/timestudy/internal/msa"
)

type AnalysisRequest struct {
	StudyID string
	Config  msa.Config
	Now     *time.Time
}

// NewAnalysisRequest starts from the configured analysis defaults; callers
// override individual Config fields from flags.
func NewAnalysisRequest(studyID string, defaults msa.Config) AnalysisRequest {
	return AnalysisRequest{StudyID: studyID, Config: defaults}
}

type AnalysisResponse struct {
	GeneratedAt      time.Time       `json:"generatedAt"`
	Study            *domain.Study   `json:"study"`
	MeasurementCount int             `json:"measurementCount"`
	Operators        []string        `json:"operators"`
	Targets          []string        `json:"targets"`
	Result           *AnalysisResult `json:"result"`
}

type AnalysisErrorCode string

const (
	ErrStudyNotFound    AnalysisErrorCode = "STUDY_NOT_FOUND"
	ErrInsufficientData AnalysisErrorCode = "INSUFFICIENT_DATA"
	ErrInvalidRecord    AnalysisErrorCode = "INVALID_RECORD"
	ErrInvalidTransform AnalysisErrorCode = "INVALID_TRANSFORM"
	ErrInvalidConfig    AnalysisErrorCode = "INVALID_CONFIG"
	ErrUnbalancedDesign AnalysisErrorCode = "UNBALANCED_DESIGN"
	ErrAnalysisInternal AnalysisErrorCode = "INTERNAL_ERROR"
)

type AnalysisError struct {
	Code    AnalysisErrorCode
	Message string
	Err     error
}

func (e *AnalysisError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// AnalysisErrorCodeFor maps engine sentinels to response codes.
func AnalysisErrorCodeFor(err error) AnalysisErrorCode {
	switch {
	case errors.Is(err, msa.ErrInsufficientData):
		return ErrInsufficientData
	case errors.Is(err, msa.ErrInvalidRecord):
		return ErrInvalidRecord
	case errors.Is(err, msa.ErrTransform):
		return ErrInvalidTransform
	case errors.Is(err, msa.ErrInvalidConfig):
		return ErrInvalidConfig
	case errors.Is(err, msa.ErrUnbalancedDesign):
		return ErrUnbalancedDesign
	}
	return ErrAnalysisInternal
}
