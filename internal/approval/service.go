package approval

import (
	"errors"
	"fmt"

	"loan-approval/internal/common"
	"loan-approval/internal/features"
	"loan-approval/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Status is the outcome of one evaluation.
type Status int

const (
	StatusApproved Status = iota
	StatusDenied
	StatusInvalidNumeric
	StatusInvalidCategorical
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusApproved:
		return "approved"
	case StatusDenied:
		return "denied"
	case StatusInvalidNumeric:
		return "invalid_numeric"
	case StatusInvalidCategorical:
		return "invalid_categorical"
	default:
		return "error"
	}
}

// Verdict is what the form displays after one action.
type Verdict struct {
	Status    Status
	Message   string
	RequestID string
	Err       error
}

// Decided reports whether the model produced a label.
func (v Verdict) Decided() bool {
	return v.Status == StatusApproved || v.Status == StatusDenied
}

// Recorder receives per-evaluation counters.
type Recorder interface {
	VerdictInc(verdict string)
	ValidationErrorInc(kind string)
	UnknownOccupationInc()
}

type nopRecorder struct{}

func (nopRecorder) VerdictInc(string)         {}
func (nopRecorder) ValidationErrorInc(string) {}
func (nopRecorder) UnknownOccupationInc()     {}

// Service evaluates form submissions against a loaded Context. It never
// returns an error: every failure becomes a Verdict and the Service stays usable.
type Service struct {
	ctx      *Context
	recorder Recorder
}

func NewService(ctx *Context, recorder Recorder) *Service {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Service{ctx: ctx, recorder: recorder}
}

func (s *Service) Context() *Context { return s.ctx }

// Evaluate runs build -> scale -> predict for one submission.
func (s *Service) Evaluate(form features.Form) (v Verdict) {
	requestID := uuid.NewString()
	logger := log.With().Str("request_id", requestID).Logger()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%v", r)
			logger.Error().Interface("panic", r).Msg("Evaluation panicked")
			v = s.fail(requestID, err)
		}
	}()

	vec, applicant, err := s.ctx.Builder.Build(form)
	if err != nil {
		switch {
		case errors.Is(err, features.ErrInvalidNumeric):
			logger.Info().Err(err).Msg("Rejected numeric input")
			s.recorder.ValidationErrorInc(metrics.KindNumeric)
			s.recorder.VerdictInc(metrics.VerdictError)
			return Verdict{Status: StatusInvalidNumeric, Message: common.MsgInvalidNumeric, RequestID: requestID, Err: err}
		case errors.Is(err, features.ErrInvalidCategorical):
			logger.Info().Err(err).Msg("Rejected categorical input")
			s.recorder.ValidationErrorInc(metrics.KindCategorical)
			s.recorder.VerdictInc(metrics.VerdictError)
			return Verdict{Status: StatusInvalidCategorical, Message: common.MsgInvalidCategorical, RequestID: requestID, Err: err}
		default:
			return s.fail(requestID, err)
		}
	}

	if !applicant.KnownOccupation {
		logger.Warn().Str("occupation", applicant.Occupation).Msg("Occupation matches no schema column, encoding as all zeros")
		s.recorder.UnknownOccupationInc()
	}

	label, err := s.ctx.Predictor.Predict(vec)
	if err != nil {
		return s.fail(requestID, err)
	}

	logger.Info().
		Int("age", applicant.Age).
		Stringer("gender", applicant.Gender).
		Stringer("education", applicant.Education).
		Stringer("marital", applicant.Marital).
		Str("occupation", applicant.Occupation).
		Int("label", label).
		Msg("Prediction complete")

	if label == 1 {
		s.recorder.VerdictInc(metrics.VerdictApproved)
		return Verdict{Status: StatusApproved, Message: common.MsgApproved, RequestID: requestID}
	}
	s.recorder.VerdictInc(metrics.VerdictDenied)
	return Verdict{Status: StatusDenied, Message: common.MsgDenied, RequestID: requestID}
}

func (s *Service) fail(requestID string, err error) Verdict {
	log.Error().Err(err).Str("request_id", requestID).Msg("Evaluation failed")
	s.recorder.VerdictInc(metrics.VerdictError)
	return Verdict{Status: StatusError, Message: common.MsgErrorPrefix + err.Error(), RequestID: requestID, Err: err}
}
