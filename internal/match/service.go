// File: internal/match/service.go
package match

import (
	"context"
	"time"

	"toski_backend/internal/common"
	"toski_backend/internal/config"

	"go.uber.org/zap"
)

// Service records match results.
type Service interface {
	SubmitMatch(ctx context.Context, req SubmitMatchRequest) error
}

type service struct {
	submitter FormSubmitter
	lenient   bool
	now       func() time.Time
	logger    *zap.Logger
}

// NewService creates a match service. With MATCH_SUBMISSION_LENIENT set, a failed
// form post is logged and reported as success.
func NewService(submitter FormSubmitter, cfg *config.Config, logger *zap.Logger) Service {
	return &service{
		submitter: submitter,
		lenient:   cfg.MatchSubmissionLenient,
		now:       time.Now,
		logger:    logger.Named("MatchService"),
	}
}

func (s *service) SubmitMatch(ctx context.Context, req SubmitMatchRequest) error {
	answers := BuildAnswers(req, s.now())
	if err := s.submitter.Submit(ctx, answers); err != nil {
		if s.lenient {
			s.logger.Warn("Match submission failed, reporting success (lenient mode)", zap.Error(err))
			return nil
		}
		s.logger.Error("Match submission failed", zap.Error(err))
		return common.ErrSubmissionFailed.Wrap(err)
	}
	s.logger.Info("Match submitted", zap.String("date", answers[entryDate]))
	return nil
}
