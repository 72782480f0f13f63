package wizard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"business-registration/internal/common/errors"
	"business-registration/internal/common/logger"
	"business-registration/internal/common/metrics"
	"business-registration/internal/common/validation"
	"business-registration/internal/models"
	"business-registration/internal/registration/form"
	"business-registration/internal/registration/submission"
)

// Submitter delivers a validated document to the sink.
type Submitter interface {
	Submit(ctx context.Context, doc models.Document) (*submission.Ack, error)
}

// Notice is the latest global message of the session.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
	At      time.Time   `json:"at"`
}

type SessionDependencies struct {
	Logger    logger.Logger
	Validator *form.Validator
	Submitter Submitter
}

// Session is one wizard run. It owns its document exclusively; all methods
// are safe for concurrent use and at most one submission is in flight.
type Session struct {
	id        string
	logger    logger.Logger
	validator *form.Validator
	submitter Submitter

	mu         sync.Mutex
	registry   *form.Registry
	tab        Tab
	submitting bool
	notice     *Notice
}

func NewSession(deps SessionDependencies) (*Session, error) {
	if deps.Submitter == nil {
		return nil, fmt.Errorf("submitter is required")
	}

	v := deps.Validator
	if v == nil {
		var err error
		if v, err = form.NewValidator(); err != nil {
			return nil, fmt.Errorf("failed to build validator: %w", err)
		}
	}

	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	id := uuid.NewString()
	return &Session{
		id:        id,
		logger:    log.Named("wizard").WithFields(map[string]interface{}{"sessionId": id}),
		validator: v,
		submitter: deps.Submitter,
		registry:  form.NewRegistry(),
		tab:       TabBusinessDetails,
	}, nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) ActiveTab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab
}

func (s *Session) IsSubmitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Notice returns the latest notice, if any.
func (s *Session) Notice() (Notice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notice == nil {
		return Notice{}, false
	}
	return *s.notice, true
}

func (s *Session) ClearNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = nil
}

// ==========================
// Field access
// ==========================

func (s *Session) Get(path string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Get(path)
}

func (s *Session) Set(path string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Set(path, value)
}

func (s *Session) ErrorsFor(path string) (validation.ValidationError, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.ErrorsFor(path)
}

func (s *Session) Errors() []validation.ValidationError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Errors()
}

func (s *Session) Document() models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Document()
}

// Load replaces the document with a saved draft.
func (s *Session) Load(doc models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Load(doc)
}

// ==========================
// List editors
// ==========================

func (s *Session) SetHours(day int, openTime, closeTime string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.SetHours(day, openTime, closeTime)
}

func (s *Session) AddService() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.AddService()
}

func (s *Session) RemoveService(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.RemoveService(index)
}

func (s *Session) AddTag(index int, tag string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.AddTag(index, tag)
}

func (s *Session) RemoveTag(index int, tag string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.RemoveTag(index, tag)
}

func (s *Session) FillFullAddress() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.FillFullAddress()
}

// ==========================
// Navigation
// ==========================

// Next advances one tab. Leaving the business tab requires the business
// details to validate; on failure the tab is unchanged, per-field errors are
// recorded and a VALIDATION_FAILED error is returned. Next on the last tab
// is a no-op.
func (s *Session) Next() (Tab, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tab == TabBusinessDetails {
		doc := s.registry.Document()
		scope := form.BusinessDetailsScope()
		result := s.validator.Validate(&doc, scope)
		s.registry.Apply(scope, result)

		if !result.Valid {
			metrics.ValidationFailures.WithLabelValues(TabBusinessDetails.String()).Inc()
			s.setNotice(NoticeError, errors.MsgBusinessDetailsInvalid)
			s.logger.Info("Business details incomplete", map[string]interface{}{
				"fields": result.Fields(),
			})
			return s.tab, s.sessionError(errors.NewValidationFailedError(errors.MsgBusinessDetailsInvalid, result.Fields()))
		}
	}

	s.moveTo(s.tab.next())
	return s.tab, nil
}

// Previous moves back one tab without validating.
func (s *Session) Previous() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveTo(s.tab.previous())
	return s.tab
}

func (s *Session) moveTo(tab Tab) {
	if tab == s.tab {
		return
	}
	metrics.TabTransitions.WithLabelValues(s.tab.String(), tab.String()).Inc()
	s.logger.Debug("Tab changed", map[string]interface{}{
		"from": s.tab.String(),
		"to":   tab.String(),
	})
	s.tab = tab
}

// sessionError normalizes err and tags it with the session id.
func (s *Session) sessionError(err error) *errors.StandardError {
	return errors.AsStandardError(err).WithMetadata("sessionId", s.id)
}

func (s *Session) setNotice(level NoticeLevel, message string) {
	s.notice = &Notice{Level: level, Message: message, At: time.Now().UTC()}
}

// ==========================
// Submission
// ==========================

// Submit validates the whole document and hands it to the submitter. On
// success the document is reset and the wizard returns to the first tab; on
// failure the document is kept. A second call while one is in flight fails
// with SUBMISSION_IN_PROGRESS.
func (s *Session) Submit(ctx context.Context) (*submission.Ack, error) {
	s.mu.Lock()
	if s.tab != TabServices {
		tab := s.tab
		s.mu.Unlock()
		return nil, s.sessionError(errors.NewInvalidTransitionError("submit", tab.String()))
	}
	if s.submitting {
		s.mu.Unlock()
		return nil, s.sessionError(errors.NewSubmissionInProgressError())
	}

	doc := s.registry.Document()
	all := form.AllPaths(&doc)
	result := s.validator.Validate(&doc, all)
	s.registry.Apply(all, result)
	if !result.Valid {
		metrics.ValidationFailures.WithLabelValues("submit").Inc()
		s.setNotice(NoticeError, errors.MsgFormInvalid)
		s.mu.Unlock()
		return nil, s.sessionError(errors.NewValidationFailedError(errors.MsgFormInvalid, result.Fields()))
	}

	s.submitting = true
	s.mu.Unlock()

	s.logger.Info("Submitting registration", map[string]interface{}{
		"businessName": doc.BusinessName,
		"services":     len(doc.Services),
	})
	ack, err := s.submitter.Submit(ctx, doc)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false

	if err != nil {
		stdErr := s.sessionError(err)
		s.setNotice(NoticeError, stdErr.Message)
		return nil, stdErr
	}
	if ack == nil {
		ack = &submission.Ack{Success: true}
	}

	s.registry.Reset()
	s.moveTo(TabBusinessDetails)
	s.setNotice(NoticeSuccess, MsgSubmitted)
	s.logger.Info("Registration submitted", map[string]interface{}{
		"statusCode": ack.StatusCode,
	})
	return ack, nil
}
