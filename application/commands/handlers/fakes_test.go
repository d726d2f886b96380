package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"essay-backend/application/ports"
	"essay-backend/domain/core/entities"
	"essay-backend/domain/core/valueobjects"
	"essay-backend/domain/events"
	apperrors "essay-backend/pkg/errors"
)

// callLog records collaborator calls in the order they happen.
type callLog struct {
	calls []string
}

func (l *callLog) add(call string) { l.calls = append(l.calls, call) }

type fakeEssayRepo struct {
	log      *callLog
	items    map[string]*entities.Essay
	statuses []valueobjects.EssayStatus
	// crossPartition makes FindByID ignore the owner, like a corrupted
	// or misrouted lookup would.
	crossPartition bool
	createErr      error
}

func newFakeEssayRepo(log *callLog) *fakeEssayRepo {
	return &fakeEssayRepo{log: log, items: map[string]*entities.Essay{}}
}

func (r *fakeEssayRepo) put(e *entities.Essay) {
	cp := *e
	r.items[e.ID] = &cp
}

func (r *fakeEssayRepo) Create(_ context.Context, e *entities.Essay) error {
	r.log.add("essays.Create")
	if r.createErr != nil {
		return r.createErr
	}
	r.put(e)
	return nil
}

func (r *fakeEssayRepo) FindByID(_ context.Context, userID, essayID string) (*entities.Essay, error) {
	r.log.add("essays.FindByID")
	e, ok := r.items[essayID]
	if !ok || (!r.crossPartition && e.UserID != userID) {
		return nil, apperrors.NewNotFoundError("Essay")
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEssayRepo) Update(_ context.Context, userID, essayID string, u ports.EssayUpdate) error {
	r.log.add("essays.Update")
	e, ok := r.items[essayID]
	if !ok || e.UserID != userID {
		return apperrors.NewNotFoundError("Essay")
	}
	if u.Status != nil {
		e.Status = *u.Status
		r.statuses = append(r.statuses, *u.Status)
	}
	if u.ExtractedText != nil {
		e.ExtractedText = *u.ExtractedText
	}
	if u.Correction != nil {
		e.Correction = u.Correction
	} else if u.ClearCorrection {
		e.Correction = nil
	}
	e.UpdatedAt = time.Now()
	return nil
}

func (r *fakeEssayRepo) Delete(_ context.Context, userID, essayID string) error {
	r.log.add("essays.Delete")
	delete(r.items, essayID)
	return nil
}

func (r *fakeEssayRepo) ListByUser(context.Context, string, ports.ListOptions) (*ports.EssayPage, error) {
	return &ports.EssayPage{}, nil
}

func (r *fakeEssayRepo) ListByStatus(context.Context, string, valueobjects.EssayStatus, ports.ListOptions) (*ports.EssayPage, error) {
	return &ports.EssayPage{}, nil
}

type fakeQueue struct {
	log      *callLog
	messages []ports.ProcessEssayMessage
	err      error
}

func (q *fakeQueue) Send(_ context.Context, message interface{}, _ time.Duration) error {
	q.log.add("queue.Send")
	if q.err != nil {
		return q.err
	}
	q.messages = append(q.messages, message.(ports.ProcessEssayMessage))
	return nil
}

type fakePublisher struct {
	log    *callLog
	events []events.DomainEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, evts ...events.DomainEvent) error {
	p.log.add("events.Publish")
	p.events = append(p.events, evts...)
	return p.err
}

type fakeStorage struct {
	log     *callLog
	deleted []string
	err     error
}

func (s *fakeStorage) PresignUpload(_ context.Context, key, contentType string, _ time.Duration) (string, error) {
	s.log.add("storage.PresignUpload")
	return "https://bucket.s3.amazonaws.com/" + key + "?type=" + contentType, s.err
}

func (s *fakeStorage) PresignDownload(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://bucket.s3.amazonaws.com/" + key, s.err
}

func (s *fakeStorage) GetObject(context.Context, string) ([]byte, error) {
	return nil, errors.New("not used")
}

func (s *fakeStorage) DeleteObject(_ context.Context, key string) error {
	s.log.add("storage.DeleteObject")
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, key)
	return nil
}

type fakeExtractor struct {
	texts map[valueobjects.FileType]string
}

func (e *fakeExtractor) ExtractText(_ context.Context, fileKey string, fileType valueobjects.FileType) (string, error) {
	text, ok := e.texts[fileType]
	if !ok {
		return "", fmt.Errorf("unsupported file type: %q", fileType)
	}
	return text, nil
}

type stubGrader struct {
	scores   [entities.CompetencyCount]int
	err      error
	requests []ports.GradeRequest
}

func (g *stubGrader) Grade(_ context.Context, req ports.GradeRequest) (*entities.Evaluation, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	var ev entities.Evaluation
	for i, s := range g.scores {
		ev.Competencies[i] = entities.CompetencyScore{Score: s, Feedback: fmt.Sprintf("c%d", i+1)}
	}
	ev.OverallFeedback = "ok"
	return &ev, nil
}

type stubRegistry map[valueobjects.AIProvider]ports.Grader

func (r stubRegistry) Grader(p valueobjects.AIProvider) (ports.Grader, error) {
	g, ok := r[p]
	if !ok {
		return nil, apperrors.NewValidationError("AI provider not available")
	}
	return g, nil
}

type fakeMetrics struct {
	graded []int
}

func (m *fakeMetrics) RecordOperation(context.Context, string, time.Duration, error) {}

func (m *fakeMetrics) RecordEssayGraded(_ context.Context, _ string, total int, _ time.Duration) {
	m.graded = append(m.graded, total)
}

type passTracer struct{}

func (passTracer) TraceFunction(ctx context.Context, _ string, fn func(context.Context) error) error {
	return fn(ctx)
}

func (passTracer) AddAnnotation(context.Context, string, string) {}

type fakeUsers struct {
	log   *callLog
	byID  map[string]*entities.User
	email map[string]string
}

func newFakeUsers(log *callLog, users ...*entities.User) *fakeUsers {
	f := &fakeUsers{log: log, byID: map[string]*entities.User{}, email: map[string]string{}}
	for _, u := range users {
		f.byID[u.ID] = u
		f.email[u.Email] = u.ID
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u *entities.User) error {
	f.log.add("users.Create")
	f.byID[u.ID] = u
	f.email[u.Email] = u.ID
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*entities.User, error) {
	f.log.add("users.FindByID")
	u, ok := f.byID[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("User")
	}
	return u, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	f.log.add("users.FindByEmail")
	if id, ok := f.email[email]; ok {
		return f.byID[id], nil
	}
	return nil, nil
}

func (f *fakeUsers) Update(_ context.Context, id string, u ports.UserUpdate) (*entities.User, error) {
	f.log.add("users.Update")
	user, ok := f.byID[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("User")
	}
	if u.Name != nil {
		user.Name = *u.Name
	}
	if u.PhoneNumber != nil {
		user.PhoneNumber = *u.PhoneNumber
	}
	return user, nil
}

type fakeIdentity struct {
	log   *callLog
	err   error
	attrs ports.UserAttributes
}

func (f *fakeIdentity) SignUp(_ context.Context, in ports.SignUpInput) (*ports.SignUpResult, error) {
	f.log.add("identity.SignUp")
	if f.err != nil {
		return nil, f.err
	}
	return &ports.SignUpResult{UserID: "sub-" + in.Email, UserConfirmed: false}, nil
}

func (f *fakeIdentity) SignIn(context.Context, string, string) (*ports.AuthTokens, error) {
	f.log.add("identity.SignIn")
	if f.err != nil {
		return nil, f.err
	}
	return &ports.AuthTokens{AccessToken: "a", IDToken: "i", RefreshToken: "r", ExpiresIn: 3600, TokenType: "Bearer"}, nil
}

func (f *fakeIdentity) RefreshToken(context.Context, string) (*ports.AuthTokens, error) {
	f.log.add("identity.RefreshToken")
	if f.err != nil {
		return nil, f.err
	}
	return &ports.AuthTokens{AccessToken: "a2", IDToken: "i2", ExpiresIn: 3600, TokenType: "Bearer"}, nil
}

func (f *fakeIdentity) ConfirmSignUp(context.Context, string, string) error {
	f.log.add("identity.ConfirmSignUp")
	return f.err
}

func (f *fakeIdentity) ForgotPassword(context.Context, string) error {
	f.log.add("identity.ForgotPassword")
	return f.err
}

func (f *fakeIdentity) ConfirmForgotPassword(context.Context, string, string, string) error {
	f.log.add("identity.ConfirmForgotPassword")
	return f.err
}

func (f *fakeIdentity) ChangePassword(context.Context, string, string, string) error {
	f.log.add("identity.ChangePassword")
	return f.err
}

func (f *fakeIdentity) UpdateUserAttributes(_ context.Context, _ string, attrs ports.UserAttributes) error {
	f.log.add("identity.UpdateUserAttributes")
	f.attrs = attrs
	return f.err
}
