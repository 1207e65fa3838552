package service

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/arena-go-api/internal/models"
	"github.com/noah-isme/arena-go-api/pkg/ai"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

type debateRepoStub struct {
	debates map[uint]models.Debate
	nextID  uint
}

func newDebateRepoStub() *debateRepoStub {
	return &debateRepoStub{debates: make(map[uint]models.Debate), nextID: 1}
}

func (r *debateRepoStub) Create(_ context.Context, debate *models.Debate) error {
	debate.ID = r.nextID
	r.nextID++
	for i := range debate.Debaters {
		debate.Debaters[i].DebateID = debate.ID
	}
	r.debates[debate.ID] = *debate
	return nil
}

func (r *debateRepoStub) GetByID(_ context.Context, id uint) (models.Debate, error) {
	debate, ok := r.debates[id]
	if !ok {
		return models.Debate{}, gorm.ErrRecordNotFound
	}
	return debate, nil
}

func (r *debateRepoStub) AddDebater(_ context.Context, debater *models.Debater) error {
	debate, ok := r.debates[debater.DebateID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	debater.ID = uint(len(debate.Debaters) + 1)
	debate.Debaters = append(debate.Debaters, *debater)
	r.debates[debater.DebateID] = debate
	return nil
}

func (r *debateRepoStub) ListDebaters(_ context.Context, debateID uint) ([]models.Debater, error) {
	debate, ok := r.debates[debateID]
	if !ok {
		return nil, nil
	}
	return debate.Debaters, nil
}

func (r *debateRepoStub) UpdateStatus(_ context.Context, id uint, status string) error {
	debate, ok := r.debates[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	debate.Status = status
	r.debates[id] = debate
	return nil
}

type evaluationRepoStub struct {
	created []models.Evaluation
	nextID  uint
}

func (r *evaluationRepoStub) Create(_ context.Context, evaluation *models.Evaluation) error {
	r.nextID++
	evaluation.ID = r.nextID
	r.created = append(r.created, *evaluation)
	return nil
}

func (r *evaluationRepoStub) ListByDebate(_ context.Context, debateID uint) ([]models.Evaluation, error) {
	matches := make([]models.Evaluation, 0)
	for _, evaluation := range r.created {
		if evaluation.DebateID == debateID {
			matches = append(matches, evaluation)
		}
	}
	return matches, nil
}

type transcriptRepoStub struct {
	entries []models.TranscriptEntry
}

func (r *transcriptRepoStub) Append(_ context.Context, entry *models.TranscriptEntry) error {
	entry.ID = uint(len(r.entries) + 1)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *transcriptRepoStub) ListByDebate(_ context.Context, debateID uint) ([]models.TranscriptEntry, error) {
	matches := make([]models.TranscriptEntry, 0)
	for _, entry := range r.entries {
		if entry.DebateID == debateID {
			matches = append(matches, entry)
		}
	}
	return matches, nil
}

type factCheckRepoStub struct {
	created []models.FactCheck
}

func (r *factCheckRepoStub) Create(_ context.Context, record *models.FactCheck) error {
	record.ID = uint(len(r.created) + 1)
	r.created = append(r.created, *record)
	return nil
}

func (r *factCheckRepoStub) ListByDebate(_ context.Context, debateID uint) ([]models.FactCheck, error) {
	matches := make([]models.FactCheck, 0)
	for _, record := range r.created {
		if record.DebateID == debateID {
			matches = append(matches, record)
		}
	}
	return matches, nil
}

type completerStub struct {
	response string
	err      error
	lastReq  ai.CompletionRequest
	calls    int
}

func (c *completerStub) Complete(_ context.Context, req ai.CompletionRequest) (string, error) {
	c.calls++
	c.lastReq = req
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}
