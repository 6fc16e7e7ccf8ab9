package tasks

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famorg/internal/common"
	"famorg/internal/entity"
	"famorg/internal/llm"
	"famorg/internal/repository"
)

type stubClassifier struct {
	fields llm.TaskFields
	err    error
	gotReq llm.ClassifyRequest
}

func (s *stubClassifier) ClassifyTask(_ context.Context, req llm.ClassifyRequest) (llm.TaskFields, []byte, error) {
	s.gotReq = req
	return s.fields, nil, s.err
}

func newTestService(t *testing.T, classifier llm.TaskClassifier) (*Service, uuid.UUID) {
	t.Helper()
	db, err := repository.Open(filepath.Join(t.TempDir(), "famorg.db"), 1000)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	profileRepo := repository.NewProfileRepository(db, nil)
	p := &entity.Profile{
		FirstName: "Claire", LastName: "Martin", City: "Lyon",
		Children: []entity.Child{{FirstName: "Emma"}},
	}
	require.NoError(t, profileRepo.Create(context.Background(), p))

	svc := NewService(repository.NewTaskRepository(db, nil), profileRepo, classifier, nil)
	return svc, p.ID
}

func TestCreateRejectsUnknownProfile(t *testing.T) {
	svc, _ := newTestService(t, nil)
	_, err := svc.Create(context.Background(), &entity.Task{
		ProfileID: uuid.New(),
		Title:     "Payer la cantine",
	})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	svc, profileID := newTestService(t, nil)
	_, err := svc.Create(context.Background(), &entity.Task{ProfileID: profileID, Title: "  "})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestSetDoneRoundTrip(t *testing.T) {
	svc, profileID := newTestService(t, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, &entity.Task{ProfileID: profileID, Title: "Payer la cantine"})
	require.NoError(t, err)

	done, err := svc.SetDone(ctx, created.ID, true)
	require.NoError(t, err)
	assert.True(t, done.Done)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Done)
}

func TestIngestEmailCreatesTask(t *testing.T) {
	classifier := &stubClassifier{fields: llm.TaskFields{
		Title:        "Payer facture cantine - 98,00€",
		Description:  "Facture n° 2025-4411 à régler avant le 15 décembre.",
		Deadline:     "2025-12-15",
		Category:     "payment",
		ContactEmail: "cantine@ville.fr",
		ChildName:    "Emma",
	}}
	svc, profileID := newTestService(t, classifier)

	task, err := svc.IngestEmail(context.Background(), IngestRequest{
		ProfileID:     profileID,
		Subject:       "Fwd: Facture cantine décembre",
		Sender:        "cantine@ville.fr",
		Body:          "Bonjour, la facture n° 2025-4411 de 98,00 € est à régler avant le 15/12/2025.",
		AttachmentURL: "https://files.example/facture.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "email", task.Source)
	assert.Equal(t, "payment", task.Category)
	assert.Equal(t, "https://files.example/facture.pdf", task.AttachmentURL)
	assert.True(t, task.Deadline.Equal(time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)))

	// The classifier saw the family context.
	assert.Equal(t, "Claire Martin", classifier.gotReq.Family.ParentName)
	assert.Equal(t, []string{"Emma"}, classifier.gotReq.Family.Children)
}

func TestIngestEmailDropsBadDeadline(t *testing.T) {
	classifier := &stubClassifier{fields: llm.TaskFields{
		Title:    "Prendre rendez-vous",
		Deadline: "bientôt",
	}}
	svc, profileID := newTestService(t, classifier)

	task, err := svc.IngestEmail(context.Background(), IngestRequest{
		ProfileID: profileID,
		Body:      "Merci de prendre rendez-vous avec la maîtresse.",
	})
	require.NoError(t, err)
	assert.True(t, task.Deadline.IsZero())
}

func TestIngestEmailClassifierFailure(t *testing.T) {
	classifier := &stubClassifier{err: errors.New("rate limited")}
	svc, profileID := newTestService(t, classifier)

	_, err := svc.IngestEmail(context.Background(), IngestRequest{ProfileID: profileID, Body: "x"})
	assert.Error(t, err)
}
