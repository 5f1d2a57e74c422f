package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"trackdeck/internal/models/db_models"
	"trackdeck/internal/models/response_models"
	"trackdeck/internal/storage"
	"trackdeck/pkg/utils"
)

type fakeBilling struct {
	pro    bool
	checks int
}

func (f *fakeBilling) EnsureWorkspace(ctx context.Context, sess *Session) (*response_models.WorkspaceResponse, error) {
	return nil, nil
}

func (f *fakeBilling) HasProAccess(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	f.checks++
	return f.pro, nil
}

func (f *fakeBilling) HandleCheckoutCompleted(ctx context.Context, accountID string, customerID string) error {
	return nil
}

func (f *fakeBilling) HandleSubscriptionEnded(ctx context.Context, customerID string) error {
	return nil
}

type fakeFileRepo struct {
	files    []*db_models.FileUpload
	conflict bool
}

func (f *fakeFileRepo) InsertWithNextVersion(ctx context.Context, file *db_models.FileUpload) error {
	if f.conflict {
		return utils.ErrVersionConflict
	}
	max := 0
	for _, existing := range f.files {
		if existing.ProjectID == file.ProjectID && existing.Category == file.Category && existing.Version > max {
			max = existing.Version
		}
	}
	file.Version = max + 1
	file.ID = uuid.New()
	f.files = append(f.files, file)
	return nil
}

func (f *fakeFileRepo) FindById(ctx context.Context, id uuid.UUID) (*db_models.FileUpload, error) {
	for _, file := range f.files {
		if file.ID == id {
			return file, nil
		}
	}
	return nil, nil
}

func (f *fakeFileRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]db_models.FileUpload, error) {
	var out []db_models.FileUpload
	for _, file := range f.files {
		if file.ProjectID == projectID {
			out = append(out, *file)
		}
	}
	return out, nil
}

func (f *fakeFileRepo) ListByProjectCategory(ctx context.Context, projectID uuid.UUID, category db_models.FileCategory) ([]db_models.FileUpload, error) {
	var out []db_models.FileUpload
	for _, file := range f.files {
		if file.ProjectID == projectID && file.Category == category {
			out = append(out, *file)
		}
	}
	return out, nil
}

func (f *fakeFileRepo) ListSessionsOlderThan(ctx context.Context, cutoff int64) ([]db_models.FileUpload, error) {
	return nil, nil
}

func (f *fakeFileRepo) DeleteByIds(ctx context.Context, ids []uuid.UUID) error { return nil }

func (f *fakeFileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, file := range f.files {
		if file.ID == id {
			f.files = append(f.files[:i], f.files[i+1:]...)
			return nil
		}
	}
	return nil
}

func TestFileServiceUpload_VersionsIncrement(t *testing.T) {
	sess, perms := producerSessionAndProject()
	repo := &fakeFileRepo{}
	store := storage.NewMemoryStore()
	svc := NewFileService(repo, store, perms, &fakeBilling{pro: true})

	first, err := svc.Upload(context.Background(), sess, perms.project.ID, db_models.CategoryMixes, "rough.wav", "audio/wav", "", []byte("RIFF v1"))
	require.NoError(t, err)
	second, err := svc.Upload(context.Background(), sess, perms.project.ID, db_models.CategoryMixes, "less-rough.wav", "audio/wav", "", []byte("RIFF v2"))
	require.NoError(t, err)

	assert.Equal(t, 1, first.Version)
	assert.Equal(t, 2, second.Version)
	assert.Equal(t, 2, store.Len())

	// another category starts its own sequence
	third, err := svc.Upload(context.Background(), sess, perms.project.ID, db_models.CategoryStems, "stems.zip", "application/zip", "", []byte("PK"))
	require.NoError(t, err)
	assert.Equal(t, 1, third.Version)
}

func TestFileServiceUpload_ValidationBeforeStorage(t *testing.T) {
	sess, perms := producerSessionAndProject()
	store := storage.NewMemoryStore()
	svc := NewFileService(&fakeFileRepo{}, store, perms, &fakeBilling{pro: true})

	_, err := svc.Upload(context.Background(), sess, perms.project.ID, db_models.CategoryMixes, "mix.wav.exe", "audio/wav", "", []byte("MZ"))

	assert.True(t, errors.Is(err, utils.ErrUnsafeFileName))
	assert.Equal(t, 0, store.Len(), "no bytes reach the store on validation failure")
}

func TestFileServiceUpload_VersionConflictSurfaces(t *testing.T) {
	sess, perms := producerSessionAndProject()
	svc := NewFileService(&fakeFileRepo{conflict: true}, storage.NewMemoryStore(), perms, &fakeBilling{pro: true})

	_, err := svc.Upload(context.Background(), sess, perms.project.ID, db_models.CategoryMixes, "mix.wav", "audio/wav", "", []byte("RIFF"))

	assert.True(t, errors.Is(err, utils.ErrVersionConflict))
}

func TestFileServiceUpload_RequiresEditCapability(t *testing.T) {
	sess, perms := producerSessionAndProject()
	perms.caps = Capabilities{CanView: true, CanComment: true}
	svc := NewFileService(&fakeFileRepo{}, storage.NewMemoryStore(), perms, &fakeBilling{pro: true})

	_, err := svc.Upload(context.Background(), sess, perms.project.ID, db_models.CategoryMixes, "mix.wav", "audio/wav", "", []byte("RIFF"))

	assert.True(t, errors.Is(err, utils.ErrForbidden))
}

func TestFileServiceUpload_SessionsRequireProAccess(t *testing.T) {
	sess, perms := producerSessionAndProject()
	store := storage.NewMemoryStore()
	billing := &fakeBilling{pro: false}
	svc := NewFileService(&fakeFileRepo{}, store, perms, billing)

	_, err := svc.Upload(context.Background(), sess, perms.project.ID, db_models.CategorySessions, "session.zip", "application/zip", "", []byte("PK"))

	assert.True(t, errors.Is(err, utils.ErrProRequired))
	assert.Equal(t, 1, billing.checks, "gate consulted the producer's workspace")
	assert.Equal(t, 0, store.Len(), "no bytes stored for a gated upload")
}

func TestFileServiceUpload_SessionsAllowedWithPro(t *testing.T) {
	sess, perms := producerSessionAndProject()
	svc := NewFileService(&fakeFileRepo{}, storage.NewMemoryStore(), perms, &fakeBilling{pro: true})

	resp, err := svc.Upload(context.Background(), sess, perms.project.ID, db_models.CategorySessions, "session.zip", "application/zip", "", []byte("PK"))

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Version)
}

func TestFileServiceUpload_SmallUploadSkipsBillingGate(t *testing.T) {
	sess, perms := producerSessionAndProject()
	billing := &fakeBilling{pro: false}
	svc := NewFileService(&fakeFileRepo{}, storage.NewMemoryStore(), perms, billing)

	_, err := svc.Upload(context.Background(), sess, perms.project.ID, db_models.CategoryMixes, "mix.wav", "audio/wav", "", []byte("RIFF"))

	require.NoError(t, err)
	assert.Equal(t, 0, billing.checks, "uploads under the free-tier size never hit billing")
}
