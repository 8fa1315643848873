package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelo/atelo/internal/application/usecase"
	"github.com/atelo/atelo/internal/domain/entity"
)

func newRecordsUC(offices *fakeOfficeRepo, projects *fakeProjectRepo, regulations *fakeRegulationRepo) *usecase.ManageRecordsUseCase {
	return usecase.NewManageRecordsUseCase(offices, projects, regulations, sequentialIDs())
}

func TestCreateOffice(t *testing.T) {
	offices := newFakeOfficeRepo()
	uc := newRecordsUC(offices, newFakeProjectRepo(), newFakeRegulationRepo())

	created, err := uc.CreateOffice(context.Background(), entity.Office{Name: "Atelier Nord", City: "Oslo"})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	stored, err := offices.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Atelier Nord", stored.Name)
}

func TestCreateOffice_InvalidRejected(t *testing.T) {
	uc := newRecordsUC(newFakeOfficeRepo(), newFakeProjectRepo(), newFakeRegulationRepo())

	_, err := uc.CreateOffice(context.Background(), entity.Office{Name: "  "})
	assert.ErrorIs(t, err, entity.ErrInvalidRecord)
}

func TestCreateProject_DefaultsStageAndChecksOffice(t *testing.T) {
	offices := newFakeOfficeRepo()
	projects := newFakeProjectRepo()
	uc := newRecordsUC(offices, projects, newFakeRegulationRepo())
	ctx := context.Background()

	office, err := uc.CreateOffice(ctx, entity.Office{Name: "Atelier Nord"})
	require.NoError(t, err)

	created, err := uc.CreateProject(ctx, entity.Project{Name: "Harbour Library", OfficeID: office.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.StageBrief, created.Stage)

	_, err = uc.CreateProject(ctx, entity.Project{Name: "Orphan", OfficeID: "nope"})
	assert.ErrorIs(t, err, entity.ErrInvalidRecord)
}

func TestCreateRegulation(t *testing.T) {
	regulations := newFakeRegulationRepo()
	uc := newRecordsUC(newFakeOfficeRepo(), newFakeProjectRepo(), regulations)

	created, err := uc.CreateRegulation(context.Background(), entity.Regulation{
		Code:  "TEK17-11",
		Title: "Fire safety in assembly buildings",
		Topic: entity.TopicFire,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = uc.CreateRegulation(context.Background(), entity.Regulation{Code: "X"})
	assert.ErrorIs(t, err, entity.ErrInvalidRecord)
}

func TestListProjects_ByOffice(t *testing.T) {
	offices := newFakeOfficeRepo()
	projects := newFakeProjectRepo()
	uc := newRecordsUC(offices, projects, newFakeRegulationRepo())
	ctx := context.Background()

	a, err := uc.CreateOffice(ctx, entity.Office{Name: "A"})
	require.NoError(t, err)
	b, err := uc.CreateOffice(ctx, entity.Office{Name: "B"})
	require.NoError(t, err)

	_, err = uc.CreateProject(ctx, entity.Project{Name: "P1", OfficeID: a.ID})
	require.NoError(t, err)
	_, err = uc.CreateProject(ctx, entity.Project{Name: "P2", OfficeID: b.ID})
	require.NoError(t, err)

	mine, err := uc.ListProjects(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "P1", mine[0].Name)

	all, err := uc.ListProjects(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
