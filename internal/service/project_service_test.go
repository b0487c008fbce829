// FILE: internal/service/project_service_test.go
package service

import (
	"context"
	"testing"

	"ai-videostudio-be/internal/dto"
	"ai-videostudio-be/internal/entity"
	"ai-videostudio-be/internal/pkg/serverutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newProjectFixture() (IProjectService, *fakeUow) {
	uow := newFakeUow()
	svc := NewProjectService(&fakeUowFactory{uow: uow})
	return svc, uow
}

func TestCreateAndGetProject(t *testing.T) {
	svc, _ := newProjectFixture()
	userId := uuid.New()

	created, err := svc.CreateProject(context.Background(), userId, &dto.CreateProjectRequest{
		Title:    "Launch teaser",
		Timeline: map[string]interface{}{"clips": []interface{}{}},
	})
	assert.NoError(t, err)
	assert.Equal(t, "Launch teaser", created.Title)

	got, err := svc.GetProject(context.Background(), userId, created.Id)
	assert.NoError(t, err)
	assert.Equal(t, created.Id, got.Id)
	assert.Contains(t, got.Timeline, "clips")
}

func TestGetProjectNotOwned(t *testing.T) {
	svc, uow := newProjectFixture()
	projectId := uuid.New()

	uow.projects.projects = append(uow.projects.projects, &entity.Project{
		Id:     projectId,
		UserId: uuid.New(),
		Title:  "someone else's cut",
	})

	_, err := svc.GetProject(context.Background(), uuid.New(), projectId)
	var apiErr *serverutils.ApiError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}

func TestListProjectsScopedToUser(t *testing.T) {
	svc, uow := newProjectFixture()
	userId := uuid.New()

	uow.projects.projects = append(uow.projects.projects,
		&entity.Project{Id: uuid.New(), UserId: userId, Title: "mine"},
		&entity.Project{Id: uuid.New(), UserId: uuid.New(), Title: "theirs"},
	)

	res, err := svc.ListProjects(context.Background(), userId)
	assert.NoError(t, err)
	assert.Len(t, res, 1)
	assert.Equal(t, "mine", res[0].Title)
}

func TestUpdateProject(t *testing.T) {
	svc, uow := newProjectFixture()
	userId := uuid.New()
	projectId := uuid.New()

	uow.projects.projects = append(uow.projects.projects, &entity.Project{
		Id:       projectId,
		UserId:   userId,
		Title:    "draft",
		Timeline: map[string]interface{}{"clips": []interface{}{"a"}},
	})

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		res, err := svc.UpdateProject(context.Background(), userId, projectId, &dto.UpdateProjectRequest{
			Title: "final",
		})
		assert.NoError(t, err)
		assert.Equal(t, "final", res.Title)
		assert.Contains(t, res.Timeline, "clips")
	})

	t.Run("timeline replace", func(t *testing.T) {
		res, err := svc.UpdateProject(context.Background(), userId, projectId, &dto.UpdateProjectRequest{
			Timeline: map[string]interface{}{"clips": []interface{}{"a", "b"}},
		})
		assert.NoError(t, err)
		assert.Equal(t, "final", res.Title)
		assert.Len(t, res.Timeline["clips"], 2)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := svc.UpdateProject(context.Background(), userId, uuid.New(), &dto.UpdateProjectRequest{Title: "x"})
		var apiErr *serverutils.ApiError
		assert.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 404, apiErr.Status)
	})
}

func TestDeleteProject(t *testing.T) {
	svc, uow := newProjectFixture()
	userId := uuid.New()
	projectId := uuid.New()

	uow.projects.projects = append(uow.projects.projects, &entity.Project{
		Id:     projectId,
		UserId: userId,
		Title:  "scratch",
	})

	assert.NoError(t, svc.DeleteProject(context.Background(), userId, projectId))
	assert.Empty(t, uow.projects.projects)

	err := svc.DeleteProject(context.Background(), userId, projectId)
	var apiErr *serverutils.ApiError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}
