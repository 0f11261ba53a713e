package handler_test

import (
	"net/http"
	"testing"

	"apittk/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateTask(t *testing.T) {
	store := new(MockStorage)
	h := newTestHandler(store)
	user := &models.User{UserID: 1, Username: "alice"}
	r := newTestRouter(h, user)

	store.On("GetUserByID", uint(2)).Return(&models.User{UserID: 2, Username: "bob"}, nil)
	store.On("CreateTask", mock.AnythingOfType("*models.Task")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*models.Task).ID = 3
		}).Return(nil)
	store.On("AddTaskHistory", mock.AnythingOfType("*models.TaskHistory")).Return(nil)

	w := doJSON(r, http.MethodPost, "/tasks", map[string]interface{}{
		"title":       "Write report",
		"assignee_id": 2,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	// Нова задача активна, пріоритет за замовчуванням — середній.
	assert.Equal(t, string(models.TaskActive), body["status"])
	assert.Equal(t, string(models.PriorityMedium), body["priority"])
	store.AssertCalled(t, "AddTaskHistory", mock.AnythingOfType("*models.TaskHistory"))
}

func TestCreateTask_UnknownAssignee(t *testing.T) {
	store := new(MockStorage)
	h := newTestHandler(store)
	user := &models.User{UserID: 1, Username: "alice"}
	r := newTestRouter(h, user)

	store.On("GetUserByID", uint(99)).Return(nil, assert.AnError)

	w := doJSON(r, http.MethodPost, "/tasks", map[string]interface{}{
		"title":       "Write report",
		"assignee_id": 99,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	store.AssertNotCalled(t, "CreateTask", mock.Anything)
}

func TestUpdateTaskStatus_AllowedTransition(t *testing.T) {
	store := new(MockStorage)
	h := newTestHandler(store)
	user := &models.User{UserID: 1, Username: "alice"}
	r := newTestRouter(h, user)

	store.On("GetTaskByID", uint(3)).Return(&models.Task{
		ID: 3, Title: "Write report", Status: models.TaskActive, AuthorID: 1,
	}, nil)
	store.On("SaveTask", mock.AnythingOfType("*models.Task")).Return(nil)
	store.On("AddTaskHistory", mock.AnythingOfType("*models.TaskHistory")).Return(nil)

	w := doJSON(r, http.MethodPut, "/tasks/3/status", map[string]interface{}{
		"status": "COMPLETED",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(models.TaskCompleted), decodeBody(t, w)["status"])
}

func TestUpdateTaskStatus_ForbiddenTransition(t *testing.T) {
	store := new(MockStorage)
	h := newTestHandler(store)
	user := &models.User{UserID: 1, Username: "alice"}
	r := newTestRouter(h, user)

	store.On("GetTaskByID", uint(3)).Return(&models.Task{
		ID: 3, Title: "Write report", Status: models.TaskCompleted, AuthorID: 1,
	}, nil)

	// Виконану задачу не можна відкласти.
	w := doJSON(r, http.MethodPut, "/tasks/3/status", map[string]interface{}{
		"status": "POSTPONED",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid status transition", decodeBody(t, w)["error"])
	store.AssertNotCalled(t, "SaveTask", mock.Anything)
}

func TestUpdateTaskStatus_UnknownStatus(t *testing.T) {
	store := new(MockStorage)
	h := newTestHandler(store)
	user := &models.User{UserID: 1, Username: "alice"}
	r := newTestRouter(h, user)

	w := doJSON(r, http.MethodPut, "/tasks/3/status", map[string]interface{}{
		"status": "DONE",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	store.AssertNotCalled(t, "GetTaskByID", mock.Anything)
}

func TestGetTaskCounts(t *testing.T) {
	store := new(MockStorage)
	h := newTestHandler(store)
	user := &models.User{UserID: 1, Username: "alice"}
	r := newTestRouter(h, user)

	store.On("CountTasksByStatus").Return(map[models.TaskStatus]int64{
		models.TaskActive:    4,
		models.TaskCompleted: 2,
	}, nil)

	w := doJSON(r, http.MethodGet, "/tasks/counts", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(4), body["current"])
	assert.Equal(t, float64(0), body["postponed"])
	assert.Equal(t, float64(2), body["completed"])
}
