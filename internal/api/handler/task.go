package handler

import (
	"net/http"
	"strconv"
	"time"

	"apittk/backend/internal/api/middleware"
	"apittk/backend/internal/models"
	"apittk/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

type taskCreateRequest struct {
	Title       string              `json:"title" binding:"required,max=255"`
	Description string              `json:"description" binding:"max=5000"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"due_date"`
	AssigneeID  uint                `json:"assignee_id" binding:"required"`
}

// taskUpdateRequest — patch задачі, nil-поле означає "не змінювати".
type taskUpdateRequest struct {
	Title       *string              `json:"title" binding:"omitempty,max=255"`
	Description *string              `json:"description" binding:"omitempty,max=5000"`
	Priority    *models.TaskPriority `json:"priority"`
	DueDate     *time.Time           `json:"due_date"`
	AssigneeID  *uint                `json:"assignee_id"`
}

type taskStatusRequest struct {
	Status models.TaskStatus `json:"status" binding:"required"`
}

// CreateTask створює задачу; виконавець мусить існувати.
func (h *Handler) CreateTask(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req taskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
		return
	}

	if _, err := h.Store.GetUserByID(req.AssigneeID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assignee not found"})
		return
	}

	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskActive,
		Priority:    priority,
		DueDate:     req.DueDate,
		AuthorID:    user.UserID,
		AssigneeID:  req.AssigneeID,
	}
	if err := h.Store.CreateTask(task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	if err := h.Store.AddTaskHistory(&models.TaskHistory{
		TaskID: task.ID,
		UserID: user.UserID,
		Event:  "create",
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record task history"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// ListTasks повертає активні задачі за фільтрами.
func (h *Handler) ListTasks(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	assigneeID, _ := strconv.ParseUint(c.Query("assignee_id"), 10, 32)

	status := models.TaskStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	tasks, err := h.Store.ListTasks(storage.TaskFilter{
		Title:      c.Query("title"),
		AssigneeID: uint(assigneeID),
		Status:     status,
		Limit:      limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// UpdateTask оновлює поля задачі. Редагувати може автор або адміністратор.
func (h *Handler) UpdateTask(c *gin.Context) {
	user := middleware.CurrentUser(c)

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task id"})
		return
	}

	var req taskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.Store.GetTaskByID(taskID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	if task.AuthorID != user.UserID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
			return
		}
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.AssigneeID != nil {
		if _, err := h.Store.GetUserByID(*req.AssigneeID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Assignee not found"})
			return
		}
		task.AssigneeID = *req.AssigneeID
	}

	if err := h.Store.SaveTask(task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	if err := h.Store.AddTaskHistory(&models.TaskHistory{
		TaskID: task.ID,
		UserID: user.UserID,
		Event:  "update",
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record task history"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTaskStatus змінює статус задачі з перевіркою дозволених переходів.
func (h *Handler) UpdateTaskStatus(c *gin.Context) {
	user := middleware.CurrentUser(c)

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task id"})
		return
	}

	var req taskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	task, err := h.Store.GetTaskByID(taskID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	if !task.Status.CanTransitionTo(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status transition"})
		return
	}

	task.Status = req.Status
	if err := h.Store.SaveTask(task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	if err := h.Store.AddTaskHistory(&models.TaskHistory{
		TaskID: task.ID,
		UserID: user.UserID,
		Event:  "status_update",
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record task history"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// GetTaskCounts повертає кількість задач за статусами.
func (h *Handler) GetTaskCounts(c *gin.Context) {
	counts, err := h.Store.CountTasksByStatus()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"current":   counts[models.TaskActive],
		"postponed": counts[models.TaskPostponed],
		"completed": counts[models.TaskCompleted],
	})
}
