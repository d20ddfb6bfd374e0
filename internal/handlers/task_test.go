package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"tracker/internal/constants"
	"tracker/internal/models"
	"tracker/internal/repository"
	"tracker/internal/services"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error
	suite.db, err = openTestDB()
	suite.Require().NoError(err)

	taskRepo := repository.NewTaskRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	activityRepo := repository.NewActivityLogRepository(suite.db)
	sweeper := services.NewSweepService(taskRepo)

	suite.handler = NewTaskHandler(services.NewTaskService(taskRepo, projectRepo, userRepo, sweeper, activityRepo))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
		Role:         models.RoleUser,
		Active:       true,
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestProject(name string, ownerID uint64) *models.Project {
	project := &models.Project{
		Name:    name,
		OwnerID: ownerID,
	}
	suite.db.Create(project)
	suite.addMember(project.ID, ownerID)
	return project
}

func (suite *TaskHandlerTestSuite) addMember(projectID, userID uint64) {
	member := &models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		JoinedAt:  time.Now(),
	}
	suite.db.Create(member)
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, ownerID uint64, projectID *uint64) *models.Task {
	task := &models.Task{
		Title:     title,
		OwnerID:   ownerID,
		ProjectID: projectID,
	}
	suite.db.Create(task)
	return task
}

func (suite *TaskHandlerTestSuite) reloadTask(id uint64) *models.Task {
	var task models.Task
	suite.Require().NoError(suite.db.First(&task, id).Error)
	return &task
}

// TestCreateTask_Success tests task creation without a project
func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	user := suite.createTestUser("alice")

	body, _ := json.Marshal(map[string]interface{}{"title": "Write report"})
	c, w := newAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), true, response["success"])

	task := response["task"].(map[string]interface{})
	assert.Equal(suite.T(), "Write report", task["title"])
	assert.Equal(suite.T(), float64(user.ID), task["owner_id"])
	assert.Equal(suite.T(), false, task["is_missed"])
}

// TestCreateTask_EmptyTitle tests that a blank title is rejected
func (suite *TaskHandlerTestSuite) TestCreateTask_EmptyTitle() {
	user := suite.createTestUser("alice")

	body, _ := json.Marshal(map[string]interface{}{"title": "   "})
	c, w := newAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusUnprocessableEntity, w.Code)
}

// TestCreateTask_UnknownProject tests creation against a missing project id
func (suite *TaskHandlerTestSuite) TestCreateTask_UnknownProject() {
	user := suite.createTestUser("alice")

	body, _ := json.Marshal(map[string]interface{}{"title": "Task", "project_id": 999})
	c, w := newAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestCreateTask_NonMemberProject documents the preserved gap: creating a
// task inside a project does not require membership.
func (suite *TaskHandlerTestSuite) TestCreateTask_NonMemberProject() {
	owner := suite.createTestUser("alice")
	outsider := suite.createTestUser("bob")
	project := suite.createTestProject("Launch", owner.ID)

	body, _ := json.Marshal(map[string]interface{}{"title": "Drive-by task", "project_id": project.ID})
	c, w := newAuthContext("POST", "/api/tasks", body, outsider.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

// TestUpdateTitle_Owner tests renaming by the task owner
func (suite *TaskHandlerTestSuite) TestUpdateTitle_Owner() {
	user := suite.createTestUser("alice")
	task := suite.createTestTask("Old", user.ID, nil)

	body, _ := json.Marshal(map[string]interface{}{"title": "New"})
	c, w := newAuthContext("PATCH", "/api/tasks/1/title", body, user.ID)
	setRouteID(c, task.ID)

	suite.handler.UpdateTitle(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "New", suite.reloadTask(task.ID).Title)
}

// TestUpdateTitle_ProjectOwner tests renaming by the project owner
func (suite *TaskHandlerTestSuite) TestUpdateTitle_ProjectOwner() {
	owner := suite.createTestUser("alice")
	member := suite.createTestUser("bob")
	project := suite.createTestProject("Launch", owner.ID)
	suite.addMember(project.ID, member.ID)
	task := suite.createTestTask("Old", member.ID, &project.ID)

	body, _ := json.Marshal(map[string]interface{}{"title": "New"})
	c, w := newAuthContext("PATCH", "/api/tasks/1/title", body, owner.ID)
	setRouteID(c, task.ID)

	suite.handler.UpdateTitle(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "New", suite.reloadTask(task.ID).Title)
}

// TestUpdateTitle_Forbidden tests renaming by a plain member
func (suite *TaskHandlerTestSuite) TestUpdateTitle_Forbidden() {
	owner := suite.createTestUser("alice")
	member := suite.createTestUser("bob")
	project := suite.createTestProject("Launch", owner.ID)
	suite.addMember(project.ID, member.ID)
	task := suite.createTestTask("Old", owner.ID, &project.ID)

	body, _ := json.Marshal(map[string]interface{}{"title": "New"})
	c, w := newAuthContext("PATCH", "/api/tasks/1/title", body, member.ID)
	setRouteID(c, task.ID)

	suite.handler.UpdateTitle(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
	assert.Equal(suite.T(), "Old", suite.reloadTask(task.ID).Title)
}

// TestUpdateTitle_NotFound tests renaming a missing task
func (suite *TaskHandlerTestSuite) TestUpdateTitle_NotFound() {
	user := suite.createTestUser("alice")

	body, _ := json.Marshal(map[string]interface{}{"title": "New"})
	c, w := newAuthContext("PATCH", "/api/tasks/999/title", body, user.ID)
	setRouteID(c, 999)

	suite.handler.UpdateTitle(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestUpdateDueDate_ResetsMissed tests that any due date change clears the
// missed flag immediately.
func (suite *TaskHandlerTestSuite) TestUpdateDueDate_ResetsMissed() {
	user := suite.createTestUser("alice")
	task := suite.createTestTask("Overdue", user.ID, nil)
	suite.db.Model(task).Updates(map[string]interface{}{
		"due_date":  daysFromNow(-3),
		"is_missed": true,
	})

	body, _ := json.Marshal(map[string]interface{}{"due_date": daysFromNow(2).Format(time.RFC3339)})
	c, w := newAuthContext("PATCH", "/api/tasks/1/due-date", body, user.ID)
	setRouteID(c, task.ID)

	suite.handler.UpdateDueDate(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	updated := suite.reloadTask(task.ID)
	assert.False(suite.T(), updated.IsMissed)
	assert.NotNil(suite.T(), updated.DueDate)
}

// TestUpdateDueDate_ClearResetsMissed tests that clearing the due date also
// clears the missed flag.
func (suite *TaskHandlerTestSuite) TestUpdateDueDate_ClearResetsMissed() {
	user := suite.createTestUser("alice")
	task := suite.createTestTask("Overdue", user.ID, nil)
	suite.db.Model(task).Updates(map[string]interface{}{
		"due_date":  daysFromNow(-3),
		"is_missed": true,
	})

	body, _ := json.Marshal(map[string]interface{}{"due_date": nil})
	c, w := newAuthContext("PATCH", "/api/tasks/1/due-date", body, user.ID)
	setRouteID(c, task.ID)

	suite.handler.UpdateDueDate(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	updated := suite.reloadTask(task.ID)
	assert.False(suite.T(), updated.IsMissed)
	assert.Nil(suite.T(), updated.DueDate)
}

// TestUpdateDueDate_PastDate tests that a date before today is rejected
func (suite *TaskHandlerTestSuite) TestUpdateDueDate_PastDate() {
	user := suite.createTestUser("alice")
	task := suite.createTestTask("Task", user.ID, nil)

	body, _ := json.Marshal(map[string]interface{}{"due_date": daysFromNow(-1).Format(time.RFC3339)})
	c, w := newAuthContext("PATCH", "/api/tasks/1/due-date", body, user.ID)
	setRouteID(c, task.ID)

	suite.handler.UpdateDueDate(c)

	assert.Equal(suite.T(), http.StatusUnprocessableEntity, w.Code)
}

// TestUpdateDueDate_Assignee tests that the assignee may change the due date
func (suite *TaskHandlerTestSuite) TestUpdateDueDate_Assignee() {
	owner := suite.createTestUser("alice")
	assignee := suite.createTestUser("bob")
	project := suite.createTestProject("Launch", owner.ID)
	suite.addMember(project.ID, assignee.ID)
	task := suite.createTestTask("Task", owner.ID, &project.ID)
	suite.db.Model(task).Update("assignee_id", assignee.ID)

	body, _ := json.Marshal(map[string]interface{}{"due_date": daysFromNow(5).Format(time.RFC3339)})
	c, w := newAuthContext("PATCH", "/api/tasks/1/due-date", body, assignee.ID)
	setRouteID(c, task.ID)

	suite.handler.UpdateDueDate(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

// TestUpdateDueDate_Admin tests that the admin role may change any due date
func (suite *TaskHandlerTestSuite) TestUpdateDueDate_Admin() {
	owner := suite.createTestUser("alice")
	admin := suite.createTestUser("root")
	suite.db.Model(&models.User{}).Where("id = ?", admin.ID).Update("role", models.RoleAdmin)
	task := suite.createTestTask("Task", owner.ID, nil)

	body, _ := json.Marshal(map[string]interface{}{"due_date": daysFromNow(5).Format(time.RFC3339)})
	c, w := newAuthContext("PATCH", "/api/tasks/1/due-date", body, admin.ID)
	c.Set(constants.ContextKeyUserRole, string(models.RoleAdmin))
	setRouteID(c, task.ID)

	suite.handler.UpdateDueDate(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

// TestUpdateDueDate_Forbidden tests an unrelated user changing the due date
func (suite *TaskHandlerTestSuite) TestUpdateDueDate_Forbidden() {
	owner := suite.createTestUser("alice")
	outsider := suite.createTestUser("mallory")
	task := suite.createTestTask("Task", owner.ID, nil)

	body, _ := json.Marshal(map[string]interface{}{"due_date": daysFromNow(5).Format(time.RFC3339)})
	c, w := newAuthContext("PATCH", "/api/tasks/1/due-date", body, outsider.ID)
	setRouteID(c, task.ID)

	suite.handler.UpdateDueDate(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestAssignTask_Success tests the project owner assigning a member
func (suite *TaskHandlerTestSuite) TestAssignTask_Success() {
	owner := suite.createTestUser("alice")
	member := suite.createTestUser("bob")
	project := suite.createTestProject("Launch", owner.ID)
	suite.addMember(project.ID, member.ID)
	task := suite.createTestTask("Task", member.ID, &project.ID)

	body, _ := json.Marshal(map[string]interface{}{"username": "bob"})
	c, w := newAuthContext("POST", "/api/tasks/1/assign", body, owner.ID)
	setRouteID(c, task.ID)

	suite.handler.AssignTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	updated := suite.reloadTask(task.ID)
	suite.Require().NotNil(updated.AssigneeID)
	assert.Equal(suite.T(), member.ID, *updated.AssigneeID)
}

// TestAssignTask_NoProject tests assignment on a task without a project
func (suite *TaskHandlerTestSuite) TestAssignTask_NoProject() {
	owner := suite.createTestUser("alice")
	task := suite.createTestTask("Task", owner.ID, nil)

	body, _ := json.Marshal(map[string]interface{}{"username": "alice"})
	c, w := newAuthContext("POST", "/api/tasks/1/assign", body, owner.ID)
	setRouteID(c, task.ID)

	suite.handler.AssignTask(c)

	assert.Equal(suite.T(), http.StatusUnprocessableEntity, w.Code)
}

// TestAssignTask_UnknownUser tests assignment to a username that does not exist
func (suite *TaskHandlerTestSuite) TestAssignTask_UnknownUser() {
	owner := suite.createTestUser("alice")
	project := suite.createTestProject("Launch", owner.ID)
	task := suite.createTestTask("Task", owner.ID, &project.ID)

	body, _ := json.Marshal(map[string]interface{}{"username": "nobody"})
	c, w := newAuthContext("POST", "/api/tasks/1/assign", body, owner.ID)
	setRouteID(c, task.ID)

	suite.handler.AssignTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestAssignTask_NotMember tests assignment to a user outside the project
func (suite *TaskHandlerTestSuite) TestAssignTask_NotMember() {
	owner := suite.createTestUser("alice")
	suite.createTestUser("bob")
	project := suite.createTestProject("Launch", owner.ID)
	task := suite.createTestTask("Task", owner.ID, &project.ID)

	body, _ := json.Marshal(map[string]interface{}{"username": "bob"})
	c, w := newAuthContext("POST", "/api/tasks/1/assign", body, owner.ID)
	setRouteID(c, task.ID)

	suite.handler.AssignTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
	assert.Nil(suite.T(), suite.reloadTask(task.ID).AssigneeID)
}

// TestAssignTask_Forbidden tests assignment by a plain member
func (suite *TaskHandlerTestSuite) TestAssignTask_Forbidden() {
	owner := suite.createTestUser("alice")
	member := suite.createTestUser("bob")
	project := suite.createTestProject("Launch", owner.ID)
	suite.addMember(project.ID, member.ID)
	task := suite.createTestTask("Task", owner.ID, &project.ID)

	body, _ := json.Marshal(map[string]interface{}{"username": "bob"})
	c, w := newAuthContext("POST", "/api/tasks/1/assign", body, member.ID)
	setRouteID(c, task.ID)

	suite.handler.AssignTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestToggleTask_Complete tests completing an active task
func (suite *TaskHandlerTestSuite) TestToggleTask_Complete() {
	user := suite.createTestUser("alice")
	task := suite.createTestTask("Task", user.ID, nil)

	c, w := newAuthContext("POST", "/api/tasks/1/toggle", nil, user.ID)
	setRouteID(c, task.ID)

	suite.handler.ToggleTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.True(suite.T(), suite.reloadTask(task.ID).Completed)
}

// TestToggleTask_Reopen tests reopening a completed task; the missed flag
// stays untouched until the next sweep.
func (suite *TaskHandlerTestSuite) TestToggleTask_Reopen() {
	user := suite.createTestUser("alice")
	task := suite.createTestTask("Task", user.ID, nil)
	suite.db.Model(task).Updates(map[string]interface{}{
		"completed": true,
		"due_date":  daysFromNow(-2),
	})

	c, w := newAuthContext("POST", "/api/tasks/1/toggle", nil, user.ID)
	setRouteID(c, task.ID)

	suite.handler.ToggleTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	updated := suite.reloadTask(task.ID)
	assert.False(suite.T(), updated.Completed)
	assert.False(suite.T(), updated.IsMissed)
}

// TestToggleTask_Missed tests that a missed task cannot be completed, even
// by its owner.
func (suite *TaskHandlerTestSuite) TestToggleTask_Missed() {
	user := suite.createTestUser("alice")
	task := suite.createTestTask("Task", user.ID, nil)
	suite.db.Model(task).Updates(map[string]interface{}{
		"due_date":  daysFromNow(-1),
		"is_missed": true,
	})

	c, w := newAuthContext("POST", "/api/tasks/1/toggle", nil, user.ID)
	setRouteID(c, task.ID)

	suite.handler.ToggleTask(c)

	assert.Equal(suite.T(), http.StatusUnprocessableEntity, w.Code)
	assert.False(suite.T(), suite.reloadTask(task.ID).Completed)
}

// TestToggleTask_Assignee tests that the assignee can toggle
func (suite *TaskHandlerTestSuite) TestToggleTask_Assignee() {
	owner := suite.createTestUser("alice")
	assignee := suite.createTestUser("bob")
	project := suite.createTestProject("Launch", owner.ID)
	suite.addMember(project.ID, assignee.ID)
	task := suite.createTestTask("Task", owner.ID, &project.ID)
	suite.db.Model(task).Update("assignee_id", assignee.ID)

	c, w := newAuthContext("POST", "/api/tasks/1/toggle", nil, assignee.ID)
	setRouteID(c, task.ID)

	suite.handler.ToggleTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.True(suite.T(), suite.reloadTask(task.ID).Completed)
}

// TestToggleTask_Forbidden tests that an unrelated member cannot toggle
func (suite *TaskHandlerTestSuite) TestToggleTask_Forbidden() {
	owner := suite.createTestUser("alice")
	member := suite.createTestUser("bob")
	project := suite.createTestProject("Launch", owner.ID)
	suite.addMember(project.ID, member.ID)
	task := suite.createTestTask("Task", owner.ID, &project.ID)

	c, w := newAuthContext("POST", "/api/tasks/1/toggle", nil, member.ID)
	setRouteID(c, task.ID)

	suite.handler.ToggleTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
	assert.False(suite.T(), suite.reloadTask(task.ID).Completed)
}

// TestDeleteTask_Owner tests deletion by the task owner
func (suite *TaskHandlerTestSuite) TestDeleteTask_Owner() {
	user := suite.createTestUser("alice")
	task := suite.createTestTask("Task", user.ID, nil)

	c, w := newAuthContext("DELETE", "/api/tasks/1", nil, user.ID)
	setRouteID(c, task.ID)

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var gone models.Task
	assert.Error(suite.T(), suite.db.First(&gone, task.ID).Error)
}

// TestDeleteTask_ProjectOwner tests deletion by the project owner
func (suite *TaskHandlerTestSuite) TestDeleteTask_ProjectOwner() {
	owner := suite.createTestUser("alice")
	member := suite.createTestUser("bob")
	project := suite.createTestProject("Launch", owner.ID)
	suite.addMember(project.ID, member.ID)
	task := suite.createTestTask("Task", member.ID, &project.ID)

	c, w := newAuthContext("DELETE", "/api/tasks/1", nil, owner.ID)
	setRouteID(c, task.ID)

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

// TestDeleteTask_Forbidden tests deletion by the assignee, who may mutate
// but not delete.
func (suite *TaskHandlerTestSuite) TestDeleteTask_Forbidden() {
	owner := suite.createTestUser("alice")
	assignee := suite.createTestUser("bob")
	project := suite.createTestProject("Launch", owner.ID)
	suite.addMember(project.ID, assignee.ID)
	task := suite.createTestTask("Task", owner.ID, &project.ID)
	suite.db.Model(task).Update("assignee_id", assignee.ID)

	c, w := newAuthContext("DELETE", "/api/tasks/1", nil, assignee.ID)
	setRouteID(c, task.ID)

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	var still models.Task
	assert.NoError(suite.T(), suite.db.First(&still, task.ID).Error)
}

// TestListTasks_SweepsBeforeRead tests that listing marks overdue tasks
// missed before returning them.
func (suite *TaskHandlerTestSuite) TestListTasks_SweepsBeforeRead() {
	user := suite.createTestUser("alice")
	task := suite.createTestTask("Overdue", user.ID, nil)
	suite.db.Model(task).Update("due_date", daysFromNow(-1))

	c, w := newAuthContext("GET", "/api/tasks", nil, user.ID)

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	tasks := response["tasks"].([]interface{})
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), true, tasks[0].(map[string]interface{})["is_missed"])
	assert.True(suite.T(), suite.reloadTask(task.ID).IsMissed)
}

// TestListTasks_Visibility tests that listings never leak unrelated tasks
func (suite *TaskHandlerTestSuite) TestListTasks_Visibility() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	project := suite.createTestProject("Launch", alice.ID)
	suite.createTestTask("Alice private", alice.ID, nil)
	suite.createTestTask("In project", alice.ID, &project.ID)
	suite.createTestTask("Bob private", bob.ID, nil)

	c, w := newAuthContext("GET", "/api/tasks", nil, bob.ID)

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	tasks := response["tasks"].([]interface{})
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), "Bob private", tasks[0].(map[string]interface{})["title"])
}

// TestListMissedTasks tests the missed-task report
func (suite *TaskHandlerTestSuite) TestListMissedTasks() {
	user := suite.createTestUser("alice")
	overdue := suite.createTestTask("Overdue", user.ID, nil)
	suite.db.Model(overdue).Update("due_date", daysFromNow(-1))
	suite.createTestTask("On time", user.ID, nil)

	c, w := newAuthContext("GET", "/api/tasks/missed", nil, user.ID)

	suite.handler.ListMissedTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	tasks := response["tasks"].([]interface{})
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), "Overdue", tasks[0].(map[string]interface{})["title"])
}

// TestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
