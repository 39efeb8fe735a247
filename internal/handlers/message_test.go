package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/collab-dashboard-api/internal/constants"
	"github.com/yukikurage/collab-dashboard-api/internal/database"
	"github.com/yukikurage/collab-dashboard-api/internal/dto"
	"github.com/yukikurage/collab-dashboard-api/internal/models"
	"github.com/yukikurage/collab-dashboard-api/internal/repository"
	sessionstore "github.com/yukikurage/collab-dashboard-api/internal/session"
	"github.com/yukikurage/collab-dashboard-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type messageTestEnv struct {
	db      *gorm.DB
	handler *MessageHandler
}

func setupMessageTestEnv(t *testing.T) messageTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Member{},
		&models.Message{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	messageRepo := repository.NewMessageRepository(db)
	memberService := services.NewMemberService(
		repository.NewMemberRepository(db),
		repository.NewProjectRepository(db),
		sessionstore.NewStore(),
	)
	handler := NewMessageHandler(messageRepo, memberService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return messageTestEnv{
		db:      db,
		handler: handler,
	}
}

func messageTestContext(method, url string, body []byte, userID, projectID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(projectID, 10)}}

	return c, w
}

func createMessageFixture(t *testing.T, db *gorm.DB) (*models.User, *models.Project, *models.Member) {
	t.Helper()

	user := &models.User{
		FirstName:    "Chat",
		LastName:     "User",
		Email:        "chat@example.com",
		PasswordHash: "hashed",
	}
	require.NoError(t, db.Create(user).Error)

	project := &models.Project{Name: "Chatty", Code: "MSGS-0000-MSGS"}
	require.NoError(t, db.Create(project).Error)

	member := &models.Member{
		UserID:    user.ID,
		ProjectID: project.ID,
		Active:    true,
		JoinedAt:  time.Now(),
	}
	require.NoError(t, db.Create(member).Error)

	return user, project, member
}

func TestMessageHandler_ListMessages(t *testing.T) {
	env := setupMessageTestEnv(t)

	user, project, member := createMessageFixture(t, env.db)

	for _, content := range []string{"first", "second", "third"} {
		require.NoError(t, env.db.Create(&models.Message{
			ProjectID: project.ID,
			MemberID:  member.ID,
			Content:   content,
		}).Error)
	}

	c, w := messageTestContext(http.MethodGet, "/api/projects/1/messages?limit=2", nil, user.ID, project.ID)

	env.handler.ListMessages(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Messages   []dto.MessageVM          `json:"messages"`
		Pagination struct {
			TotalPages int `json:"total_pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Messages, 2)
	require.Equal(t, "first", response.Messages[0].Content)
	require.Equal(t, 2, response.Pagination.TotalPages)
}

func TestMessageHandler_ListMessages_NonMember(t *testing.T) {
	env := setupMessageTestEnv(t)

	user, project, _ := createMessageFixture(t, env.db)

	c, w := messageTestContext(http.MethodGet, "/api/projects/1/messages", nil, user.ID+1, project.ID)

	env.handler.ListMessages(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestMessageHandler_PostMessage(t *testing.T) {
	env := setupMessageTestEnv(t)

	user, project, member := createMessageFixture(t, env.db)

	payload := map[string]string{"content": "  shipping friday  "}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := messageTestContext(http.MethodPost, "/api/projects/1/messages", body, user.ID, project.ID)

	env.handler.PostMessage(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.MessageVM
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "shipping friday", response.Content)
	require.Equal(t, member.ID, response.MemberID)

	var stored models.Message
	require.NoError(t, env.db.First(&stored, response.ID).Error)
	require.Equal(t, "shipping friday", stored.Content)
}

func TestMessageHandler_PostMessage_BlankContent(t *testing.T) {
	env := setupMessageTestEnv(t)

	user, project, _ := createMessageFixture(t, env.db)

	payload := map[string]string{"content": "   "}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := messageTestContext(http.MethodPost, "/api/projects/1/messages", body, user.ID, project.ID)

	env.handler.PostMessage(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMessageHandler_PostMessage_NonMember(t *testing.T) {
	env := setupMessageTestEnv(t)

	user, project, _ := createMessageFixture(t, env.db)

	payload := map[string]string{"content": "hello"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := messageTestContext(http.MethodPost, "/api/projects/1/messages", body, user.ID+1, project.ID)

	env.handler.PostMessage(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}
