package match

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"toski_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockMatchService struct {
	mock.Mock
}

func (m *mockMatchService) SubmitMatch(ctx context.Context, req SubmitMatchRequest) error {
	return m.Called(ctx, req).Error(0)
}

func postMatch(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/matches", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_SubmitMatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	common.RegisterValidators()

	svc := new(mockMatchService)
	router := gin.New()
	NewHandler(svc, zap.NewNop()).RegisterRoutes(router.Group(""))

	svc.On("SubmitMatch", mock.Anything, mock.MatchedBy(func(r SubmitMatchRequest) bool {
		return r.ExtraNotes != nil && *r.ExtraNotes == "boom"
	})).Return(common.ErrSubmissionFailed)
	svc.On("SubmitMatch", mock.Anything, mock.Anything).Return(nil)

	w := postMatch(router, `{"player1":{"name":"Alice","commander":"Atraxa","turnOrder":1,"rank":1},"turnCount":8}`)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = postMatch(router, `{}`)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = postMatch(router, `{"player2":{"name":"Bob","commander":"Kenrith","turnOrder":5,"rank":1}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "turnOrder outside 1..4")

	w = postMatch(router, `{"player2":{"name":"Bob","turnOrder":2,"rank":1}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "commander required within a player")

	w = postMatch(router, `{"extraNotes":"boom"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SUBMISSION_FAILED")
}
