package moxfield

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupHandlerRouter(provider Provider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(provider, zap.NewNop()).RegisterRoutes(router.Group(""))
	return router
}

func TestHandler_ProxiesRawProviderJSON(t *testing.T) {
	provider := new(mockProvider)
	provider.On("GetAccount", mock.Anything, "Toski").
		Return(&Account{UserName: "Toski", Raw: json.RawMessage(`{"userName":"Toski","extra":1}`)}, nil)
	provider.On("GetDeck", mock.Anything, "xyz").
		Return(&Deck{PublicID: "xyz", Raw: json.RawMessage(`{"publicId":"xyz","boards":{}}`)}, nil)
	router := setupHandlerRouter(provider)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/moxfield/profile/Toski", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userName":"Toski","extra":1}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/moxfield/deck/xyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"publicId":"xyz","boards":{}}`, w.Body.String())
}

func TestHandler_LookupFailureIsBadRequest(t *testing.T) {
	provider := new(mockProvider)
	provider.On("GetAccount", mock.Anything, "ghost").Return(nil, &StatusError{StatusCode: http.StatusNotFound})
	provider.On("GetDeck", mock.Anything, "gone").Return(nil, &StatusError{StatusCode: http.StatusNotFound})
	router := setupHandlerRouter(provider)

	for _, path := range []string{"/moxfield/profile/ghost", "/moxfield/deck/gone"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, path)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotEmpty(t, body["message"], path)
	}
}
