package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"graduation-tickets/internal/handler"
	"graduation-tickets/internal/service/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var (
	InvalidJSON = `{"invalid": json}`
)

type testMocks struct {
	issuance   *mocks.MockIssuanceService
	validation *mocks.MockValidationService
	tickets    *mocks.MockTicketService
}

func setupTestRouter(t *testing.T) (*gin.Engine, *testMocks) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	m := &testMocks{
		issuance:   mocks.NewMockIssuanceService(t),
		validation: mocks.NewMockValidationService(t),
		tickets:    mocks.NewMockTicketService(t),
	}

	handler.NewTicketHandler(m.issuance, m.validation, m.tickets).RegisterRoutes(router)
	handler.NewValidationHandler(m.validation).RegisterRoutes(router)
	handler.NewIssuerHandler(m.issuance).RegisterRoutes(router)

	return router, m
}

// create HTTP request with JSON body
func createJSONHTTPRequest(method, url string, data interface{}) *http.Request {
	var body *bytes.Buffer
	if raw, ok := data.(string); ok {
		body = bytes.NewBufferString(raw)
	} else {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return nil
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
