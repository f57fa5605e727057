package assignment_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	domainassignment "github.com/alanyang/hemotask/internal/domain/assignment"
	"github.com/alanyang/hemotask/internal/mocks"
	selectorsvc "github.com/alanyang/hemotask/internal/service/selector"
	transportassignment "github.com/alanyang/hemotask/internal/transport/assignment"
)

func init() { gin.SetMode(gin.TestMode) }

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/assignments/select", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantBody string
	}{
		{
			name: "assigned",
			body: `{"task":{"required_skill":"CBC","priority":"urgent"},"technicians":[
				{"id":"T1","skills":["CBC"],"active_tasks":2},
				{"id":"T2","skills":["CBC"],"active_tasks":0}]}`,
			wantCode: http.StatusOK,
			wantBody: `{"assigned_to":"T2","error":null}`,
		},
		{
			name:     "no eligible technician",
			body:     `{"task":{"required_skill":"CBC","priority":"urgent"},"technicians":[]}`,
			wantCode: http.StatusUnprocessableEntity,
			wantBody: `{"assigned_to":null,"error":"No eligible technician"}`,
		},
		{
			name:     "invalid input",
			body:     `{"task":`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"assigned_to":null,"error":"Invalid input"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			transportassignment.Register(r.Group("/assignments"), selectorsvc.NewService(nil))

			w := post(r, tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestSelect_MalformedNeverReachesSelector(t *testing.T) {
	ctrl := gomock.NewController(t)
	sel := mocks.NewMockSelector(ctrl)
	sel.EXPECT().Select(gomock.Any()).Times(0)

	r := gin.New()
	transportassignment.Register(r.Group("/assignments"), sel)

	w := post(r, `{"technicians":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"assigned_to":null,"error":"Invalid input"}`, w.Body.String())
}

func TestSelect_UsesInjectedSelector(t *testing.T) {
	ctrl := gomock.NewController(t)
	sel := mocks.NewMockSelector(ctrl)
	sel.EXPECT().Select(gomock.Any()).Return(domainassignment.Assigned("T9"))

	r := gin.New()
	transportassignment.Register(r.Group("/assignments"), sel)

	w := post(r, `{"task":{"required_skill":"X","priority":"routine"},"technicians":[{"id":"T9","skills":[],"active_tasks":0}]}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"assigned_to":"T9","error":null}`, w.Body.String())
}
