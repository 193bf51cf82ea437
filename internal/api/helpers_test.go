package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/folioreads/folio-admin/internal/middleware"
	"github.com/folioreads/folio-admin/internal/models"
	"github.com/folioreads/folio-admin/internal/rbac"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)

	return l
}

func testAdmin() models.Actor {
	return models.Actor{UID: "admin-1", Email: "admin@folioreads.com", Role: rbac.RoleAdmin}
}

func testSuperAdmin() models.Actor {
	return models.Actor{UID: "root-1", Email: "root@folioreads.com", Role: rbac.RoleSuperAdmin}
}

// newTestRouter creates a gin engine with actor-injecting middleware for testing.
func newTestRouter(actor models.Actor) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ActorKey, actor)
		c.Next()
	})

	return r
}

// doRequest performs an HTTP request against the test router and returns the recorder.
func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, http.NoBody)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}
