package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oksasatya/go-ddd-group-chat/config"
	"github.com/oksasatya/go-ddd-group-chat/internal/container"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/auth"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
	"github.com/oksasatya/go-ddd-group-chat/internal/mocks"
	"github.com/oksasatya/go-ddd-group-chat/internal/router"
	"github.com/oksasatya/go-ddd-group-chat/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

type rig struct {
	engine *gin.Engine
	users  *mocks.MockUserRepository
	groups *mocks.MockGroupRepository
	jwt    *helpers.JWTManager
}

func newRig(t *testing.T) *rig {
	ctrl := gomock.NewController(t)
	r := &rig{
		engine: gin.New(),
		users:  mocks.NewMockUserRepository(ctrl),
		groups: mocks.NewMockGroupRepository(ctrl),
		jwt:    helpers.NewJWTManager("test-secret", time.Hour, "test"),
	}
	c := container.NewWithRepositories(container.Infra{
		Config:   &config.Config{SessionTTL: time.Hour, DebugMetricsEnabled: true, ESMessagesIndex: "messages"},
		Logger:   helpers.NewNopLogger(),
		Sessions: r.jwt,
	}, container.Repositories{
		Users:    r.users,
		Groups:   r.groups,
		Messages: mocks.NewMockMessageRepository(ctrl),
	})
	reg := router.NewRegistry(r.engine)
	router.InitModules(reg, c)
	reg.RegisterAll()
	return r
}

func (r *rig) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.engine.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	r := newRig(t)
	w := r.serve(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "ok", body["status"])
	require.EqualValues(t, 0, body["connections"])
}

func TestMetricsAndExpvarMounted(t *testing.T) {
	r := newRig(t)
	require.Equal(t, http.StatusOK, r.serve(httptest.NewRequest(http.MethodGet, "/metrics", nil)).Code)
	require.Equal(t, http.StatusOK, r.serve(httptest.NewRequest(http.MethodGet, "/debug/vars", nil)).Code)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	r := newRig(t)
	for _, path := range []string{"/api/groups", "/api/groups/g1/messages", "/api/auth/me"} {
		w := r.serve(httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestGroupListWithBearerToken(t *testing.T) {
	r := newRig(t)
	token, err := r.jwt.GenerateSession(auth.SessionPayload{ID: "u1", Email: "ann@example.com"})
	require.NoError(t, err)
	u := &entity.User{ID: "u1", Name: "Ann", Email: "ann@example.com", Session: token}

	r.users.EXPECT().FindOneByID(gomock.Any(), "u1").Return(u, nil).AnyTimes()
	r.groups.EXPECT().FindByUser(gomock.Any(), "u1").Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/groups", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := r.serve(req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	r := newRig(t)
	require.Equal(t, http.StatusNotFound, r.serve(httptest.NewRequest(http.MethodGet, "/api/nope", nil)).Code)
}
