package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/database/databasetest"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type recordingNotifier struct {
	mu       sync.Mutex
	messages []*models.ContactMessage
	err      error
}

func (n *recordingNotifier) NotifyContact(_ context.Context, msg *models.ContactMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
	return n.err
}

type testAPI struct {
	t        *testing.T
	handler  http.Handler
	db       database.Database
	tokens   *auth.TokenService
	notifier *recordingNotifier
}

func newTestAPI(t *testing.T, opts ...RouterOption) *testAPI {
	t.Helper()

	db, _ := databasetest.Open(t)
	tokens, err := auth.NewTokenService(testSecret)
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	cfg := &config.Config{
		AdminEmail:      "admin@example.com",
		AdminPassword:   "admin123",
		AcceptedOrigins: []string{"http://localhost:3000"},
	}
	opts = append([]RouterOption{withConfig(cfg), WithNotifier(notifier)}, opts...)

	return &testAPI{
		t:        t,
		handler:  newRouter(db, tokens, opts...),
		db:       db,
		tokens:   tokens,
		notifier: notifier,
	}
}

func (a *testAPI) token(role models.Role) string {
	token, err := a.tokens.Issue(auth.Identity{UserID: uuid.NewString(), Email: "someone@example.com", Role: role})
	require.NoError(a.t, err)
	return token
}

func (a *testAPI) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func validProject() map[string]any {
	return map[string]any{
		"title":               "Portfolio",
		"name":                "portfolio",
		"description":         "short",
		"detailedDescription": "long",
		"techStack":           []string{"Go"},
		"images":              []string{"https://example.com/a.png"},
	}
}

func validSkill(count int) map[string]any {
	return map[string]any{
		"title":  "Backend",
		"icon":   "⚙️",
		"skills": []string{"Go"},
		"count":  count,
	}
}

func TestProtectedRoutes_RequireAdmin(t *testing.T) {
	a := newTestAPI(t)
	id := uuid.NewString()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/projects"},
		{http.MethodPut, "/projects/" + id},
		{http.MethodDelete, "/projects/" + id},
		{http.MethodPost, "/skills"},
		{http.MethodPut, "/skills/" + id},
		{http.MethodDelete, "/skills/" + id},
		{http.MethodGet, "/contact"},
		{http.MethodPatch, "/contact/" + id},
		{http.MethodDelete, "/contact/" + id},
		{http.MethodGet, "/admin/stats"},
	}

	userToken := a.token(models.RoleUser)
	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			rec := a.do(route.method, route.path, nil, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "error", decode[ErrorResponse](t, rec).Status)

			rec = a.do(route.method, route.path, nil, "not-a-jwt")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			rec = a.do(route.method, route.path, nil, userToken)
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}

func TestAuthenticate_RejectsOtherSchemes(t *testing.T) {
	a := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	req.Header.Set("Authorization", "Basic "+a.token(models.RoleAdmin))
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other, err := auth.NewTokenService("another-secret")
	require.NoError(t, err)
	forged, err := other.Issue(auth.Identity{UserID: "x", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/contact", nil, forged).Code)
}

func TestUnknownIDs_AreNotFound(t *testing.T) {
	a := newTestAPI(t)
	admin := a.token(models.RoleAdmin)
	id := uuid.NewString()

	cases := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/projects/" + id, nil},
		{http.MethodPut, "/projects/" + id, validProject()},
		{http.MethodDelete, "/projects/" + id, nil},
		{http.MethodPut, "/skills/" + id, validSkill(1)},
		{http.MethodDelete, "/skills/" + id, nil},
		{http.MethodPatch, "/contact/" + id, map[string]bool{"read": true}},
		{http.MethodDelete, "/contact/" + id, nil},
		{http.MethodDelete, "/projects/not-a-uuid", nil},
		{http.MethodGet, "/projects/not-a-uuid", nil},
	}

	for _, c := range cases {
		t.Run(c.method+" "+c.path, func(t *testing.T) {
			rec := a.do(c.method, c.path, c.body, admin)
			assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
		})
	}
}

func TestProjects(t *testing.T) {
	a := newTestAPI(t)
	admin := a.token(models.RoleAdmin)

	body := validProject()
	body["title"] = "  Portfolio  "
	body["techStack"] = []string{"A", "B", ""}
	body["githubUrl"] = "  "

	rec := a.do(http.MethodPost, "/projects", body, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.Project](t, rec)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Portfolio", created.Title)
	assert.Equal(t, []string{"A", "B"}, []string(created.TechStack))
	assert.Equal(t, models.CategoryWeb, created.Category)
	assert.False(t, created.Featured)
	assert.Nil(t, created.GithubURL)

	stored, err := a.db.ProjectRepo().FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, []string(stored.TechStack))

	t.Run("public get and list", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/projects/"+created.ID.String(), nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, created.ID, decode[models.Project](t, rec).ID)

		rec = a.do(http.MethodGet, "/projects", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]models.Project](t, rec), 1)
	})

	t.Run("full replace", func(t *testing.T) {
		update := validProject()
		update["title"] = "Renamed"
		update["featured"] = true
		update["category"] = "ai"

		rec := a.do(http.MethodPut, "/projects/"+created.ID.String(), update, admin)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		updated := decode[models.Project](t, rec)
		assert.Equal(t, "Renamed", updated.Title)
		assert.True(t, updated.Featured)
		assert.Equal(t, models.CategoryAI, updated.Category)
		assert.Equal(t, []string{"Go"}, []string(updated.TechStack))
	})

	t.Run("validation", func(t *testing.T) {
		invalid := validProject()
		invalid["category"] = "games"
		rec := a.do(http.MethodPost, "/projects", invalid, admin)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "category", decode[ErrorResponse](t, rec).Field)

		invalid = validProject()
		invalid["techStack"] = []string{" ", ""}
		rec = a.do(http.MethodPost, "/projects", invalid, admin)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "techStack", decode[ErrorResponse](t, rec).Field)

		invalid = validProject()
		delete(invalid, "title")
		rec = a.do(http.MethodPut, "/projects/"+created.ID.String(), invalid, admin)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "title", decode[ErrorResponse](t, rec).Field)

		rec = a.do(http.MethodPost, "/projects", "{not json", admin)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rec := a.do(http.MethodDelete, "/projects/"+created.ID.String(), nil, admin)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "success", decode[AckResponse](t, rec).Status)

		rec = a.do(http.MethodGet, "/projects/"+created.ID.String(), nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSkills(t *testing.T) {
	a := newTestAPI(t)
	admin := a.token(models.RoleAdmin)

	for _, count := range []int{3, 1, 2} {
		rec := a.do(http.MethodPost, "/skills", validSkill(count), admin)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.True(t, decode[models.Skill](t, rec).Featured)
	}

	hidden := validSkill(4)
	hidden["featured"] = false
	rec := a.do(http.MethodPost, "/skills", hidden, admin)
	require.Equal(t, http.StatusCreated, rec.Code)
	hiddenSkill := decode[models.Skill](t, rec)
	assert.False(t, hiddenSkill.Featured)

	rec = a.do(http.MethodGet, "/skills", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	skills := decode[[]models.Skill](t, rec)
	require.Len(t, skills, 3)
	for i, skill := range skills {
		assert.Equal(t, i+1, skill.Count)
	}

	t.Run("count must be positive", func(t *testing.T) {
		rec := a.do(http.MethodPost, "/skills", validSkill(0), admin)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		missing := validSkill(1)
		delete(missing, "count")
		rec = a.do(http.MethodPost, "/skills", missing, admin)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "count", decode[ErrorResponse](t, rec).Field)
	})

	t.Run("missing title error is not repeated", func(t *testing.T) {
		untitled := validSkill(1)
		delete(untitled, "title")
		rec := a.do(http.MethodPost, "/skills", untitled, admin)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{
			"error": "missing required field",
			"status": "error",
			"field": "title",
			"details": "Missing required field: title"
		}`, rec.Body.String())
	})

	t.Run("update and delete", func(t *testing.T) {
		update := validSkill(9)
		update["title"] = "Frontend"
		rec := a.do(http.MethodPut, "/skills/"+hiddenSkill.ID.String(), update, admin)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		updated := decode[models.Skill](t, rec)
		assert.Equal(t, "Frontend", updated.Title)
		assert.True(t, updated.Featured)

		rec = a.do(http.MethodDelete, "/skills/"+hiddenSkill.ID.String(), nil, admin)
		assert.Equal(t, http.StatusOK, rec.Code)
		rec = a.do(http.MethodDelete, "/skills/"+hiddenSkill.ID.String(), nil, admin)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestContactFlow(t *testing.T) {
	a := newTestAPI(t)
	admin := a.token(models.RoleAdmin)

	rec := a.do(http.MethodPost, "/contact", map[string]any{
		"name":    "Ada",
		"email":   "  Ada@Example.COM ",
		"subject": "Hello",
		"message": "Let's talk",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[AckResponse](t, rec)
	assert.Equal(t, "success", created.Status)
	assert.Equal(t, "Message sent successfully", created.Message)
	require.NotNil(t, created.ID)
	require.Len(t, a.notifier.messages, 1)
	assert.Equal(t, "ada@example.com", a.notifier.messages[0].Email)

	path := "/contact/" + created.ID.String()

	rec = a.do(http.MethodGet, "/contact", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	messages := decode[[]models.ContactMessage](t, rec)
	require.Len(t, messages, 1)
	assert.False(t, messages[0].Read)
	assert.Equal(t, "ada@example.com", messages[0].Email)

	rec = a.do(http.MethodPatch, path, map[string]bool{"read": false}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = a.do(http.MethodPatch, path, map[string]string{}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for i := 0; i < 2; i++ {
		rec = a.do(http.MethodPatch, path, map[string]bool{"read": true}, admin)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.True(t, decode[models.ContactMessage](t, rec).Read)
	}

	rec = a.do(http.MethodDelete, path, nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(http.MethodGet, "/contact", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.ContactMessage](t, rec))
}

func TestContactCreate_Validation(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(http.MethodPost, "/contact", map[string]any{
		"name": "Ada", "email": "not-an-email", "subject": "s", "message": "m",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email", decode[ErrorResponse](t, rec).Field)

	rec = a.do(http.MethodPost, "/contact", map[string]any{
		"name": "Ada", "email": "ada@example.com", "subject": "s",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "message", decode[ErrorResponse](t, rec).Field)

	rec = a.do(http.MethodPost, "/contact",
		`{"name":"Ana","email":"ana@example.com","subject":"s","message":"m"} garbage`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "json", decode[ErrorResponse](t, rec).Field)

	assert.Empty(t, a.notifier.messages)
	unread, err := a.db.ContactRepo().CountUnread(context.Background())
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestContactCreate_NotificationFailureIsIgnored(t *testing.T) {
	a := newTestAPI(t)
	a.notifier.err = assert.AnError

	rec := a.do(http.MethodPost, "/contact", map[string]any{
		"name": "Ada", "email": "ada@example.com", "subject": "s", "message": "m",
	}, "")
	assert.Equal(t, http.StatusCreated, rec.Code)

	unread, err := a.db.ContactRepo().CountUnread(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)
}

func TestSeedLoginAndStats(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(http.MethodPost, "/admin/seed", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	seeded := decode[SeedResponse](t, rec)
	assert.True(t, seeded.AdminCreated)
	assert.Equal(t, 6, seeded.SkillsCreated)

	rec = a.do(http.MethodPost, "/admin/seed", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.SeedResult{}, decode[SeedResponse](t, rec).SeedResult)

	rec = a.do(http.MethodPost, "/auth/login", LoginRequest{Email: "admin@example.com", Password: "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = a.do(http.MethodPost, "/auth/login", LoginRequest{Email: "nobody@example.com", Password: "admin123"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.do(http.MethodPost, "/auth/login", LoginRequest{Email: "ADMIN@example.com", Password: "admin123"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := decode[LoginResponse](t, rec)
	assert.NotContains(t, rec.Body.String(), "password")
	require.NotNil(t, login.User)
	assert.Equal(t, models.RoleAdmin, login.User.Role)

	rec = a.do(http.MethodPost, "/contact", map[string]any{
		"name": "Ada", "email": "ada@example.com", "subject": "s", "message": "m",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = a.do(http.MethodGet, "/admin/stats", nil, login.Token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stats := decode[StatsResponse](t, rec)
	assert.EqualValues(t, 4, stats.TotalProjects)
	assert.EqualValues(t, 6, stats.TotalSkills)
	assert.EqualValues(t, 1, stats.UnreadMessages)
	assert.GreaterOrEqual(t, stats.TotalViews, int64(5000))
	assert.Less(t, stats.TotalViews, int64(15000))
}

func TestSeed_ConcurrentCalls(t *testing.T) {
	a := newTestAPI(t)

	const calls = 4
	codes := make([]int, calls)
	var wg sync.WaitGroup
	for i := range calls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/admin/seed", nil)
			rec := httptest.NewRecorder()
			a.handler.ServeHTTP(rec, req)
			codes[i] = rec.Code
		}()
	}
	wg.Wait()

	for _, code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}

	admin, err := a.db.UserRepo().FindByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	skills, err := a.db.SkillRepo().Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 6, skills)
}

type countingViews struct {
	mu    sync.Mutex
	total int64
}

func (c *countingViews) Record(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total++
	return c.total, nil
}

func (c *countingViews) Total(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total, nil
}

func TestViews(t *testing.T) {
	views := &countingViews{}
	a := newTestAPI(t, WithViewCounter(views))

	for i := int64(1); i <= 2; i++ {
		rec := a.do(http.MethodPost, "/views", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, i, decode[ViewsResponse](t, rec).TotalViews)
	}

	rec := a.do(http.MethodGet, "/admin/stats", nil, a.token(models.RoleAdmin))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decode[StatsResponse](t, rec).TotalViews)
}

func TestHealth(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[HealthResponse](t, rec)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "connected", health.Database)
}

func TestUnknownRoute(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(http.MethodGet, "/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestCORS(t *testing.T) {
	a := newTestAPI(t)

	req := httptest.NewRequest(http.MethodOptions, "/projects", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
