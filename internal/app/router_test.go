package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"proctor_backend/internal/config"
	"proctor_backend/internal/repository/memory"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Session: config.SessionConfig{
			Secret:           "router-test-secret",
			CookieName:       "proctor_session",
			TTL:              time.Hour,
			RememberDuration: 48 * time.Hour,
		},
		Bcrypt:    config.BcryptConfig{Cost: bcrypt.MinCost},
		Storage:   config.StorageConfig{Type: "local", LocalPath: t.TempDir()},
		RateLimit: config.RateLimitConfig{MaxRequests: 10000, WindowMinutes: 1, LoginPerMinute: 10000},
	}
	store := memory.New()
	a := &App{Config: cfg}
	repos := &repositories{
		users:    store.Users(),
		tests:    store.Tests(),
		attempts: store.Attempts(),
		sessions: store.Sessions(),
	}
	require.NoError(t, a.build(repos, func(c *gin.Context) { c.Next() }))

	srv := httptest.NewServer(a.Router)
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	t     *testing.T
	base  string
	http  *http.Client
	token string
}

func newClient(t *testing.T, srv *httptest.Server) *client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, base: srv.URL, http: &http.Client{Jar: jar}}
}

func (c *client) send(req *http.Request) (*http.Response, envelope) {
	c.t.Helper()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	var env envelope
	if len(raw) > 0 {
		require.NoError(c.t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

func (c *client) do(method, path string, body interface{}) (*http.Response, envelope) {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req)
}

func (c *client) expect(method, path string, body interface{}, wantCode int) envelope {
	c.t.Helper()
	resp, env := c.do(method, path, body)
	require.Equal(c.t, wantCode, resp.StatusCode, "%s %s: %s", method, path, env.Message)
	return env
}

func (c *client) multipart(path string, fields map[string]string, fileField string, file []byte) (*http.Response, envelope) {
	c.t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(c.t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile(fileField, "upload.bin")
	require.NoError(c.t, err)
	_, err = part.Write(file)
	require.NoError(c.t, err)
	require.NoError(c.t, w.Close())

	req, err := http.NewRequest(http.MethodPost, c.base+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.send(req)
}

func decode(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}

// signUp creates an account, logs in with the cookie and assumes roles.
func signUp(t *testing.T, srv *httptest.Server, name string, roles ...string) (*client, uint) {
	c := newClient(t, srv)
	env := c.expect(http.MethodPost, "/api/user/create_account", map[string]string{
		"username": name, "fullName": strings.ToUpper(name), "email": name + "@example.com", "password": "pw-" + name,
	}, http.StatusCreated)
	var created struct{ ID uint }
	decode(t, env, &created)

	c.expect(http.MethodPost, "/api/user/authentication/login", map[string]string{
		"username": name, "password": "pw-" + name,
	}, http.StatusNoContent)
	for _, role := range roles {
		c.expect(http.MethodPost, "/api/"+role+"/assume_role", nil, http.StatusNoContent)
	}
	return c, created.ID
}

func TestCreateAccountConflicts(t *testing.T) {
	srv := newTestServer(t)
	signUp(t, srv, "ana")
	c := newClient(t, srv)

	tests := []struct {
		name        string
		body        map[string]string
		wantCode    int
		wantMessage string
	}{
		{
			name:        "username taken",
			body:        map[string]string{"username": "ana", "fullName": "A", "email": "x@example.com", "password": "p"},
			wantCode:    http.StatusUnprocessableEntity,
			wantMessage: "Username is already taken up.",
		},
		{
			name:        "email registered",
			body:        map[string]string{"username": "bob", "fullName": "B", "email": "ana@example.com", "password": "p"},
			wantCode:    http.StatusUnprocessableEntity,
			wantMessage: "E-mail address is already registered.",
		},
		{
			name:     "invalid email",
			body:     map[string]string{"username": "bob", "fullName": "B", "email": "nope", "password": "p"},
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, env := c.do(http.MethodPost, "/api/user/create_account", tt.body)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, env.Message)
			}
		})
	}
}

func TestLoginDetailsLogout(t *testing.T) {
	srv := newTestServer(t)
	c, _ := signUp(t, srv, "ana", "test_taker")

	env := c.expect(http.MethodGet, "/api/user/details", nil, http.StatusOK)
	var details map[string]interface{}
	decode(t, env, &details)
	assert.Equal(t, map[string]interface{}{
		"username":      "ana",
		"fullName":      "ANA",
		"email":         "ana@example.com",
		"isTestSetter":  false,
		"isTestTaker":   true,
		"isInvigilator": false,
	}, details)

	c.expect(http.MethodPost, "/api/user/authentication/logout", nil, http.StatusNoContent)
	env = c.expect(http.MethodGet, "/api/user/details", nil, http.StatusUnauthorized)
	assert.Equal(t, "Unauthorised", env.Message)

	other := newClient(t, srv)
	env = other.expect(http.MethodPost, "/api/user/authentication/login", map[string]string{
		"username": "ana", "password": "wrong",
	}, http.StatusUnauthorized)
	assert.Equal(t, "Invalid credential", env.Message)
	env = other.expect(http.MethodPost, "/api/user/authentication/login", map[string]string{
		"username": "nobody", "password": "wrong",
	}, http.StatusUnauthorized)
	assert.Equal(t, "Invalid credential", env.Message)
}

func TestLoginCookieLifetime(t *testing.T) {
	srv := newTestServer(t)
	signUp(t, srv, "ana")

	login := func(query string) *http.Cookie {
		c := newClient(t, srv)
		resp, _ := c.do(http.MethodPost, "/api/user/authentication/login"+query, map[string]string{
			"username": "ana", "password": "pw-ana",
		})
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		for _, ck := range resp.Cookies() {
			if ck.Name == "proctor_session" {
				return ck
			}
		}
		t.Fatal("no session cookie")
		return nil
	}

	assert.Zero(t, login("").MaxAge)
	assert.Equal(t, int((48 * time.Hour).Seconds()), login("?remember=true").MaxAge)

	c := newClient(t, srv)
	c.expect(http.MethodPost, "/api/user/authentication/login?remember=maybe", map[string]string{
		"username": "ana", "password": "pw-ana",
	}, http.StatusBadRequest)
}

func TestLogoutWithExpiredSession(t *testing.T) {
	srv := newTestServer(t)
	a, _ := signUp(t, srv, "ana")

	// b holds a copy of a's cookie
	b := newClient(t, srv)
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	b.http.Jar.SetCookies(u, a.http.Jar.Cookies(u))
	b.expect(http.MethodGet, "/api/user/details", nil, http.StatusOK)

	a.expect(http.MethodPost, "/api/user/authentication/logout", nil, http.StatusNoContent)
	b.expect(http.MethodGet, "/api/user/details", nil, http.StatusUnauthorized)

	resp, _ := b.do(http.MethodPost, "/api/user/authentication/logout", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	var cleared bool
	for _, ck := range resp.Cookies() {
		if ck.Name == "proctor_session" {
			cleared = ck.MaxAge < 0
		}
	}
	assert.True(t, cleared, "session cookie is expired")
	assert.Empty(t, b.http.Jar.Cookies(u))

	newClient(t, srv).expect(http.MethodPost, "/api/user/authentication/logout", nil, http.StatusNoContent)
}

func TestBearerToken(t *testing.T) {
	srv := newTestServer(t)
	signUp(t, srv, "agent")

	c := newClient(t, srv)
	env := c.expect(http.MethodPost, "/api/user/authentication/token", map[string]string{
		"username": "agent", "password": "pw-agent",
	}, http.StatusOK)
	var tok struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expiresAt"`
	}
	decode(t, env, &tok)
	require.NotEmpty(t, tok.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.ExpiresAt, time.Minute)

	c.token = tok.Token
	c.expect(http.MethodGet, "/api/user/details", nil, http.StatusOK)
	c.expect(http.MethodPost, "/api/user/authentication/logout", nil, http.StatusNoContent)
	c.expect(http.MethodGet, "/api/user/details", nil, http.StatusUnauthorized)
}

func TestRoleGates(t *testing.T) {
	srv := newTestServer(t)
	anonymous := newClient(t, srv)
	c, _ := signUp(t, srv, "ana")

	for _, path := range []string{"/api/test_setter/tests", "/api/invigilator/attempts"} {
		anonymous.expect(http.MethodGet, path, nil, http.StatusUnauthorized)
		env := c.expect(http.MethodGet, path, nil, http.StatusForbidden)
		assert.Equal(t, "Forbidden", env.Message)
	}
	anonymous.expect(http.MethodPost, "/api/test_setter/assume_role", nil, http.StatusUnauthorized)

	for role, msg := range map[string]string{
		"test_setter": "User is already a test setter.",
		"test_taker":  "User is already a test taker.",
		"invigilator": "User is already an invigilator.",
	} {
		c.expect(http.MethodPost, "/api/"+role+"/assume_role", nil, http.StatusNoContent)
		env := c.expect(http.MethodPost, "/api/"+role+"/assume_role", nil, http.StatusBadRequest)
		assert.Equal(t, msg, env.Message)
	}
	c.expect(http.MethodGet, "/api/test_setter/tests", nil, http.StatusOK)
}

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

func TestProctoredTestLifecycle(t *testing.T) {
	srv := newTestServer(t)
	setter, _ := signUp(t, srv, "setter", "test_setter")
	taker, takerID := signUp(t, srv, "taker", "test_taker")
	invigilator, invigilatorID := signUp(t, srv, "invigilator", "invigilator")

	start := time.Now().Add(-time.Minute).UTC()
	env := setter.expect(http.MethodPost, "/api/test_setter/create_test", map[string]interface{}{
		"title":     "Midterm",
		"startTime": start,
		"endTime":   start.Add(time.Hour),
		"questions": []interface{}{
			map[string]interface{}{
				"questionText": "2+2?",
				"maxMarks":     1,
				"multipleChoiceQuestion": map[string]interface{}{
					"options": []interface{}{
						map[string]interface{}{"discriminator": 10, "optionText": "3"},
						map[string]interface{}{"discriminator": 11, "optionText": "4"},
					},
					"correctOptionDiscriminator": 11,
				},
			},
			map[string]interface{}{"questionText": "Explain", "maxMarks": 4, "textFieldQuestion": map[string]interface{}{}},
		},
	}, http.StatusCreated)
	var created struct{ ID uint }
	decode(t, env, &created)
	testPath := fmt.Sprintf("/tests/%d", created.ID)

	// authoring view carries the key, the paper does not
	env = setter.expect(http.MethodGet, "/api/test_setter/tests", nil, http.StatusOK)
	assert.Contains(t, string(env.Data), `"correctOptionDiscriminator":2`)
	assert.Contains(t, string(env.Data), `"maxMarks":5`)
	env = taker.expect(http.MethodGet, "/api/test_taker"+testPath, nil, http.StatusOK)
	assert.NotContains(t, string(env.Data), "correctOptionDiscriminator")
	assert.Contains(t, string(env.Data), "2+2?")

	position := `{"topLeft":{"x":0,"y":0},"topRight":{"x":1,"y":0},"bottomLeft":{"x":0,"y":1},"bottomRight":{"x":1,"y":1}}`
	resp, env := taker.multipart("/api/test_taker"+testPath+"/attempt", map[string]string{
		"invigilatorId":  fmt.Sprint(invigilatorID),
		"screenPosition": position,
	}, "environmentImage", []byte("plain text is not an image"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, env.Message)

	resp, env = taker.multipart("/api/test_taker"+testPath+"/attempt", map[string]string{
		"invigilatorId":  fmt.Sprint(invigilatorID),
		"screenPosition": position,
	}, "environmentImage", pngBytes)
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)

	resp, _ = taker.multipart("/api/test_taker"+testPath+"/attempt", map[string]string{
		"screenPosition": position,
	}, "environmentImage", pngBytes)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	attemptPath := "/api/test_taker" + testPath + "/attempt"
	taker.expect(http.MethodPut, attemptPath+"/answers/1", map[string]interface{}{
		"multipleChoiceAnswer": map[string]interface{}{"chosenOptionDiscriminator": 2},
	}, http.StatusOK)
	taker.expect(http.MethodPut, attemptPath+"/answers/2", map[string]interface{}{
		"multipleChoiceAnswer": map[string]interface{}{"chosenOptionDiscriminator": 1},
	}, http.StatusBadRequest)
	taker.expect(http.MethodPut, attemptPath+"/answers/2", map[string]interface{}{
		"textFieldAnswer": map[string]interface{}{"answerText": "because"},
		"isBookmarked":    true,
	}, http.StatusOK)

	env = taker.expect(http.MethodPost, attemptPath+"/gaze", map[string]interface{}{
		"points": []interface{}{
			map[string]interface{}{"timestamp": time.Now().UTC(), "x": 0.5, "y": 0.25},
		},
	}, http.StatusOK)
	assert.JSONEq(t, `{"recorded":1}`, string(env.Data))
	taker.expect(http.MethodPost, attemptPath+"/finish", nil, http.StatusNoContent)
	taker.expect(http.MethodPost, attemptPath+"/finish", nil, http.StatusConflict)

	// invigilation
	env = invigilator.expect(http.MethodGet, "/api/invigilator/attempts", nil, http.StatusOK)
	assert.Contains(t, string(env.Data), fmt.Sprintf(`"testTakerId":%d`, takerID))
	gazePath := fmt.Sprintf("/api/invigilator%s/attempts/%d", testPath, takerID)
	env = invigilator.expect(http.MethodGet, gazePath+"/gaze", nil, http.StatusOK)
	assert.Contains(t, string(env.Data), `"x":0.5`)
	invigilator.expect(http.MethodPost, gazePath+"/cheating", map[string]bool{"caughtCheating": true}, http.StatusNoContent)

	// grading
	marksPath := fmt.Sprintf("/api/test_setter%s/attempts/%d/answers/", testPath, takerID)
	setter.expect(http.MethodPut, marksPath+"1/marks", map[string]int{"marks": 1}, http.StatusNoContent)
	setter.expect(http.MethodPut, marksPath+"2/marks", map[string]int{"marks": 5}, http.StatusBadRequest)

	env = setter.expect(http.MethodGet, "/api/test_setter"+testPath+"/attempts", nil, http.StatusOK)
	var attempts []struct {
		CaughtCheating bool `json:"caughtCheating"`
		MarksObtained  *int `json:"marksObtained"`
		MaxMarks       int  `json:"maxMarks"`
	}
	decode(t, env, &attempts)
	require.Len(t, attempts, 1)
	assert.True(t, attempts[0].CaughtCheating)
	assert.Nil(t, attempts[0].MarksObtained)
	assert.Equal(t, 5, attempts[0].MaxMarks)

	setter.expect(http.MethodPut, marksPath+"2/marks", map[string]int{"marks": 3}, http.StatusNoContent)
	env = taker.expect(http.MethodGet, attemptPath, nil, http.StatusOK)
	var mine struct {
		MarksObtained *int `json:"marksObtained"`
	}
	decode(t, env, &mine)
	require.NotNil(t, mine.MarksObtained)
	assert.Equal(t, 4, *mine.MarksObtained)
}

func TestQuestionAuthoring(t *testing.T) {
	srv := newTestServer(t)
	setter, _ := signUp(t, srv, "setter", "test_setter")
	other, _ := signUp(t, srv, "other", "test_setter")

	start := time.Now().Add(time.Hour).UTC()
	env := setter.expect(http.MethodPost, "/api/test_setter/create_test", map[string]interface{}{
		"title":     "Quiz",
		"startTime": start,
		"endTime":   start.Add(time.Hour),
		"questions": []interface{}{
			map[string]interface{}{"questionText": "a", "maxMarks": 1, "textFieldQuestion": map[string]interface{}{}},
			map[string]interface{}{"questionText": "b", "maxMarks": 1, "attachmentQuestion": map[string]interface{}{}},
		},
	}, http.StatusCreated)
	var created struct{ ID uint }
	decode(t, env, &created)
	base := fmt.Sprintf("/api/test_setter/tests/%d", created.ID)

	env = setter.expect(http.MethodPost, base+"/questions?position=0", map[string]interface{}{
		"questionText": "first", "maxMarks": 2, "textFieldQuestion": map[string]interface{}{},
	}, http.StatusCreated)
	var q struct {
		Discriminator uint `json:"discriminator"`
		Number        int  `json:"number"`
	}
	decode(t, env, &q)
	assert.Equal(t, uint(3), q.Discriminator)
	assert.Equal(t, 0, q.Number)

	setter.expect(http.MethodPost, base+"/questions", map[string]interface{}{
		"questionText": "both", "maxMarks": 2,
		"textFieldQuestion": map[string]interface{}{}, "attachmentQuestion": map[string]interface{}{},
	}, http.StatusBadRequest)

	setter.expect(http.MethodPut, base+"/questions/order", map[string][]uint{"discriminators": {2, 1}}, http.StatusBadRequest)
	setter.expect(http.MethodPut, base+"/questions/order", map[string][]uint{"discriminators": {2, 1, 3}}, http.StatusNoContent)

	env = setter.expect(http.MethodGet, "/api/test_setter/tests", nil, http.StatusOK)
	var tests []struct {
		Questions []struct {
			QuestionText string `json:"questionText"`
		} `json:"questions"`
	}
	decode(t, env, &tests)
	require.Len(t, tests, 1)
	var order []string
	for _, q := range tests[0].Questions {
		order = append(order, q.QuestionText)
	}
	assert.Equal(t, []string{"b", "a", "first"}, order)

	other.expect(http.MethodDelete, base, nil, http.StatusNotFound)
	setter.expect(http.MethodDelete, base, nil, http.StatusNoContent)
	setter.expect(http.MethodDelete, base, nil, http.StatusNotFound)
}

func TestDeleteAccount(t *testing.T) {
	srv := newTestServer(t)
	c, _ := signUp(t, srv, "ana", "test_setter")

	c.expect(http.MethodDelete, "/api/user/account", nil, http.StatusNoContent)
	c.expect(http.MethodGet, "/api/user/details", nil, http.StatusUnauthorized)

	// the username is free again
	signUp(t, srv, "ana")
}
