package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCtx(cookies ...*http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	for _, ck := range cookies {
		c.Request.AddCookie(ck)
	}

	return c, rec
}

func setCookies(rec *httptest.ResponseRecorder) []*http.Cookie {
	return rec.Result().Cookies()
}

func TestTempRoundTrip(t *testing.T) {
	j := NewJar("secret", "", false)

	c, rec := newCtx()
	require.NoError(t, j.SetTemp(c, "user-1", "a@x.com", time.Now().Add(5*time.Minute)))

	written := setCookies(rec)
	require.Len(t, written, 1)
	assert.Equal(t, TempAuthName, written[0].Name)

	c2, _ := newCtx(written[0])
	payload, ok := j.Temp(c2)
	require.True(t, ok)
	assert.Equal(t, "user-1", payload.UserID)
	assert.Equal(t, "a@x.com", payload.Identifier)
}

func TestSessionRoundTrip(t *testing.T) {
	j := NewJar("secret", "", false)

	c, rec := newCtx()
	require.NoError(t, j.SetSession(c, &SessionAuth{
		UserID:       "user-1",
		SessionToken: "tok-1",
		Role:         "admin",
		Permissions:  []string{"createCategory"},
	}, time.Now().Add(time.Hour)))

	c2, _ := newCtx(setCookies(rec)[0])
	payload, ok := j.Session(c2)
	require.True(t, ok)
	assert.Equal(t, "tok-1", payload.SessionToken)
	assert.Equal(t, "admin", payload.Role)
	assert.Equal(t, []string{"createCategory"}, payload.Permissions)
}

func TestDecodeFailsClosed(t *testing.T) {
	j := NewJar("secret", "", false)

	// Missing cookie
	c, _ := newCtx()
	_, ok := j.Session(c)
	assert.False(t, ok)

	// Garbage value
	c2, _ := newCtx(&http.Cookie{Name: SessionName, Value: "not-a-jwt"})
	_, ok = j.Session(c2)
	assert.False(t, ok)

	// Signed with a different secret
	other := NewJar("other-secret", "", false)
	c3, rec := newCtx()
	require.NoError(t, other.SetSession(c3, &SessionAuth{SessionToken: "tok"}, time.Now().Add(time.Hour)))

	c4, _ := newCtx(setCookies(rec)[0])
	_, ok = j.Session(c4)
	assert.False(t, ok)
}

func TestExpiredPayloadRejected(t *testing.T) {
	j := NewJar("secret", "", false)

	c, rec := newCtx()
	require.NoError(t, j.SetTemp(c, "user-1", "a@x.com", time.Now().Add(-time.Minute)))

	cookies := setCookies(rec)
	require.NotEmpty(t, cookies)

	c2, _ := newCtx(&http.Cookie{Name: TempAuthName, Value: cookies[0].Value})
	_, ok := j.Temp(c2)
	assert.False(t, ok, "expired claims must not decode")
}

func TestProductionHardening(t *testing.T) {
	j := NewJar("secret", "example.com", true)

	c, rec := newCtx()
	require.NoError(t, j.SetSession(c, &SessionAuth{SessionToken: "tok"}, time.Now().Add(time.Hour)))

	written := setCookies(rec)
	require.Len(t, written, 1)
	assert.Equal(t, "__Secure-"+SessionName, written[0].Name)
	assert.True(t, written[0].Secure)
	assert.True(t, written[0].HttpOnly)

	// Development flags stay relaxed
	dev := NewJar("secret", "", false)
	c2, rec2 := newCtx()
	require.NoError(t, dev.SetSession(c2, &SessionAuth{SessionToken: "tok"}, time.Now().Add(time.Hour)))

	devCookie := setCookies(rec2)[0]
	assert.Equal(t, SessionName, devCookie.Name)
	assert.False(t, devCookie.Secure)
	assert.False(t, devCookie.HttpOnly)
}

func TestClear(t *testing.T) {
	j := NewJar("secret", "", false)

	c, rec := newCtx()
	j.ClearSession(c)
	j.ClearTemp(c)

	for _, ck := range setCookies(rec) {
		assert.Empty(t, ck.Value)
		assert.Negative(t, ck.MaxAge)
	}
}
