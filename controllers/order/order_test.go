package orderControllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestCallerID(t *testing.T) {
	c, _ := testContext(t)
	c.Set("user_id", "buyer-1")

	id, ok := callerID(c)
	assert.True(t, ok)
	assert.Equal(t, "buyer-1", id)
}

func TestCallerIDMissing(t *testing.T) {
	c, w := testContext(t)

	_, ok := callerID(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// A gateway setting user_id to anything but a string must get a 401, not a
// panic.
func TestCallerIDRejectsNonString(t *testing.T) {
	c, w := testContext(t)
	c.Set("user_id", 42)

	_, ok := callerID(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
