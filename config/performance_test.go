package config

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTenantLabel(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "slug", Value: "bean-there"}}
	assert.Equal(t, "bean-there", tenantLabel(c))

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Set("cafeId", "0f47ac10-58cc-4372-a567-0e02b2c3d479")
	assert.Equal(t, "0f47ac10-58cc-4372-a567-0e02b2c3d479", tenantLabel(c))

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "-", tenantLabel(c))
}
