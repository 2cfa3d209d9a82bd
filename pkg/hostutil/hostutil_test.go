package hostutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/restaurante-api/pkg/hostutil"
)

func TestBaseDomain(t *testing.T) {
	cases := map[string]string{
		"example.com":              "example.com",
		"kitchen.example.com":      "example.com",
		"kitchen.example.com:8443": "example.com",
		"a.b.c.example.org":        "example.org",
		"localhost":                "localhost",
		"localhost:3000":           "localhost",
		"kitchen.localhost:3000":   "kitchen.localhost",
		"127.0.0.1:8080":           "127.0.0.1",
		"[::1]:8080":               "::1",
		"EXAMPLE.COM":              "example.com",
		"":                         "",
	}
	for in, want := range cases {
		assert.Equal(t, want, hostutil.BaseDomain(in), "host %q", in)
	}
}

func TestClientAddress(t *testing.T) {
	assert.Equal(t, "10.0.0.1", hostutil.ClientAddress("10.0.0.1, 172.16.0.1", "192.168.1.1"))
	assert.Equal(t, "192.168.1.1", hostutil.ClientAddress("", "192.168.1.1"))
	assert.Equal(t, hostutil.UnknownClient, hostutil.ClientAddress("", ""))
	assert.Equal(t, hostutil.UnknownClient, hostutil.ClientAddress(" , ", " "))
}

func TestHasStaffPrefix(t *testing.T) {
	p, ok := hostutil.HasStaffPrefix("manager.example.com")
	assert.True(t, ok)
	assert.Equal(t, "manager", p)

	p, ok = hostutil.HasStaffPrefix("Kitchen.example.com:443")
	assert.True(t, ok)
	assert.Equal(t, "kitchen", p)

	_, ok = hostutil.HasStaffPrefix("example.com")
	assert.False(t, ok)

	_, ok = hostutil.HasStaffPrefix("managerx.example.com")
	assert.False(t, ok)
}
