package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Path
	}{
		{name: "Simple", in: "server.http.port", want: Path{"server", "http", "port"}},
		{name: "SingleSegment", in: "debug", want: Path{"debug"}},
		{name: "Empty", in: "", want: nil},
		{name: "EmptySegmentsDropped", in: "server..port.", want: Path{"server", "port"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePath(tt.in))
		})
	}
}

func TestPath_Navigation(t *testing.T) {
	p := ParsePath("server.http.port")

	assert.Equal(t, "server.http.port", p.String())
	assert.Equal(t, "port", p.Key())
	assert.Equal(t, "server.http", p.Parent().String())
	assert.Equal(t, "server.http.port.extra", p.Child("extra").String())

	// Child must not alias the parent's backing array.
	a := ParsePath("server")
	b := a.Child("x")
	c := a.Child("y")
	assert.Equal(t, "server.x", b.String())
	assert.Equal(t, "server.y", c.String())
}
