package soundboard

import (
	"os"
	"testing"
)

func TestDebugLoggingRequested(t *testing.T) {
	for _, k := range []string{"SOUNDBOARD_DEBUG", "DEBUG"} {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
	if debugLoggingRequested() {
		t.Fatal("debug should be off with no env vars")
	}

	t.Setenv("SOUNDBOARD_DEBUG", "true")
	if !debugLoggingRequested() {
		t.Fatal("SOUNDBOARD_DEBUG=true should enable debug")
	}
	t.Setenv("SOUNDBOARD_DEBUG", "1")
	if debugLoggingRequested() {
		t.Fatal("only the literal \"true\" enables debug")
	}

	_ = os.Unsetenv("SOUNDBOARD_DEBUG")
	t.Setenv("DEBUG", "true")
	if !debugLoggingRequested() {
		t.Fatal("DEBUG=true should enable debug")
	}
}

func TestWithDebugLogging_WrapsTransport(t *testing.T) {
	t.Setenv("SOUNDBOARD_DEBUG", "")
	_ = os.Unsetenv("SOUNDBOARD_DEBUG")
	t.Setenv("DEBUG", "")
	_ = os.Unsetenv("DEBUG")

	c := New("http://host", WithDebugLogging(true))
	if _, ok := c.http.Transport.(*debugTransport); !ok {
		t.Fatalf("transport=%T, want *debugTransport", c.http.Transport)
	}

	plain := New("http://host")
	if plain.http.Transport != nil {
		t.Fatalf("transport=%T, want default", plain.http.Transport)
	}
}

func TestTokenWrapsDebugTransport(t *testing.T) {
	t.Setenv("SOUNDBOARD_DEBUG", "true")
	c := New("http://host", WithAuthToken("tok"))
	tt, ok := c.http.Transport.(*tokenTransport)
	if !ok {
		t.Fatalf("outer transport=%T, want *tokenTransport", c.http.Transport)
	}
	if _, ok := tt.base.(*debugTransport); !ok {
		t.Fatalf("inner transport=%T, want *debugTransport", tt.base)
	}
}
