package flags

import (
	"testing"

	"github.com/thoreinstein/timeto/internal/config"
)

func TestGetConfig_DefaultsWhenUnset(t *testing.T) {
	SetConfig(nil)
	got := GetConfig()
	if got == nil || got.Version != 1 {
		t.Fatalf("GetConfig() = %+v, want defaults", got)
	}
}

func TestSetConfig(t *testing.T) {
	c := &config.Config{Version: 2, Database: "/tmp/x.db"}
	SetConfig(c)
	t.Cleanup(func() { SetConfig(nil) })

	if GetConfig() != c {
		t.Error("GetConfig() should return the config passed to SetConfig")
	}
}
