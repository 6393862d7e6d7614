package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubFeature struct {
	name    string
	enabled bool
	loadErr error
	loaded  bool
}

func (s *stubFeature) Name() string      { return s.name }
func (s *stubFeature) IsEnabled() bool   { return s.enabled }
func (s *stubFeature) Load(fiber.Router) error {
	s.loaded = true
	return s.loadErr
}

func TestManager_LoadAll(t *testing.T) {
	app := fiber.New()

	enabled := &stubFeature{name: "documents", enabled: true}
	disabled := &stubFeature{name: "integrity", enabled: false}

	mgr := NewManager()
	mgr.Register(enabled)
	mgr.Register(disabled)

	assert.NoError(t, mgr.LoadAll(app))
	assert.True(t, enabled.loaded)
	assert.False(t, disabled.loaded, "disabled features must not load")
	assert.Len(t, mgr.Features(), 2)
}

func TestManager_LoadAll_PropagatesError(t *testing.T) {
	app := fiber.New()

	failing := &stubFeature{name: "documents", enabled: true, loadErr: errors.New("route conflict")}
	after := &stubFeature{name: "integrity", enabled: true}

	mgr := NewManager()
	mgr.Register(failing)
	mgr.Register(after)

	err := mgr.LoadAll(app)
	assert.ErrorContains(t, err, "documents")
	assert.False(t, after.loaded, "loading stops at the first failure")
}
