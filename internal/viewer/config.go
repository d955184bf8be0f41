package viewer

import (
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/donjon/internal/presets"
	"github.com/samdwyer/donjon/internal/world"
)

// Config holds viewer configuration options.
type Config struct {
	// Params seeds the first dungeon. Stepping through seeds keeps every
	// other parameter.
	Params world.Params

	Palette presets.Palette
	Logger  logrus.FieldLogger

	// ShowSecrets starts with trapped and secret doors revealed.
	ShowSecrets bool
}
