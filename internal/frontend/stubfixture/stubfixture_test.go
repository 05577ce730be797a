package stubfixture

import (
	"path/filepath"
	"testing"

	"github.com/typewright/funxytc/internal/diagnostics"
	"github.com/typewright/funxytc/internal/modules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pointScenario = `comment describing the scenario, kept by Parse as Fixture.Comment

-- geometry.fxt --
class Point {
    x: int
    y: int
}
-- main.fxt --
import geometry
origin: geometry.Point
`

func TestParseSplitsArchiveIntoNamedFiles(t *testing.T) {
	fx := Parse([]byte(pointScenario))
	require.Contains(t, fx.Files, "geometry.fxt")
	require.Contains(t, fx.Files, "main.fxt")
	assert.Contains(t, fx.Files["geometry.fxt"], "class Point")
}

func TestMaterializeThenLoadChecksTheBundledScenario(t *testing.T) {
	fx := Parse([]byte(pointScenario))
	dir, err := Materialize(t.TempDir(), fx)
	require.NoError(t, err)

	bag := diagnostics.NewBag()
	loader := modules.NewLoader(dir, bag)
	_, err = loader.Load(filepath.Join(dir, "main.fxt"))
	require.NoError(t, err)
	assert.False(t, bag.HasErrors(), bag.All())
}

func TestFormatRoundTripsParse(t *testing.T) {
	fx := Parse([]byte(pointScenario))
	out := Format(fx, []string{"geometry.fxt", "main.fxt"})
	again := Parse(out)
	assert.Equal(t, fx.Files, again.Files)
}
