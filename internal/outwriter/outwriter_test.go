package outwriter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seistools/seisavail/internal/contract"
	"github.com/seistools/seisavail/schema"
)

func TestUnitStatusPlain(t *testing.T) {
	ok := schema.UnitResult{Station: rain, Year: 2023}
	failed := schema.UnitResult{Station: rain, Year: 2023, Err: assert.AnError}

	assert.Equal(t, "ok", unitStatus(ok, false))
	assert.Equal(t, "failed", unitStatus(failed, false))
}

func TestTerminalWidthOverride(t *testing.T) {
	assert.Equal(t, 120, terminalWidth(&contract.Config{Width: 120}))
}
