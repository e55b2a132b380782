package scene

import (
	"fmt"

	"go-phosphor/internal/dotmatrix"
	"go-phosphor/internal/gauge"
	"go-phosphor/internal/matrixrain"
	"go-phosphor/internal/particle"
	"go-phosphor/internal/ripple"
	"go-phosphor/internal/waveform"
)

// Status — короткая строка о текущем состоянии анимации слоя.
func (in Instance) Status() string {
	switch a := in.Anim.(type) {
	case *dotmatrix.Animation:
		st := a.State()
		return fmt.Sprintf("char %d/%d, %.0f%%, pattern %s", st.CurrentCharIndex, st.TotalChars, st.Progress*100, a.Active().Pattern)
	case *matrixrain.Rain:
		return fmt.Sprintf("%d drops in %d columns", len(a.Drops()), a.Columns())
	case *particle.System:
		return fmt.Sprintf("%d particles", a.ParticleCount())
	case *waveform.Waveform:
		return fmt.Sprintf("%d samples", len(a.Data()))
	case *ripple.Ripple:
		return fmt.Sprintf("%d waves", len(a.Waves()))
	case *gauge.Gauge:
		return fmt.Sprintf("%.1f -> %.1f", a.Displayed(), a.Value())
	}
	return ""
}
